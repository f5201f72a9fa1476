package goadmin_test

import (
	"context"
	"testing"

	consolepkg "github.com/goliatone/go-catalog-admin/pkg/console"
	"github.com/goliatone/go-catalog-admin/pkg/goadmin"
)

type stubMenuBuilder struct {
	items []goadmin.MenuItem
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, _ string, item goadmin.MenuItem) error {
	s.items = append(s.items, item)
	return nil
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	service := consolepkg.NewService(consolepkg.Options{})
	admin, err := goadmin.New(goadmin.Config{
		EnableConsole: true,
		Service:       service,
		MenuBuilder:   builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 5 {
		t.Fatalf("expected 5 menu items, got %d", len(builder.items))
	}
	if builder.items[0].Label != "Usuarios" {
		t.Fatalf("first item = %+v, want Usuarios first", builder.items[0])
	}
	if admin.Console() == nil {
		t.Fatalf("expected console service")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableConsole: false,
		MenuBuilder:   builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 0 {
		t.Fatalf("expected 0 items, got %d", len(builder.items))
	}
	if admin.Console() != nil {
		t.Fatalf("expected nil console when disabled")
	}
}
