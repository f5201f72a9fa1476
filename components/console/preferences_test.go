package console

import (
	"context"
	"testing"
)

func TestInMemoryPreferenceStoreRoundTrip(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	ctx := context.Background()
	ana := ViewerContext{UserID: 7}
	luis := ViewerContext{UserID: 8}

	if err := store.SavePageSettings(ctx, ana, "usuarios", map[string]any{"page_size": 25}); err != nil {
		t.Fatalf("save returned error: %v", err)
	}

	settings, err := store.PageSettings(ctx, ana, "usuarios")
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if settings["page_size"] != 25 {
		t.Fatalf("page_size = %v, want 25", settings["page_size"])
	}

	// Mutating the returned map must not leak into the store.
	settings["page_size"] = 99
	again, _ := store.PageSettings(ctx, ana, "usuarios")
	if again["page_size"] != 25 {
		t.Fatalf("store mutated through returned map: %v", again["page_size"])
	}

	other, _ := store.PageSettings(ctx, luis, "usuarios")
	if len(other) != 0 {
		t.Fatalf("settings leaked across viewers: %#v", other)
	}
	otherPage, _ := store.PageSettings(ctx, ana, "faq")
	if len(otherPage) != 0 {
		t.Fatalf("settings leaked across pages: %#v", otherPage)
	}
}

func TestInMemoryPreferenceStoreRequiresViewer(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	ctx := context.Background()

	if err := store.SavePageSettings(ctx, ViewerContext{}, "usuarios", map[string]any{}); err == nil {
		t.Fatal("expected error for anonymous viewer")
	}
	settings, err := store.PageSettings(ctx, ViewerContext{}, "usuarios")
	if err != nil || len(settings) != 0 {
		t.Fatalf("anonymous viewer should get empty settings, got %#v (%v)", settings, err)
	}
}

func TestServiceSavePageSettingsValidatesSchema(t *testing.T) {
	svc := NewService(Options{Validator: NewJSONSchemaValidator()})
	ctx := context.Background()
	viewer := ViewerContext{UserID: 7, Role: "admin"}

	if err := svc.SavePageSettings(ctx, viewer, "usuarios", map[string]any{"page_size": float64(0)}); err == nil {
		t.Fatal("expected schema violation for page_size 0")
	}
	if err := svc.SavePageSettings(ctx, viewer, "usuarios", map[string]any{"page_size": float64(25)}); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}
	if err := svc.SavePageSettings(ctx, viewer, "pagina-fantasma", map[string]any{}); err == nil {
		t.Fatal("expected error for unknown page")
	}

	settings, err := svc.PageSettings(ctx, viewer, "usuarios")
	if err != nil {
		t.Fatalf("page settings returned error: %v", err)
	}
	if settings["page_size"] != float64(25) {
		t.Fatalf("page_size = %v, want 25", settings["page_size"])
	}
}
