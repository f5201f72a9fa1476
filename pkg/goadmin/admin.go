package goadmin

import (
	"context"
	"errors"
	"fmt"

	activitypkg "github.com/goliatone/go-catalog-admin/pkg/activity"
	consolepkg "github.com/goliatone/go-catalog-admin/pkg/console"
)

// MenuBuilder ensures console entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures console link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the console service + feature flags into an admin shell.
type Config struct {
	EnableConsole  bool
	MenuCode       string
	MenuBuilder    MenuBuilder
	Service        *consolepkg.Service
	ActivityHooks  activitypkg.Hooks
	ActivityConfig activitypkg.Config
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed console menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableConsole && cfg.Service == nil {
		return nil, errors.New("goadmin: console service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	return &Admin{cfg: cfg}, nil
}

// Console exposes the configured console service when enabled.
func (a *Admin) Console() *consolepkg.Service {
	if !a.cfg.EnableConsole {
		return nil
	}
	return a.cfg.Service
}

// Bootstrap seeds one menu entry per registered console page when console
// support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableConsole || a.cfg.MenuBuilder == nil {
		return nil
	}
	for _, def := range a.cfg.Service.Registry().Definitions() {
		item := MenuItem{
			Label:    def.Title,
			Route:    def.Path,
			Icon:     def.Icon,
			Position: def.Order,
		}
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			return fmt.Errorf("goadmin: seed menu item %s: %w", def.Code, err)
		}
	}
	return nil
}
