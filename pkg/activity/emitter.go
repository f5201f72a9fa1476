package activity

import (
	"context"
	"time"
)

// DefaultChannel is applied to events that do not declare one.
const DefaultChannel = "console"

// Config toggles activity emission.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter fans console audit events out to the registered hooks. A disabled
// or hook-less emitter swallows events silently so callers never branch.
type Emitter struct {
	hooks   Hooks
	cfg     Config
	nowFunc func() time.Time
}

// NewEmitter builds an emitter. Without hooks the emitter reports disabled.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	return &Emitter{hooks: hooks, cfg: cfg, nowFunc: time.Now}
}

// Enabled reports whether emitted events reach any hook.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit normalizes and delivers the event. Invalid events (no verb) are
// dropped; hook failures abort delivery to later hooks.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.cfg.Channel
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = e.nowFunc().UTC()
	}
	return e.hooks.Notify(ctx, evt)
}
