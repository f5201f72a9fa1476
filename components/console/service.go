package console

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-catalog-admin/pkg/activity"
)

var (
	errMissingUserSource       = errors.New("console: user source not configured")
	errMissingCommentSource    = errors.New("console: comment source not configured")
	errMissingMotorcycleSource = errors.New("console: motorcycle source not configured")
	errMissingLeadSource       = errors.New("console: lead source not configured")
	errMissingLogSource        = errors.New("console: log source not configured")
	errMissingFaqSource        = errors.New("console: faq source not configured")
)

// Options configures the console Service. Every collaborator is provided via
// interface so applications can swap backends without importing adapter
// packages.
type Options struct {
	Users       UserSource
	Motorcycles MotorcycleSource
	Comments    CommentSource
	Leads       LeadSource
	Logs        LogSource
	Faqs        FaqSource
	Notifier    Notifier
	Confirmer   Confirmer
	Telemetry   Telemetry
	Activity    *activity.Emitter
	Registry    *NavRegistry
	Validator   SettingsValidator
	Preferences PreferenceStore
	// Denylist extends the built-in redaction denylist with
	// deployment-specific keys.
	Denylist []string
}

// Service owns the shared collaborators behind every console page.
type Service struct {
	opts Options
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) *Service {
	if opts.Notifier == nil {
		opts.Notifier = noopNotifier{}
	}
	if opts.Confirmer == nil {
		opts.Confirmer = alwaysConfirm{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Activity == nil {
		opts.Activity = activity.NewEmitter(nil, activity.Config{})
	}
	if opts.Registry == nil {
		opts.Registry = NewNavRegistry()
	}
	if opts.Validator == nil {
		opts.Validator = noopSettingsValidator{}
	}
	if opts.Preferences == nil {
		opts.Preferences = NewInMemoryPreferenceStore()
	}
	return &Service{opts: opts}
}

// Registry returns the navigation page registry.
func (s *Service) Registry() *NavRegistry { return s.opts.Registry }

// Navigation returns the ordered pages visible to a role.
func (s *Service) Navigation(role string) []PageDefinition {
	return s.opts.Registry.DefinitionsFor(role)
}

// ValidateSettings checks a settings payload against the page's schema.
func (s *Service) ValidateSettings(code string, settings map[string]any) error {
	def, ok := s.opts.Registry.Definition(code)
	if !ok {
		return fmt.Errorf("console: unknown page %q", code)
	}
	return s.opts.Validator.Validate(def, settings)
}

// Notifier returns the transient-notification sink pages report through.
func (s *Service) Notifier() Notifier { return s.opts.Notifier }

// Redact partitions an audit details payload using the configured denylist.
func (s *Service) Redact(details map[string]any) (DetailSummary, []DetailPair) {
	return RedactDetails(details, s.opts.Denylist...)
}

func (s *Service) users() (UserSource, error) {
	if s.opts.Users == nil {
		return nil, errMissingUserSource
	}
	return s.opts.Users, nil
}

func (s *Service) comments() (CommentSource, error) {
	if s.opts.Comments == nil {
		return nil, errMissingCommentSource
	}
	return s.opts.Comments, nil
}

func (s *Service) motorcycles() (MotorcycleSource, error) {
	if s.opts.Motorcycles == nil {
		return nil, errMissingMotorcycleSource
	}
	return s.opts.Motorcycles, nil
}

func (s *Service) leads() (LeadSource, error) {
	if s.opts.Leads == nil {
		return nil, errMissingLeadSource
	}
	return s.opts.Leads, nil
}

func (s *Service) logs() (LogSource, error) {
	if s.opts.Logs == nil {
		return nil, errMissingLogSource
	}
	return s.opts.Logs, nil
}

func (s *Service) faqs() (FaqSource, error) {
	if s.opts.Faqs == nil {
		return nil, errMissingFaqSource
	}
	return s.opts.Faqs, nil
}

func (s *Service) record(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

// emitActivity publishes an audit event for a console mutation. The actor is
// the signed-in viewer's session; emission failures are swallowed since the
// audit trail must never block the mutation it describes.
func (s *Service) emitActivity(ctx context.Context, verb, objectType, objectID string) {
	if s.opts.Activity == nil || !s.opts.Activity.Enabled() {
		return
	}
	event := activity.Event{
		Verb:       verb,
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    "console",
		OccurredAt: time.Now().UTC(),
	}
	if viewer, ok := ViewerFromContext(ctx); ok {
		event.ActorID = viewer.SessionID.String()
		event.Metadata = map[string]any{
			"usuario_id": viewer.UserID,
			"rol":        viewer.Role,
		}
	}
	_ = s.opts.Activity.Emit(ctx, event)
}
