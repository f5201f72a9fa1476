package commands

import (
	"context"
	"errors"

	console "github.com/goliatone/go-catalog-admin/components/console"
	gocommand "github.com/goliatone/go-command"
)

// CreateLeadInput carries the public contact form payload.
type CreateLeadInput struct {
	Draft console.LeadDraft `json:"draft"`
}

type leadCreator interface {
	CreateLead(ctx context.Context, draft console.LeadDraft) (console.Lead, error)
}

// CreateLeadCommand wraps lead creation for the public contact endpoint.
type CreateLeadCommand struct {
	source    leadCreator
	telemetry Telemetry
}

// NewCreateLeadCommand builds a command instance.
func NewCreateLeadCommand(source leadCreator, telemetry Telemetry) *CreateLeadCommand {
	return &CreateLeadCommand{source: source, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateLeadInput] = (*CreateLeadCommand)(nil)

// Execute validates the draft and creates the lead. The backend assigns the
// initial status.
func (c *CreateLeadCommand) Execute(ctx context.Context, msg CreateLeadInput) error {
	if c.source == nil {
		return errors.New("create lead command requires source")
	}
	if err := msg.Draft.Validate(); err != nil {
		return err
	}
	created, err := c.source.CreateLead(ctx, msg.Draft)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.lead.create", map[string]any{
		"lead_id": created.ID,
		"estado":  created.Status,
	})
	return nil
}
