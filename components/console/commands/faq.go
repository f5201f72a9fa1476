package commands

import (
	"context"
	"errors"

	console "github.com/goliatone/go-catalog-admin/components/console"
	gocommand "github.com/goliatone/go-command"
)

// CreateFaqInput carries the FAQ form payload.
type CreateFaqInput struct {
	Draft console.FaqDraft `json:"draft"`
}

type faqCreator interface {
	CreateFaq(ctx context.Context, draft console.FaqDraft) (console.Faq, error)
}

// CreateFaqCommand wraps FAQ creation.
type CreateFaqCommand struct {
	source    faqCreator
	telemetry Telemetry
}

// NewCreateFaqCommand builds a command instance.
func NewCreateFaqCommand(source faqCreator, telemetry Telemetry) *CreateFaqCommand {
	return &CreateFaqCommand{source: source, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateFaqInput] = (*CreateFaqCommand)(nil)

// Execute validates the draft and creates the FAQ.
func (c *CreateFaqCommand) Execute(ctx context.Context, msg CreateFaqInput) error {
	if c.source == nil {
		return errors.New("create faq command requires source")
	}
	if err := msg.Draft.Validate(); err != nil {
		return err
	}
	created, err := c.source.CreateFaq(ctx, msg.Draft)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.faq.create", map[string]any{"faq_id": created.ID})
	return nil
}

// UpdateFaqInput identifies the FAQ and the fields that changed.
type UpdateFaqInput struct {
	FaqID int           `json:"faq_id"`
	Patch console.Patch `json:"patch"`
}

type faqUpdater interface {
	UpdateFaq(ctx context.Context, id int, patch console.Patch) (console.Faq, error)
}

// UpdateFaqCommand wraps partial FAQ updates.
type UpdateFaqCommand struct {
	source    faqUpdater
	telemetry Telemetry
}

// NewUpdateFaqCommand builds a command instance.
func NewUpdateFaqCommand(source faqUpdater, telemetry Telemetry) *UpdateFaqCommand {
	return &UpdateFaqCommand{source: source, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateFaqInput] = (*UpdateFaqCommand)(nil)

// Execute applies the patch. An empty patch is a no-op.
func (c *UpdateFaqCommand) Execute(ctx context.Context, msg UpdateFaqInput) error {
	if c.source == nil {
		return errors.New("update faq command requires source")
	}
	if len(msg.Patch) == 0 {
		return nil
	}
	if _, err := c.source.UpdateFaq(ctx, msg.FaqID, msg.Patch); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.faq.update", map[string]any{"faq_id": msg.FaqID})
	return nil
}

// DeleteFaqInput identifies the FAQ to remove.
type DeleteFaqInput struct {
	FaqID int `json:"faq_id"`
}

type faqDeleter interface {
	DeleteFaq(ctx context.Context, id int) error
}

// DeleteFaqCommand wraps FAQ deletion.
type DeleteFaqCommand struct {
	source    faqDeleter
	telemetry Telemetry
}

// NewDeleteFaqCommand builds a command instance.
func NewDeleteFaqCommand(source faqDeleter, telemetry Telemetry) *DeleteFaqCommand {
	return &DeleteFaqCommand{source: source, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteFaqInput] = (*DeleteFaqCommand)(nil)

// Execute removes the FAQ.
func (c *DeleteFaqCommand) Execute(ctx context.Context, msg DeleteFaqInput) error {
	if c.source == nil {
		return errors.New("delete faq command requires source")
	}
	if err := c.source.DeleteFaq(ctx, msg.FaqID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.faq.delete", map[string]any{"faq_id": msg.FaqID})
	return nil
}
