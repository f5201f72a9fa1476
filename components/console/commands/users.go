package commands

import (
	"context"
	"errors"

	console "github.com/goliatone/go-catalog-admin/components/console"
	gocommand "github.com/goliatone/go-command"
)

// CreateUserInput carries the validated user form payload.
type CreateUserInput struct {
	Draft console.UserDraft `json:"draft"`
}

type userCreator interface {
	CreateUser(ctx context.Context, draft console.UserDraft) (console.User, error)
}

// CreateUserCommand wraps user creation so transports can invoke it without
// linking directly against the backend client.
type CreateUserCommand struct {
	source    userCreator
	telemetry Telemetry
}

// NewCreateUserCommand builds a command instance.
func NewCreateUserCommand(source userCreator, telemetry Telemetry) *CreateUserCommand {
	return &CreateUserCommand{source: source, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateUserInput] = (*CreateUserCommand)(nil)

// Execute validates the draft and creates the user.
func (c *CreateUserCommand) Execute(ctx context.Context, msg CreateUserInput) error {
	if c.source == nil {
		return errors.New("create user command requires source")
	}
	if err := msg.Draft.Validate(true); err != nil {
		return err
	}
	created, err := c.source.CreateUser(ctx, msg.Draft)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.user.create", map[string]any{
		"user_id": created.ID,
		"rol":     created.Role,
	})
	return nil
}

// UpdateUserInput identifies the user and the fields that changed.
type UpdateUserInput struct {
	UserID int           `json:"user_id"`
	Patch  console.Patch `json:"patch"`
}

type userUpdater interface {
	UpdateUser(ctx context.Context, id int, patch console.Patch) (console.User, error)
}

// UpdateUserCommand wraps partial user updates.
type UpdateUserCommand struct {
	source    userUpdater
	telemetry Telemetry
}

// NewUpdateUserCommand builds a command instance.
func NewUpdateUserCommand(source userUpdater, telemetry Telemetry) *UpdateUserCommand {
	return &UpdateUserCommand{source: source, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateUserInput] = (*UpdateUserCommand)(nil)

// Execute applies the patch. An empty patch is a no-op, never a clear.
func (c *UpdateUserCommand) Execute(ctx context.Context, msg UpdateUserInput) error {
	if c.source == nil {
		return errors.New("update user command requires source")
	}
	if len(msg.Patch) == 0 {
		return nil
	}
	if _, err := c.source.UpdateUser(ctx, msg.UserID, msg.Patch); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.user.update", map[string]any{
		"user_id": msg.UserID,
		"fields":  len(msg.Patch),
	})
	return nil
}

// DeleteUserInput identifies the user to remove.
type DeleteUserInput struct {
	UserID int `json:"user_id"`
}

type userDeleter interface {
	DeleteUser(ctx context.Context, id int) error
}

// DeleteUserCommand wraps user deletion.
type DeleteUserCommand struct {
	source    userDeleter
	telemetry Telemetry
}

// NewDeleteUserCommand builds a command instance.
func NewDeleteUserCommand(source userDeleter, telemetry Telemetry) *DeleteUserCommand {
	return &DeleteUserCommand{source: source, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteUserInput] = (*DeleteUserCommand)(nil)

// Execute removes the user.
func (c *DeleteUserCommand) Execute(ctx context.Context, msg DeleteUserInput) error {
	if c.source == nil {
		return errors.New("delete user command requires source")
	}
	if err := c.source.DeleteUser(ctx, msg.UserID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.user.delete", map[string]any{"user_id": msg.UserID})
	return nil
}
