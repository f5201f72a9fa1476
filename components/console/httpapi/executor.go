package httpapi

import (
	"context"
	"errors"

	"github.com/goliatone/go-catalog-admin/components/console/commands"
	gocommand "github.com/goliatone/go-command"
)

// Executor bundles the mutation surface transports invoke. Both the stdlib
// handlers and the go-router adapter dispatch through this interface.
type Executor interface {
	CreateUser(ctx context.Context, msg commands.CreateUserInput) error
	UpdateUser(ctx context.Context, msg commands.UpdateUserInput) error
	DeleteUser(ctx context.Context, msg commands.DeleteUserInput) error
	DeleteComment(ctx context.Context, msg commands.DeleteCommentInput) error
	CreateLead(ctx context.Context, msg commands.CreateLeadInput) error
	CreateFaq(ctx context.Context, msg commands.CreateFaqInput) error
	UpdateFaq(ctx context.Context, msg commands.UpdateFaqInput) error
	DeleteFaq(ctx context.Context, msg commands.DeleteFaqInput) error
}

// CommandExecutor routes executor calls to the configured commands.
type CommandExecutor struct {
	CreateUserCmd    gocommand.Commander[commands.CreateUserInput]
	UpdateUserCmd    gocommand.Commander[commands.UpdateUserInput]
	DeleteUserCmd    gocommand.Commander[commands.DeleteUserInput]
	DeleteCommentCmd gocommand.Commander[commands.DeleteCommentInput]
	CreateLeadCmd    gocommand.Commander[commands.CreateLeadInput]
	CreateFaqCmd     gocommand.Commander[commands.CreateFaqInput]
	UpdateFaqCmd     gocommand.Commander[commands.UpdateFaqInput]
	DeleteFaqCmd     gocommand.Commander[commands.DeleteFaqInput]
}

var _ Executor = (*CommandExecutor)(nil)

var errCommandNotConfigured = errors.New("httpapi: command not configured")

func (e *CommandExecutor) CreateUser(ctx context.Context, msg commands.CreateUserInput) error {
	return execute(ctx, e.CreateUserCmd, msg)
}

func (e *CommandExecutor) UpdateUser(ctx context.Context, msg commands.UpdateUserInput) error {
	return execute(ctx, e.UpdateUserCmd, msg)
}

func (e *CommandExecutor) DeleteUser(ctx context.Context, msg commands.DeleteUserInput) error {
	return execute(ctx, e.DeleteUserCmd, msg)
}

func (e *CommandExecutor) DeleteComment(ctx context.Context, msg commands.DeleteCommentInput) error {
	return execute(ctx, e.DeleteCommentCmd, msg)
}

func (e *CommandExecutor) CreateLead(ctx context.Context, msg commands.CreateLeadInput) error {
	return execute(ctx, e.CreateLeadCmd, msg)
}

func (e *CommandExecutor) CreateFaq(ctx context.Context, msg commands.CreateFaqInput) error {
	return execute(ctx, e.CreateFaqCmd, msg)
}

func (e *CommandExecutor) UpdateFaq(ctx context.Context, msg commands.UpdateFaqInput) error {
	return execute(ctx, e.UpdateFaqCmd, msg)
}

func (e *CommandExecutor) DeleteFaq(ctx context.Context, msg commands.DeleteFaqInput) error {
	return execute(ctx, e.DeleteFaqCmd, msg)
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return errCommandNotConfigured
	}
	return cmd.Execute(ctx, msg)
}
