package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// DeleteCommentInput identifies the comment to remove from the moderation
// queue.
type DeleteCommentInput struct {
	CommentID string `json:"comment_id"`
}

type commentDeleter interface {
	DeleteComment(ctx context.Context, id string) error
}

// DeleteCommentCommand wraps comment deletion and records telemetry for
// moderation auditing.
type DeleteCommentCommand struct {
	source    commentDeleter
	telemetry Telemetry
}

// NewDeleteCommentCommand builds a command instance.
func NewDeleteCommentCommand(source commentDeleter, telemetry Telemetry) *DeleteCommentCommand {
	return &DeleteCommentCommand{source: source, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteCommentInput] = (*DeleteCommentCommand)(nil)

// Execute removes the comment.
func (c *DeleteCommentCommand) Execute(ctx context.Context, msg DeleteCommentInput) error {
	if c.source == nil {
		return errors.New("delete comment command requires source")
	}
	if msg.CommentID == "" {
		return errors.New("delete comment command requires a comment id")
	}
	if err := c.source.DeleteComment(ctx, msg.CommentID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.comment.delete", map[string]any{"comment_id": msg.CommentID})
	return nil
}
