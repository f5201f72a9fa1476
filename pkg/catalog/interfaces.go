package catalog

import (
	"context"

	console "github.com/goliatone/go-catalog-admin/components/console"
)

// UsersClient talks to the user directory service.
type UsersClient interface {
	ListUsers(ctx context.Context, query console.ListQuery) (console.UserList, error)
	CreateUser(ctx context.Context, draft console.UserDraft) (console.User, error)
	UpdateUser(ctx context.Context, id int, patch console.Patch) (console.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// MotorcyclesClient talks to the catalog service.
type MotorcyclesClient interface {
	ListMotorcycles(ctx context.Context) ([]console.Motorcycle, error)
}

// CommentsClient talks to the review/moderation service.
type CommentsClient interface {
	ListComments(ctx context.Context) ([]console.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// LeadsClient talks to the CRM service.
type LeadsClient interface {
	ListLeads(ctx context.Context, query console.ListQuery) ([]console.Lead, error)
	CreateLead(ctx context.Context, draft console.LeadDraft) (console.Lead, error)
}

// LogsClient talks to the system log service.
type LogsClient interface {
	ListLogs(ctx context.Context) ([]console.SystemLog, error)
	ListUserLogs(ctx context.Context, userID int) ([]console.SystemLog, error)
}

// FaqsClient talks to the FAQ service.
type FaqsClient interface {
	ListFaqs(ctx context.Context) ([]console.Faq, error)
	ListFaqsAdmin(ctx context.Context, query console.ListQuery) ([]console.Faq, error)
	CreateFaq(ctx context.Context, draft console.FaqDraft) (console.Faq, error)
	UpdateFaq(ctx context.Context, id int, patch console.Patch) (console.Faq, error)
	DeleteFaq(ctx context.Context, id int) error
}

// Client is a convenience union for backends exposing every catalog service
// behind one base URL.
type Client interface {
	UsersClient
	MotorcyclesClient
	CommentsClient
	LeadsClient
	LogsClient
	FaqsClient
}
