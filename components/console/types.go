package console

import (
	"context"
	"time"
)

// UserSource exposes the user directory backing the console's user admin page.
// Implementations ensure each call is safe for concurrent use.
type UserSource interface {
	ListUsers(ctx context.Context, query ListQuery) (UserList, error)
	CreateUser(ctx context.Context, draft UserDraft) (User, error)
	UpdateUser(ctx context.Context, id int, patch Patch) (User, error)
	DeleteUser(ctx context.Context, id int) error
}

// MotorcycleSource lists catalog motorcycles for join resolution.
type MotorcycleSource interface {
	ListMotorcycles(ctx context.Context) ([]Motorcycle, error)
}

// CommentSource exposes the moderation queue.
type CommentSource interface {
	ListComments(ctx context.Context) ([]Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// LeadSource exposes CRM leads.
type LeadSource interface {
	ListLeads(ctx context.Context, query ListQuery) ([]Lead, error)
	CreateLead(ctx context.Context, draft LeadDraft) (Lead, error)
}

// LogSource exposes the audit log service.
type LogSource interface {
	ListLogs(ctx context.Context) ([]SystemLog, error)
	ListUserLogs(ctx context.Context, userID int) ([]SystemLog, error)
}

// FaqSource exposes public and administrative FAQ views.
type FaqSource interface {
	ListFaqs(ctx context.Context) ([]Faq, error)
	ListFaqsAdmin(ctx context.Context, query ListQuery) ([]Faq, error)
	CreateFaq(ctx context.Context, draft FaqDraft) (Faq, error)
	UpdateFaq(ctx context.Context, id int, patch Patch) (Faq, error)
	DeleteFaq(ctx context.Context, id int) error
}

// Notifier surfaces transient user-facing messages (toast-style).
type Notifier interface {
	Notify(ctx context.Context, level NotifyLevel, message string)
}

// Confirmer gates destructive actions behind an explicit confirmation step.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// NotifyLevel classifies transient notifications.
type NotifyLevel string

const (
	NotifyInfo    NotifyLevel = "info"
	NotifySuccess NotifyLevel = "success"
	NotifyError   NotifyLevel = "error"
)

// ListQuery carries pagination and search parameters understood by backends.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// Patch is a partial mutation payload. Only keys present in the map are sent
// to the backend; an absent key means "leave unchanged".
type Patch map[string]any

// User is a registered account (admin, empleado, or cliente).
type User struct {
	ID           int
	Name         string
	Email        string
	Phone        string
	Role         string
	RegisteredAt time.Time
}

// UserList is a page of users plus the backend-reported total.
type UserList struct {
	Items []User
	Total int
}

// UserDraft captures the user form fields. Password is only ever sent when
// non-empty; on edit a blank password means the credential is unchanged.
type UserDraft struct {
	Name     string
	Email    string
	Phone    string
	Role     string
	Password string
}

// Motorcycle is a catalog entry referenced by comments.
type Motorcycle struct {
	ID    int
	Brand string
	Model string
}

// Comment is a customer review of a motorcycle.
type Comment struct {
	ID           string
	UserID       int
	MotorcycleID int
	Text         string
	Rating       int
	Date         time.Time
}

// Lead is a CRM contact request.
type Lead struct {
	ID      int
	Name    string
	Email   string
	Phone   string
	Message string
	Status  string
	Date    time.Time
}

// LeadDraft captures the public contact form. The backend assigns the
// initial status.
type LeadDraft struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// SystemLog is an audit entry. Every field beyond the action label is
// optional, and Details is an arbitrary payload controlled by the producer.
type SystemLog struct {
	ID        string
	Action    string
	UserID    *int
	Timestamp *time.Time
	IP        string
	Details   map[string]any
}

// Faq is a frequently asked question managed through the admin page.
type Faq struct {
	ID        int
	Question  string
	Answer    string
	Category  string
	Order     int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FaqDraft captures the FAQ form fields.
type FaqDraft struct {
	Question string
	Answer   string
	Category string
	Order    int
	Active   bool
}
