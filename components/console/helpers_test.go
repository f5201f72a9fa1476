package console

import (
	"context"
	"sync"
	"time"
)

// stubBackend implements every source interface with overridable hooks so a
// test can wire a Service against exactly the behavior under scrutiny.
type stubBackend struct {
	mu sync.Mutex

	users       []User
	total       int
	motorcycles []Motorcycle
	comments    []Comment
	leads       []Lead
	logs        []SystemLog
	faqs        []Faq

	listUsersErr   error
	listCommentErr error
	listMotoErr    error
	listLogsErr    error
	listFaqsErr    error
	listLeadsErr   error

	createUserErr    error
	updateUserErr    error
	deleteUserErr    error
	deleteCommentErr error
	createLeadErr    error
	createFaqErr     error
	updateFaqErr     error
	deleteFaqErr     error

	listUserQueries []ListQuery
	createdUsers    []UserDraft
	updatedPatches  []Patch
	deletedUsers    []int
	deletedComments []string
	createdLeads    []LeadDraft
	createdFaqs     []FaqDraft
	updatedFaqIDs   []int
	deletedFaqs     []int
}

func (b *stubBackend) ListUsers(_ context.Context, query ListQuery) (UserList, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listUserQueries = append(b.listUserQueries, query)
	if b.listUsersErr != nil {
		return UserList{}, b.listUsersErr
	}
	total := b.total
	if total == 0 {
		total = len(b.users)
	}
	return UserList{Items: b.users, Total: total}, nil
}

func (b *stubBackend) CreateUser(_ context.Context, draft UserDraft) (User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.createUserErr != nil {
		return User{}, b.createUserErr
	}
	b.createdUsers = append(b.createdUsers, draft)
	user := User{ID: len(b.users) + 100, Name: draft.Name, Email: draft.Email, Role: draft.Role}
	b.users = append(b.users, user)
	return user, nil
}

func (b *stubBackend) UpdateUser(_ context.Context, id int, patch Patch) (User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.updateUserErr != nil {
		return User{}, b.updateUserErr
	}
	b.updatedPatches = append(b.updatedPatches, patch)
	return User{ID: id}, nil
}

func (b *stubBackend) DeleteUser(_ context.Context, id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deleteUserErr != nil {
		return b.deleteUserErr
	}
	b.deletedUsers = append(b.deletedUsers, id)
	return nil
}

func (b *stubBackend) ListMotorcycles(context.Context) ([]Motorcycle, error) {
	if b.listMotoErr != nil {
		return nil, b.listMotoErr
	}
	return b.motorcycles, nil
}

func (b *stubBackend) ListComments(context.Context) ([]Comment, error) {
	if b.listCommentErr != nil {
		return nil, b.listCommentErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.comments, nil
}

func (b *stubBackend) DeleteComment(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deleteCommentErr != nil {
		return b.deleteCommentErr
	}
	b.deletedComments = append(b.deletedComments, id)
	return nil
}

func (b *stubBackend) ListLeads(context.Context, ListQuery) ([]Lead, error) {
	if b.listLeadsErr != nil {
		return nil, b.listLeadsErr
	}
	return b.leads, nil
}

func (b *stubBackend) CreateLead(_ context.Context, draft LeadDraft) (Lead, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.createLeadErr != nil {
		return Lead{}, b.createLeadErr
	}
	b.createdLeads = append(b.createdLeads, draft)
	lead := Lead{ID: len(b.leads) + 1, Name: draft.Name, Email: draft.Email, Message: draft.Message, Status: "Nuevo"}
	b.leads = append(b.leads, lead)
	return lead, nil
}

func (b *stubBackend) ListLogs(context.Context) ([]SystemLog, error) {
	if b.listLogsErr != nil {
		return nil, b.listLogsErr
	}
	return b.logs, nil
}

func (b *stubBackend) ListUserLogs(_ context.Context, userID int) ([]SystemLog, error) {
	if b.listLogsErr != nil {
		return nil, b.listLogsErr
	}
	var out []SystemLog
	for _, entry := range b.logs {
		if entry.UserID != nil && *entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (b *stubBackend) ListFaqs(context.Context) ([]Faq, error) {
	if b.listFaqsErr != nil {
		return nil, b.listFaqsErr
	}
	var out []Faq
	for _, f := range b.faqs {
		if f.Active {
			out = append(out, f)
		}
	}
	return out, nil
}

func (b *stubBackend) ListFaqsAdmin(context.Context, ListQuery) ([]Faq, error) {
	if b.listFaqsErr != nil {
		return nil, b.listFaqsErr
	}
	return b.faqs, nil
}

func (b *stubBackend) CreateFaq(_ context.Context, draft FaqDraft) (Faq, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.createFaqErr != nil {
		return Faq{}, b.createFaqErr
	}
	b.createdFaqs = append(b.createdFaqs, draft)
	faq := Faq{ID: len(b.faqs) + 1, Question: draft.Question, Answer: draft.Answer, Category: draft.Category, Order: draft.Order, Active: draft.Active}
	b.faqs = append(b.faqs, faq)
	return faq, nil
}

func (b *stubBackend) UpdateFaq(_ context.Context, id int, _ Patch) (Faq, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.updateFaqErr != nil {
		return Faq{}, b.updateFaqErr
	}
	b.updatedFaqIDs = append(b.updatedFaqIDs, id)
	return Faq{ID: id}, nil
}

func (b *stubBackend) DeleteFaq(_ context.Context, id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deleteFaqErr != nil {
		return b.deleteFaqErr
	}
	b.deletedFaqs = append(b.deletedFaqs, id)
	return nil
}

// denyConfirm rejects every destructive prompt.
type denyConfirm struct{}

func (denyConfirm) Confirm(context.Context, string) bool { return false }

func newTestService(backend *stubBackend, extra ...func(*Options)) (*Service, *CollectingNotifier) {
	notifier := &CollectingNotifier{}
	opts := Options{
		Users:       backend,
		Motorcycles: backend,
		Comments:    backend,
		Leads:       backend,
		Logs:        backend,
		Faqs:        backend,
		Notifier:    notifier,
	}
	for _, fn := range extra {
		fn(&opts)
	}
	return NewService(opts), notifier
}

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }
