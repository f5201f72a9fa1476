package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	console "github.com/goliatone/go-catalog-admin/components/console"
)

// MockData seeds deterministic backend state for tests or local demos.
type MockData struct {
	Users       []console.User
	Motorcycles []console.Motorcycle
	Comments    []console.Comment
	Leads       []console.Lead
	Logs        []console.SystemLog
	Faqs        []console.Faq
}

// MockClient implements Client against in-memory fixtures, with working
// mutations so examples and page tests exercise real reconciliation flows.
type MockClient struct {
	mu   sync.RWMutex
	data MockData
}

var _ Client = (*MockClient)(nil)

// NewMockClient builds a mock catalog client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// ListUsers applies search and pagination the way the user service does.
func (c *MockClient) ListUsers(_ context.Context, query console.ListQuery) (console.UserList, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var matched []console.User
	for _, user := range c.data.Users {
		if query.Search != "" &&
			!strings.Contains(strings.ToLower(user.Name), strings.ToLower(query.Search)) &&
			!strings.Contains(strings.ToLower(user.Email), strings.ToLower(query.Search)) {
			continue
		}
		matched = append(matched, user)
	}
	total := len(matched)
	if query.Limit > 0 && query.Page > 0 {
		start := (query.Page - 1) * query.Limit
		if start >= len(matched) {
			matched = nil
		} else {
			end := start + query.Limit
			if end > len(matched) {
				end = len(matched)
			}
			matched = matched[start:end]
		}
	}
	return console.UserList{Items: append([]console.User(nil), matched...), Total: total}, nil
}

// CreateUser assigns the next id, mirroring server-side fields the draft
// does not know.
func (c *MockClient) CreateUser(_ context.Context, draft console.UserDraft) (console.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	user := console.User{
		ID:           c.nextUserID(),
		Name:         draft.Name,
		Email:        draft.Email,
		Phone:        draft.Phone,
		Role:         draft.Role,
		RegisteredAt: time.Now().UTC(),
	}
	c.data.Users = append(c.data.Users, user)
	return user, nil
}

// UpdateUser merges only the keys present in the patch.
func (c *MockClient) UpdateUser(_ context.Context, id int, patch console.Patch) (console.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, user := range c.data.Users {
		if user.ID != id {
			continue
		}
		if v, ok := patch["nombre"].(string); ok {
			user.Name = v
		}
		if v, ok := patch["email"].(string); ok {
			user.Email = v
		}
		if v, ok := patch["telefono"].(string); ok {
			user.Phone = v
		}
		if v, ok := patch["rol"].(string); ok {
			user.Role = v
		}
		c.data.Users[i] = user
		return user, nil
	}
	return console.User{}, &ServerError{Status: 404, Message: "usuario no encontrado"}
}

// DeleteUser removes the user or reports 404.
func (c *MockClient) DeleteUser(_ context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, user := range c.data.Users {
		if user.ID == id {
			c.data.Users = append(c.data.Users[:i], c.data.Users[i+1:]...)
			return nil
		}
	}
	return &ServerError{Status: 404, Message: "usuario no encontrado"}
}

// ListMotorcycles returns the catalog fixtures.
func (c *MockClient) ListMotorcycles(context.Context) ([]console.Motorcycle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]console.Motorcycle(nil), c.data.Motorcycles...), nil
}

// ListComments returns the moderation queue fixtures.
func (c *MockClient) ListComments(context.Context) ([]console.Comment, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]console.Comment(nil), c.data.Comments...), nil
}

// DeleteComment removes the comment or reports 404.
func (c *MockClient) DeleteComment(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, comment := range c.data.Comments {
		if comment.ID == id {
			c.data.Comments = append(c.data.Comments[:i], c.data.Comments[i+1:]...)
			return nil
		}
	}
	return &ServerError{Status: 404, Message: "comentario no encontrado"}
}

// ListLeads returns the CRM fixtures.
func (c *MockClient) ListLeads(_ context.Context, _ console.ListQuery) ([]console.Lead, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]console.Lead(nil), c.data.Leads...), nil
}

// CreateLead assigns the next id and the server-default status.
func (c *MockClient) CreateLead(_ context.Context, draft console.LeadDraft) (console.Lead, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	lead := console.Lead{
		ID:      c.nextLeadID(),
		Name:    draft.Name,
		Email:   draft.Email,
		Phone:   draft.Phone,
		Message: draft.Message,
		Status:  "Nuevo",
		Date:    time.Now().UTC(),
	}
	c.data.Leads = append(c.data.Leads, lead)
	return lead, nil
}

// ListLogs returns the audit fixtures.
func (c *MockClient) ListLogs(context.Context) ([]console.SystemLog, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]console.SystemLog(nil), c.data.Logs...), nil
}

// ListUserLogs narrows the audit fixtures to one author.
func (c *MockClient) ListUserLogs(_ context.Context, userID int) ([]console.SystemLog, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []console.SystemLog
	for _, entry := range c.data.Logs {
		if entry.UserID != nil && *entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

// ListFaqs returns the active FAQs only, like the public endpoint.
func (c *MockClient) ListFaqs(context.Context) ([]console.Faq, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []console.Faq
	for _, faq := range c.data.Faqs {
		if faq.Active {
			out = append(out, faq)
		}
	}
	return out, nil
}

// ListFaqsAdmin applies the delegated search over questions and answers.
func (c *MockClient) ListFaqsAdmin(_ context.Context, query console.ListQuery) ([]console.Faq, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []console.Faq
	for _, faq := range c.data.Faqs {
		if query.Search != "" &&
			!strings.Contains(strings.ToLower(faq.Question), strings.ToLower(query.Search)) &&
			!strings.Contains(strings.ToLower(faq.Answer), strings.ToLower(query.Search)) {
			continue
		}
		out = append(out, faq)
	}
	return out, nil
}

// CreateFaq assigns the next id and server timestamps.
func (c *MockClient) CreateFaq(_ context.Context, draft console.FaqDraft) (console.Faq, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now().UTC()
	faq := console.Faq{
		ID:        c.nextFaqID(),
		Question:  draft.Question,
		Answer:    draft.Answer,
		Category:  draft.Category,
		Order:     draft.Order,
		Active:    draft.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.data.Faqs = append(c.data.Faqs, faq)
	return faq, nil
}

// UpdateFaq merges only the keys present in the patch.
func (c *MockClient) UpdateFaq(_ context.Context, id int, patch console.Patch) (console.Faq, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, faq := range c.data.Faqs {
		if faq.ID != id {
			continue
		}
		if v, ok := patch["pregunta"].(string); ok {
			faq.Question = v
		}
		if v, ok := patch["respuesta"].(string); ok {
			faq.Answer = v
		}
		if v, ok := patch["categoria"].(string); ok {
			faq.Category = v
		}
		if v, ok := patch["orden"].(int); ok {
			faq.Order = v
		}
		if v, ok := patch["activo"].(bool); ok {
			faq.Active = v
		}
		faq.UpdatedAt = time.Now().UTC()
		c.data.Faqs[i] = faq
		return faq, nil
	}
	return console.Faq{}, &ServerError{Status: 404, Message: "pregunta no encontrada"}
}

// DeleteFaq removes the FAQ or reports 404.
func (c *MockClient) DeleteFaq(_ context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, faq := range c.data.Faqs {
		if faq.ID == id {
			c.data.Faqs = append(c.data.Faqs[:i], c.data.Faqs[i+1:]...)
			return nil
		}
	}
	return &ServerError{Status: 404, Message: "pregunta no encontrada"}
}

func (c *MockClient) nextUserID() int {
	max := 0
	for _, user := range c.data.Users {
		if user.ID > max {
			max = user.ID
		}
	}
	return max + 1
}

func (c *MockClient) nextLeadID() int {
	max := 0
	for _, lead := range c.data.Leads {
		if lead.ID > max {
			max = lead.ID
		}
	}
	return max + 1
}

func (c *MockClient) nextFaqID() int {
	max := 0
	for _, faq := range c.data.Faqs {
		if faq.ID > max {
			max = faq.ID
		}
	}
	return max + 1
}
