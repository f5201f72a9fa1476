package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	console "github.com/goliatone/go-catalog-admin/components/console"
)

// HTTPConfig configures the HTTP catalog client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to the backend catalog services via their REST endpoints.
// It implements every per-service client interface in this package.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client capable of hitting the live backends.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("catalog: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// ListUsers implements UsersClient.
func (c *HTTPClient) ListUsers(ctx context.Context, query console.ListQuery) (console.UserList, error) {
	raw, err := c.do(ctx, http.MethodGet, "/users"+listParams(query), nil)
	if err != nil {
		return console.UserList{}, err
	}
	items, total := decodeItemsTotal[userDTO](raw)
	return console.UserList{Items: toUsers(items), Total: total}, nil
}

// CreateUser implements UsersClient.
func (c *HTTPClient) CreateUser(ctx context.Context, draft console.UserDraft) (console.User, error) {
	raw, err := c.do(ctx, http.MethodPost, "/users", draft.Payload())
	if err != nil {
		return console.User{}, err
	}
	var dto userDTO
	if err := decodeRecord(raw, &dto); err != nil {
		return console.User{}, &NetworkError{Op: "decode user", Err: err}
	}
	return dto.toUser(), nil
}

// UpdateUser implements UsersClient. Only the keys present in patch travel.
func (c *HTTPClient) UpdateUser(ctx context.Context, id int, patch console.Patch) (console.User, error) {
	raw, err := c.do(ctx, http.MethodPut, "/users/"+strconv.Itoa(id), patch)
	if err != nil {
		return console.User{}, err
	}
	var dto userDTO
	if err := decodeRecord(raw, &dto); err != nil {
		return console.User{}, &NetworkError{Op: "decode user", Err: err}
	}
	return dto.toUser(), nil
}

// DeleteUser implements UsersClient.
func (c *HTTPClient) DeleteUser(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/"+strconv.Itoa(id), nil)
	return err
}

// ListMotorcycles implements MotorcyclesClient.
func (c *HTTPClient) ListMotorcycles(ctx context.Context) ([]console.Motorcycle, error) {
	raw, err := c.do(ctx, http.MethodGet, "/motorcycles", nil)
	if err != nil {
		return nil, err
	}
	return toMotorcycles(decodeItems[motorcycleDTO](raw)), nil
}

// ListComments implements CommentsClient.
func (c *HTTPClient) ListComments(ctx context.Context) ([]console.Comment, error) {
	raw, err := c.do(ctx, http.MethodGet, "/comments", nil)
	if err != nil {
		return nil, err
	}
	return toComments(decodeItems[commentDTO](raw)), nil
}

// DeleteComment implements CommentsClient.
func (c *HTTPClient) DeleteComment(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/comments/"+url.PathEscape(id), nil)
	return err
}

// ListLeads implements LeadsClient. The endpoint answers with either a naked
// list or an {items:[...]} wrapper depending on backend version.
func (c *HTTPClient) ListLeads(ctx context.Context, query console.ListQuery) ([]console.Lead, error) {
	raw, err := c.do(ctx, http.MethodGet, "/crm"+listParams(query), nil)
	if err != nil {
		return nil, err
	}
	return toLeads(decodeItems[leadDTO](raw)), nil
}

// CreateLead implements LeadsClient. The backend assigns estado "Nuevo".
func (c *HTTPClient) CreateLead(ctx context.Context, draft console.LeadDraft) (console.Lead, error) {
	payload := map[string]any{
		"nombre":  draft.Name,
		"email":   draft.Email,
		"mensaje": draft.Message,
	}
	if draft.Phone != "" {
		payload["telefono"] = draft.Phone
	}
	raw, err := c.do(ctx, http.MethodPost, "/crm", payload)
	if err != nil {
		return console.Lead{}, err
	}
	var dto leadDTO
	if err := decodeRecord(raw, &dto); err != nil {
		return console.Lead{}, &NetworkError{Op: "decode lead", Err: err}
	}
	return dto.toLead(), nil
}

// ListLogs implements LogsClient.
func (c *HTTPClient) ListLogs(ctx context.Context) ([]console.SystemLog, error) {
	raw, err := c.do(ctx, http.MethodGet, "/system-logs", nil)
	if err != nil {
		return nil, err
	}
	return toLogs(decodeItems[logDTO](raw)), nil
}

// ListUserLogs implements LogsClient.
func (c *HTTPClient) ListUserLogs(ctx context.Context, userID int) ([]console.SystemLog, error) {
	raw, err := c.do(ctx, http.MethodGet, "/system-logs/user/"+strconv.Itoa(userID), nil)
	if err != nil {
		return nil, err
	}
	return toLogs(decodeItems[logDTO](raw)), nil
}

// ListFaqs implements FaqsClient (public, active-only view).
func (c *HTTPClient) ListFaqs(ctx context.Context) ([]console.Faq, error) {
	raw, err := c.do(ctx, http.MethodGet, "/faq", nil)
	if err != nil {
		return nil, err
	}
	return toFaqs(decodeItems[faqDTO](raw)), nil
}

// ListFaqsAdmin implements FaqsClient. Search is delegated to the backend.
func (c *HTTPClient) ListFaqsAdmin(ctx context.Context, query console.ListQuery) ([]console.Faq, error) {
	raw, err := c.do(ctx, http.MethodGet, "/faq/admin"+listParams(query), nil)
	if err != nil {
		return nil, err
	}
	return toFaqs(decodeItems[faqDTO](raw)), nil
}

// CreateFaq implements FaqsClient.
func (c *HTTPClient) CreateFaq(ctx context.Context, draft console.FaqDraft) (console.Faq, error) {
	payload := map[string]any{
		"pregunta":  draft.Question,
		"respuesta": draft.Answer,
		"orden":     draft.Order,
		"activo":    draft.Active,
	}
	if draft.Category != "" {
		payload["categoria"] = draft.Category
	}
	raw, err := c.do(ctx, http.MethodPost, "/faq", payload)
	if err != nil {
		return console.Faq{}, err
	}
	var dto faqDTO
	if err := decodeRecord(raw, &dto); err != nil {
		return console.Faq{}, &NetworkError{Op: "decode faq", Err: err}
	}
	return dto.toFaq(), nil
}

// UpdateFaq implements FaqsClient.
func (c *HTTPClient) UpdateFaq(ctx context.Context, id int, patch console.Patch) (console.Faq, error) {
	raw, err := c.do(ctx, http.MethodPut, "/faq/"+strconv.Itoa(id), patch)
	if err != nil {
		return console.Faq{}, err
	}
	var dto faqDTO
	if err := decodeRecord(raw, &dto); err != nil {
		return console.Faq{}, &NetworkError{Op: "decode faq", Err: err}
	}
	return dto.toFaq(), nil
}

// DeleteFaq implements FaqsClient.
func (c *HTTPClient) DeleteFaq(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/faq/"+strconv.Itoa(id), nil)
	return err
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &NetworkError{Op: "encode payload", Err: err}
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &NetworkError{Op: "build request", Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "http request", Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "read response", Err: err}
	}
	if resp.StatusCode >= 300 {
		return nil, &ServerError{Status: resp.StatusCode, Message: remoteMessage(data)}
	}
	return data, nil
}

// remoteMessage extracts the backend error message from an envelope body,
// falling back to the raw body text.
func remoteMessage(data []byte) string {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}
	return string(bytes.TrimSpace(data))
}

func listParams(query console.ListQuery) string {
	values := url.Values{}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
