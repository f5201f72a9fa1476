package console

import (
	"context"
	"errors"
	"testing"
	"time"
)

func auditFixture() *stubBackend {
	ts := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	return &stubBackend{
		logs: []SystemLog{
			{ID: "l1", Action: "login", UserID: intPtr(1), Timestamp: timePtr(ts), IP: "10.0.0.1"},
			{ID: "l2", Action: "backup", UserID: nil},
		},
		users: []User{{ID: 1, Name: "Ana"}},
	}
}

func TestAuditPageLoadJoinsAuthors(t *testing.T) {
	svc, _ := newTestService(auditFixture())
	page := svc.NewAuditPage()
	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	rows := page.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Author != "Ana" || rows[1].Author != "Sistema" {
		t.Fatalf("unexpected authors: %q %q", rows[0].Author, rows[1].Author)
	}
}

func TestAuditPageToleratesLookupFailure(t *testing.T) {
	backend := auditFixture()
	backend.listUsersErr = errors.New("user service down")
	svc, _ := newTestService(backend)
	page := svc.NewAuditPage()

	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("lookup failure must not fail the page, got %v", err)
	}
	rows := page.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected full log list, got %d rows", len(rows))
	}
	if rows[0].Author != "User #1" {
		t.Fatalf("expected degraded author placeholder, got %q", rows[0].Author)
	}
}

func TestAuditPagePrimaryFailureAbortsLoad(t *testing.T) {
	backend := auditFixture()
	backend.listLogsErr = errors.New("log service down")
	svc, _ := newTestService(backend)
	page := svc.NewAuditPage()

	if err := page.Load(context.Background()); err == nil {
		t.Fatal("expected load failure")
	}
	if page.Err() == nil {
		t.Fatal("expected page error state")
	}
	if len(page.Rows()) != 0 {
		t.Fatal("failed load must keep no rows")
	}
}

func TestAuditPageLoadForUser(t *testing.T) {
	svc, _ := newTestService(auditFixture())
	page := svc.NewAuditPage()
	if err := page.LoadForUser(context.Background(), 1); err != nil {
		t.Fatalf("load for user: %v", err)
	}
	rows := page.Rows()
	if len(rows) != 1 || rows[0].Log.ID != "l1" {
		t.Fatalf("expected only the user's entries, got %#v", rows)
	}
}

func TestAuditPageSearch(t *testing.T) {
	svc, _ := newTestService(auditFixture())
	page := svc.NewAuditPage()
	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := page.Search("ana"); len(got) != 1 || got[0].Log.ID != "l1" {
		t.Fatalf("expected author match, got %#v", got)
	}
	if got := page.Search("sistema"); len(got) != 1 || got[0].Log.ID != "l2" {
		t.Fatalf("expected anonymous match, got %#v", got)
	}
}

func TestAuditPageDetailsUsesServiceDenylist(t *testing.T) {
	svc, _ := newTestService(auditFixture(), func(o *Options) {
		o.Denylist = []string{"session_id"}
	})
	page := svc.NewAuditPage()
	entry := SystemLog{Details: map[string]any{
		"navegador":  "Firefox 128",
		"session_id": "s-1",
		"resultado":  "ok",
	}}
	summary, pairs := page.Details(entry)
	if summary.Browser != "Firefox 128" {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	if len(pairs) != 1 || pairs[0].Key != "resultado" {
		t.Fatalf("expected denylisted key dropped, got %#v", pairs)
	}
}
