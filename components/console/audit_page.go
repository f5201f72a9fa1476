package console

import (
	"context"
	"sync"
)

// AuditPage renders the system log with authors joined in. The log fetch is
// the page's primary source; the author lookup is partial-tolerant, so a
// failing user service degrades every author to a placeholder instead of
// taking the page down.
type AuditPage struct {
	svc    *Service
	loader Loader

	mu      sync.Mutex
	logs    []SystemLog
	users   map[int]User
	loadErr error
}

// NewAuditPage mounts the audit log page.
func (s *Service) NewAuditPage() *AuditPage {
	return &AuditPage{svc: s}
}

// Load fetches logs and the author lookup concurrently. Only a primary
// (log) failure aborts the page.
func (p *AuditPage) Load(ctx context.Context) error {
	return p.load(ctx, func(ctx context.Context, src LogSource) ([]SystemLog, error) {
		return src.ListLogs(ctx)
	})
}

// LoadForUser fetches the log history of a single user.
func (p *AuditPage) LoadForUser(ctx context.Context, userID int) error {
	return p.load(ctx, func(ctx context.Context, src LogSource) ([]SystemLog, error) {
		return src.ListUserLogs(ctx, userID)
	})
}

func (p *AuditPage) load(ctx context.Context, fetch func(context.Context, LogSource) ([]SystemLog, error)) error {
	logSrc, err := p.svc.logs()
	if err != nil {
		return p.fail(err)
	}
	userSrc, err := p.svc.users()
	if err != nil {
		return p.fail(err)
	}

	var (
		logs  []SystemLog
		users []User
	)
	err = p.loader.Load(ctx,
		func(ctx context.Context) error {
			var err error
			logs, err = fetch(ctx, logSrc)
			return err
		},
		Guarded(func(ctx context.Context) error {
			list, err := userSrc.ListUsers(ctx, ListQuery{Limit: lookupPageLimit})
			if err != nil {
				return err
			}
			users = list.Items
			return nil
		}, func(err error) {
			users = nil
			p.svc.record(ctx, "console.audit.lookup_degraded", map[string]any{"error": err.Error()})
		}),
	)
	if err != nil {
		return p.fail(err)
	}

	p.mu.Lock()
	p.logs = logs
	p.users = BuildIndex(users, func(u User) int { return u.ID })
	p.loadErr = nil
	p.mu.Unlock()
	p.svc.record(ctx, "console.audit.load", map[string]any{"entries": len(logs)})
	return nil
}

// Rows projects the log entries with authors resolved.
func (p *AuditPage) Rows() []AuditRow {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ProjectLogs(p.logs, p.users)
}

// Search filters the joined rows client-side.
func (p *AuditPage) Search(query string) []AuditRow {
	return SearchAuditRows(p.Rows(), query)
}

// Details redacts an entry's payload for display.
func (p *AuditPage) Details(entry SystemLog) (DetailSummary, []DetailPair) {
	return p.svc.Redact(entry.Details)
}

// Loading reports whether a load batch is in flight.
func (p *AuditPage) Loading() bool { return p.loader.Loading() }

// Err returns the load-boundary error, if the last load failed.
func (p *AuditPage) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

func (p *AuditPage) fail(err error) error {
	p.mu.Lock()
	p.loadErr = err
	p.mu.Unlock()
	return err
}
