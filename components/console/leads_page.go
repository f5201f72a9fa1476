package console

import (
	"context"
	"strconv"
	"sync"
)

// LeadsPage lists CRM contact requests. Leads are created by the public
// contact form; the console surfaces them with status badges.
type LeadsPage struct {
	svc    *Service
	loader Loader

	mu      sync.Mutex
	leads   []Lead
	query   ListQuery
	loadErr error
}

// NewLeadsPage mounts the CRM page.
func (s *Service) NewLeadsPage() *LeadsPage {
	return &LeadsPage{svc: s, query: ListQuery{Page: 1, Limit: defaultPageLimit}}
}

// Load fetches the current page of leads.
func (p *LeadsPage) Load(ctx context.Context) error {
	src, err := p.svc.leads()
	if err != nil {
		return p.fail(err)
	}
	p.mu.Lock()
	query := p.query
	p.mu.Unlock()

	var leads []Lead
	err = p.loader.Load(ctx, func(ctx context.Context) error {
		var err error
		leads, err = src.ListLeads(ctx, query)
		return err
	})
	if err != nil {
		return p.fail(err)
	}
	p.mu.Lock()
	p.leads = leads
	p.loadErr = nil
	p.mu.Unlock()
	p.svc.record(ctx, "console.leads.load", map[string]any{"count": len(leads)})
	return nil
}

// SetPage moves to another page and reloads.
func (p *LeadsPage) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	p.mu.Lock()
	p.query.Page = page
	p.mu.Unlock()
	return p.Load(ctx)
}

// Leads returns the current page of leads.
func (p *LeadsPage) Leads() []Lead {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.leads
}

// SubmitLead creates a lead from the public contact form and reloads. The
// backend assigns the initial "Nuevo" status.
func (p *LeadsPage) SubmitLead(ctx context.Context, draft LeadDraft) error {
	src, err := p.svc.leads()
	if err != nil {
		return err
	}
	if err := draft.Validate(); err != nil {
		p.svc.opts.Notifier.Notify(ctx, NotifyError, err.Error())
		return err
	}
	coordinator := Coordinator[int, Lead]{
		KeyOf:    func(l Lead) int { return l.ID },
		Notifier: p.svc.opts.Notifier,
	}
	return coordinator.Submit(ctx, func(ctx context.Context) error {
		created, err := src.CreateLead(ctx, draft)
		if err != nil {
			return err
		}
		p.svc.emitActivity(ctx, "create", "lead", strconv.Itoa(created.ID))
		return nil
	}, p.Load, "Solicitud enviada")
}

// Loading reports whether a load batch is in flight.
func (p *LeadsPage) Loading() bool { return p.loader.Loading() }

// Err returns the load-boundary error, if the last load failed.
func (p *LeadsPage) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

func (p *LeadsPage) fail(err error) error {
	p.mu.Lock()
	p.loadErr = err
	p.mu.Unlock()
	return err
}
