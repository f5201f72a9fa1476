package console

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// FaqPage manages FAQs. The admin search term is delegated to the backend
// and triggers a reload; the category filter is a pure function over the
// already-fetched collection.
type FaqPage struct {
	svc    *Service
	loader Loader

	mu       sync.Mutex
	faqs     []Faq
	query    ListQuery
	category string
	loadErr  error

	form        *FormModal[Faq, FaqDraft]
	coordinator Coordinator[int, Faq]
}

// NewFaqPage mounts the FAQ admin page.
func (s *Service) NewFaqPage() *FaqPage {
	return &FaqPage{
		svc: s,
		form: NewFormModal(
			func() FaqDraft { return FaqDraft{Active: true} },
			func(f Faq) FaqDraft {
				return FaqDraft{Question: f.Question, Answer: f.Answer, Category: f.Category, Order: f.Order, Active: f.Active}
			},
		),
		coordinator: Coordinator[int, Faq]{
			KeyOf:     func(f Faq) int { return f.ID },
			Notifier:  s.opts.Notifier,
			Confirmer: s.opts.Confirmer,
		},
		query:    ListQuery{Page: 1, Limit: defaultPageLimit},
		category: "all",
	}
}

// Load fetches the admin FAQ list with the current search term.
func (p *FaqPage) Load(ctx context.Context) error {
	src, err := p.svc.faqs()
	if err != nil {
		return p.fail(err)
	}
	p.mu.Lock()
	query := p.query
	p.mu.Unlock()

	var faqs []Faq
	err = p.loader.Load(ctx, func(ctx context.Context) error {
		var err error
		faqs, err = src.ListFaqsAdmin(ctx, query)
		return err
	})
	if err != nil {
		return p.fail(err)
	}
	p.mu.Lock()
	p.faqs = faqs
	p.loadErr = nil
	p.mu.Unlock()
	p.svc.record(ctx, "console.faq.load", map[string]any{"count": len(faqs)})
	return nil
}

// SetSearch delegates filtering to the backend and reloads.
func (p *FaqPage) SetSearch(ctx context.Context, term string) error {
	p.mu.Lock()
	p.query.Search = term
	p.query.Page = 1
	p.mu.Unlock()
	return p.Load(ctx)
}

// SetCategory narrows the rendered list client-side; no reload.
func (p *FaqPage) SetCategory(category string) {
	p.mu.Lock()
	p.category = category
	p.mu.Unlock()
}

// Faqs returns the fetched list narrowed by the active category filter.
func (p *FaqPage) Faqs() []Faq {
	p.mu.Lock()
	faqs, category := p.faqs, p.category
	p.mu.Unlock()
	return FilterFaqsByCategory(faqs, category)
}

// Categories lists the distinct categories present in the fetched data.
func (p *FaqPage) Categories() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, f := range p.faqs {
		key := strings.ToLower(f.Category)
		if f.Category == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f.Category)
	}
	sort.Strings(out)
	return out
}

// Form exposes the create/edit modal controller.
func (p *FaqPage) Form() *FormModal[Faq, FaqDraft] { return p.form }

// Submit applies the modal draft and reloads on success.
func (p *FaqPage) Submit(ctx context.Context) error {
	src, err := p.svc.faqs()
	if err != nil {
		return err
	}
	draft := p.form.Draft()

	switch p.form.State() {
	case FormCreating:
		if err := draft.Validate(); err != nil {
			p.svc.opts.Notifier.Notify(ctx, NotifyError, err.Error())
			p.form.SubmitFailed()
			return err
		}
		err = p.coordinator.Submit(ctx, func(ctx context.Context) error {
			created, err := src.CreateFaq(ctx, draft)
			if err != nil {
				return err
			}
			p.svc.emitActivity(ctx, "create", "faq", strconv.Itoa(created.ID))
			return nil
		}, p.Load, "Pregunta creada")
	case FormEditing:
		current := p.form.Editing()
		patch := draft.Patch(*current)
		if len(patch) == 0 {
			p.form.SubmitSucceeded()
			return nil
		}
		id := current.ID
		err = p.coordinator.Submit(ctx, func(ctx context.Context) error {
			if _, err := src.UpdateFaq(ctx, id, patch); err != nil {
				return err
			}
			p.svc.emitActivity(ctx, "update", "faq", strconv.Itoa(id))
			return nil
		}, p.Load, "Pregunta actualizada")
	default:
		return nil
	}

	if err != nil {
		p.form.SubmitFailed()
		return err
	}
	p.form.SubmitSucceeded()
	return nil
}

// Delete removes a FAQ after confirmation and prunes the row locally.
func (p *FaqPage) Delete(ctx context.Context, id int) (bool, error) {
	src, err := p.svc.faqs()
	if err != nil {
		return false, err
	}
	p.mu.Lock()
	items := p.faqs
	p.mu.Unlock()

	pruned, deleted, err := p.coordinator.Delete(ctx, items, id, "¿Eliminar esta pregunta?", func(ctx context.Context) error {
		return src.DeleteFaq(ctx, id)
	})
	if err != nil || !deleted {
		return deleted, err
	}
	p.mu.Lock()
	p.faqs = pruned
	p.mu.Unlock()
	p.svc.emitActivity(ctx, "delete", "faq", strconv.Itoa(id))
	return true, nil
}

// PublicFaqs fetches the public, active-only FAQ view.
func (p *FaqPage) PublicFaqs(ctx context.Context) ([]Faq, error) {
	src, err := p.svc.faqs()
	if err != nil {
		return nil, err
	}
	return src.ListFaqs(ctx)
}

// Loading reports whether a load batch is in flight.
func (p *FaqPage) Loading() bool { return p.loader.Loading() }

// Err returns the load-boundary error, if the last load failed.
func (p *FaqPage) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

func (p *FaqPage) fail(err error) error {
	p.mu.Lock()
	p.loadErr = err
	p.mu.Unlock()
	return err
}
