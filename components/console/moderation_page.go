package console

import (
	"context"
	"sync"
)

// ModerationPage aggregates the comment queue with its author and subject
// references. The page owns its collections exclusively for the duration of
// a view session: created on mount, replaced wholesale on reload, pruned on
// delete, discarded on unmount.
type ModerationPage struct {
	svc    *Service
	loader Loader

	mu          sync.Mutex
	comments    []Comment
	users       map[int]User
	motorcycles map[int]Motorcycle
	loadErr     error

	coordinator Coordinator[string, Comment]
}

// NewModerationPage mounts the comment moderation page.
func (s *Service) NewModerationPage() *ModerationPage {
	return &ModerationPage{
		svc: s,
		coordinator: Coordinator[string, Comment]{
			KeyOf:     func(c Comment) string { return c.ID },
			Notifier:  s.opts.Notifier,
			Confirmer: s.opts.Confirmer,
		},
	}
}

// Load fetches comments, users, and motorcycles concurrently. The load is
// all-or-nothing: if any fetch fails the page keeps none of the partial
// results and enters an error state with a retry affordance.
func (p *ModerationPage) Load(ctx context.Context) error {
	commentSrc, err := p.svc.comments()
	if err != nil {
		return p.fail(err)
	}
	userSrc, err := p.svc.users()
	if err != nil {
		return p.fail(err)
	}
	motoSrc, err := p.svc.motorcycles()
	if err != nil {
		return p.fail(err)
	}

	var (
		comments    []Comment
		users       []User
		motorcycles []Motorcycle
	)
	err = p.loader.Load(ctx,
		func(ctx context.Context) error {
			var err error
			comments, err = commentSrc.ListComments(ctx)
			return err
		},
		func(ctx context.Context) error {
			list, err := userSrc.ListUsers(ctx, ListQuery{Limit: lookupPageLimit})
			if err != nil {
				return err
			}
			users = list.Items
			return nil
		},
		func(ctx context.Context) error {
			var err error
			motorcycles, err = motoSrc.ListMotorcycles(ctx)
			return err
		},
	)
	if err != nil {
		return p.fail(err)
	}

	p.mu.Lock()
	p.comments = comments
	p.users = BuildIndex(users, func(u User) int { return u.ID })
	p.motorcycles = BuildIndex(motorcycles, func(m Motorcycle) int { return m.ID })
	p.loadErr = nil
	p.mu.Unlock()
	p.svc.record(ctx, "console.moderation.load", map[string]any{"comments": len(comments)})
	return nil
}

// Rows projects the current collections into display-ready composites.
func (p *ModerationPage) Rows() []ModerationRow {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ProjectComments(p.comments, p.users, p.motorcycles)
}

// DeleteComment gates on confirmation, deletes remotely, and prunes the
// comment locally without a refetch. Reports whether the deletion happened.
func (p *ModerationPage) DeleteComment(ctx context.Context, id string) (bool, error) {
	src, err := p.svc.comments()
	if err != nil {
		return false, err
	}
	p.mu.Lock()
	items := p.comments
	p.mu.Unlock()

	pruned, deleted, err := p.coordinator.Delete(ctx, items, id, "¿Eliminar este comentario?", func(ctx context.Context) error {
		return src.DeleteComment(ctx, id)
	})
	if err != nil || !deleted {
		return deleted, err
	}
	p.mu.Lock()
	p.comments = pruned
	p.mu.Unlock()
	p.svc.emitActivity(ctx, "delete", "comment", id)
	p.svc.record(ctx, "console.comment.delete", map[string]any{"comment_id": id})
	return true, nil
}

// Loading reports whether a load batch is in flight.
func (p *ModerationPage) Loading() bool { return p.loader.Loading() }

// Err returns the load-boundary error, if the last load failed.
func (p *ModerationPage) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

func (p *ModerationPage) fail(err error) error {
	p.mu.Lock()
	p.loadErr = err
	p.mu.Unlock()
	return err
}

// lookupPageLimit sizes reference fetches used only for join resolution.
const lookupPageLimit = 500
