package console

import (
	"context"
	"strconv"
	"sync"
)

// UsersPage manages the user directory: a paged, searchable list plus the
// dual-mode create/edit modal.
type UsersPage struct {
	svc    *Service
	loader Loader

	mu      sync.Mutex
	users   []User
	total   int
	query   ListQuery
	loadErr error

	form        *FormModal[User, UserDraft]
	coordinator Coordinator[int, User]
}

// NewUsersPage mounts the user admin page.
func (s *Service) NewUsersPage() *UsersPage {
	return &UsersPage{
		svc: s,
		form: NewFormModal(
			func() UserDraft { return UserDraft{Role: "cliente"} },
			func(u User) UserDraft {
				return UserDraft{Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role}
			},
		),
		coordinator: Coordinator[int, User]{
			KeyOf:     func(u User) int { return u.ID },
			Notifier:  s.opts.Notifier,
			Confirmer: s.opts.Confirmer,
		},
		query: ListQuery{Page: 1, Limit: defaultPageLimit},
	}
}

// Load fetches the current page of users.
func (p *UsersPage) Load(ctx context.Context) error {
	src, err := p.svc.users()
	if err != nil {
		return p.fail(err)
	}
	p.mu.Lock()
	query := p.query
	p.mu.Unlock()

	var list UserList
	err = p.loader.Load(ctx, func(ctx context.Context) error {
		var err error
		list, err = src.ListUsers(ctx, query)
		return err
	})
	if err != nil {
		return p.fail(err)
	}
	p.mu.Lock()
	p.users = list.Items
	p.total = list.Total
	p.loadErr = nil
	p.mu.Unlock()
	p.svc.record(ctx, "console.users.load", map[string]any{"count": len(list.Items)})
	return nil
}

// SetSearch updates the server-side search term and reloads.
func (p *UsersPage) SetSearch(ctx context.Context, term string) error {
	p.mu.Lock()
	p.query.Search = term
	p.query.Page = 1
	p.mu.Unlock()
	return p.Load(ctx)
}

// SetPage moves to another page and reloads.
func (p *UsersPage) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	p.mu.Lock()
	p.query.Page = page
	p.mu.Unlock()
	return p.Load(ctx)
}

// Users returns the current page of the directory.
func (p *UsersPage) Users() []User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.users
}

// Total returns the backend-reported directory size.
func (p *UsersPage) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Form exposes the create/edit modal controller.
func (p *UsersPage) Form() *FormModal[User, UserDraft] { return p.form }

// Submit applies the modal draft: create when the modal is in create mode,
// partial update when editing. Success reloads the list and closes the
// modal; failure keeps the modal open with the draft intact.
func (p *UsersPage) Submit(ctx context.Context) error {
	src, err := p.svc.users()
	if err != nil {
		return err
	}
	draft := p.form.Draft()

	switch p.form.State() {
	case FormCreating:
		if err := draft.Validate(true); err != nil {
			p.svc.opts.Notifier.Notify(ctx, NotifyError, err.Error())
			p.form.SubmitFailed()
			return err
		}
		err = p.coordinator.Submit(ctx, func(ctx context.Context) error {
			created, err := src.CreateUser(ctx, draft)
			if err != nil {
				return err
			}
			p.svc.emitActivity(ctx, "create", "user", strconv.Itoa(created.ID))
			return nil
		}, p.Load, "Usuario creado")
	case FormEditing:
		current := p.form.Editing()
		patch := draft.Patch(*current)
		if len(patch) == 0 {
			p.form.SubmitSucceeded()
			return nil
		}
		id := current.ID
		err = p.coordinator.Submit(ctx, func(ctx context.Context) error {
			if _, err := src.UpdateUser(ctx, id, patch); err != nil {
				return err
			}
			p.svc.emitActivity(ctx, "update", "user", strconv.Itoa(id))
			return nil
		}, p.Load, "Usuario actualizado")
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

// Delete removes a user after confirmation and prunes the row locally.
func (p *UsersPage) Delete(ctx context.Context, id int) (bool, error) {
	src, err := p.svc.users()
	if err != nil {
		return false, err
	}
	p.mu.Lock()
	items := p.users
	p.mu.Unlock()

	pruned, deleted, err := p.coordinator.Delete(ctx, items, id, "¿Eliminar este usuario?", func(ctx context.Context) error {
		return src.DeleteUser(ctx, id)
	})
	if err != nil || !deleted {
		return deleted, err
	}
	p.mu.Lock()
	p.users = pruned
	p.mu.Unlock()
	p.svc.emitActivity(ctx, "delete", "user", strconv.Itoa(id))
	p.svc.record(ctx, "console.user.delete", map[string]any{"user_id": id})
	return true, nil
}

// Loading reports whether a load batch is in flight.
func (p *UsersPage) Loading() bool { return p.loader.Loading() }

// Err returns the load-boundary error, if the last load failed.
func (p *UsersPage) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

func (p *UsersPage) fail(err error) error {
	p.mu.Lock()
	p.loadErr = err
	p.mu.Unlock()
	return err
}

const defaultPageLimit = 20
