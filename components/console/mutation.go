package console

import (
	"context"
	"fmt"
)

// ValidationError reports a required form field left empty. It is raised
// client-side, before any request leaves the console.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("console: field %q is required", e.Field)
}

// Coordinator reconciles a page-local collection after mutations. Deletes
// prune locally without a refetch; creates and updates trigger a full reload
// because server-assigned fields are unknown to the client draft. Failures
// surface through the notifier and leave local state untouched.
type Coordinator[K comparable, E any] struct {
	KeyOf     func(E) K
	Notifier  Notifier
	Confirmer Confirmer
}

// Delete runs the confirmation gate, invokes the backend delete, and prunes
// the item locally. Returns the (possibly unchanged) collection, whether the
// deletion was performed, and the backend error if any. Deleting an id
// already absent from the collection is a local no-op.
func (c *Coordinator[K, E]) Delete(ctx context.Context, items []E, id K, prompt string, del func(context.Context) error) ([]E, bool, error) {
	if c.Confirmer != nil && !c.Confirmer.Confirm(ctx, prompt) {
		return items, false, nil
	}
	if err := del(ctx); err != nil {
		c.notify(ctx, NotifyError, err.Error())
		return items, false, err
	}
	return PruneByKey(items, c.KeyOf, id), true, nil
}

// Submit performs a create or update followed by a full reload. When the
// backend call fails the reload is skipped so existing page data survives
// and the caller's form draft stays editable.
func (c *Coordinator[K, E]) Submit(ctx context.Context, call func(context.Context) error, reload func(context.Context) error, success string) error {
	if err := call(ctx); err != nil {
		c.notify(ctx, NotifyError, err.Error())
		return err
	}
	if reload != nil {
		if err := reload(ctx); err != nil {
			c.notify(ctx, NotifyError, err.Error())
			return err
		}
	}
	if success != "" {
		c.notify(ctx, NotifySuccess, success)
	}
	return nil
}

func (c *Coordinator[K, E]) notify(ctx context.Context, level NotifyLevel, message string) {
	if c.Notifier != nil {
		c.Notifier.Notify(ctx, level, message)
	}
}

// PruneByKey removes every entity carrying the key from the collection.
func PruneByKey[K comparable, E any](items []E, keyOf func(E) K, id K) []E {
	out := items[:0:0]
	for _, item := range items {
		if keyOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks the required user form fields. The password is only
// required for creation; on edit a blank password means "unchanged".
func (d UserDraft) Validate(creating bool) error {
	if d.Name == "" {
		return ValidationError{Field: "nombre"}
	}
	if d.Email == "" {
		return ValidationError{Field: "email"}
	}
	if d.Role == "" {
		return ValidationError{Field: "rol"}
	}
	if creating && d.Password == "" {
		return ValidationError{Field: "password"}
	}
	return nil
}

// Patch builds the partial update payload for an edited user. A field left
// blank in the form means "no change", never "clear this field"; unchanged
// values are omitted as well. Secrets follow the same rule.
func (d UserDraft) Patch(current User) Patch {
	patch := Patch{}
	putChanged(patch, "nombre", d.Name, current.Name)
	putChanged(patch, "email", d.Email, current.Email)
	putChanged(patch, "telefono", d.Phone, current.Phone)
	putChanged(patch, "rol", d.Role, current.Role)
	if d.Password != "" {
		patch["password"] = d.Password
	}
	return patch
}

// Payload builds the full create payload for a new user.
func (d UserDraft) Payload() Patch {
	payload := Patch{
		"nombre": d.Name,
		"email":  d.Email,
		"rol":    d.Role,
	}
	if d.Phone != "" {
		payload["telefono"] = d.Phone
	}
	if d.Password != "" {
		payload["password"] = d.Password
	}
	return payload
}

// Validate checks the required FAQ form fields.
func (d FaqDraft) Validate() error {
	if d.Question == "" {
		return ValidationError{Field: "pregunta"}
	}
	if d.Answer == "" {
		return ValidationError{Field: "respuesta"}
	}
	return nil
}

// Patch builds the partial update payload for an edited FAQ. Text fields
// follow blank-means-unchanged; order and active always travel when they
// differ from the current record.
func (d FaqDraft) Patch(current Faq) Patch {
	patch := Patch{}
	putChanged(patch, "pregunta", d.Question, current.Question)
	putChanged(patch, "respuesta", d.Answer, current.Answer)
	putChanged(patch, "categoria", d.Category, current.Category)
	if d.Order != current.Order {
		patch["orden"] = d.Order
	}
	if d.Active != current.Active {
		patch["activo"] = d.Active
	}
	return patch
}

// Validate checks the required lead form fields.
func (d LeadDraft) Validate() error {
	if d.Name == "" {
		return ValidationError{Field: "nombre"}
	}
	if d.Email == "" {
		return ValidationError{Field: "email"}
	}
	if d.Message == "" {
		return ValidationError{Field: "mensaje"}
	}
	return nil
}

func putChanged(patch Patch, key, draft, current string) {
	if draft != "" && draft != current {
		patch[key] = draft
	}
}
