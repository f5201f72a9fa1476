package console

// FormState identifies the modal lifecycle phase.
type FormState int

const (
	FormClosed FormState = iota
	FormCreating
	FormEditing
)

// FormModal drives the shared create/edit modal for a page. One instance per
// page; it owns the draft and guarantees the draft is fully re-initialized on
// every open, never carried over from a previous session.
type FormModal[E any, D any] struct {
	state    FormState
	entity   *E
	draft    D
	defaults func() D
	seed     func(E) D
}

// NewFormModal builds a closed modal. defaults produces an empty draft for
// create mode; seed derives the initial draft from the entity being edited.
func NewFormModal[E any, D any](defaults func() D, seed func(E) D) *FormModal[E, D] {
	m := &FormModal[E, D]{defaults: defaults, seed: seed}
	m.reset()
	return m
}

// State returns the current lifecycle phase.
func (m *FormModal[E, D]) State() FormState { return m.state }

// Draft returns the working copy bound to the form fields.
func (m *FormModal[E, D]) Draft() D { return m.draft }

// SetDraft replaces the working copy after user edits.
func (m *FormModal[E, D]) SetDraft(draft D) { m.draft = draft }

// Editing returns the entity under edit, or nil in create mode.
func (m *FormModal[E, D]) Editing() *E { return m.entity }

// OpenCreate transitions Closed -> Creating with a fresh default draft.
func (m *FormModal[E, D]) OpenCreate() {
	m.entity = nil
	m.draft = m.defaults()
	m.state = FormCreating
}

// OpenEdit transitions Closed -> Editing with a draft seeded from entity.
func (m *FormModal[E, D]) OpenEdit(entity E) {
	m.entity = &entity
	m.draft = m.seed(entity)
	m.state = FormEditing
}

// Cancel discards the draft and closes the modal.
func (m *FormModal[E, D]) Cancel() { m.reset() }

// SubmitSucceeded closes the modal after a successful create or update.
func (m *FormModal[E, D]) SubmitSucceeded() { m.reset() }

// SubmitFailed keeps the modal open with the draft intact so the user can
// correct the input and resubmit.
func (m *FormModal[E, D]) SubmitFailed() {}

func (m *FormModal[E, D]) reset() {
	m.entity = nil
	m.draft = m.defaults()
	m.state = FormClosed
}
