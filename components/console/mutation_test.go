package console

import (
	"context"
	"errors"
	"testing"
)

func TestCoordinatorDeletePrunesExactlyOne(t *testing.T) {
	coordinator := Coordinator[string, Comment]{KeyOf: func(c Comment) string { return c.ID }}
	items := []Comment{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	pruned, deleted, err := coordinator.Delete(context.Background(), items, "b", "", func(context.Context) error { return nil })
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	if len(pruned) != 2 || pruned[0].ID != "a" || pruned[1].ID != "c" {
		t.Fatalf("unexpected collection: %#v", pruned)
	}

	// Repeating the same delete is a local no-op once the backend accepts it.
	again, deleted, err := coordinator.Delete(context.Background(), pruned, "b", "", func(context.Context) error { return nil })
	if err != nil || !deleted {
		t.Fatalf("repeat delete: deleted=%v err=%v", deleted, err)
	}
	if len(again) != 2 {
		t.Fatalf("repeat delete changed the collection: %#v", again)
	}
}

func TestCoordinatorDeleteDeclinedConfirmation(t *testing.T) {
	called := false
	coordinator := Coordinator[string, Comment]{
		KeyOf:     func(c Comment) string { return c.ID },
		Confirmer: denyConfirm{},
	}
	items := []Comment{{ID: "a"}}
	pruned, deleted, err := coordinator.Delete(context.Background(), items, "a", "¿Eliminar?", func(context.Context) error {
		called = true
		return nil
	})
	if err != nil || deleted {
		t.Fatalf("declined delete: deleted=%v err=%v", deleted, err)
	}
	if called {
		t.Fatal("backend delete must not run without confirmation")
	}
	if len(pruned) != 1 {
		t.Fatalf("declined delete changed the collection: %#v", pruned)
	}
}

func TestCoordinatorDeleteBackendFailureKeepsCollection(t *testing.T) {
	notifier := &CollectingNotifier{}
	coordinator := Coordinator[string, Comment]{
		KeyOf:    func(c Comment) string { return c.ID },
		Notifier: notifier,
	}
	items := []Comment{{ID: "a"}}
	boom := errors.New("backend down")
	pruned, deleted, err := coordinator.Delete(context.Background(), items, "a", "", func(context.Context) error { return boom })
	if !errors.Is(err, boom) || deleted {
		t.Fatalf("expected backend error, got deleted=%v err=%v", deleted, err)
	}
	if len(pruned) != 1 {
		t.Fatal("failed delete must leave the collection untouched")
	}
	msgs := notifier.Drain()
	if len(msgs) != 1 || msgs[0].Level != NotifyError {
		t.Fatalf("expected error notification, got %#v", msgs)
	}
}

func TestCoordinatorSubmitFailureSkipsReload(t *testing.T) {
	coordinator := Coordinator[int, User]{KeyOf: func(u User) int { return u.ID }}
	reloaded := false
	err := coordinator.Submit(context.Background(),
		func(context.Context) error { return errors.New("conflict") },
		func(context.Context) error { reloaded = true; return nil },
		"nunca")
	if err == nil {
		t.Fatal("expected submit error")
	}
	if reloaded {
		t.Fatal("failed submit must not reload")
	}
}

func TestCoordinatorSubmitSuccessReloadsAndNotifies(t *testing.T) {
	notifier := &CollectingNotifier{}
	coordinator := Coordinator[int, User]{KeyOf: func(u User) int { return u.ID }, Notifier: notifier}
	reloaded := false
	err := coordinator.Submit(context.Background(),
		func(context.Context) error { return nil },
		func(context.Context) error { reloaded = true; return nil },
		"Usuario creado")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !reloaded {
		t.Fatal("expected reload after successful call")
	}
	msgs := notifier.Drain()
	if len(msgs) != 1 || msgs[0].Level != NotifySuccess || msgs[0].Message != "Usuario creado" {
		t.Fatalf("unexpected notifications: %#v", msgs)
	}
}

func TestUserDraftValidate(t *testing.T) {
	draft := UserDraft{Name: "Ana", Email: "ana@x.com", Role: "cliente"}
	if err := draft.Validate(true); err == nil {
		t.Fatal("create requires a password")
	}
	if err := draft.Validate(false); err != nil {
		t.Fatalf("edit without password must validate, got %v", err)
	}
	var verr ValidationError
	if err := (UserDraft{Email: "x"}).Validate(false); !errors.As(err, &verr) || verr.Field != "nombre" {
		t.Fatalf("expected nombre validation error, got %v", err)
	}
}

func TestUserDraftPatchBlankMeansUnchanged(t *testing.T) {
	current := User{ID: 1, Name: "Ana", Email: "ana@x.com", Phone: "111", Role: "cliente"}
	draft := UserDraft{Name: "Ana", Email: "nueva@x.com", Phone: "", Role: "cliente", Password: ""}

	patch := draft.Patch(current)
	if len(patch) != 1 {
		t.Fatalf("expected a single changed field, got %#v", patch)
	}
	if patch["email"] != "nueva@x.com" {
		t.Fatalf("expected email change, got %#v", patch)
	}
	if _, ok := patch["password"]; ok {
		t.Fatal("blank password must never travel")
	}
	if _, ok := patch["telefono"]; ok {
		t.Fatal("blank field means unchanged, not cleared")
	}
}

func TestUserDraftPatchIncludesPassword(t *testing.T) {
	patch := UserDraft{Password: "nueva-clave"}.Patch(User{Name: "Ana"})
	if len(patch) != 1 || patch["password"] != "nueva-clave" {
		t.Fatalf("expected password-only patch, got %#v", patch)
	}
}

func TestUserDraftPayloadOmitsEmptyOptionals(t *testing.T) {
	payload := UserDraft{Name: "Ana", Email: "ana@x.com", Role: "cliente", Password: "clave"}.Payload()
	if _, ok := payload["telefono"]; ok {
		t.Fatalf("expected phone omitted, got %#v", payload)
	}
	if payload["nombre"] != "Ana" || payload["password"] != "clave" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestFaqDraftPatchOrderAndActive(t *testing.T) {
	current := Faq{Question: "¿Envian?", Answer: "Si", Category: "Envios", Order: 2, Active: true}
	draft := FaqDraft{Question: "¿Envian?", Answer: "Si", Category: "Envios", Order: 5, Active: false}
	patch := draft.Patch(current)
	if len(patch) != 2 {
		t.Fatalf("expected order and active changes, got %#v", patch)
	}
	if patch["orden"] != 5 || patch["activo"] != false {
		t.Fatalf("unexpected patch: %#v", patch)
	}
}

func TestLeadDraftValidate(t *testing.T) {
	if err := (LeadDraft{Name: "Luis", Email: "luis@x.com", Message: "info"}).Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
	var verr ValidationError
	if err := (LeadDraft{Name: "Luis", Email: "luis@x.com"}).Validate(); !errors.As(err, &verr) || verr.Field != "mensaje" {
		t.Fatalf("expected mensaje validation error, got %v", err)
	}
}

func TestPruneByKeyMissingIDIsNoOp(t *testing.T) {
	items := []Faq{{ID: 1}, {ID: 2}}
	out := PruneByKey(items, func(f Faq) int { return f.ID }, 99)
	if len(out) != 2 {
		t.Fatalf("expected untouched collection, got %#v", out)
	}
}
