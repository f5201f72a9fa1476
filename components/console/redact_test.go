package console

import (
	"reflect"
	"strings"
	"testing"
)

func TestRedactDetailsPartitionsKnownKeys(t *testing.T) {
	details := map[string]any{
		"navegador": "Firefox 128",
		"correo":    "ana@x.com",
		"rol":       "admin",
		"usuario":   "Ana",
		"intentos":  float64(3),
	}
	summary, pairs := RedactDetails(details)
	if summary.Browser != "Firefox 128" {
		t.Fatalf("unexpected browser: %q", summary.Browser)
	}
	if summary.Email != "ana@x.com" || summary.Role != "admin" || summary.User != "Ana" {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	if len(pairs) != 1 || pairs[0].Key != "intentos" || pairs[0].Value != "3" {
		t.Fatalf("unexpected residual pairs: %#v", pairs)
	}
	if pairs[0].Label != "Intentos" {
		t.Fatalf("expected humanized label, got %q", pairs[0].Label)
	}
}

func TestRedactDetailsDropsSecrets(t *testing.T) {
	details := map[string]any{
		"password":  "hunter2",
		"token":     "abc",
		"_interno":  "trace-id",
		"resultado": "ok",
	}
	summary, pairs := RedactDetails(details)
	if summary != (DetailSummary{}) {
		t.Fatalf("expected empty summary, got %#v", summary)
	}
	for _, pair := range pairs {
		if pair.Key == "password" || pair.Key == "token" || pair.Key == "_interno" {
			t.Fatalf("secret key leaked: %#v", pair)
		}
	}
	if len(pairs) != 1 || pairs[0].Key != "resultado" {
		t.Fatalf("unexpected residual pairs: %#v", pairs)
	}
}

func TestRedactDetailsExtraDenylist(t *testing.T) {
	details := map[string]any{"session_id": "s-1", "resultado": "ok"}
	_, pairs := RedactDetails(details, "session_id")
	if len(pairs) != 1 || pairs[0].Key != "resultado" {
		t.Fatalf("expected extra denylisted key dropped, got %#v", pairs)
	}
}

func TestRedactDetailsLongUserAgentGetsGenericLabel(t *testing.T) {
	ua := strings.Repeat("Mozilla/5.0 ", 10)
	summary, _ := RedactDetails(map[string]any{"user_agent": ua})
	if summary.Browser != "Navegador de escritorio" {
		t.Fatalf("expected generic label, got %q", summary.Browser)
	}
}

func TestRedactDetailsShortUserAgentPassesThrough(t *testing.T) {
	summary, _ := RedactDetails(map[string]any{"browser": "Safari 18"})
	if summary.Browser != "Safari 18" {
		t.Fatalf("expected raw value, got %q", summary.Browser)
	}
}

func TestRedactDetailsUserAgentLimitCountsRunes(t *testing.T) {
	// 45 runes but well over 50 bytes; must stay under the display limit.
	ua := strings.Repeat("ñ", 45)
	summary, _ := RedactDetails(map[string]any{"navegador": ua})
	if summary.Browser != ua {
		t.Fatalf("multibyte agent under the limit collapsed: %q", summary.Browser)
	}

	summary, _ = RedactDetails(map[string]any{"navegador": strings.Repeat("ñ", 51)})
	if summary.Browser != "Navegador de escritorio" {
		t.Fatalf("expected generic label past the limit, got %q", summary.Browser)
	}
}

func TestRedactDetailsSummarizesChangeLists(t *testing.T) {
	details := map[string]any{
		"cambios": []any{
			map[string]any{"campo": "rol", "anterior": "cliente", "nuevo": "empleado"},
			map[string]any{"campo": "email", "anterior": "a@x.com", "nuevo": "b@x.com"},
		},
	}
	_, pairs := RedactDetails(details)
	if len(pairs) != 1 {
		t.Fatalf("expected one residual pair, got %d", len(pairs))
	}
	if pairs[0].Value != "email, rol" {
		t.Fatalf("Value = %q, want field names", pairs[0].Value)
	}

	// A list without recognizable entries degrades to a count.
	_, pairs = RedactDetails(map[string]any{"intentos": []any{"1", "2", "3"}})
	if len(pairs) != 1 || pairs[0].Value != "3 entradas" {
		t.Fatalf("unexpected fallback pairs: %+v", pairs)
	}
}

func TestRedactDetailsDeterministic(t *testing.T) {
	details := map[string]any{
		"zeta":  "z",
		"alfa":  "a",
		"medio": "m",
	}
	_, first := RedactDetails(details)
	for i := 0; i < 20; i++ {
		_, again := RedactDetails(details)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("partition not deterministic: %#v vs %#v", first, again)
		}
	}
	if first[0].Key != "alfa" || first[1].Key != "medio" || first[2].Key != "zeta" {
		t.Fatalf("expected sorted residual keys, got %#v", first)
	}
}

func TestRedactDetailsEmptyPayload(t *testing.T) {
	summary, pairs := RedactDetails(nil)
	if summary != (DetailSummary{}) || pairs != nil {
		t.Fatalf("expected zero output, got %#v %#v", summary, pairs)
	}
}
