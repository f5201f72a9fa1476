package console

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ettle/strcase"
)

// Audit payloads are producer-controlled, so display goes through an explicit
// denylist; anything not named falls through as a generic label/value pair.
const (
	userAgentDisplayLimit = 50
	genericBrowserLabel   = "Navegador de escritorio"
	privateKeyPrefix      = "_"
)

var (
	browserKeys  = keySet("browser", "user_agent", "useragent", "navegador")
	emailKeys    = keySet("email", "correo")
	roleKeys     = keySet("role", "rol")
	droppedKeys  = keySet("password", "pass", "contrasena", "contraseña", "token", "secret")
	identityKeys = keySet("usuario", "user", "nombre")
)

// DetailSummary carries the named slots extracted from an audit payload.
type DetailSummary struct {
	Browser string
	Email   string
	Role    string
	User    string
}

// DetailPair is a residual key rendered generically.
type DetailPair struct {
	Key   string
	Label string
	Value string
}

// RedactDetails partitions an arbitrary details payload into named summary
// slots and generic residual pairs. Denylisted secrets are dropped outright,
// as is any key using the private prefix convention. The partition is
// deterministic: identical input yields identical output.
func RedactDetails(details map[string]any, extraDenied ...string) (DetailSummary, []DetailPair) {
	var summary DetailSummary
	if len(details) == 0 {
		return summary, nil
	}
	denied := keySet(extraDenied...)
	var pairs []DetailPair
	for key, value := range details {
		normalized := strings.ToLower(strings.TrimSpace(key))
		switch {
		case strings.HasPrefix(normalized, privateKeyPrefix):
		case droppedKeys[normalized] || denied[normalized]:
		case browserKeys[normalized]:
			summary.Browser = displayBrowser(displayValue(value))
		case emailKeys[normalized]:
			summary.Email = displayValue(value)
		case roleKeys[normalized]:
			summary.Role = displayValue(value)
		case identityKeys[normalized]:
			summary.User = displayValue(value)
		default:
			pairs = append(pairs, DetailPair{
				Key:   key,
				Label: strcase.ToCase(key, strcase.TitleCase, ' '),
				Value: displayValue(value),
			})
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return summary, pairs
}

// displayBrowser avoids dumping raw user-agent strings into table layouts.
// A display heuristic, not a security control.
func displayBrowser(ua string) string {
	if len([]rune(ua)) > userAgentDisplayLimit {
		return genericBrowserLabel
	}
	return ua
}

func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64:
		// JSON numbers decode as float64; render integers without decimals.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case []any:
		return displayChangeList(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// displayChangeList summarizes a loose list payload. Backends log field
// change lists as [{campo: ..., anterior: ..., nuevo: ...}]; listing the
// touched field names keeps the cell readable. Anything else degrades to an
// entry count.
func displayChangeList(list []any) string {
	byField := BuildIndexAny(list, func(entry map[string]any) (string, bool) {
		field, _ := entry["campo"].(string)
		return field, field != ""
	})
	if len(byField) == 0 {
		return fmt.Sprintf("%d entradas", len(list))
	}
	fields := make([]string, 0, len(byField))
	for field := range byField {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return strings.Join(fields, ", ")
}

func keySet(keys ...string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, key := range keys {
		set[strings.ToLower(key)] = true
	}
	return set
}
