package console

import "strings"

// BadgeVariant is one of the bounded visual treatments a badge can take.
type BadgeVariant string

const (
	BadgeNeutral BadgeVariant = "neutral"
	BadgeInfo    BadgeVariant = "info"
	BadgeSuccess BadgeVariant = "success"
	BadgeWarning BadgeVariant = "warning"
	BadgeDanger  BadgeVariant = "danger"
)

// Status/role/action text arrives as open string enums from the backends;
// each lookup maps the known values and falls back to neutral.
var roleVariants = map[string]BadgeVariant{
	"admin":    BadgeDanger,
	"empleado": BadgeWarning,
	"cliente":  BadgeInfo,
}

var leadStatusVariants = map[string]BadgeVariant{
	"nuevo":      BadgeInfo,
	"contactado": BadgeWarning,
	"en proceso": BadgeWarning,
	"cerrado":    BadgeSuccess,
	"perdido":    BadgeDanger,
}

var actionVariants = map[string]BadgeVariant{
	"login":  BadgeInfo,
	"logout": BadgeNeutral,
	"create": BadgeSuccess,
	"update": BadgeWarning,
	"delete": BadgeDanger,
	"error":  BadgeDanger,
}

// RoleBadge maps a user role to its badge variant.
func RoleBadge(role string) BadgeVariant {
	return lookupVariant(roleVariants, role)
}

// LeadStatusBadge maps a free-form lead status to its badge variant. Status
// comparison is case-insensitive by contract.
func LeadStatusBadge(status string) BadgeVariant {
	return lookupVariant(leadStatusVariants, status)
}

// ActionBadge maps an audit action label to its badge variant. Compound
// labels ("user:create") match on their last segment.
func ActionBadge(action string) BadgeVariant {
	normalized := strings.ToLower(strings.TrimSpace(action))
	if idx := strings.LastIndexAny(normalized, ":._"); idx >= 0 && idx < len(normalized)-1 {
		if variant, ok := actionVariants[normalized[idx+1:]]; ok {
			return variant
		}
	}
	return lookupVariant(actionVariants, normalized)
}

func lookupVariant(table map[string]BadgeVariant, value string) BadgeVariant {
	if variant, ok := table[strings.ToLower(strings.TrimSpace(value))]; ok {
		return variant
	}
	return BadgeNeutral
}
