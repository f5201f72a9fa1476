package console

import (
	"fmt"
	"strings"
)

const (
	ratingScale    = 5
	ratingFilled   = "★"
	ratingEmpty    = "☆"
	truncateMarker = "…"
)

// ModerationRow is a comment joined with its author and subject for display.
type ModerationRow struct {
	Comment Comment
	Author  string
	Subject string
}

// AuditRow is a system log entry joined with its author.
type AuditRow struct {
	Log    SystemLog
	Author string
}

// UserPlaceholder renders the fallback label for an unresolved author key.
func UserPlaceholder(id int) string {
	return fmt.Sprintf("User #%d", id)
}

// ProjectComments joins comments against the user and motorcycle indexes.
// A missing reference never drops or fails the row; it yields a placeholder
// derived from the unresolved key.
func ProjectComments(comments []Comment, users map[int]User, motorcycles map[int]Motorcycle) []ModerationRow {
	rows := make([]ModerationRow, len(comments))
	for i, comment := range comments {
		row := ModerationRow{Comment: comment}
		if user, ok := IndexLookup(users, comment.UserID); ok {
			row.Author = user.Name
		} else {
			row.Author = UserPlaceholder(comment.UserID)
		}
		if moto, ok := IndexLookup(motorcycles, comment.MotorcycleID); ok {
			row.Subject = moto.Brand + " " + moto.Model
		} else {
			row.Subject = fmt.Sprintf("#%d", comment.MotorcycleID)
		}
		rows[i] = row
	}
	return rows
}

// ProjectLogs joins audit entries against the user index. Entries without an
// author key render an anonymous label rather than a placeholder id.
func ProjectLogs(logs []SystemLog, users map[int]User) []AuditRow {
	rows := make([]AuditRow, len(logs))
	for i, entry := range logs {
		row := AuditRow{Log: entry}
		switch {
		case entry.UserID == nil:
			row.Author = "Sistema"
		default:
			if user, ok := IndexLookup(users, *entry.UserID); ok {
				row.Author = user.Name
			} else {
				row.Author = UserPlaceholder(*entry.UserID)
			}
		}
		rows[i] = row
	}
	return rows
}

// RatingMarks renders a 1-5 rating as exactly `rating` filled marks followed
// by the remaining empty marks. Out-of-range values clamp to the scale.
func RatingMarks(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > ratingScale {
		rating = ratingScale
	}
	return strings.Repeat(ratingFilled, rating) + strings.Repeat(ratingEmpty, ratingScale-rating)
}

// Truncate shortens free text for table cells. The caller keeps the original
// value for the full-text affordance (title/tooltip).
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + truncateMarker
}

// Filter applies a predicate over an already-fetched collection.
func Filter[T any](items []T, pred func(T) bool) []T {
	var out []T
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// FilterFaqsByCategory narrows FAQs client-side. The sentinel "all" (any
// case) returns the input untouched.
func FilterFaqsByCategory(faqs []Faq, category string) []Faq {
	if strings.EqualFold(category, "all") || category == "" {
		return faqs
	}
	return Filter(faqs, func(f Faq) bool {
		return strings.EqualFold(f.Category, category)
	})
}

// SearchAuditRows matches the query against action, author, and IP,
// case-insensitively. An empty query returns the input untouched.
func SearchAuditRows(rows []AuditRow, query string) []AuditRow {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}
	return Filter(rows, func(row AuditRow) bool {
		return strings.Contains(strings.ToLower(row.Log.Action), query) ||
			strings.Contains(strings.ToLower(row.Author), query) ||
			strings.Contains(strings.ToLower(row.Log.IP), query)
	})
}
