package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	// ErrUnknownPage is returned when a render is requested for a page code
	// the registry does not know about.
	ErrUnknownPage = errors.New("console: unknown page")
	// ErrPageForbidden is returned when the viewer's role cannot see the page.
	ErrPageForbidden = errors.New("console: page not visible to role")
)

// ControllerOptions wires the collaborators behind the HTML controller.
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
	Charts   *ChartRenderer
}

// Controller renders server-side HTML for the console pages.
type Controller struct {
	service  *Service
	renderer Renderer
	charts   *ChartRenderer
}

// NewController builds a controller, creating the embedded-template renderer
// and a default chart renderer when none are supplied.
func NewController(opts ControllerOptions) (*Controller, error) {
	if opts.Service == nil {
		return nil, errors.New("console: controller requires a service")
	}
	renderer := opts.Renderer
	if renderer == nil {
		var err error
		renderer, err = NewTemplateRenderer()
		if err != nil {
			return nil, fmt.Errorf("console: build template renderer: %w", err)
		}
	}
	charts := opts.Charts
	if charts == nil {
		charts = NewChartRenderer()
	}
	return &Controller{service: opts.Service, renderer: renderer, charts: charts}, nil
}

// RenderPage resolves a page by code and writes its HTML. The resumen page is
// a controller-level summary available to any viewer who can manage the
// catalog; every other code must be registered and visible to the viewer's
// role.
func (c *Controller) RenderPage(ctx context.Context, viewer ViewerContext, code string, out io.Writer) error {
	ctx = WithViewer(ctx, viewer)
	data := map[string]any{
		"nav":         c.service.Navigation(viewer.Role),
		"viewer_name": viewer.Name,
		"active":      code,
		"base_path":   "/admin",
	}

	if code == "resumen" {
		if !viewer.CanManage() {
			return ErrPageForbidden
		}
		return c.renderSummary(ctx, data, out)
	}

	def, ok := c.service.Registry().Definition(code)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, code)
	}
	if !def.VisibleTo(viewer.Role) {
		return ErrPageForbidden
	}
	data["title"] = def.Title

	switch code {
	case "usuarios":
		return c.renderUsers(ctx, data, out)
	case "moderacion":
		return c.renderModeration(ctx, data, out)
	case "auditoria":
		return c.renderAudit(ctx, data, out)
	case "crm":
		return c.renderLeads(ctx, data, out)
	case "faq":
		return c.renderFaqs(ctx, data, out)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPage, code)
	}
}

type userRow struct {
	ID         int
	Name       string
	Email      string
	Phone      string
	Role       string
	RoleBadge  BadgeVariant
	Registered string
}

func (c *Controller) renderUsers(ctx context.Context, data map[string]any, out io.Writer) error {
	page := c.service.NewUsersPage()
	if err := page.Load(ctx); err != nil {
		return err
	}
	rows := make([]userRow, 0, len(page.Users()))
	for _, user := range page.Users() {
		rows = append(rows, userRow{
			ID:         user.ID,
			Name:       user.Name,
			Email:      user.Email,
			Phone:      user.Phone,
			Role:       user.Role,
			RoleBadge:  RoleBadge(user.Role),
			Registered: formatDate(user.RegisteredAt),
		})
	}
	data["users"] = rows
	data["total"] = page.Total()
	return c.render("usuarios", data, out)
}

type moderationViewRow struct {
	ID       string
	Author   string
	Subject  string
	Rating   string
	Text     string
	FullText string
	Date     string
}

func (c *Controller) renderModeration(ctx context.Context, data map[string]any, out io.Writer) error {
	page := c.service.NewModerationPage()
	if err := page.Load(ctx); err != nil {
		return err
	}
	rows := make([]moderationViewRow, 0, len(page.Rows()))
	for _, row := range page.Rows() {
		rows = append(rows, moderationViewRow{
			ID:       row.Comment.ID,
			Author:   row.Author,
			Subject:  row.Subject,
			Rating:   RatingMarks(row.Comment.Rating),
			Text:     Truncate(row.Comment.Text, 120),
			FullText: row.Comment.Text,
			Date:     formatDate(row.Comment.Date),
		})
	}
	data["rows"] = rows
	return c.render("moderacion", data, out)
}

type auditViewRow struct {
	ID          string
	Action      string
	ActionBadge BadgeVariant
	Author      string
	IP          string
	Timestamp   string
}

func (c *Controller) renderAudit(ctx context.Context, data map[string]any, out io.Writer) error {
	page := c.service.NewAuditPage()
	if err := page.Load(ctx); err != nil {
		return err
	}
	rows := make([]auditViewRow, 0, len(page.Rows()))
	for _, row := range page.Rows() {
		rows = append(rows, auditViewRow{
			ID:          row.Log.ID,
			Action:      row.Log.Action,
			ActionBadge: ActionBadge(row.Log.Action),
			Author:      row.Author,
			IP:          row.Log.IP,
			Timestamp:   formatTimestamp(row.Log.Timestamp),
		})
	}
	data["rows"] = rows
	return c.render("auditoria", data, out)
}

type leadRow struct {
	ID          int
	Name        string
	Email       string
	Phone       string
	Message     string
	FullMessage string
	Status      string
	StatusBadge BadgeVariant
	Date        string
}

func (c *Controller) renderLeads(ctx context.Context, data map[string]any, out io.Writer) error {
	page := c.service.NewLeadsPage()
	if err := page.Load(ctx); err != nil {
		return err
	}
	rows := make([]leadRow, 0, len(page.Leads()))
	for _, lead := range page.Leads() {
		rows = append(rows, leadRow{
			ID:          lead.ID,
			Name:        lead.Name,
			Email:       lead.Email,
			Phone:       lead.Phone,
			Message:     Truncate(lead.Message, 120),
			FullMessage: lead.Message,
			Status:      lead.Status,
			StatusBadge: LeadStatusBadge(lead.Status),
			Date:        formatDate(lead.Date),
		})
	}
	data["leads"] = rows
	return c.render("crm", data, out)
}

func (c *Controller) renderFaqs(ctx context.Context, data map[string]any, out io.Writer) error {
	page := c.service.NewFaqPage()
	if err := page.Load(ctx); err != nil {
		return err
	}
	data["faqs"] = page.Faqs()
	data["categories"] = page.Categories()
	return c.render("faq", data, out)
}

// renderSummary aggregates the CRM, moderation, and user collections into the
// landing-page charts. A chart whose source fails to load renders as an empty
// card rather than failing the whole page.
func (c *Controller) renderSummary(ctx context.Context, data map[string]any, out io.Writer) error {
	data["title"] = "Resumen"

	leadsPage := c.service.NewLeadsPage()
	if err := leadsPage.Load(ctx); err == nil {
		if html, err := c.charts.LeadsByStatus(leadsPage.Leads()); err == nil {
			data["leads_chart"] = html
		}
	}

	moderationPage := c.service.NewModerationPage()
	if err := moderationPage.Load(ctx); err == nil {
		comments := make([]Comment, 0, len(moderationPage.Rows()))
		for _, row := range moderationPage.Rows() {
			comments = append(comments, row.Comment)
		}
		if html, err := c.charts.RatingsDistribution(comments); err == nil {
			data["ratings_chart"] = html
		}
	}

	usersPage := c.service.NewUsersPage()
	if err := usersPage.Load(ctx); err == nil {
		if html, err := c.charts.RegistrationsByMonth(usersPage.Users()); err == nil {
			data["registrations_chart"] = html
		}
	}

	return c.render("resumen", data, out)
}

func (c *Controller) render(name string, data map[string]any, out io.Writer) error {
	_, err := c.renderer.Render(name, data, out)
	return err
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func formatTimestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}
