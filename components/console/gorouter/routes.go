package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-catalog-admin/components/console"
	"github.com/goliatone/go-catalog-admin/components/console/commands"
	"github.com/goliatone/go-catalog-admin/components/console/httpapi"
)

// ViewerResolver converts a router.Context into a console.ViewerContext.
type ViewerResolver func(router.Context) console.ViewerContext

// Config wires go-router with console pages, the mutation API, and sessions.
type Config[T any] struct {
	Router         router.Router[T]
	Service        *console.Service
	Controller     *console.Controller
	API            httpapi.Executor
	Broadcast      *console.BroadcastNotifier
	Sessions       *console.SessionManager
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for console endpoints.
type RouteConfig struct {
	Pages      string
	Settings   string
	Navigation string
	Users      string
	UserID     string
	Comments   string
	CommentID  string
	Logs       string
	Leads      string
	Faqs       string
	FaqID      string
	PublicFaqs string
	WebSocket  string
}

// Register mounts console routes (navigation, JSON lists, REST mutations) on
// a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Service == nil {
		return errors.New("gorouter: service is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	resolver := cfg.viewerResolver()

	group := cfg.Router.Group(base)

	if cfg.Controller != nil {
		group.Get(routes.Pages, router.WrapHandler(func(ctx router.Context) error {
			viewer := resolver(ctx)
			code := ctx.Param("code")
			var buf bytes.Buffer
			if err := cfg.Controller.RenderPage(ctx.Context(), viewer, code, &buf); err != nil {
				status := http.StatusInternalServerError
				switch {
				case errors.Is(err, console.ErrUnknownPage):
					status = http.StatusNotFound
				case errors.Is(err, console.ErrPageForbidden):
					status = http.StatusForbidden
				}
				return respondError(ctx, status, err)
			}
			ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
			return ctx.Send(buf.Bytes())
		}))
	}

	group.Get(routes.Settings, router.WrapHandler(func(ctx router.Context) error {
		viewer := resolver(ctx)
		settings, err := cfg.Service.PageSettings(ctx.Context(), viewer, ctx.Param("code"))
		if err != nil {
			return respondError(ctx, http.StatusNotFound, err)
		}
		return ctx.JSON(http.StatusOK, map[string]any{"data": settings})
	}))

	group.Post(routes.Settings, router.WrapHandler(func(ctx router.Context) error {
		viewer := resolver(ctx)
		var settings map[string]any
		if err := json.Unmarshal(ctx.Body(), &settings); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := cfg.Service.SavePageSettings(ctx.Context(), viewer, ctx.Param("code"), settings); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	group.Get(routes.Navigation, router.WrapHandler(func(ctx router.Context) error {
		viewer := resolver(ctx)
		return ctx.JSON(http.StatusOK, map[string]any{
			"data": cfg.Service.Navigation(viewer.Role),
		})
	}))

	group.Get(routes.Users, router.WrapHandler(func(ctx router.Context) error {
		cctx := console.WithViewer(ctx.Context(), resolver(ctx))
		page := cfg.Service.NewUsersPage()
		var err error
		if term := strings.TrimSpace(ctx.Query("buscar")); term != "" {
			err = page.SetSearch(cctx, term)
		} else {
			err = page.Load(cctx)
		}
		if err != nil {
			return respondError(ctx, http.StatusBadGateway, err)
		}
		return ctx.JSON(http.StatusOK, map[string]any{
			"data":  page.Users(),
			"total": page.Total(),
		})
	}))

	group.Get(routes.Comments, router.WrapHandler(func(ctx router.Context) error {
		cctx := console.WithViewer(ctx.Context(), resolver(ctx))
		page := cfg.Service.NewModerationPage()
		if err := page.Load(cctx); err != nil {
			return respondError(ctx, http.StatusBadGateway, err)
		}
		return ctx.JSON(http.StatusOK, map[string]any{"data": page.Rows()})
	}))

	group.Get(routes.Logs, router.WrapHandler(func(ctx router.Context) error {
		cctx := console.WithViewer(ctx.Context(), resolver(ctx))
		page := cfg.Service.NewAuditPage()
		var err error
		if raw := ctx.Query("usuario"); raw != "" {
			userID, parseErr := strconv.Atoi(raw)
			if parseErr != nil {
				return respondError(ctx, http.StatusBadRequest, errors.New("usuario must be numeric"))
			}
			err = page.LoadForUser(cctx, userID)
		} else {
			err = page.Load(cctx)
		}
		if err != nil {
			return respondError(ctx, http.StatusBadGateway, err)
		}
		rows := page.Rows()
		if q := strings.TrimSpace(ctx.Query("q")); q != "" {
			rows = page.Search(q)
		}
		return ctx.JSON(http.StatusOK, map[string]any{"data": rows})
	}))

	group.Get(routes.Leads, router.WrapHandler(func(ctx router.Context) error {
		cctx := console.WithViewer(ctx.Context(), resolver(ctx))
		page := cfg.Service.NewLeadsPage()
		if err := page.Load(cctx); err != nil {
			return respondError(ctx, http.StatusBadGateway, err)
		}
		return ctx.JSON(http.StatusOK, map[string]any{"data": page.Leads()})
	}))

	group.Get(routes.Faqs, router.WrapHandler(func(ctx router.Context) error {
		cctx := console.WithViewer(ctx.Context(), resolver(ctx))
		page := cfg.Service.NewFaqPage()
		if err := page.Load(cctx); err != nil {
			return respondError(ctx, http.StatusBadGateway, err)
		}
		if category := strings.TrimSpace(ctx.Query("categoria")); category != "" {
			page.SetCategory(category)
		}
		return ctx.JSON(http.StatusOK, map[string]any{
			"data":       page.Faqs(),
			"categorias": page.Categories(),
		})
	}))

	group.Get(routes.PublicFaqs, router.WrapHandler(func(ctx router.Context) error {
		page := cfg.Service.NewFaqPage()
		faqs, err := page.PublicFaqs(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusBadGateway, err)
		}
		return ctx.JSON(http.StatusOK, map[string]any{"data": faqs})
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, resolver, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerWebSocket[T any](r router.Router[T], notifier *console.BroadcastNotifier, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := notifier.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ViewerResolver, routes RouteConfig) {
	r.Post(routes.Users, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.CreateUserInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.CreateUser(viewerContext(ctx, resolver), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Put(routes.UserID, router.WrapHandler(func(ctx router.Context) error {
		id, err := paramID(ctx)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		var payload commands.UpdateUserInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.UserID = id
		if err := api.UpdateUser(viewerContext(ctx, resolver), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Delete(routes.UserID, router.WrapHandler(func(ctx router.Context) error {
		id, err := paramID(ctx)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.DeleteUser(viewerContext(ctx, resolver), commands.DeleteUserInput{UserID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "removed"})
	}))

	r.Delete(routes.CommentID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("comment id is required"))
		}
		if err := api.DeleteComment(viewerContext(ctx, resolver), commands.DeleteCommentInput{CommentID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Leads, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.CreateLeadInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.CreateLead(viewerContext(ctx, resolver), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Post(routes.Faqs, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.CreateFaqInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.CreateFaq(viewerContext(ctx, resolver), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Put(routes.FaqID, router.WrapHandler(func(ctx router.Context) error {
		id, err := paramID(ctx)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		var payload commands.UpdateFaqInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.FaqID = id
		if err := api.UpdateFaq(viewerContext(ctx, resolver), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Delete(routes.FaqID, router.WrapHandler(func(ctx router.Context) error {
		id, err := paramID(ctx)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.DeleteFaq(viewerContext(ctx, resolver), commands.DeleteFaqInput{FaqID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "removed"})
	}))
}

func (cfg Config[T]) viewerResolver() ViewerResolver {
	if cfg.ViewerResolver != nil {
		return cfg.ViewerResolver
	}
	if cfg.Sessions != nil {
		return sessionViewerResolver(cfg.Sessions)
	}
	return defaultViewerResolver
}

// sessionViewerResolver resolves the Authorization bearer token against the
// session manager. Invalid tokens yield an anonymous viewer; role checks on
// the pages reject the request downstream.
func sessionViewerResolver(sessions *console.SessionManager) ViewerResolver {
	return func(ctx router.Context) console.ViewerContext {
		token := bearerToken(ctx.Header("Authorization"))
		if token == "" {
			return console.ViewerContext{}
		}
		viewer, err := sessions.Resolve(token)
		if err != nil {
			return console.ViewerContext{}
		}
		return viewer
	}
}

func defaultViewerResolver(ctx router.Context) console.ViewerContext {
	if viewer, ok := ctx.Locals("viewer").(console.ViewerContext); ok {
		return viewer
	}
	var viewer console.ViewerContext
	if v, ok := ctx.Locals("user_id").(int); ok {
		viewer.UserID = v
	}
	if role, ok := ctx.Locals("role").(string); ok {
		viewer.Role = role
	}
	return viewer
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func viewerContext(ctx router.Context, resolver ViewerResolver) context.Context {
	return console.WithViewer(ctx.Context(), resolver(ctx))
}

func paramID(ctx router.Context) (int, error) {
	raw := ctx.Param("id")
	if raw == "" {
		return 0, errors.New("id is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("id must be numeric")
	}
	return id, nil
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Pages == "" {
		routes.Pages = "/paginas/:code"
	}
	if routes.Settings == "" {
		routes.Settings = "/paginas/:code/ajustes"
	}
	if routes.Navigation == "" {
		routes.Navigation = "/navegacion"
	}
	if routes.Users == "" {
		routes.Users = "/usuarios"
	}
	if routes.UserID == "" {
		routes.UserID = "/usuarios/:id"
	}
	if routes.Comments == "" {
		routes.Comments = "/comentarios"
	}
	if routes.CommentID == "" {
		routes.CommentID = "/comentarios/:id"
	}
	if routes.Logs == "" {
		routes.Logs = "/registros"
	}
	if routes.Leads == "" {
		routes.Leads = "/crm"
	}
	if routes.Faqs == "" {
		routes.Faqs = "/faq"
	}
	if routes.FaqID == "" {
		routes.FaqID = "/faq/:id"
	}
	if routes.PublicFaqs == "" {
		routes.PublicFaqs = "/faq/publicas"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/notificaciones/ws"
	}
	return routes
}
