package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ViewerContext carries the authenticated admin identity for the duration of
// a page session. It is passed explicitly through context rather than held
// in mutable package state.
type ViewerContext struct {
	SessionID uuid.UUID
	UserID    int
	Name      string
	Role      string
}

// CanManage reports whether the viewer may perform catalog mutations.
func (v ViewerContext) CanManage() bool {
	return v.Role == "admin" || v.Role == "empleado"
}

// IsAdmin reports whether the viewer holds the admin role.
func (v ViewerContext) IsAdmin() bool { return v.Role == "admin" }

type viewerKey struct{}

// WithViewer attaches the viewer to the context at sign-in.
func WithViewer(ctx context.Context, viewer ViewerContext) context.Context {
	return context.WithValue(ctx, viewerKey{}, viewer)
}

// ViewerFromContext returns the signed-in viewer, if any.
func ViewerFromContext(ctx context.Context) (ViewerContext, bool) {
	viewer, ok := ctx.Value(viewerKey{}).(ViewerContext)
	return viewer, ok
}

// ClearViewer drops the viewer at sign-out.
func ClearViewer(ctx context.Context) context.Context {
	return context.WithValue(ctx, viewerKey{}, nil)
}

var (
	errEmptyToken   = errors.New("console: bearer token is empty")
	errShortSecret  = errors.New("console: session secret must be at least 32 bytes")
	errTokenSubject = errors.New("console: token subject is not a user id")
)

// SessionManager resolves signed HS256 bearer tokens issued by the auth
// backend into viewer contexts, assigning each resolution a session id used
// to correlate audit activity.
type SessionManager struct {
	secret []byte
	issuer string
}

// NewSessionManager validates the shared secret and builds a manager.
func NewSessionManager(secret, issuer string) (*SessionManager, error) {
	if len(secret) < 32 {
		return nil, errShortSecret
	}
	return &SessionManager{secret: []byte(secret), issuer: issuer}, nil
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Name string `json:"nombre,omitempty"`
	Role string `json:"rol,omitempty"`
}

// Resolve parses and validates a bearer token, returning the viewer it
// represents.
func (m *SessionManager) Resolve(tokenString string) (ViewerContext, error) {
	if tokenString == "" {
		return ViewerContext{}, errEmptyToken
	}
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return ViewerContext{}, fmt.Errorf("console: parse session token: %w", err)
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return ViewerContext{}, errors.New("console: invalid session token")
	}
	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return ViewerContext{}, errTokenSubject
	}
	return ViewerContext{
		SessionID: uuid.New(),
		UserID:    userID,
		Name:      claims.Name,
		Role:      claims.Role,
	}, nil
}

// Issue signs a session token. The console only issues tokens in tests and
// local examples; production tokens come from the auth backend.
func (m *SessionManager) Issue(userID int, name, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name: name,
		Role: role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("console: sign session token: %w", err)
	}
	return signed, nil
}
