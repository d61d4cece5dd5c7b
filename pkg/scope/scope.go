package scope

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"casebem/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidRole  = errors.New("invalid role")
)

// Claims are the JWT claims issued to couples and suppliers.
type Claims struct {
	UserID string     `json:"user_id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies access tokens.
type Manager interface {
	CreateToken(sc model.Scope) (string, error)
	Verify(token string) (model.Scope, error)
}

type implManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// New creates an HS256 Manager.
func New(secret string, ttl time.Duration, issuer string) Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &implManager{secret: []byte(secret), ttl: ttl, issuer: issuer}
}

func (m *implManager) CreateToken(sc model.Scope) (string, error) {
	if !model.ValidRole(sc.Role) {
		return "", ErrInvalidRole
	}
	now := time.Now()
	claims := Claims{
		UserID: sc.UserID,
		Role:   sc.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sc.UserID,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *implManager) Verify(tokenString string) (model.Scope, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return model.Scope{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return model.Scope{}, ErrInvalidToken
	}
	if !model.ValidRole(claims.Role) {
		return model.Scope{}, ErrInvalidRole
	}
	return model.Scope{UserID: claims.UserID, Role: claims.Role}, nil
}

type scopeCtxKey struct{}

// SetScopeToContext stores the caller scope in ctx.
func SetScopeToContext(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, sc)
}

// GetScopeFromContext returns the caller scope stored by the auth middleware.
func GetScopeFromContext(ctx context.Context) (model.Scope, bool) {
	sc, ok := ctx.Value(scopeCtxKey{}).(model.Scope)
	return sc, ok
}
