package auth

import (
	"context"
	"errors"

	"google.golang.org/grpc/metadata"
)

const (
	RoleDirector = "Director General"
	RoleAdmin    = "Administrador"
	RoleEmployee = "Empleado"
)

// Metadata keys forwarded by the gateway after it has verified the session.
const (
	HeaderCompanyID = "x-company-id"
	HeaderUserID    = "x-user-id"
	HeaderUserRole  = "x-user-role"
)

var (
	ErrUnauthenticated = errors.New("missing company context")
	ErrForbidden       = errors.New("operation requires the Director General role")
)

type UserContext struct {
	CompanyID string
	UserID    string
	Role      string
}

func (u UserContext) IsDirector() bool {
	return u.Role == RoleDirector
}

type ctxKey struct{}

func WithUser(ctx context.Context, u UserContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the caller populated by the interceptor, falling back
// to raw incoming metadata when the interceptor was not installed.
func FromContext(ctx context.Context) UserContext {
	if u, ok := ctx.Value(ctxKey{}).(UserContext); ok {
		return u
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return UserContext{}
	}
	return FromMetadata(md)
}

func FromMetadata(md metadata.MD) UserContext {
	first := func(key string) string {
		if v := md.Get(key); len(v) > 0 {
			return v[0]
		}
		return ""
	}
	return UserContext{
		CompanyID: first(HeaderCompanyID),
		UserID:    first(HeaderUserID),
		Role:      first(HeaderUserRole),
	}
}

func GetCompanyID(ctx context.Context) string {
	return FromContext(ctx).CompanyID
}

// RequireCompany rejects callers without a tenant.
func RequireCompany(ctx context.Context) (UserContext, error) {
	u := FromContext(ctx)
	if u.CompanyID == "" {
		return u, ErrUnauthenticated
	}
	return u, nil
}

func RequireDirector(ctx context.Context) (UserContext, error) {
	u, err := RequireCompany(ctx)
	if err != nil {
		return u, err
	}
	if !u.IsDirector() {
		return u, ErrForbidden
	}
	return u, nil
}
