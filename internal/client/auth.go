// Package client holds the typed resource proxies, one per entity family.
// Each is a thin layer over the gateway: it knows paths and payload shapes
// and nothing about sessions, storage or retries.
package client

import (
	"context"

	"backoffice/internal/domain"
	"backoffice/internal/gateway"
)

// Auth exchanges credentials and registers accounts.
type Auth struct {
	gw *gateway.Client
}

func NewAuth(gw *gateway.Client) *Auth {
	return &Auth{gw: gw}
}

// Login exchanges email/password for a bearer token and identity fields.
func (a *Auth) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error) {
	var result domain.LoginResult
	if err := a.gw.Post(ctx, "/Login/login", req, &result); err != nil {
		return domain.LoginResult{}, err
	}
	return result, nil
}

// Register creates a new account. The backend answers with a bare boolean.
func (a *Auth) Register(ctx context.Context, req domain.RegisterUserRequest) (bool, error) {
	var ok bool
	if err := a.gw.Post(ctx, "/UserRegister/register_user", req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
