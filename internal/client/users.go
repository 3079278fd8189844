package client

import (
	"context"
	"net/url"
	"strconv"

	"backoffice/internal/domain"
	"backoffice/internal/gateway"
)

// Users proxies the account management endpoints.
type Users struct {
	gw *gateway.Client
}

func NewUsers(gw *gateway.Client) *Users {
	return &Users{gw: gw}
}

// ByID fetches a single account.
func (u *Users) ByID(ctx context.Context, userID int) (*domain.User, error) {
	query := url.Values{}
	query.Set("userId", strconv.Itoa(userID))

	var user *domain.User
	if err := u.gw.Get(ctx, "/User/get_by_id", query, &user); err != nil {
		return nil, err
	}
	return user, nil
}

// List fetches one page of accounts matching the prefix filters.
func (u *Users) List(ctx context.Context, params domain.UserSearchParams) (domain.Page[domain.User], error) {
	query := pageQuery(params.PageParams)
	setIfPresent(query, "namePrefix", params.NamePrefix)
	setIfPresent(query, "emailPrefix", params.EmailPrefix)
	setIfPresent(query, "cpfPrefix", params.CPFPrefix)

	var result domain.Page[domain.User]
	if err := u.gw.Get(ctx, "/User/list_users_paginated", query, &result); err != nil {
		return domain.Page[domain.User]{}, err
	}
	return result, nil
}

// Create registers an account.
func (u *Users) Create(ctx context.Context, req domain.RegisterUserRequest) (bool, error) {
	var ok bool
	if err := u.gw.Post(ctx, "/User/register_user", req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Update replaces an account record.
func (u *Users) Update(ctx context.Context, req domain.UpdateUserRequest) (bool, error) {
	var ok bool
	if err := u.gw.Put(ctx, "/User/update_user", req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Delete removes an account.
func (u *Users) Delete(ctx context.Context, userID int) (bool, error) {
	var ok bool
	body := map[string]int{"id": userID}
	if err := u.gw.Delete(ctx, "/User/delete_user", body, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
