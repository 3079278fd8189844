package client

import (
	"context"
	"net/url"
	"strconv"

	"backoffice/internal/domain"
	"backoffice/internal/gateway"
)

// Categories proxies the product category endpoints.
type Categories struct {
	gw *gateway.Client
}

func NewCategories(gw *gateway.Client) *Categories {
	return &Categories{gw: gw}
}

// ByID fetches a single category.
func (c *Categories) ByID(ctx context.Context, categoryID int) (*domain.Category, error) {
	query := url.Values{}
	query.Set("productCategoryId", strconv.Itoa(categoryID))

	var category *domain.Category
	if err := c.gw.Get(ctx, "/ProductCategory/get_by_id", query, &category); err != nil {
		return nil, err
	}
	return category, nil
}

// List fetches one page of categories matching the prefix filters.
func (c *Categories) List(ctx context.Context, params domain.CategorySearchParams) (domain.Page[domain.Category], error) {
	query := pageQuery(params.PageParams)
	setIfPresent(query, "namePrefix", params.NamePrefix)
	setIfPresent(query, "descriptionPrefix", params.DescriptionPrefix)
	setIfPresent(query, "codePrefix", params.CodePrefix)

	var result domain.Page[domain.Category]
	if err := c.gw.Get(ctx, "/ProductCategory/list_product_category_paginated", query, &result); err != nil {
		return domain.Page[domain.Category]{}, err
	}
	return result, nil
}

// Create registers a category.
func (c *Categories) Create(ctx context.Context, req domain.RegisterCategoryRequest) (bool, error) {
	var ok bool
	if err := c.gw.Post(ctx, "/ProductCategory/register_product_category", req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Update replaces a category.
func (c *Categories) Update(ctx context.Context, req domain.UpdateCategoryRequest) (bool, error) {
	var ok bool
	if err := c.gw.Put(ctx, "/ProductCategory/update_product_category", req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Delete removes a category.
func (c *Categories) Delete(ctx context.Context, categoryID int) (bool, error) {
	var ok bool
	body := map[string]int{"id": categoryID}
	if err := c.gw.Delete(ctx, "/ProductCategory/delete_product_category", body, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
