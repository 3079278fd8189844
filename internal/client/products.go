package client

import (
	"context"
	"net/url"
	"strconv"

	"backoffice/internal/domain"
	"backoffice/internal/gateway"
)

// Products proxies the catalog product endpoints.
type Products struct {
	gw *gateway.Client
}

func NewProducts(gw *gateway.Client) *Products {
	return &Products{gw: gw}
}

// ByID fetches a single product.
func (p *Products) ByID(ctx context.Context, productID int) (*domain.Product, error) {
	query := url.Values{}
	query.Set("productId", strconv.Itoa(productID))

	var product *domain.Product
	if err := p.gw.Get(ctx, "/Product/get_by_id", query, &product); err != nil {
		return nil, err
	}
	return product, nil
}

// List fetches one page of products matching the prefix filters.
func (p *Products) List(ctx context.Context, params domain.ProductSearchParams) (domain.Page[domain.Product], error) {
	query := pageQuery(params.PageParams)
	setIfPresent(query, "namePrefix", params.NamePrefix)
	setIfPresent(query, "descriptionPrefix", params.DescriptionPrefix)
	setIfPresent(query, "productCodePrefix", params.CodePrefix)
	if params.CategoryID > 0 {
		query.Set("productCategoryIdPrefix", strconv.Itoa(params.CategoryID))
	}

	var result domain.Page[domain.Product]
	if err := p.gw.Get(ctx, "/Product/list_products_paginated", query, &result); err != nil {
		return domain.Page[domain.Product]{}, err
	}
	return result, nil
}

// Create registers a product. The backend answers with a bare boolean.
func (p *Products) Create(ctx context.Context, req domain.RegisterProductRequest) (bool, error) {
	var ok bool
	if err := p.gw.Post(ctx, "/Product/register_product", req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Update replaces a product.
func (p *Products) Update(ctx context.Context, req domain.UpdateProductRequest) (bool, error) {
	var ok bool
	if err := p.gw.Put(ctx, "/Product/update_product", req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Delete removes a product.
func (p *Products) Delete(ctx context.Context, productID int) (bool, error) {
	var ok bool
	body := map[string]int{"productId": productID}
	if err := p.gw.Delete(ctx, "/Product/delete_product", body, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

func pageQuery(page domain.PageParams) url.Values {
	query := url.Values{}
	query.Set("pageNumber", strconv.Itoa(page.PageNumber))
	query.Set("pageSize", strconv.Itoa(page.PageSize))
	return query
}

func setIfPresent(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}
