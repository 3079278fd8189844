package client

import (
	"context"

	"backoffice/internal/domain"
	"backoffice/internal/gateway"
)

// Cart proxies the cart endpoints. The synchronization store, not this
// client, decides when to refetch.
type Cart struct {
	gw *gateway.Client
}

func NewCart(gw *gateway.Client) *Cart {
	return &Cart{gw: gw}
}

// MyCart fetches the caller's cart. A user who never added anything has no
// cart yet; that case comes back as (nil, nil).
func (c *Cart) MyCart(ctx context.Context) (*domain.Cart, error) {
	var cart *domain.Cart
	if err := c.gw.Get(ctx, "/Cart/list_cart_items_by_user", nil, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddProduct puts a product into the active cart.
func (c *Cart) AddProduct(ctx context.Context, req domain.AddToCartRequest) error {
	return c.gw.Post(ctx, "/Cart/add_product_to_cart", req, nil)
}

// UpdateItem changes the quantity of one cart line.
func (c *Cart) UpdateItem(ctx context.Context, req domain.UpdateCartItemRequest) error {
	return c.gw.Put(ctx, "/Cart/update_product_from_user_cart", req, nil)
}

// RemoveItem deletes one cart line.
func (c *Cart) RemoveItem(ctx context.Context, cartItemID int) error {
	req := domain.RemoveFromCartRequest{CartItemID: cartItemID}
	return c.gw.Delete(ctx, "/Cart/remove_product_from_user_cart", req, nil)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	return c.gw.Delete(ctx, "/Cart/clear_user_cart", nil, nil)
}
