package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"backoffice/internal/domain"
	"backoffice/internal/gateway"
)

// Orders proxies the order endpoints.
type Orders struct {
	gw *gateway.Client
}

func NewOrders(gw *gateway.Client) *Orders {
	return &Orders{gw: gw}
}

// Checkout creates an order from the caller's active cart.
func (o *Orders) Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Order, error) {
	var order *domain.Order
	if err := o.gw.Post(ctx, "/Order/checkout", req, &order); err != nil {
		return nil, err
	}
	return order, nil
}

// ProcessPayment reports payment completion for an order.
func (o *Orders) ProcessPayment(ctx context.Context, req domain.ProcessPaymentRequest) (bool, error) {
	var ok bool
	if err := o.gw.Post(ctx, "/Order/process-payment", req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Cancel requests the cancel transition. The reason travels as the body.
func (o *Orders) Cancel(ctx context.Context, orderID int, reason string) (bool, error) {
	var ok bool
	path := fmt.Sprintf("/Order/cancel/%d", orderID)
	if err := o.gw.Put(ctx, path, reason, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// ByID fetches a single order.
func (o *Orders) ByID(ctx context.Context, orderID int) (*domain.Order, error) {
	var order *domain.Order
	path := fmt.Sprintf("/Order/get_order_by_id/%d", orderID)
	if err := o.gw.Get(ctx, path, nil, &order); err != nil {
		return nil, err
	}
	return order, nil
}

// ByNumber fetches a single order by its human-facing number.
func (o *Orders) ByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var order *domain.Order
	path := "/Order/get_order_by_number/" + url.PathEscape(orderNumber)
	if err := o.gw.Get(ctx, path, nil, &order); err != nil {
		return nil, err
	}
	return order, nil
}

// MyOrders fetches one page of the caller's orders.
func (o *Orders) MyOrders(ctx context.Context, page domain.PageParams) (domain.Page[domain.Order], error) {
	query := url.Values{}
	query.Set("pageNumber", strconv.Itoa(page.PageNumber))
	query.Set("pageSize", strconv.Itoa(page.PageSize))

	var result domain.Page[domain.Order]
	if err := o.gw.Get(ctx, "/Order/my-orders", query, &result); err != nil {
		return domain.Page[domain.Order]{}, err
	}
	return result, nil
}
