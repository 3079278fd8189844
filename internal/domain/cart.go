package domain

// CartItem is a single line of a cart. LineTotal is computed server-side as
// quantity times unit price; the client displays it and never recomputes it.
type CartItem struct {
	ID                int     `json:"id"`
	ProductID         int     `json:"productId"`
	ProductName       string  `json:"productName"`
	ProductCode       string  `json:"productCode"`
	Quantity          int     `json:"quantity"`
	UnitPrice         float64 `json:"unitPrice"`
	LineTotal         float64 `json:"totalPrice"`
	ProductImageURL   string  `json:"productImageUrl,omitempty"`
	AvailableQuantity *int    `json:"availableQuantity,omitempty"`
}

// Cart is the server-authoritative cart snapshot. Subtotal and TotalItems are
// always whatever the server last reported; there is no client arithmetic.
type Cart struct {
	ID         int        `json:"id"`
	UserID     string     `json:"userId"`
	Status     CartStatus `json:"status"`
	Subtotal   float64    `json:"subtotal"`
	TotalItems int        `json:"totalItems"`
	Items      []CartItem `json:"items"`
	Discount   float64    `json:"discount,omitempty"`
	CouponCode string     `json:"couponCode,omitempty"`
	CreatedAt  string     `json:"createdAt"`
	UpdatedAt  string     `json:"updatedAt,omitempty"`
}

// AddToCartRequest adds a product to the caller's active cart.
type AddToCartRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// UpdateCartItemRequest changes the quantity of an existing cart line.
type UpdateCartItemRequest struct {
	CartItemID int `json:"cartItemId"`
	Quantity   int `json:"quantity"`
}

// RemoveFromCartRequest removes one line from the cart.
type RemoveFromCartRequest struct {
	CartItemID int `json:"cartItemId"`
}
