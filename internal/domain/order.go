package domain

// OrderItem is an owned copy of a cart line frozen at checkout time.
type OrderItem struct {
	ID              int     `json:"id"`
	ProductID       int     `json:"productId"`
	ProductName     string  `json:"productName"`
	ProductCode     string  `json:"productCode,omitempty"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	LineTotal       float64 `json:"totalPrice"`
	ProductImageURL string  `json:"productImageUrl,omitempty"`
}

// Order is immutable from the client's perspective except for the cancel
// transition. All other status changes are server-driven.
type Order struct {
	ID            int           `json:"id"`
	OrderNumber   string        `json:"orderNumber"`
	UserID        string        `json:"userId"`
	Status        OrderStatus   `json:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Subtotal      float64       `json:"subtotal"`
	Discount      float64       `json:"discount"`
	ShippingCost  float64       `json:"shippingCost"`
	Total         float64       `json:"total"`
	Items         []OrderItem   `json:"items"`
	CreatedAt     string        `json:"createdAt"`
	PaidAt        string        `json:"paidAt,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// CheckoutRequest turns the active cart into an order.
type CheckoutRequest struct {
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	ShippingCost  float64       `json:"shippingCost"`
	Discount      float64       `json:"discount"`
	Notes         string        `json:"notes,omitempty"`
}

// ProcessPaymentRequest reports a completed payment for an order.
type ProcessPaymentRequest struct {
	OrderID        int    `json:"orderId"`
	TransactionID  string `json:"transactionId,omitempty"`
	PaymentDetails string `json:"paymentDetails,omitempty"`
}
