package domain

// Enumerations mirror the backend's integer wire values. The client never
// invents values outside these sets; unknown values coming off the wire are
// kept as-is and rendered through String as a number.

// CartStatus is the lifecycle state of a cart.
type CartStatus int

const (
	CartActive CartStatus = iota
	CartCheckedOut
	CartAbandoned
)

func (s CartStatus) String() string {
	switch s {
	case CartActive:
		return "active"
	case CartCheckedOut:
		return "checked_out"
	case CartAbandoned:
		return "abandoned"
	}
	return unknown(int(s))
}

// OrderStatus is the server-driven order state. The only transition the
// client may request is the cancel transition.
type OrderStatus int

const (
	OrderPending OrderStatus = iota
	OrderProcessing
	OrderShipped
	OrderDelivered
	OrderCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderPending:
		return "pending"
	case OrderProcessing:
		return "processing"
	case OrderShipped:
		return "shipped"
	case OrderDelivered:
		return "delivered"
	case OrderCancelled:
		return "cancelled"
	}
	return unknown(int(s))
}

// PaymentStatus tracks the payment leg of an order.
type PaymentStatus int

const (
	PaymentPending PaymentStatus = iota
	PaymentPaid
	PaymentFailed
	PaymentRefunded
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentPending:
		return "pending"
	case PaymentPaid:
		return "paid"
	case PaymentFailed:
		return "failed"
	case PaymentRefunded:
		return "refunded"
	}
	return unknown(int(s))
}

// PaymentMethod is chosen at checkout time.
type PaymentMethod int

const (
	PaymentCreditCard PaymentMethod = iota
	PaymentDebitCard
	PaymentPix
	PaymentCash
	PaymentBankSlip
)

func (m PaymentMethod) String() string {
	switch m {
	case PaymentCreditCard:
		return "credit_card"
	case PaymentDebitCard:
		return "debit_card"
	case PaymentPix:
		return "pix"
	case PaymentCash:
		return "cash"
	case PaymentBankSlip:
		return "bank_slip"
	}
	return unknown(int(m))
}

// Role identifies the access level of a user account.
type Role int

const (
	RoleAdministrator Role = iota + 1
	RoleEmployee
	RoleCustomer
)

func (r Role) String() string {
	switch r {
	case RoleAdministrator:
		return "administrator"
	case RoleEmployee:
		return "employee"
	case RoleCustomer:
		return "customer"
	}
	return unknown(int(r))
}

// EntityType names the entity family an image is attached to.
type EntityType int

const (
	EntityUser EntityType = iota + 1
	EntityProduct
	EntityClient
	EntityCategory
)

// ImageType classifies an uploaded image.
type ImageType int

const (
	ImageAvatar ImageType = iota + 1
	ImageProfile
	ImageProductMain
	ImageProductGallery
	ImageThumbnail
	ImageBanner
)
