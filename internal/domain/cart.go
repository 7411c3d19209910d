package domain

// =============================================================================
// CART DOMAIN TYPES
// =============================================================================

// Cart is the rendered view of a shopping cart. Exactly one unpaid cart may
// exist per customer at a time; a paid cart is an immutable historical record.
// Total and the per-line category/price are always derived from the live
// catalog at read time, never frozen at add time.
type Cart struct {
	Customer    string         `json:"customer"`
	Paid        bool           `json:"paid"`
	PaymentDate string         `json:"paymentDate"`
	Total       float64        `json:"total"`
	Products    []CartLineItem `json:"products"`
}

// CartLineItem is one model entry of a cart. Quantity is always >= 1; a line
// item whose quantity would reach zero is deleted instead.
type CartLineItem struct {
	Model    string   `json:"model"`
	Quantity int      `json:"quantity"`
	Category Category `json:"category"`
	Price    float64  `json:"price"`
}

// CartRecord is a stored cart header, before line items and totals are
// projected onto it. PaymentDate is empty for unpaid carts.
type CartRecord struct {
	ID          int64
	Customer    string
	Paid        bool
	PaymentDate string
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrProductNotInCart = &Error{Code: ENOTFOUND, Message: "Product not in cart"}
)
