package domain

import "time"

// =============================================================================
// PRODUCT DOMAIN TYPES
// =============================================================================

// Category is the product category of a catalog entry.
type Category string

const (
	CategorySmartphone Category = "Smartphone"
	CategoryLaptop     Category = "Laptop"
	CategoryAppliance  Category = "Appliance"
)

// Valid reports whether c is one of the three allowed categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySmartphone, CategoryLaptop, CategoryAppliance:
		return true
	}
	return false
}

// DateLayout is the wire format for all catalog dates (arrival, sale, payment).
const DateLayout = "2006-01-02"

// Today returns the current date in DateLayout format.
func Today() string {
	return time.Now().Format(DateLayout)
}

// Product represents a product concept in the catalog. The model is the
// unique key; Quantity is the number of units currently in stock.
type Product struct {
	Model        string   `json:"model"`
	Category     Category `json:"category"`
	Quantity     int      `json:"quantity"`
	Details      string   `json:"details"`
	SellingPrice float64  `json:"sellingPrice"`
	ArrivalDate  string   `json:"arrivalDate"`
}

// Grouping selects how catalog listings are filtered.
type Grouping string

const (
	GroupingNone     Grouping = ""
	GroupingCategory Grouping = "category"
	GroupingModel    Grouping = "model"
)

// ProductFilter carries the optional grouping parameters of a catalog listing.
// Category may only be set with GroupingCategory, Model only with GroupingModel.
type ProductFilter struct {
	Grouping Grouping
	Category string
	Model    string
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

var (
	ErrProductNotFound      = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrProductAlreadyExists = &Error{Code: ECONFLICT, Message: "The product already exists"}
	ErrEmptyStock           = &Error{Code: ECONFLICT, Message: "Product stock is empty"}
	ErrLowStock             = &Error{Code: ECONFLICT, Message: "Product stock cannot satisfy the requested quantity"}
	ErrInvalidDate          = &Error{Code: EINVALID, Message: "Input date is not valid"}
)
