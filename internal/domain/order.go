// Package domain holds the order, customer and settings entities the
// payment plugin works against.
package domain

import (
	"time"
)

// PaymentStatus represents the payment state of an order as tracked by the
// host storefront.
type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "PENDING"
	PaymentAuthorized        PaymentStatus = "AUTHORIZED"
	PaymentPaid              PaymentStatus = "PAID"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentVoided            PaymentStatus = "VOIDED"
)

// Address is a postal address as stored against an order or customer.
type Address struct {
	FirstName   string
	LastName    string
	Email       string
	Company     string
	Address1    string
	Address2    string
	City        string
	StateAbbrev string
	Zip         string
	CountryCode string // two-letter ISO
	CountryName string
	Phone       string
}

// FullName joins first and last name for the hosted payment page.
func (a Address) FullName() string {
	return a.FirstName + " " + a.LastName
}

type Order struct {
	ID         int64
	CustomerID int64
	Total      Money
	Status     PaymentStatus

	// Gateway references written back after a successful call. A capture
	// reference is comma-composite: "transactionId,authorizationCode".
	AuthorizationTransactionID   string
	AuthorizationTransactionCode string
	CaptureTransactionID         string

	BillingAddress   Address
	ShippingAddress  *Address
	ShippingRequired bool

	CreatedAt time.Time
	PaidAt    *time.Time
}

// OrderNote is an annotation attached to an order, optionally shown to the
// customer.
type OrderNote struct {
	ID                string
	OrderID           int64
	Note              string
	DisplayToCustomer bool
	CreatedAt         time.Time
}

type Customer struct {
	ID             int64
	Email          string
	BillingAddress Address
}
