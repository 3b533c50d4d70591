package models

import (
	"github.com/shopspring/decimal"
)

// CheckoutMode selects which gateway environment a hosted checkout targets
type CheckoutMode string

const (
	ModeProduction CheckoutMode = "production"
	ModeTest       CheckoutMode = "test"
)

// Customer holds the buyer contact details for a hosted checkout
type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Address holds a billing or shipping address
type Address struct {
	Address1   string
	Address2   string
	City       string
	State      string
	Country    string
	PostalCode string
}

// Card holds raw card details for gateways that accept them on the
// hosted form. Never logged, never persisted.
type Card struct {
	Number            string
	ExpiryMonth       string
	ExpiryYear        string
	VerificationValue string
	CardType          string
}

// LineItem is one order line on the hosted payment page.
// A line item is only forwarded to the gateway when Name, SKU and
// UnitPrice are all present; anything else is silently skipped.
type LineItem struct {
	Name      string
	SKU       string
	UnitPrice string
	TaxAmount string // defaults to "0.00" when empty
	Quantity  int    // defaults to 1 when zero
}

// Valid reports whether the item carries the three mandatory attributes
func (li LineItem) Valid() bool {
	return li.Name != "" && li.SKU != "" && li.UnitPrice != ""
}

// CheckoutRequest is the canonical, gateway-agnostic description of one
// hosted checkout. Adapters translate it into the literal field names
// their gateway variant expects.
type CheckoutRequest struct {
	Order       string
	Account     string
	Amount      decimal.Decimal
	Currency    string
	Credential2 string
	Description string
	Tax         string

	Customer        *Customer
	BillingAddress  *Address
	ShippingAddress *Address
	Card            *Card
	LineItems       []LineItem

	NotifyURL       string
	ReturnURL       string
	CancelReturnURL string
	DeclineURL      string
}
