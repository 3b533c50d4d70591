package ports

import (
	"time"

	"github.com/kevin07696/cybersource-service/internal/domain/models"
)

// FormField is one rendered field of a hosted checkout form
type FormField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CheckoutForm is everything a frontend needs to submit a hosted
// checkout: the gateway endpoint, the signed field set in render order,
// and any extra markup fragments the variant wants on the page.
type CheckoutForm struct {
	PostURL   string      `json:"post_url"`
	Fields    []FormField `json:"fields"`
	Fragments []string    `json:"fragments,omitempty"`
}

// Notification is the normalized view over a gateway POST-back
type Notification interface {
	// Complete reports whether the gateway accepted the transaction
	Complete() bool

	// Status returns the raw gateway decision
	Status() string

	// ReasonCode returns the raw reason code; Reason its published
	// description, "" when the code is unknown
	ReasonCode() string
	Reason() string

	// TransactionID is the gateway-side transaction identifier;
	// ItemID the merchant order reference echoed back
	TransactionID() string
	ItemID() string

	// Gross is the raw posted amount string; Currency the raw posted
	// currency code
	Gross() string
	Currency() string

	// MissingFields and InvalidFields list gateway field complaints in
	// parse order
	MissingFields() []string
	InvalidFields() []string

	// ReceivedAt parses the gateway timestamp; malformed input is a
	// hard error
	ReceivedAt() (time.Time, error)

	// Test reports whether the transaction ran in test mode
	Test() bool
}

// HostedCheckoutAdapter builds outbound hosted-checkout forms and parses
// the gateway's asynchronous POST-back.
// ParseNotification surfaces a *pkgerrors.VerificationError when the
// variant signs its notifications and the signature does not check out;
// the parsed notification is still returned for inspection. Variants
// without notification signatures never return that error.
type HostedCheckoutAdapter interface {
	BuildForm(req *models.CheckoutRequest) (*CheckoutForm, error)
	ParseNotification(raw string) (Notification, error)
}
