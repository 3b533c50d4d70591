package cybersource

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/cybersource-service/internal/domain/models"
	pkgerrors "github.com/kevin07696/cybersource-service/pkg/errors"
	"github.com/kevin07696/cybersource-service/pkg/timeutil"
)

// sopReceivedAtLayout is the authorization timestamp format the legacy
// order page posts back (no separators inside the time part).
const sopReceivedAtLayout = "2006-01-02T150405Z"

var notificationSegment = regexp.MustCompile(`^(\w+)=(.*)$`)

// notification is the shared POST-back state for both gateway variants:
// the raw body plus the parsed, read-only field map. Values are carried
// verbatim as posted; the parser never URL-decodes them.
type notification struct {
	raw    string
	fields *FieldSet
}

// parseNotification decodes an &-joined key=value body. Parsing never
// fails: malformed segments are skipped, duplicate keys overwrite in
// place so iteration still follows input order.
func parseNotification(raw string) notification {
	fields := NewFieldSet()
	for _, segment := range strings.Split(raw, "&") {
		m := notificationSegment.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		fields.Set(m[1], m[2])
	}
	return notification{raw: raw, fields: fields}
}

// Get returns the raw posted value for key, or "" when absent
func (n *notification) Get(key string) string {
	return n.fields.Get(key)
}

// Fields returns the parsed field set
func (n *notification) Fields() *FieldSet {
	return n.fields
}

// Raw returns the unparsed POST body
func (n *notification) Raw() string {
	return n.raw
}

// Status returns the gateway decision verbatim
func (n *notification) Status() string {
	return n.Get("decision")
}

// Complete reports whether the gateway accepted the transaction
func (n *notification) Complete() bool {
	return n.Status() == "ACCEPT"
}

// MissingFields lists the values of every MissingField* key in parse order
func (n *notification) MissingFields() []string {
	return n.collectPrefixed("MissingField")
}

// InvalidFields lists the values of every InvalidField* key in parse order
func (n *notification) InvalidFields() []string {
	return n.collectPrefixed("InvalidField")
}

func (n *notification) collectPrefixed(prefix string) []string {
	var out []string
	for _, name := range n.fields.Names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, n.fields.Get(name))
		}
	}
	return out
}

// SOPNotification is the POST-back from the legacy Silent Order POST
// order page. The legacy page carries no verifiable signature for the
// merchant side; callers rely on the decision fields alone.
type SOPNotification struct {
	notification
}

// ParseSOPNotification parses a legacy order-page POST body
func ParseSOPNotification(raw string) *SOPNotification {
	return &SOPNotification{notification: parseNotification(raw)}
}

// ReasonCode returns the gateway reason code verbatim
func (n *SOPNotification) ReasonCode() string {
	return n.Get("reasonCode")
}

// Reason returns the published description for the reason code, or ""
// when the code is not in the table
func (n *SOPNotification) Reason() string {
	return ReasonText(n.ReasonCode())
}

// TransactionID returns the gateway request id
func (n *SOPNotification) TransactionID() string {
	return n.Get("requestID")
}

// ItemID returns the merchant order number echoed by the gateway
func (n *SOPNotification) ItemID() string {
	return n.Get("orderNumber")
}

// Currency returns the posted order currency verbatim
func (n *SOPNotification) Currency() string {
	return n.Get("orderCurrency")
}

// Gross returns the posted amount as the raw decimal string. The gateway
// does not state a minor-unit convention in the payload; this module
// reads it as major currency units (see Amount).
func (n *SOPNotification) Gross() string {
	return n.Get("orderAmount")
}

// Amount parses Gross into a decimal amount in major currency units
func (n *SOPNotification) Amount() (decimal.Decimal, error) {
	return decimal.NewFromString(n.Gross())
}

// PayerEmail returns the buyer email echoed by the gateway
func (n *SOPNotification) PayerEmail() string {
	return n.Get("billTo_email")
}

// Test reports whether the order page ran against the TEST environment.
// The legacy variant embeds the environment in the payload itself.
func (n *SOPNotification) Test() bool {
	return n.Get("orderPage_environment") == "TEST"
}

// ReceivedAt parses the authorization timestamp. A malformed timestamp
// is a hard failure: downstream handling cannot proceed without it.
func (n *SOPNotification) ReceivedAt() (time.Time, error) {
	return timeutil.ParseDate(sopReceivedAtLayout, n.Get("ccAuthReply_authorizedDateTime"))
}

// SecureAcceptanceNotification is the POST-back from the Secure
// Acceptance hosted checkout. Unlike the legacy page it carries a
// signature over the fields it names itself, recomputable with the
// profile secret key.
type SecureAcceptanceNotification struct {
	notification
	secret string
	mode   models.CheckoutMode
}

// ParseSecureAcceptanceNotification parses a Secure Acceptance POST
// body. The secret key is needed for Verify; mode is the caller's own
// configured environment, which Test reflects.
func ParseSecureAcceptanceNotification(raw, secretKey string, mode models.CheckoutMode) *SecureAcceptanceNotification {
	return &SecureAcceptanceNotification{
		notification: parseNotification(raw),
		secret:       secretKey,
		mode:         mode,
	}
}

// ReasonCode returns the gateway reason code verbatim
func (n *SecureAcceptanceNotification) ReasonCode() string {
	return n.Get("reason_code")
}

// Reason returns the published description for the reason code, or ""
// when the code is not in the table
func (n *SecureAcceptanceNotification) Reason() string {
	return ReasonText(n.ReasonCode())
}

// TransactionID returns the gateway transaction id
func (n *SecureAcceptanceNotification) TransactionID() string {
	return n.Get("transaction_id")
}

// ItemID returns the merchant reference number echoed by the gateway
func (n *SecureAcceptanceNotification) ItemID() string {
	return n.Get("req_reference_number")
}

// Currency returns the posted request currency verbatim
func (n *SecureAcceptanceNotification) Currency() string {
	return n.Get("req_currency")
}

// Gross returns the authorized amount as the raw decimal string,
// falling back to the requested amount for declines, where the gateway
// omits auth_amount.
func (n *SecureAcceptanceNotification) Gross() string {
	if amount := n.Get("auth_amount"); amount != "" {
		return amount
	}
	return n.Get("req_amount")
}

// Amount parses Gross into a decimal amount in major currency units
func (n *SecureAcceptanceNotification) Amount() (decimal.Decimal, error) {
	return decimal.NewFromString(n.Gross())
}

// Test reports whether this checkout ran in test mode. Secure Acceptance
// does not echo an environment flag, so this reflects the caller's own
// configured mode. The mismatch with the legacy variant is gateway
// behavior, not something to smooth over here.
func (n *SecureAcceptanceNotification) Test() bool {
	return n.mode == models.ModeTest
}

// ReceivedAt parses the signed timestamp. A malformed timestamp is a
// hard failure.
func (n *SecureAcceptanceNotification) ReceivedAt() (time.Time, error) {
	return timeutil.ParseDate(signedDateTimeLayout, n.Get("signed_date_time"))
}

// Verify recomputes the signature over the fields named by the
// notification's own signed_field_names and compares it against the
// posted signature. A mismatch comes back as a VerificationError for the
// caller to act on; nothing is raised implicitly.
func (n *SecureAcceptanceNotification) Verify() error {
	received := n.Get("signature")
	expected := secureAcceptanceSignature(n.secret, n.fields, n.Get("signed_field_names"))
	if !signaturesEqual(expected, received) {
		return &pkgerrors.VerificationError{Expected: expected, Received: received}
	}
	return nil
}
