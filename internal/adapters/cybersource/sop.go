package cybersource

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/cybersource-service/internal/domain/models"
	pkgerrors "github.com/kevin07696/cybersource-service/pkg/errors"
	"github.com/kevin07696/cybersource-service/pkg/timeutil"
)

// FragmentFunc renders an extra markup fragment for the hosted form.
// The legacy order page expects an auto-populated first-name input next
// to the generated fields; how that is rendered is the caller's concern,
// the builder only records what the hook produced.
type FragmentFunc func() string

// SOPOptions are the construction options for the legacy Silent Order
// POST builder. Credential2 is the merchant serial number. SharedSecret
// is the HMAC key; it never becomes a form field.
type SOPOptions struct {
	Amount       decimal.Decimal
	Currency     string
	Credential2  string
	SharedSecret string

	// Optional overrides for the defaulted order-page fields
	TransactionType string // default "sale"
	IgnoreAVS       string // default "true"
	Version         string // default "7"

	Fragment FragmentFunc
}

// SOPBuilder assembles the outbound field set for the legacy Silent
// Order POST hosted order page. One builder serves one transaction; the
// timestamp and signature are fixed at construction.
type SOPBuilder struct {
	fields    *FieldSet
	secret    string
	timestamp string
	fragments []string
}

// NewSOPBuilder validates the options and assembles the full field set:
// caller fields, defaults, fixed order-page fields, the memoized
// millisecond timestamp and, last of all, the public signature. Signing
// before the defaults are in place would produce a hash the gateway
// rejects, so the order here is load-bearing.
func NewSOPBuilder(order, account string, opts SOPOptions) (*SOPBuilder, error) {
	if opts.Credential2 == "" {
		return nil, pkgerrors.NewConfigError("credential2")
	}
	if opts.Amount.IsZero() {
		return nil, pkgerrors.NewConfigError("amount")
	}
	if opts.Currency == "" {
		return nil, pkgerrors.NewConfigError("currency")
	}
	if opts.SharedSecret == "" {
		return nil, pkgerrors.NewConfigError("shared_secret")
	}

	b := &SOPBuilder{
		fields: NewFieldSet(),
		secret: opts.SharedSecret,
	}

	m := sopMapping
	m.setScalar(b.fields, "order", order)
	m.setScalar(b.fields, "account", account)
	m.setScalar(b.fields, "credential2", opts.Credential2)
	m.setScalar(b.fields, "amount", opts.Amount.String())
	m.setScalar(b.fields, "currency", opts.Currency)

	transactionType := opts.TransactionType
	if transactionType == "" {
		transactionType = "sale"
	}
	ignoreAVS := opts.IgnoreAVS
	if ignoreAVS == "" {
		ignoreAVS = "true"
	}
	version := opts.Version
	if version == "" {
		version = "7"
	}
	m.setScalar(b.fields, "transaction_type", transactionType)
	m.setScalar(b.fields, "ignore_avs", ignoreAVS)
	m.setScalar(b.fields, "version", version)

	// Fixed order-page fields. The billTo placeholders keep the gateway's
	// field validation quiet when the caller never supplies an address;
	// the address setters overwrite them.
	b.fields.Set("orderPage_sendMerchantURLPost", "true")
	b.fields.Set("billTo_country", "na")
	b.fields.Set("billTo_city", "na")
	b.fields.Set("billTo_street1", "na")

	b.fields.Set("orderPage_timestamp", b.Timestamp())
	b.fields.Set("orderPage_signaturePublic", sopSignature(b.secret, b.fields, b.Timestamp()))

	if opts.Fragment != nil {
		b.fragments = append(b.fragments, opts.Fragment())
	}

	return b, nil
}

// Timestamp returns the order-page timestamp: integer seconds
// concatenated with the millisecond remainder zero-padded to three
// digits. Memoized so every use within one builder, the signature
// included, sees the identical value.
func (b *SOPBuilder) Timestamp() string {
	if b.timestamp == "" {
		b.timestamp = timeutil.UnixMillis(time.Now())
	}
	return b.timestamp
}

// Set maps a canonical scalar key onto its gateway field. Unknown keys
// are accepted and dropped.
func (b *SOPBuilder) Set(key, value string) {
	sopMapping.setScalar(b.fields, key, value)
}

// SetGroup maps the sub-attributes of a canonical group key. Unknown
// groups and unknown sub-attributes leave the field set unchanged.
func (b *SOPBuilder) SetGroup(key string, attrs map[string]string) {
	sopMapping.setGroup(b.fields, key, attrs)
}

// SetCustomer maps the buyer contact details
func (b *SOPBuilder) SetCustomer(c models.Customer) {
	b.SetGroup("customer", customerAttrs(c))
}

// SetBillingAddress maps the billing address
func (b *SOPBuilder) SetBillingAddress(a models.Address) {
	b.SetGroup("billing_address", addressAttrs(a))
}

// SetShippingAddress maps the shipping address
func (b *SOPBuilder) SetShippingAddress(a models.Address) {
	b.SetGroup("shipping_address", addressAttrs(a))
}

// SetCard maps raw card details onto the order-page card fields
func (b *SOPBuilder) SetCard(c models.Card) {
	b.SetGroup("credit_card", cardAttrs(c))
}

// AddLineItems writes the indexed line-item fields. Items missing name,
// SKU or unit price are filtered out before indexing, so indices stay
// dense over the valid items.
func (b *SOPBuilder) AddLineItems(items []models.LineItem) error {
	valid, err := validLineItems(items)
	if err != nil {
		return err
	}

	b.fields.Set("lineItemCount", strconv.Itoa(len(valid)))
	for idx, item := range valid {
		prefix := "item_" + strconv.Itoa(idx) + "_"
		b.fields.Set(prefix+"productName", item.Name)
		b.fields.Set(prefix+"productSKU", item.SKU)
		b.fields.Set(prefix+"taxAmount", lineItemTax(item))
		b.fields.Set(prefix+"unitPrice", item.UnitPrice)
		b.fields.Set(prefix+"quantity", strconv.Itoa(lineItemQuantity(item)))
	}
	return nil
}

// Fields returns the assembled field set
func (b *SOPBuilder) Fields() *FieldSet {
	return b.fields
}

// Fragments returns any markup fragments produced by the render hook
func (b *SOPBuilder) Fragments() []string {
	return b.fragments
}

func customerAttrs(c models.Customer) map[string]string {
	return nonEmpty(map[string]string{
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"email":      c.Email,
		"phone":      c.Phone,
	})
}

func addressAttrs(a models.Address) map[string]string {
	return nonEmpty(map[string]string{
		"address1": a.Address1,
		"address2": a.Address2,
		"city":     a.City,
		"state":    a.State,
		"country":  a.Country,
		"zip":      a.PostalCode,
	})
}

func cardAttrs(c models.Card) map[string]string {
	return nonEmpty(map[string]string{
		"number":             c.Number,
		"expiry_month":       c.ExpiryMonth,
		"expiry_year":        c.ExpiryYear,
		"verification_value": c.VerificationValue,
		"card_type":          c.CardType,
	})
}

func nonEmpty(attrs map[string]string) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func validLineItems(items []models.LineItem) ([]models.LineItem, error) {
	if items == nil {
		return nil, pkgerrors.NewConfigError("line_items")
	}
	valid := make([]models.LineItem, 0, len(items))
	for _, item := range items {
		if item.Valid() {
			valid = append(valid, item)
		}
	}
	return valid, nil
}

func lineItemTax(item models.LineItem) string {
	if item.TaxAmount == "" {
		return "0.00"
	}
	return item.TaxAmount
}

func lineItemQuantity(item models.LineItem) int {
	if item.Quantity == 0 {
		return 1
	}
	return item.Quantity
}
