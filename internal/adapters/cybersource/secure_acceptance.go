package cybersource

import (
	"encoding/hex"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kevin07696/cybersource-service/internal/domain/models"
	pkgerrors "github.com/kevin07696/cybersource-service/pkg/errors"
	"github.com/kevin07696/cybersource-service/pkg/timeutil"
)

// signedDateTimeLayout is the gateway's request timestamp format: ISO-8601
// UTC truncated to whole seconds with the Z suffix.
const signedDateTimeLayout = "2006-01-02T15:04:05Z"

// The exact field sets covered and not covered by the Secure Acceptance
// signature. The gateway recomputes the signature over the names listed
// in signed_field_names, so these strings must not drift.
const (
	secureAcceptanceSignedFieldNames = "access_key,profile_id,transaction_uuid," +
		"signed_field_names,unsigned_field_names,signed_date_time,locale," +
		"transaction_type,reference_number,amount,currency,payment_method"

	secureAcceptanceUnsignedFieldNames = "card_type,card_number,card_expiry_month," +
		"card_expiry_year,card_cvn,bill_to_forename,bill_to_surname,bill_to_email," +
		"bill_to_phone,bill_to_address_line1,bill_to_address_line2,bill_to_address_city," +
		"bill_to_address_state,bill_to_address_country,bill_to_address_postal_code," +
		"ship_to_address_line1,ship_to_address_line2,ship_to_address_city," +
		"ship_to_address_state,ship_to_address_country,ship_to_address_postal_code," +
		"version,merchant_defined_data1,tax_amount,override_backoffice_post_url," +
		"override_custom_receipt_page,override_custom_cancel_page"
)

// SecureAcceptanceOptions are the construction options for the Secure
// Acceptance builder. Credential2 is the profile id issued with the
// hosted checkout profile. SecretKey is the HMAC key; it never becomes a
// form field.
type SecureAcceptanceOptions struct {
	Amount      decimal.Decimal
	Currency    string
	Credential2 string
	SecretKey   string

	TransactionType string // default "sale"
	Version         string // default "1"

	Fragment FragmentFunc
}

// SecureAcceptanceBuilder assembles the outbound field set for the
// Secure Acceptance hosted checkout. One builder serves one transaction;
// the transaction uuid, timestamp and signature are fixed at
// construction. Card and address fields set afterwards are deliberately
// outside the signed set.
type SecureAcceptanceBuilder struct {
	fields    *FieldSet
	secret    string
	fragments []string
}

// NewSecureAcceptanceBuilder validates the options and assembles the
// full field set. The signature is computed last, after every signed
// field is in place.
func NewSecureAcceptanceBuilder(order, account string, opts SecureAcceptanceOptions) (*SecureAcceptanceBuilder, error) {
	if opts.Amount.IsZero() {
		return nil, pkgerrors.NewConfigError("amount")
	}
	if opts.Currency == "" {
		return nil, pkgerrors.NewConfigError("currency")
	}
	if opts.Credential2 == "" {
		return nil, pkgerrors.NewConfigError("credential2")
	}
	if opts.SecretKey == "" {
		return nil, pkgerrors.NewConfigError("secret_key")
	}

	b := &SecureAcceptanceBuilder{
		fields: NewFieldSet(),
		secret: opts.SecretKey,
	}

	m := secureAcceptanceMapping
	m.setScalar(b.fields, "account", account)
	m.setScalar(b.fields, "credential2", opts.Credential2)
	m.setScalar(b.fields, "order", order)
	m.setScalar(b.fields, "amount", opts.Amount.String())
	m.setScalar(b.fields, "currency", opts.Currency)

	transactionType := opts.TransactionType
	if transactionType == "" {
		transactionType = "sale"
	}
	version := opts.Version
	if version == "" {
		version = "1"
	}
	m.setScalar(b.fields, "transaction_type", transactionType)
	m.setScalar(b.fields, "version", version)

	b.fields.Set("payment_method", "card")
	b.fields.Set("locale", "en")
	b.fields.Set("transaction_uuid", newTransactionUUID())
	b.fields.Set("signed_date_time", timeutil.Now().Format(signedDateTimeLayout))
	b.fields.Set("signed_field_names", secureAcceptanceSignedFieldNames)
	b.fields.Set("unsigned_field_names", secureAcceptanceUnsignedFieldNames)

	b.fields.Set("signature", secureAcceptanceSignature(b.secret, b.fields, secureAcceptanceSignedFieldNames))

	if opts.Fragment != nil {
		b.fragments = append(b.fragments, opts.Fragment())
	}

	return b, nil
}

// newTransactionUUID returns 16 bytes of randomness hex encoded, one
// fresh value per builder
func newTransactionUUID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Set maps a canonical scalar key onto its gateway field. Unknown keys
// are accepted and dropped.
func (b *SecureAcceptanceBuilder) Set(key, value string) {
	secureAcceptanceMapping.setScalar(b.fields, key, value)
}

// SetGroup maps the sub-attributes of a canonical group key. Unknown
// groups and unknown sub-attributes leave the field set unchanged.
func (b *SecureAcceptanceBuilder) SetGroup(key string, attrs map[string]string) {
	secureAcceptanceMapping.setGroup(b.fields, key, attrs)
}

// SetCustomer maps the buyer contact details
func (b *SecureAcceptanceBuilder) SetCustomer(c models.Customer) {
	b.SetGroup("customer", customerAttrs(c))
}

// SetBillingAddress maps the billing address
func (b *SecureAcceptanceBuilder) SetBillingAddress(a models.Address) {
	b.SetGroup("billing_address", addressAttrs(a))
}

// SetShippingAddress maps the shipping address
func (b *SecureAcceptanceBuilder) SetShippingAddress(a models.Address) {
	b.SetGroup("shipping_address", addressAttrs(a))
}

// SetCard maps raw card details onto the unsigned card fields
func (b *SecureAcceptanceBuilder) SetCard(c models.Card) {
	b.SetGroup("credit_card", cardAttrs(c))
}

// AddLineItems writes the indexed line-item fields, filtering invalid
// items first so indices stay dense.
func (b *SecureAcceptanceBuilder) AddLineItems(items []models.LineItem) error {
	valid, err := validLineItems(items)
	if err != nil {
		return err
	}

	b.fields.Set("line_item_count", strconv.Itoa(len(valid)))
	for idx, item := range valid {
		prefix := "item_" + strconv.Itoa(idx) + "_"
		b.fields.Set(prefix+"name", item.Name)
		b.fields.Set(prefix+"sku", item.SKU)
		b.fields.Set(prefix+"tax_amount", lineItemTax(item))
		b.fields.Set(prefix+"unit_price", item.UnitPrice)
		b.fields.Set(prefix+"quantity", strconv.Itoa(lineItemQuantity(item)))
	}
	return nil
}

// Fields returns the assembled field set
func (b *SecureAcceptanceBuilder) Fields() *FieldSet {
	return b.fields
}

// Fragments returns any markup fragments produced by the render hook
func (b *SecureAcceptanceBuilder) Fragments() []string {
	return b.fragments
}
