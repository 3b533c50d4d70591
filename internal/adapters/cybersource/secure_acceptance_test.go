package cybersource

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/cybersource-service/internal/domain/models"
	pkgerrors "github.com/kevin07696/cybersource-service/pkg/errors"
)

func newTestSecureAcceptanceBuilder(t *testing.T) *SecureAcceptanceBuilder {
	t.Helper()
	b, err := NewSecureAcceptanceBuilder("order-500", "test_access_key", SecureAcceptanceOptions{
		Amount:      decimal.RequireFromString("99.99"),
		Currency:    "USD",
		Credential2: "test_profile_id",
		SecretKey:   "test_secret_key",
	})
	require.NoError(t, err)
	return b
}

func TestSecureAcceptanceBuilderBasicFields(t *testing.T) {
	b := newTestSecureAcceptanceBuilder(t)
	fields := b.Fields()

	assert.Equal(t, "test_access_key", fields.Get("access_key"))
	assert.Equal(t, "test_profile_id", fields.Get("profile_id"))
	assert.Equal(t, "order-500", fields.Get("reference_number"))
	assert.Equal(t, "99.99", fields.Get("amount"))
	assert.Equal(t, "USD", fields.Get("currency"))
	assert.Equal(t, "sale", fields.Get("transaction_type"))
	assert.Equal(t, "1", fields.Get("version"))
	assert.Equal(t, "card", fields.Get("payment_method"))
	assert.Equal(t, "en", fields.Get("locale"))
	assert.Equal(t, secureAcceptanceSignedFieldNames, fields.Get("signed_field_names"))
	assert.Equal(t, secureAcceptanceUnsignedFieldNames, fields.Get("unsigned_field_names"))
	assert.NotEmpty(t, fields.Get("signature"))
}

func TestSecureAcceptanceBuilderMissingRequiredOptions(t *testing.T) {
	base := SecureAcceptanceOptions{
		Amount:      decimal.RequireFromString("99.99"),
		Currency:    "USD",
		Credential2: "test_profile_id",
		SecretKey:   "test_secret_key",
	}

	tests := []struct {
		name    string
		mutate  func(*SecureAcceptanceOptions)
		wantKey string
	}{
		{
			name:    "missing amount",
			mutate:  func(o *SecureAcceptanceOptions) { o.Amount = decimal.Decimal{} },
			wantKey: "amount",
		},
		{
			name:    "missing currency",
			mutate:  func(o *SecureAcceptanceOptions) { o.Currency = "" },
			wantKey: "currency",
		},
		{
			name:    "missing credential2",
			mutate:  func(o *SecureAcceptanceOptions) { o.Credential2 = "" },
			wantKey: "credential2",
		},
		{
			name:    "missing secret key",
			mutate:  func(o *SecureAcceptanceOptions) { o.SecretKey = "" },
			wantKey: "secret_key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base
			tt.mutate(&opts)

			_, err := NewSecureAcceptanceBuilder("order-500", "test_access_key", opts)
			require.Error(t, err)

			var cfgErr *pkgerrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantKey, cfgErr.Key)
		})
	}
}

func TestSecureAcceptanceBuilderTransactionUUID(t *testing.T) {
	first := newTestSecureAcceptanceBuilder(t)
	second := newTestSecureAcceptanceBuilder(t)

	uuid1 := first.Fields().Get("transaction_uuid")
	uuid2 := second.Fields().Get("transaction_uuid")

	assert.Len(t, uuid1, 32, "16 bytes hex encoded")
	_, err := hex.DecodeString(uuid1)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid1, uuid2, "each builder gets a fresh identifier")

	// stable within one builder
	assert.Equal(t, uuid1, first.Fields().Get("transaction_uuid"))
}

func TestSecureAcceptanceBuilderSignedDateTime(t *testing.T) {
	b := newTestSecureAcceptanceBuilder(t)
	stamp := b.Fields().Get("signed_date_time")

	parsed, err := time.Parse(signedDateTimeLayout, stamp)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stamp, "Z"))
	assert.Equal(t, 0, parsed.Nanosecond(), "truncated to whole seconds")
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
}

func TestSecureAcceptanceBuilderSignature(t *testing.T) {
	b := newTestSecureAcceptanceBuilder(t)
	fields := b.Fields()

	var pairs []string
	for _, name := range strings.Split(secureAcceptanceSignedFieldNames, ",") {
		pairs = append(pairs, name+"="+fields.Get(name))
	}
	mac := hmac.New(sha256.New, []byte("test_secret_key"))
	mac.Write([]byte(strings.Join(pairs, ",")))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, fields.Get("signature"))
}

func TestSecureAcceptanceBuilderSecretNeverBecomesField(t *testing.T) {
	b := newTestSecureAcceptanceBuilder(t)
	for _, pair := range b.Fields().Pairs() {
		assert.NotEqual(t, "test_secret_key", pair.Value, "secret key leaked into field %s", pair.Name)
	}
}

func TestSecureAcceptanceBuilderCustomerAndCardAreUnsigned(t *testing.T) {
	b := newTestSecureAcceptanceBuilder(t)
	signatureBefore := b.Fields().Get("signature")

	b.SetCustomer(models.Customer{FirstName: "Cody", LastName: "Fauser", Email: "cody@example.com"})
	b.SetCard(models.Card{Number: "4111111111111111", ExpiryMonth: "12", ExpiryYear: "2030", VerificationValue: "123", CardType: "001"})

	fields := b.Fields()
	assert.Equal(t, "Cody", fields.Get("bill_to_forename"))
	assert.Equal(t, "Fauser", fields.Get("bill_to_surname"))
	assert.Equal(t, "4111111111111111", fields.Get("card_number"))
	assert.Equal(t, "123", fields.Get("card_cvn"))
	assert.Equal(t, signatureBefore, fields.Get("signature"), "unsigned fields must not disturb the signature")
}

func TestSecureAcceptanceBuilderUnknownFieldsAreNoOps(t *testing.T) {
	b := newTestSecureAcceptanceBuilder(t)
	before := b.Fields().Pairs()

	b.Set("company_address", "500 Dwemthy Fox Road")
	b.SetGroup("billing_address", map[string]string{"street": "My Street"})

	assert.Equal(t, before, b.Fields().Pairs())
}

func TestSecureAcceptanceBuilderLineItems(t *testing.T) {
	b := newTestSecureAcceptanceBuilder(t)

	err := b.AddLineItems([]models.LineItem{
		{Name: "Widget", SKU: "W-1", UnitPrice: "10.00"},
		{SKU: "orphan", UnitPrice: "5.00"},
		{Name: "Gadget", SKU: "G-1", UnitPrice: "3.50", Quantity: 3},
	})
	require.NoError(t, err)

	fields := b.Fields()
	assert.Equal(t, "2", fields.Get("line_item_count"))
	assert.Equal(t, "Widget", fields.Get("item_0_name"))
	assert.Equal(t, "Gadget", fields.Get("item_1_name"), "indices stay dense over valid items")
	assert.Equal(t, "3", fields.Get("item_1_quantity"))
	assert.False(t, fields.Has("item_2_name"))
}

func TestSecureAcceptanceEveryMappedFieldIsEnumerated(t *testing.T) {
	enumerated := make(map[string]bool)
	for _, name := range strings.Split(secureAcceptanceSignedFieldNames, ",") {
		enumerated[name] = true
	}
	for _, name := range strings.Split(secureAcceptanceUnsignedFieldNames, ",") {
		enumerated[name] = true
	}

	// The gateway rejects posted fields it cannot find in either list, so
	// everything the mapping tables can emit must be covered.
	for key, name := range secureAcceptanceMapping.scalars {
		assert.Truef(t, enumerated[name], "scalar %q maps to unenumerated field %q", key, name)
	}
	for group, attrs := range secureAcceptanceMapping.groups {
		for attr, name := range attrs {
			assert.Truef(t, enumerated[name], "group %q attr %q maps to unenumerated field %q", group, attr, name)
		}
	}
}
