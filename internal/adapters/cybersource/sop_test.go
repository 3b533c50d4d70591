package cybersource

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/cybersource-service/internal/domain/models"
	pkgerrors "github.com/kevin07696/cybersource-service/pkg/errors"
)

func newTestSOPBuilder(t *testing.T) *SOPBuilder {
	t.Helper()
	b, err := NewSOPBuilder("order-500", "CyberSource_TestID", SOPOptions{
		Amount:       decimal.NewFromInt(500),
		Currency:     "AED",
		Credential2:  "Test_serialNumber",
		SharedSecret: "Test_sharedSecret",
	})
	require.NoError(t, err)
	return b
}

func TestSOPBuilderBasicFields(t *testing.T) {
	b := newTestSOPBuilder(t)
	fields := b.Fields()

	assert.Equal(t, "CyberSource_TestID", fields.Get("merchantID"))
	assert.Equal(t, "Test_serialNumber", fields.Get("orderPage_serialNumber"))
	assert.Equal(t, "AED", fields.Get("currency"))
	assert.Equal(t, "500", fields.Get("amount"))
	assert.Equal(t, "order-500", fields.Get("orderNumber"))
	assert.Equal(t, b.Timestamp(), fields.Get("orderPage_timestamp"))
	assert.Equal(t, "sale", fields.Get("orderPage_transactionType"))
	assert.Equal(t, "true", fields.Get("orderPage_ignoreAVS"))
	assert.Equal(t, "7", fields.Get("orderPage_version"))
	assert.Equal(t, "true", fields.Get("orderPage_sendMerchantURLPost"))
	assert.Equal(t, "na", fields.Get("billTo_country"))
	assert.Equal(t, "na", fields.Get("billTo_city"))
	assert.Equal(t, "na", fields.Get("billTo_street1"))
	assert.False(t, fields.Has("billTo_firstName"))
}

func TestSOPBuilderSecretNeverBecomesField(t *testing.T) {
	b := newTestSOPBuilder(t)
	for _, pair := range b.Fields().Pairs() {
		assert.NotEqual(t, "Test_sharedSecret", pair.Value, "shared secret leaked into field %s", pair.Name)
	}
}

func TestSOPBuilderMissingRequiredOptions(t *testing.T) {
	base := SOPOptions{
		Amount:       decimal.NewFromInt(500),
		Currency:     "AED",
		Credential2:  "Test_serialNumber",
		SharedSecret: "Test_sharedSecret",
	}

	tests := []struct {
		name    string
		mutate  func(*SOPOptions)
		wantKey string
	}{
		{
			name:    "missing credential2",
			mutate:  func(o *SOPOptions) { o.Credential2 = "" },
			wantKey: "credential2",
		},
		{
			name:    "missing amount",
			mutate:  func(o *SOPOptions) { o.Amount = decimal.Decimal{} },
			wantKey: "amount",
		},
		{
			name:    "missing currency",
			mutate:  func(o *SOPOptions) { o.Currency = "" },
			wantKey: "currency",
		},
		{
			name:    "missing shared secret",
			mutate:  func(o *SOPOptions) { o.SharedSecret = "" },
			wantKey: "shared_secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base
			tt.mutate(&opts)

			_, err := NewSOPBuilder("order-500", "CyberSource_TestID", opts)
			require.Error(t, err)

			var cfgErr *pkgerrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantKey, cfgErr.Key)
			assert.Contains(t, err.Error(), "missing required parameter")
		})
	}
}

func TestSOPBuilderCustomerFields(t *testing.T) {
	b := newTestSOPBuilder(t)
	b.SetCustomer(models.Customer{
		FirstName: "Cody",
		LastName:  "Fauser",
		Email:     "cody@example.com",
		Phone:     "(555)555-5555",
	})

	fields := b.Fields()
	assert.Equal(t, "Cody", fields.Get("billTo_firstName"))
	assert.Equal(t, "Fauser", fields.Get("billTo_lastName"))
	assert.Equal(t, "cody@example.com", fields.Get("billTo_email"))
	assert.Equal(t, "(555)555-5555", fields.Get("billTo_phoneNumber"))
}

func TestSOPBuilderBillingAddressOverwritesPlaceholders(t *testing.T) {
	b := newTestSOPBuilder(t)
	b.SetBillingAddress(models.Address{
		Address1: "1 My Street",
		City:     "Leeds",
		State:    "Yorkshire",
		Country:  "CA",
	})

	fields := b.Fields()
	assert.Equal(t, "1 My Street", fields.Get("billTo_street1"))
	assert.Equal(t, "Leeds", fields.Get("billTo_city"))
	assert.Equal(t, "Yorkshire", fields.Get("billTo_state"))
	assert.Equal(t, "CA", fields.Get("billTo_country"))
}

func TestSOPBuilderShippingAddress(t *testing.T) {
	b := newTestSOPBuilder(t)
	b.SetShippingAddress(models.Address{
		Address1: "1 My Street",
		City:     "Leeds",
		State:    "Yorkshire",
		Country:  "CA",
	})

	fields := b.Fields()
	assert.Equal(t, "1 My Street", fields.Get("shipTo_street1"))
	assert.Equal(t, "Leeds", fields.Get("shipTo_city"))
	assert.Equal(t, "Yorkshire", fields.Get("shipTo_state"))
	assert.Equal(t, "CA", fields.Get("shipTo_country"))
}

func TestSOPBuilderCardFields(t *testing.T) {
	b := newTestSOPBuilder(t)
	b.SetCard(models.Card{
		Number:            "4111111111111111",
		ExpiryMonth:       "1",
		ExpiryYear:        "2013",
		VerificationValue: "123",
		CardType:          "001",
	})

	fields := b.Fields()
	assert.Equal(t, "4111111111111111", fields.Get("card_accountNumber"))
	assert.Equal(t, "1", fields.Get("card_expirationMonth"))
	assert.Equal(t, "2013", fields.Get("card_expirationYear"))
	assert.Equal(t, "123", fields.Get("card_cvNumber"))
	assert.Equal(t, "001", fields.Get("card_cardType"))
}

func TestSOPBuilderUnknownKeyIsNoOp(t *testing.T) {
	b := newTestSOPBuilder(t)
	before := b.Fields().Pairs()

	b.Set("company_address", "500 Dwemthy Fox Road")
	b.SetGroup("company_address", map[string]string{"address": "500 Dwemthy Fox Road"})

	assert.Equal(t, before, b.Fields().Pairs())
}

func TestSOPBuilderUnknownAddressAttributeIsNoOp(t *testing.T) {
	b := newTestSOPBuilder(t)
	before := b.Fields().Pairs()

	b.SetGroup("billing_address", map[string]string{"street": "My Street"})

	assert.Equal(t, before, b.Fields().Pairs())
}

func TestSOPBuilderTimestampMemoized(t *testing.T) {
	b := newTestSOPBuilder(t)

	first := b.Timestamp()
	require.NotEmpty(t, first)
	assert.GreaterOrEqual(t, len(first), 13, "seconds plus three millisecond digits")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, b.Timestamp())
	}
	assert.Equal(t, first, b.Fields().Get("orderPage_timestamp"))
}

func TestSOPBuilderSignature(t *testing.T) {
	b := newTestSOPBuilder(t)
	fields := b.Fields()

	mac := hmac.New(sha1.New, []byte("Test_sharedSecret"))
	mac.Write([]byte("CyberSource_TestID" + "500" + "AED" + b.Timestamp() + "sale"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, fields.Get("orderPage_signaturePublic"))
	assert.NotContains(t, fields.Get("orderPage_signaturePublic"), "\n")
}

func TestSOPSignatureDeterministicAndSensitive(t *testing.T) {
	fs := NewFieldSet()
	fs.Set("merchantID", "CyberSource_TestID")
	fs.Set("amount", "500")
	fs.Set("currency", "AED")
	fs.Set("orderPage_transactionType", "sale")

	first := sopSignature("Test_sharedSecret", fs, "1285021951907")
	assert.Equal(t, first, sopSignature("Test_sharedSecret", fs, "1285021951907"))

	seen := map[string]bool{first: true}
	mutations := []func(){
		func() { fs.Set("merchantID", "Other_TestID") },
		func() { fs.Set("amount", "501") },
		func() { fs.Set("currency", "USD") },
		func() { fs.Set("orderPage_transactionType", "authorize") },
	}
	for _, mutate := range mutations {
		mutate()
		sig := sopSignature("Test_sharedSecret", fs, "1285021951907")
		assert.False(t, seen[sig], "mutating a signed field must change the signature")
		seen[sig] = true
	}
}

func TestSOPBuilderLineItems(t *testing.T) {
	b := newTestSOPBuilder(t)

	err := b.AddLineItems([]models.LineItem{
		{Name: "Widget", SKU: "W-1", UnitPrice: "10.00", TaxAmount: "1.00", Quantity: 2},
		{Name: "No SKU", UnitPrice: "5.00"},
	})
	require.NoError(t, err)

	fields := b.Fields()
	assert.Equal(t, "1", fields.Get("lineItemCount"))
	assert.Equal(t, "Widget", fields.Get("item_0_productName"))
	assert.Equal(t, "W-1", fields.Get("item_0_productSKU"))
	assert.Equal(t, "1.00", fields.Get("item_0_taxAmount"))
	assert.Equal(t, "10.00", fields.Get("item_0_unitPrice"))
	assert.Equal(t, "2", fields.Get("item_0_quantity"))
	assert.False(t, fields.Has("item_1_productName"), "invalid item must not be indexed")
}

func TestSOPBuilderLineItemDefaults(t *testing.T) {
	b := newTestSOPBuilder(t)

	err := b.AddLineItems([]models.LineItem{
		{Name: "Widget", SKU: "W-1", UnitPrice: "10.00"},
	})
	require.NoError(t, err)

	fields := b.Fields()
	assert.Equal(t, "0.00", fields.Get("item_0_taxAmount"))
	assert.Equal(t, "1", fields.Get("item_0_quantity"))
}

func TestSOPBuilderLineItemsRequired(t *testing.T) {
	b := newTestSOPBuilder(t)

	err := b.AddLineItems(nil)
	require.Error(t, err)

	var cfgErr *pkgerrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "line_items", cfgErr.Key)
}

func TestSOPBuilderFragmentHook(t *testing.T) {
	called := 0
	b, err := NewSOPBuilder("order-500", "CyberSource_TestID", SOPOptions{
		Amount:       decimal.NewFromInt(500),
		Currency:     "AED",
		Credential2:  "Test_serialNumber",
		SharedSecret: "Test_sharedSecret",
		Fragment: func() string {
			called++
			return "first-name-input"
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, called)
	assert.Equal(t, []string{"first-name-input"}, b.Fragments())
}

func TestSOPBuilderAmountUsesCanonicalDecimalRendering(t *testing.T) {
	b, err := NewSOPBuilder("order-500", "CyberSource_TestID", SOPOptions{
		Amount:       decimal.RequireFromString("50.00"),
		Currency:     "AED",
		Credential2:  "Test_serialNumber",
		SharedSecret: "Test_sharedSecret",
	})
	require.NoError(t, err)

	// trailing zeros are trimmed; the signature covers the posted string
	assert.Equal(t, "50", b.Fields().Get("amount"))
	assert.Equal(t,
		sopSignature("Test_sharedSecret", b.Fields(), b.Timestamp()),
		b.Fields().Get("orderPage_signaturePublic"),
	)
}
