package cybersource

// fieldMapping translates canonical, gateway-agnostic field keys into the
// literal names one gateway variant expects on its hosted form. Scalar
// keys map one to one; group keys (customer, billing_address, ...) carry a
// table of sub-attributes. Keys or sub-attributes outside the table are
// dropped without error so callers can probe capabilities freely.
type fieldMapping struct {
	scalars map[string]string
	groups  map[string]map[string]string
}

// setScalar maps a canonical scalar key onto the field set. Unknown keys
// are a no-op.
func (m *fieldMapping) setScalar(fs *FieldSet, key, value string) {
	if name, ok := m.scalars[key]; ok {
		fs.Set(name, value)
	}
}

// setGroup maps the sub-attributes of a canonical group key onto the
// field set. Unknown groups and unknown sub-attributes are no-ops.
func (m *fieldMapping) setGroup(fs *FieldSet, key string, attrs map[string]string) {
	group, ok := m.groups[key]
	if !ok {
		return
	}
	for attr, value := range attrs {
		if name, ok := group[attr]; ok {
			fs.Set(name, value)
		}
	}
}

// sopMapping covers the legacy Silent Order POST hosted order page
var sopMapping = &fieldMapping{
	scalars: map[string]string{
		"account":           "merchantID",
		"credential2":       "orderPage_serialNumber",
		"transaction_type":  "orderPage_transactionType",
		"order":             "orderNumber",
		"currency":          "currency",
		"amount":            "amount",
		"ignore_avs":        "orderPage_ignoreAVS",
		"version":           "orderPage_version",
		"description":       "comments",
		"tax":               "taxAmount",
		"notify_url":        "orderPage_merchantURLPostAddress",
		"return_url":        "orderPage_receiptResponseURL",
		"cancel_return_url": "orderPage_cancelResponseURL",
		"decline_url":       "orderPage_declineResponseURL",
	},
	groups: map[string]map[string]string{
		"customer": {
			"first_name": "billTo_firstName",
			"last_name":  "billTo_lastName",
			"email":      "billTo_email",
			"phone":      "billTo_phoneNumber",
		},
		"billing_address": {
			"city":     "billTo_city",
			"address1": "billTo_street1",
			"address2": "billTo_street2",
			"state":    "billTo_state",
			"country":  "billTo_country",
		},
		"shipping_address": {
			"city":     "shipTo_city",
			"address1": "shipTo_street1",
			"address2": "shipTo_street2",
			"state":    "shipTo_state",
			"country":  "shipTo_country",
		},
		"credit_card": {
			"number":             "card_accountNumber",
			"expiry_month":       "card_expirationMonth",
			"expiry_year":        "card_expirationYear",
			"verification_value": "card_cvNumber",
			"card_type":          "card_cardType",
		},
	},
}

// secureAcceptanceMapping covers the newer Secure Acceptance hosted checkout
var secureAcceptanceMapping = &fieldMapping{
	scalars: map[string]string{
		"account":          "access_key",
		"credential2":      "profile_id",
		"transaction_type": "transaction_type",
		"order":            "reference_number",
		"currency":         "currency",
		"amount":           "amount",
		"version":          "version",
		"description":      "merchant_defined_data1",
		"tax":              "tax_amount",
		"notify_url":       "override_backoffice_post_url",
		"return_url":       "override_custom_receipt_page",
		"cancel_return_url": "override_custom_cancel_page",
	},
	groups: map[string]map[string]string{
		"customer": {
			"first_name": "bill_to_forename",
			"last_name":  "bill_to_surname",
			"email":      "bill_to_email",
			"phone":      "bill_to_phone",
		},
		"billing_address": {
			"city":     "bill_to_address_city",
			"address1": "bill_to_address_line1",
			"address2": "bill_to_address_line2",
			"state":    "bill_to_address_state",
			"country":  "bill_to_address_country",
			"zip":      "bill_to_address_postal_code",
		},
		"shipping_address": {
			"city":     "ship_to_address_city",
			"address1": "ship_to_address_line1",
			"address2": "ship_to_address_line2",
			"state":    "ship_to_address_state",
			"country":  "ship_to_address_country",
			"zip":      "ship_to_address_postal_code",
		},
		"credit_card": {
			"number":             "card_number",
			"expiry_month":       "card_expiry_month",
			"expiry_year":        "card_expiry_year",
			"verification_value": "card_cvn",
			"card_type":          "card_type",
		},
	},
}
