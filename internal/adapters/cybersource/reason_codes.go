package cybersource

import (
	pkgerrors "github.com/kevin07696/cybersource-service/pkg/errors"
)

// ReasonCodeInfo describes one gateway reason code
type ReasonCodeInfo struct {
	Code        string
	Description string
	IsApproved  bool
	Category    pkgerrors.ErrorCategory
}

// Reason code map published with the hosted order page. Kept in manual
// sync with the gateway's documentation; the gateway may post codes that
// are not listed here.
var reasonCodes = map[string]ReasonCodeInfo{
	"100": {
		Code:        "100",
		Description: "Successful transaction",
		IsApproved:  true,
		Category:    pkgerrors.CategoryApproved,
	},
	"101": {
		Code:        "101",
		Description: "Request is missing one or more required fields",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
	"102": {
		Code:        "102",
		Description: "One or more fields contains invalid data",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
	"150": {
		Code:        "150",
		Description: "General failure",
		Category:    pkgerrors.CategorySystemError,
	},
	"151": {
		Code:        "151",
		Description: "The request was received but a server time-out occurred",
		Category:    pkgerrors.CategorySystemError,
	},
	"152": {
		Code:        "152",
		Description: "The request was received, but a service timed out",
		Category:    pkgerrors.CategorySystemError,
	},
	"200": {
		Code:        "200",
		Description: "The authorization request was approved by the issuing bank but declined by CyberSource because it did not pass the AVS check",
		Category:    pkgerrors.CategoryDeclined,
	},
	"201": {
		Code:        "201",
		Description: "The issuing bank has questions about the request",
		Category:    pkgerrors.CategoryDeclined,
	},
	"202": {
		Code:        "202",
		Description: "Expired card",
		Category:    pkgerrors.CategoryExpiredCard,
	},
	"203": {
		Code:        "203",
		Description: "General decline of the card",
		Category:    pkgerrors.CategoryDeclined,
	},
	"204": {
		Code:        "204",
		Description: "Insufficient funds in the account",
		Category:    pkgerrors.CategoryDeclined,
	},
	"205": {
		Code:        "205",
		Description: "Stolen or lost card",
		Category:    pkgerrors.CategoryFraud,
	},
	"207": {
		Code:        "207",
		Description: "Issuing bank unavailable",
		Category:    pkgerrors.CategorySystemError,
	},
	"208": {
		Code:        "208",
		Description: "Inactive card or card not authorized for card-not-present transactions",
		Category:    pkgerrors.CategoryInvalidCard,
	},
	"209": {
		Code:        "209",
		Description: "American Express Card Identifiction Digits (CID) did not match",
		Category:    pkgerrors.CategoryInvalidCard,
	},
	"210": {
		Code:        "210",
		Description: "The card has reached the credit limit",
		Category:    pkgerrors.CategoryDeclined,
	},
	"211": {
		Code:        "211",
		Description: "Invalid card verification number",
		Category:    pkgerrors.CategoryInvalidCard,
	},
	"221": {
		Code:        "221",
		Description: "The customer matched an entry on the processor's negative file",
		Category:    pkgerrors.CategoryFraud,
	},
	"230": {
		Code:        "230",
		Description: "The authorization request was approved by the issuing bank but declined by CyberSource because it did not pass the card verification check",
		Category:    pkgerrors.CategoryDeclined,
	},
	"231": {
		Code:        "231",
		Description: "Invalid account number",
		Category:    pkgerrors.CategoryInvalidCard,
	},
	"232": {
		Code:        "232",
		Description: "The card type is not accepted by the payment processor",
		Category:    pkgerrors.CategoryInvalidCard,
	},
	"233": {
		Code:        "233",
		Description: "General decline by the processor",
		Category:    pkgerrors.CategoryDeclined,
	},
	"234": {
		Code:        "234",
		Description: "A problem exists with your CyberSource merchant configuration",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
	"235": {
		Code:        "235",
		Description: "The requested amount exceeds the originally authorized amount",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
	"236": {
		Code:        "236",
		Description: "Processor failure",
		Category:    pkgerrors.CategorySystemError,
	},
	"237": {
		Code:        "237",
		Description: "The authorization has already been reversed",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
	"238": {
		Code:        "238",
		Description: "The authorization has already been captured",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
	"239": {
		Code:        "239",
		Description: "The requested transaction amount must match the previous transaction amount",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
	"240": {
		Code:        "240",
		Description: "The card type sent is invalid or does not correlate with the credit card number",
		Category:    pkgerrors.CategoryInvalidCard,
	},
	"241": {
		Code:        "241",
		Description: "The request ID is invalid",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
	"242": {
		Code:        "242",
		Description: "You requested a capture, but there is no corresponding, unused authorization record.",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
	"243": {
		Code:        "243",
		Description: "The transaction has already been settled or reversed",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
	"244": {
		Code:        "244",
		Description: "The bank account number failed the validation check",
		Category:    pkgerrors.CategoryInvalidCard,
	},
	"246": {
		Code:        "246",
		Description: "The capture or credit is not voidable because the capture or credit information has already been submitted to your processor",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
	"247": {
		Code:        "247",
		Description: "You requested a credit for a capture that was previously voided",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
	"250": {
		Code:        "250",
		Description: "The request was received, but a time-out occurred with the payment processor",
		Category:    pkgerrors.CategorySystemError,
	},
	"254": {
		Code:        "254",
		Description: "Your CyberSource account is prohibited from processing stand-alone refunds",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
	"255": {
		Code:        "255",
		Description: "Your CyberSource account is not configured to process the service in the country you specified",
		Category:    pkgerrors.CategoryInvalidRequest,
	},
}

// LookupReasonCode returns the published info for a reason code. The
// table is not exhaustive over every code the gateway can emit; unknown
// codes come back with ok == false.
func LookupReasonCode(code string) (ReasonCodeInfo, bool) {
	info, ok := reasonCodes[code]
	return info, ok
}

// ReasonText returns the published description for a reason code, or ""
// for codes outside the table
func ReasonText(code string) string {
	return reasonCodes[code].Description
}
