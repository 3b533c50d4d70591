package cybersource

import (
	"fmt"

	"github.com/kevin07696/cybersource-service/internal/domain/models"
)

// Hosted page endpoints for both gateway variants. Fixed at startup,
// never mutated; safe for concurrent reads.
const (
	SOPProductionURL = "https://orderpage.ic3.com/hop/ProcessOrder.do"
	SOPTestURL       = "https://orderpagetest.ic3.com/hop/ProcessOrder.do"

	SecureAcceptanceProductionURL = "https://secureacceptance.cybersource.com/pay"
	SecureAcceptanceTestURL       = "https://testsecureacceptance.cybersource.com/pay"
)

// SOPServiceURL returns the legacy order page endpoint for mode
func SOPServiceURL(mode models.CheckoutMode) (string, error) {
	switch mode {
	case models.ModeProduction:
		return SOPProductionURL, nil
	case models.ModeTest:
		return SOPTestURL, nil
	default:
		return "", fmt.Errorf("integration mode set to an invalid value: %q", mode)
	}
}

// SecureAcceptanceServiceURL returns the hosted checkout endpoint for mode
func SecureAcceptanceServiceURL(mode models.CheckoutMode) (string, error) {
	switch mode {
	case models.ModeProduction:
		return SecureAcceptanceProductionURL, nil
	case models.ModeTest:
		return SecureAcceptanceTestURL, nil
	default:
		return "", fmt.Errorf("integration mode set to an invalid value: %q", mode)
	}
}
