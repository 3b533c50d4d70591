package cybersource

import (
	"go.uber.org/zap"

	"github.com/kevin07696/cybersource-service/internal/adapters/ports"
	"github.com/kevin07696/cybersource-service/internal/domain/models"
)

// ProfileConfig holds the merchant-side credentials for one hosted
// checkout profile. Secret is the HMAC key (shared secret for the legacy
// page, secret key for Secure Acceptance); it is never logged and never
// rendered as a form field.
type ProfileConfig struct {
	Account     string // merchant id (legacy) or access key (Secure Acceptance)
	Credential2 string // serial number (legacy) or profile id (Secure Acceptance)
	Secret      string
}

// sopAdapter implements HostedCheckoutAdapter over the legacy Silent
// Order POST order page
type sopAdapter struct {
	profile ProfileConfig
	mode    models.CheckoutMode
	logger  *zap.Logger
}

// NewSOPAdapter creates a hosted checkout adapter for the legacy order page
func NewSOPAdapter(profile ProfileConfig, mode models.CheckoutMode, logger *zap.Logger) ports.HostedCheckoutAdapter {
	return &sopAdapter{profile: profile, mode: mode, logger: logger}
}

func (a *sopAdapter) BuildForm(req *models.CheckoutRequest) (*ports.CheckoutForm, error) {
	postURL, err := SOPServiceURL(a.mode)
	if err != nil {
		return nil, err
	}

	account, credential2 := a.profile.Account, a.profile.Credential2
	if req.Account != "" {
		account = req.Account
	}
	if req.Credential2 != "" {
		credential2 = req.Credential2
	}

	builder, err := NewSOPBuilder(req.Order, account, SOPOptions{
		Amount:       req.Amount,
		Currency:     req.Currency,
		Credential2:  credential2,
		SharedSecret: a.profile.Secret,
	})
	if err != nil {
		return nil, err
	}

	applyCheckoutRequest(builderSetters{
		set:       builder.Set,
		customer:  builder.SetCustomer,
		billing:   builder.SetBillingAddress,
		shipping:  builder.SetShippingAddress,
		card:      builder.SetCard,
		lineItems: builder.AddLineItems,
	}, req)

	a.logger.Info("built hosted order page form",
		zap.String("order", req.Order),
		zap.String("currency", req.Currency),
		zap.Int("field_count", builder.Fields().Len()),
	)

	return checkoutForm(postURL, builder.Fields(), builder.Fragments()), nil
}

func (a *sopAdapter) ParseNotification(raw string) (ports.Notification, error) {
	n := ParseSOPNotification(raw)
	a.logger.Info("parsed order page notification",
		zap.String("decision", n.Status()),
		zap.String("reason_code", n.ReasonCode()),
	)
	return n, nil
}

// secureAcceptanceAdapter implements HostedCheckoutAdapter over the
// Secure Acceptance hosted checkout
type secureAcceptanceAdapter struct {
	profile ProfileConfig
	mode    models.CheckoutMode
	logger  *zap.Logger
}

// NewSecureAcceptanceAdapter creates a hosted checkout adapter for
// Secure Acceptance
func NewSecureAcceptanceAdapter(profile ProfileConfig, mode models.CheckoutMode, logger *zap.Logger) ports.HostedCheckoutAdapter {
	return &secureAcceptanceAdapter{profile: profile, mode: mode, logger: logger}
}

func (a *secureAcceptanceAdapter) BuildForm(req *models.CheckoutRequest) (*ports.CheckoutForm, error) {
	postURL, err := SecureAcceptanceServiceURL(a.mode)
	if err != nil {
		return nil, err
	}

	account, credential2 := a.profile.Account, a.profile.Credential2
	if req.Account != "" {
		account = req.Account
	}
	if req.Credential2 != "" {
		credential2 = req.Credential2
	}

	builder, err := NewSecureAcceptanceBuilder(req.Order, account, SecureAcceptanceOptions{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Credential2: credential2,
		SecretKey:   a.profile.Secret,
	})
	if err != nil {
		return nil, err
	}

	applyCheckoutRequest(builderSetters{
		set:       builder.Set,
		customer:  builder.SetCustomer,
		billing:   builder.SetBillingAddress,
		shipping:  builder.SetShippingAddress,
		card:      builder.SetCard,
		lineItems: builder.AddLineItems,
	}, req)

	a.logger.Info("built secure acceptance form",
		zap.String("order", req.Order),
		zap.String("currency", req.Currency),
		zap.Int("field_count", builder.Fields().Len()),
	)

	return checkoutForm(postURL, builder.Fields(), builder.Fragments()), nil
}

func (a *secureAcceptanceAdapter) ParseNotification(raw string) (ports.Notification, error) {
	n := ParseSecureAcceptanceNotification(raw, a.profile.Secret, a.mode)
	a.logger.Info("parsed secure acceptance notification",
		zap.String("decision", n.Status()),
		zap.String("reason_code", n.ReasonCode()),
		zap.String("transaction_id", n.TransactionID()),
	)
	if err := n.Verify(); err != nil {
		return n, err
	}
	return n, nil
}

// builderSetters abstracts the two builders' identical setter surfaces
// so the canonical request is applied the same way for both variants
type builderSetters struct {
	set       func(key, value string)
	customer  func(models.Customer)
	billing   func(models.Address)
	shipping  func(models.Address)
	card      func(models.Card)
	lineItems func([]models.LineItem) error
}

func applyCheckoutRequest(b builderSetters, req *models.CheckoutRequest) {
	if req.Description != "" {
		b.set("description", req.Description)
	}
	if req.Tax != "" {
		b.set("tax", req.Tax)
	}
	if req.NotifyURL != "" {
		b.set("notify_url", req.NotifyURL)
	}
	if req.ReturnURL != "" {
		b.set("return_url", req.ReturnURL)
	}
	if req.CancelReturnURL != "" {
		b.set("cancel_return_url", req.CancelReturnURL)
	}
	if req.DeclineURL != "" {
		b.set("decline_url", req.DeclineURL)
	}
	if req.Customer != nil {
		b.customer(*req.Customer)
	}
	if req.BillingAddress != nil {
		b.billing(*req.BillingAddress)
	}
	if req.ShippingAddress != nil {
		b.shipping(*req.ShippingAddress)
	}
	if req.Card != nil {
		b.card(*req.Card)
	}
	if req.LineItems != nil {
		// invalid items are filtered inside the builder, not reported
		_ = b.lineItems(req.LineItems)
	}
}

func checkoutForm(postURL string, fields *FieldSet, fragments []string) *ports.CheckoutForm {
	pairs := fields.Pairs()
	out := make([]ports.FormField, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, ports.FormField{Name: p.Name, Value: p.Value})
	}
	return &ports.CheckoutForm{PostURL: postURL, Fields: out, Fragments: fragments}
}
