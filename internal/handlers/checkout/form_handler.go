package checkout

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kevin07696/cybersource-service/internal/adapters/ports"
	"github.com/kevin07696/cybersource-service/internal/domain/models"
	"github.com/kevin07696/cybersource-service/pkg/observability"
)

// FormHandler serves the hosted checkout form configuration. The
// frontend renders the returned fields into an auto-submitting form
// targeting the gateway's hosted page; this service never touches the
// card entry itself.
type FormHandler struct {
	adapter ports.HostedCheckoutAdapter
	variant string
	logger  *zap.Logger
}

// NewFormHandler creates a form configuration handler
func NewFormHandler(adapter ports.HostedCheckoutAdapter, variant string, logger *zap.Logger) *FormHandler {
	return &FormHandler{adapter: adapter, variant: variant, logger: logger}
}

// GetCheckoutForm builds the signed field set for one checkout.
// Endpoint: GET /api/v1/checkout/form?order=order-500&amount=99.99&currency=USD
func (h *FormHandler) GetCheckoutForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()

	amountStr := query.Get("amount")
	if amountStr == "" {
		h.logger.Warn("checkout form request missing amount parameter")
		http.Error(w, "amount parameter is required", http.StatusBadRequest)
		return
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		h.logger.Warn("invalid amount format",
			zap.String("amount", amountStr),
			zap.Error(err),
		)
		http.Error(w, "amount must be a valid number", http.StatusBadRequest)
		return
	}

	currency := query.Get("currency")
	if currency == "" {
		http.Error(w, "currency parameter is required", http.StatusBadRequest)
		return
	}

	order := query.Get("order")
	if order == "" {
		order = uuid.NewString()
	}

	req := &models.CheckoutRequest{
		Order:     order,
		Amount:    amount,
		Currency:  currency,
		NotifyURL: query.Get("notify_url"),
		ReturnURL: query.Get("return_url"),
	}

	form, err := h.adapter.BuildForm(req)
	observability.RecordFormBuilt(h.variant, err)
	if err != nil {
		h.logger.Error("failed to build checkout form",
			zap.String("order", order),
			zap.Error(err),
		)
		http.Error(w, "failed to build checkout form", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(form); err != nil {
		h.logger.Error("failed to encode checkout form", zap.Error(err))
	}
}
