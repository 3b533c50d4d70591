package checkout

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kevin07696/cybersource-service/internal/adapters/ports"
	pkgerrors "github.com/kevin07696/cybersource-service/pkg/errors"
	"github.com/kevin07696/cybersource-service/pkg/observability"
)

// maxNotificationBody caps how much of a POST-back body is read
const maxNotificationBody = 1 << 20

// NotificationHandler receives the gateway's asynchronous POST-back,
// parses it, verifies the signature where the variant has one, and
// answers with the normalized result.
type NotificationHandler struct {
	adapter ports.HostedCheckoutAdapter
	variant string
	logger  *zap.Logger
}

// NewNotificationHandler creates a notification handler
func NewNotificationHandler(adapter ports.HostedCheckoutAdapter, variant string, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{adapter: adapter, variant: variant, logger: logger}
}

// notificationResponse is the JSON acknowledgement body
type notificationResponse struct {
	Complete      bool     `json:"complete"`
	Status        string   `json:"status"`
	ReasonCode    string   `json:"reason_code,omitempty"`
	Reason        string   `json:"reason,omitempty"`
	TransactionID string   `json:"transaction_id,omitempty"`
	OrderID       string   `json:"order_id,omitempty"`
	Gross         string   `json:"gross,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	Test          bool     `json:"test"`
	ReceivedAt    string   `json:"received_at,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
	InvalidFields []string `json:"invalid_fields,omitempty"`
}

// HandleNotification processes one gateway POST-back.
// Endpoint: POST /api/v1/checkout/notification
func (h *NotificationHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxNotificationBody))
	if err != nil {
		h.logger.Error("failed to read notification body", zap.Error(err))
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	n, err := h.adapter.ParseNotification(string(body))
	if err != nil {
		var verr *pkgerrors.VerificationError
		if errors.As(err, &verr) {
			observability.RecordSignatureFailure(h.variant)
			h.logger.Warn("notification signature verification failed",
				zap.String("transaction_id", n.TransactionID()),
				zap.String("order_id", n.ItemID()),
			)
			http.Error(w, "signature verification failed", http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to parse notification", zap.Error(err))
		http.Error(w, "failed to parse notification", http.StatusBadRequest)
		return
	}

	observability.RecordNotification(h.variant, n.Status())

	resp := notificationResponse{
		Complete:      n.Complete(),
		Status:        n.Status(),
		ReasonCode:    n.ReasonCode(),
		Reason:        n.Reason(),
		TransactionID: n.TransactionID(),
		OrderID:       n.ItemID(),
		Gross:         n.Gross(),
		Currency:      n.Currency(),
		Test:          n.Test(),
		MissingFields: n.MissingFields(),
		InvalidFields: n.InvalidFields(),
	}
	if receivedAt, err := n.ReceivedAt(); err == nil {
		resp.ReceivedAt = receivedAt.Format(time.RFC3339)
	} else {
		// the timestamp is required downstream, so a malformed one is
		// worth surfacing even though the rest of the payload parsed
		h.logger.Error("notification carried malformed timestamp",
			zap.String("transaction_id", n.TransactionID()),
			zap.Error(err),
		)
	}

	h.logger.Info("processed gateway notification",
		zap.String("decision", n.Status()),
		zap.String("reason_code", n.ReasonCode()),
		zap.String("order_id", n.ItemID()),
		zap.Bool("complete", n.Complete()),
	)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode notification response", zap.Error(err))
	}
}
