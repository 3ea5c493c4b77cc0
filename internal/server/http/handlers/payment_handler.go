package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polvex/pharmatrack/internal/domain/model"
	"github.com/polvex/pharmatrack/internal/server/http/dto"
)

// PaymentHandler manages settlement endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Submit handles POST /api/payments.
func (h *PaymentHandler) Submit(c *gin.Context) {
	var req dto.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	payment, err := h.facade.SettlePayment(c.Request.Context(), CurrentActor(c), req.OrderIDs,
		req.AmountPaid, model.DiscountType(req.DiscountType), req.DiscountPercent)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

// ByOrder handles GET /api/orders/:id/payment.
func (h *PaymentHandler) ByOrder(c *gin.Context) {
	id := idParam(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	payment, err := h.facade.OrderPayment(c.Request.Context(), id)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, toPaymentResponse(payment))
}

func toPaymentResponse(payment *model.Payment) dto.SubmitPaymentResponse {
	return dto.SubmitPaymentResponse{
		Reference:       payment.Reference,
		OrderIDs:        payment.OrderIDs,
		TotalAmountPaid: payment.AmountPaid,
		PaymentsCreated: 1,
		DiscountType:    string(payment.DiscountType),
		DiscountPercent: payment.DiscountPercent,
		DiscountAmount:  payment.DiscountAmount,
		VATAmount:       payment.VATAmount,
		TotalDue:        payment.TotalDue,
		Change:          payment.Change,
		ProcessedAt:     payment.ProcessedAt,
	}
}
