package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polvex/pharmatrack/internal/domain/model"
	"github.com/polvex/pharmatrack/internal/server/http/dto"
	"github.com/polvex/pharmatrack/internal/usecase"
)

// OrderHandler manages order lifecycle and patient endpoints.
type OrderHandler struct {
	facade PharmacyFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade PharmacyFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]usecase.NewOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.NewOrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentActor(c), req.PatientID, model.OrderKind(req.Kind), items)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id := idParam(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// PatientOrders handles GET /api/patients/:id/orders.
func (h *OrderHandler) PatientOrders(c *gin.Context) {
	id := idParam(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	orders, err := h.facade.PatientOrders(c.Request.Context(), id)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// ChangeStatus handles POST /api/orders/:id/status. Marking an order paid is a
// settlement, not a plain transition: it needs tendered cash and discount data
// and runs through the combined payment path.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	id := idParam(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if model.OrderStatus(req.Status) == model.OrderStatusPaid {
		if req.AmountPaid <= 0 {
			c.Status(http.StatusPaymentRequired)
			return
		}
		payment, err := h.facade.SettlePayment(c.Request.Context(), CurrentActor(c), []int64{id},
			req.AmountPaid, model.DiscountType(req.DiscountType), req.DiscountPercent)
		if err != nil {
			c.Status(statusFromError(err))
			return
		}
		c.JSON(http.StatusOK, toPaymentResponse(payment))
		return
	}

	order, err := h.facade.ChangeStatus(c.Request.Context(), CurrentActor(c), id, model.OrderStatus(req.Status))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// ChangeRemarks handles POST /api/orders/:id/remarks.
func (h *OrderHandler) ChangeRemarks(c *gin.Context) {
	id := idParam(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.RemarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ChangeRemarks(c.Request.Context(), CurrentActor(c), id, model.OrderRemarks(req.Remarks))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Refund handles POST /api/orders/:id/refund.
func (h *OrderHandler) Refund(c *gin.Context) {
	id := idParam(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.RefundOrder(c.Request.Context(), CurrentActor(c), id, req.Reason)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// CreatePatient handles POST /api/patients.
func (h *OrderHandler) CreatePatient(c *gin.Context) {
	var req dto.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	patient, err := h.facade.AddPatient(c.Request.Context(), req.FullName, req.Ward)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusCreated, dto.PatientResponse{ID: patient.ID, FullName: patient.FullName, Ward: patient.Ward})
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return dto.OrderResponse{
		ID:           order.ID,
		PatientID:    order.PatientID,
		Kind:         string(order.Kind),
		Status:       string(order.Status),
		Remarks:      string(order.Remarks),
		Items:        items,
		Subtotal:     order.Subtotal(),
		CreatedAt:    order.CreatedAt,
		PreparedAt:   order.PreparedAt,
		DispensedAt:  order.DispensedAt,
		PaidAt:       order.PaidAt,
		RefundedAt:   order.RefundedAt,
		RefundReason: order.RefundReason,
	}
}
