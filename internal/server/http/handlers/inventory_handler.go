package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polvex/pharmatrack/internal/server/http/dto"
	"github.com/polvex/pharmatrack/internal/usecase"
)

// InventoryHandler manages catalog and stock endpoints.
type InventoryHandler struct {
	facade InventoryFacade
}

// NewInventoryHandler constructs InventoryHandler.
func NewInventoryHandler(facade InventoryFacade) *InventoryHandler {
	return &InventoryHandler{facade: facade}
}

// CreateProduct handles POST /api/products.
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product, err := h.facade.AddProduct(c.Request.Context(), CurrentActor(c), req.Name, req.UnitPrice)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusCreated, dto.ProductResponse{ID: product.ID, Name: product.Name, UnitPrice: product.UnitPrice})
}

// ListProducts handles GET /api/products.
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, dto.ProductResponse{ID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice})
	}

	c.JSON(http.StatusOK, response)
}

// ReceiveBatch handles POST /api/products/:id/batches.
func (h *InventoryHandler) ReceiveBatch(c *gin.Context) {
	id := idParam(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ReceiveBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	batch, err := h.facade.ReceiveBatch(c.Request.Context(), CurrentActor(c), id, req.Quantity, req.ManufactureDate, req.ExpiryDate)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusCreated, dto.BatchResponse{
		ID:              batch.ID,
		ProductID:       batch.ProductID,
		Quantity:        batch.Quantity,
		ManufactureDate: batch.ManufactureDate,
		ExpiryDate:      batch.ExpiryDate,
	})
}

// ListBatches handles GET /api/products/:id/batches.
func (h *InventoryHandler) ListBatches(c *gin.Context) {
	id := idParam(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	batches, err := h.facade.ProductBatches(c.Request.Context(), id)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	response := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		response = append(response, toBatchResponse(b))
	}

	c.JSON(http.StatusOK, response)
}

func toBatchResponse(view usecase.BatchView) dto.BatchResponse {
	return dto.BatchResponse{
		ID:              view.ID,
		ProductID:       view.ProductID,
		Quantity:        view.Quantity,
		ManufactureDate: view.ManufactureDate,
		ExpiryDate:      view.ExpiryDate,
		Status:          string(view.Status),
	}
}
