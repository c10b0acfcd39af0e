package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafe-api/internal/application/service"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/response"
)

// StockHandler handles inventory HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// List handles listing stock items
func (h *StockHandler) List(c *gin.Context) {
	items, err := h.stockService.ListStockItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock items retrieved successfully", items)
}

// GetLowStock handles getting items that need restocking
func (h *StockHandler) GetLowStock(c *gin.Context) {
	items, err := h.stockService.GetLowStockItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock items retrieved successfully", gin.H{
		"threshold": h.stockService.LowStockThreshold(),
		"items":     items,
	})
}

// Create handles creating a stock item
func (h *StockHandler) Create(c *gin.Context) {
	var req request.CreateStockItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.stockService.CreateStockItem(c.Request.Context(), &service.CreateStockItemInput{
		Name:            req.Name,
		TrackingType:    req.TrackingType,
		CurrentQuantity: req.CurrentQuantity,
		UnitOfMeasure:   req.UnitOfMeasure,
		CostPerUnit:     req.CostPerUnit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock item created successfully", item)
}

// Get handles getting a single stock item
func (h *StockHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "stock item")
	if !ok {
		return
	}

	item, err := h.stockService.GetStockItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock item retrieved successfully", item)
}

// Restock handles adding stock, or marking a MANUAL item as in stock
func (h *StockHandler) Restock(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "stock item")
	if !ok {
		return
	}

	var req request.RestockRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	item, err := h.stockService.Restock(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock item restocked successfully", item)
}

// RunOut handles marking a MANUAL item as out of stock
func (h *StockHandler) RunOut(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "stock item")
	if !ok {
		return
	}

	item, err := h.stockService.MarkRunOut(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock item marked as run out", item)
}

// UpdateCost handles changing the cost per unit
func (h *StockHandler) UpdateCost(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "stock item")
	if !ok {
		return
	}

	var req request.UpdateCostRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.stockService.UpdateCost(c.Request.Context(), id, *req.CostPerUnit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock item cost updated successfully", item)
}

// Delete handles deleting a stock item
func (h *StockHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "stock item")
	if !ok {
		return
	}

	if err := h.stockService.DeleteStockItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
