package handler

import (

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/application/service"
	"github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/response"
	"github.com/sangkips/cafe-api/pkg/pagination"
	"github.com/sangkips/cafe-api/pkg/utils"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles listing orders with filters
func (h *OrderHandler) List(c *gin.Context) {
	var req request.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: pagination.FromQuery(req.Page, req.PerPage),
	}

	if req.ServerID != "" {
		serverID, err := uuid.Parse(req.ServerID)
		if err != nil {
			response.BadRequest(c, "Invalid server ID")
			return
		}
		params.ServerID = &serverID
	}

	if req.StartDate != "" {
		start, err := utils.ParseDate(req.StartDate)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		params.StartDate = &start
	}

	if req.EndDate != "" {
		end, err := utils.ParseDate(req.EndDate)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		_, end = utils.DayRange(end)
		params.EndDate = &end
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	page := pagination.NewPaginatedResult(response.NewOrderResponses(result.Items), result.Pagination)
	response.Page(c, "Orders retrieved successfully", page)
}

// Get handles getting an order with its lines
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", response.NewOrderResponse(order, true))
}

// Delete handles deleting an order. Consumed stock is not restored.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "order")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
