package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafe-api/internal/application/service"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/response"
	"github.com/sangkips/cafe-api/pkg/utils"
)

// SalesHandler handles end-of-day sales submissions
type SalesHandler struct {
	salesService *service.SalesService
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(salesService *service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// Submit records a server's sales for one day as a single order
// @Summary Submit daily sales
// @Description Record quantities sold per menu item, snapshot prices and costs, and consume stock
// @Tags sales
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Client generated key"
// @Param request body request.SubmitSalesRequest true "Sales batch"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /sales [post]
func (h *SalesHandler) Submit(c *gin.Context) {
	var req request.SubmitSalesRequest
	if !bindJSON(c, &req) {
		return
	}

	salesDate, err := utils.ParseDate(req.SalesDate)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	lines := make([]service.SaleLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.SaleLine{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			SalePrice:  item.SalePrice,
		})
	}

	result, err := h.salesService.SubmitBatch(c.Request.Context(), &service.SubmitBatchInput{
		ServerID:  req.ServerID,
		SalesDate: salesDate,
		Lines:     lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sales recorded successfully", result)
}
