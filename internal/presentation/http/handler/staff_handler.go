package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafe-api/internal/application/service"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/response"
)

// WorkerHandler handles staff HTTP requests
type WorkerHandler struct {
	workerService *service.WorkerService
}

// NewWorkerHandler creates a new worker handler
func NewWorkerHandler(workerService *service.WorkerService) *WorkerHandler {
	return &WorkerHandler{workerService: workerService}
}

// List handles listing workers, optionally filtered by ?role=
func (h *WorkerHandler) List(c *gin.Context) {
	workers, err := h.workerService.ListWorkers(c.Request.Context(), c.Query("role"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Workers retrieved successfully", workers)
}

// Create handles creating a worker
func (h *WorkerHandler) Create(c *gin.Context) {
	var req request.CreateWorkerRequest
	if !bindJSON(c, &req) {
		return
	}

	worker, err := h.workerService.CreateWorker(c.Request.Context(), &service.CreateWorkerInput{
		Name:   req.Name,
		Role:   req.Role,
		Salary: req.Salary,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Worker created successfully", worker)
}

// Delete handles deleting a worker
func (h *WorkerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "worker")
	if !ok {
		return
	}

	if err := h.workerService.DeleteWorker(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ExpenseHandler handles monthly expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List handles listing expenses, optionally for one ?month=
func (h *ExpenseHandler) List(c *gin.Context) {
	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), c.Query("month"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expenses retrieved successfully", expenses)
}

// Create handles booking an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req request.CreateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), &service.CreateExpenseInput{
		Month:       req.Month,
		Description: req.Description,
		Amount:      *req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense created successfully", expense)
}

// Delete handles deleting an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "expense")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
