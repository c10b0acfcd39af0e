package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafe-api/internal/application/service"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/response"
)

// MenuHandler handles menu item and recipe HTTP requests
type MenuHandler struct {
	menuService *service.MenuService
	recipes     *service.RecipeGraph
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService, recipes *service.RecipeGraph) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		recipes:     recipes,
	}
}

// List handles listing menu items
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.menuService.ListMenuItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu items retrieved successfully", items)
}

// Create handles creating a menu item
func (h *MenuHandler) Create(c *gin.Context) {
	var req request.CreateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.menuService.CreateMenuItem(c.Request.Context(), &service.CreateMenuItemInput{
		Name:      req.Name,
		SalePrice: *req.SalePrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Menu item created successfully", item)
}

// Get handles getting a menu item with its recipe and cost
func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "menu item")
	if !ok {
		return
	}

	detail, err := h.menuService.GetMenuItemDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item retrieved successfully", detail)
}

// UpdatePrice handles changing a menu item's sale price
func (h *MenuHandler) UpdatePrice(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "menu item")
	if !ok {
		return
	}

	var req request.UpdatePriceRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.menuService.UpdatePrice(c.Request.Context(), id, *req.SalePrice)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item price updated successfully", item)
}

// Cost handles getting the current ingredient cost of one unit
func (h *MenuHandler) Cost(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "menu item")
	if !ok {
		return
	}

	cost, err := h.menuService.CostOf(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item cost calculated successfully", gin.H{
		"menu_item_id": id,
		"unit_cost":    cost,
	})
}

// Delete handles deleting a menu item and its recipe
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "menu item")
	if !ok {
		return
	}

	if err := h.menuService.DeleteMenuItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Recipe handles listing a menu item's ingredients
func (h *MenuHandler) Recipe(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "menu item")
	if !ok {
		return
	}

	if _, err := h.menuService.GetMenuItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	ingredients, err := h.recipes.IngredientsOf(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recipe retrieved successfully", ingredients)
}

// AddIngredient handles linking a stock item into a recipe
func (h *MenuHandler) AddIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "menu item")
	if !ok {
		return
	}

	var req request.AddIngredientRequest
	if !bindJSON(c, &req) {
		return
	}

	link, err := h.recipes.AddIngredient(c.Request.Context(), &service.AddIngredientInput{
		MenuItemID:   id,
		StockItemID:  req.StockItemID,
		QuantityUsed: *req.QuantityUsed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Ingredient added successfully", link)
}

// RemoveIngredient handles deleting a recipe link
func (h *MenuHandler) RemoveIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "recipe link")
	if !ok {
		return
	}

	if err := h.recipes.RemoveIngredient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
