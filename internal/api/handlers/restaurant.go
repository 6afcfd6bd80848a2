package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/platefeed/feedback-backend/internal/services"
	"github.com/platefeed/feedback-backend/internal/utils"
)

type RestaurantHandler struct {
	restaurantService *services.RestaurantService
}

func NewRestaurantHandler(restaurantService *services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	page, limit := pagination(c)

	restaurants, err := h.restaurantService.List(c.Query("search"), page, limit)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Restaurants retrieved successfully", restaurants)
}

func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "restaurant_id")
	if !ok {
		return
	}

	restaurant, err := h.restaurantService.GetByID(restaurantID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Restaurant retrieved successfully", restaurant)
}

func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req services.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	restaurant, err := h.restaurantService.Create(req)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendCreated(c, "Restaurant created successfully", restaurant)
}

func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "restaurant_id")
	if !ok {
		return
	}

	var req services.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	restaurant, err := h.restaurantService.Update(restaurantID, req)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Restaurant updated successfully", restaurant)
}
