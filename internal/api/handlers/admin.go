package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/platefeed/feedback-backend/internal/api/middleware"
	"github.com/platefeed/feedback-backend/internal/services"
	"github.com/platefeed/feedback-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Dashboard stats retrieved successfully", stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := pagination(c)

	users, err := h.adminService.ListUsers(page, limit)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Users retrieved successfully", users)
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	targetID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	user, err := h.adminService.UpdateRole(actor, targetID, req.Role)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Role updated successfully", user)
}

func (h *AdminHandler) BlockUser(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	targetID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	user, err := h.adminService.BlockUser(actor, targetID, req.Reason)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "User blocked successfully", user)
}

func (h *AdminHandler) UnblockUser(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	targetID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	user, err := h.adminService.UnblockUser(actor, targetID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "User unblocked successfully", user)
}
