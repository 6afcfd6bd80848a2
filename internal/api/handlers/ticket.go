package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/platefeed/feedback-backend/internal/api/middleware"
	"github.com/platefeed/feedback-backend/internal/services"
	"github.com/platefeed/feedback-backend/internal/utils"
)

type TicketHandler struct {
	ticketService *services.TicketService
}

func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

func (h *TicketHandler) CreateTicket(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req services.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	ticket, err := h.ticketService.Create(userID, req)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendCreated(c, "Ticket created successfully", ticket)
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	ticketID, ok := parseIDParam(c, "ticket_id")
	if !ok {
		return
	}

	ticket, err := h.ticketService.GetByID(ticketID, actor)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Ticket retrieved successfully", ticket)
}

func (h *TicketHandler) ListMyTickets(c *gin.Context) {
	userID := c.GetUint("user_id")

	tickets, err := h.ticketService.ListForUser(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Tickets retrieved successfully", tickets)
}

// ListAllTickets is the staff view; route guard requires manager+.
func (h *TicketHandler) ListAllTickets(c *gin.Context) {
	page, limit := pagination(c)

	tickets, err := h.ticketService.ListAll(c.Query("status"), page, limit)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Tickets retrieved successfully", tickets)
}

func (h *TicketHandler) AddMessage(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	ticketID, ok := parseIDParam(c, "ticket_id")
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	message, err := h.ticketService.AddMessage(ticketID, actor, req.Body)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendCreated(c, "Message added successfully", message)
}

func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	ticketID, ok := parseIDParam(c, "ticket_id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	ticket, err := h.ticketService.UpdateStatus(ticketID, req.Status)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Ticket status updated successfully", ticket)
}

func (h *TicketHandler) UpdatePriority(c *gin.Context) {
	ticketID, ok := parseIDParam(c, "ticket_id")
	if !ok {
		return
	}

	var req struct {
		Priority string `json:"priority" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	ticket, err := h.ticketService.UpdatePriority(ticketID, req.Priority)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Ticket priority updated successfully", ticket)
}
