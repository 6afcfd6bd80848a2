package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/platefeed/feedback-backend/internal/api/middleware"
	"github.com/platefeed/feedback-backend/internal/services"
	"github.com/platefeed/feedback-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService     *services.ReviewService
	moderationService *services.ModerationService
}

func NewReviewHandler(reviewService *services.ReviewService, moderationService *services.ModerationService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, moderationService: moderationService}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	review, err := h.reviewService.Create(userID, req)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendCreated(c, "Review created successfully", review)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetByID(reviewID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Review retrieved successfully", review)
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	page, limit := pagination(c)
	restaurantName := c.Query("restaurant")

	reviews, err := h.reviewService.List(restaurantName, page, limit)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Reviews retrieved successfully", reviews)
}

func (h *ReviewHandler) VoteReview(c *gin.Context) {
	userID := c.GetUint("user_id")
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	var req struct {
		VoteType string `json:"vote_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	vote, err := h.reviewService.Vote(reviewID, userID, req.VoteType)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Vote recorded successfully", vote)
}

func (h *ReviewHandler) RespondToReview(c *gin.Context) {
	userID := c.GetUint("user_id")
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	response, err := h.reviewService.Respond(reviewID, userID, req.Text)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Response saved successfully", response)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	var req services.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	review, err := h.reviewService.Update(reviewID, actor, req)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Review updated successfully", review)
}

func (h *ReviewHandler) UploadReviewPhoto(c *gin.Context) {
	userID := c.GetUint("user_id")
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.SendValidationError(c, "A photo file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.SendValidationError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	photo, err := h.reviewService.AttachPhoto(reviewID, userID, file, fileHeader)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendCreated(c, "Photo uploaded successfully", photo)
}

// ModerateReview removes a review with an audit snapshot. Route guard
// requires manager level or above.
func (h *ReviewHandler) ModerateReview(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	reviewID, ok := parseIDParam(c, "review_id")
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

	archived, err := h.moderationService.Remove(reviewID, actor.ID, req.Reason)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Review removed successfully", archived)
}

func (h *ReviewHandler) ListArchivedReviews(c *gin.Context) {
	page, limit := pagination(c)

	archived, err := h.moderationService.ListArchived(page, limit)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Archived reviews retrieved successfully", archived)
}
