package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/platefeed/feedback-backend/internal/apperr"
	"github.com/platefeed/feedback-backend/internal/models"
	"github.com/platefeed/feedback-backend/internal/roles"
	"github.com/platefeed/feedback-backend/internal/utils"
	"gorm.io/gorm"
)

type ReviewService struct {
	db       *gorm.DB
	notifier *NotificationService
	s3       *S3Service
}

func NewReviewService(db *gorm.DB, notifier *NotificationService, s3 *S3Service) *ReviewService {
	return &ReviewService{db: db, notifier: notifier, s3: s3}
}

type SubRatings struct {
	Food        int `json:"food"`
	Service     int `json:"service"`
	Atmosphere  int `json:"atmosphere"`
	Price       int `json:"price"`
	Cleanliness int `json:"cleanliness"`
}

type CreateReviewRequest struct {
	RestaurantName string     `json:"restaurant_name" binding:"required"`
	Rating         int        `json:"rating"`
	Comment        string     `json:"comment"`
	SubRatings     SubRatings `json:"sub_ratings"`
}

type UpdateReviewRequest struct {
	Rating     *int        `json:"rating"`
	Comment    *string     `json:"comment"`
	SubRatings *SubRatings `json:"sub_ratings"`
}

type ReviewResponse struct {
	ID             uint               `json:"id"`
	UserID         uint               `json:"user_id"`
	UserName       string             `json:"user_name"`
	RestaurantName string             `json:"restaurant_name"`
	Rating         int                `json:"rating"`
	Comment        string             `json:"comment"`
	SubRatings     SubRatings         `json:"sub_ratings"`
	Likes          int                `json:"likes"`
	Responded      bool               `json:"responded"`
	Response       *models.ManagerResponse `json:"response,omitempty"`
	Photos         []models.ReviewPhoto    `json:"photos,omitempty"`
	CreatedAt      string             `json:"created_at"`
}

func toReviewResponse(r *models.Review) ReviewResponse {
	userName := "Anonymous"
	if r.User.ID != 0 {
		userName = r.User.DisplayName
	}
	return ReviewResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		UserName:       userName,
		RestaurantName: r.RestaurantName,
		Rating:         r.Rating,
		Comment:        r.Comment,
		SubRatings: SubRatings{
			Food:        r.FoodRating,
			Service:     r.ServiceRating,
			Atmosphere:  r.AtmosphereRating,
			Price:       r.PriceRating,
			Cleanliness: r.CleanlinessRating,
		},
		Likes: r.Likes,
		// Responded is always derived from response existence, never stored.
		Responded: r.Response != nil,
		Response:  r.Response,
		Photos:    r.Photos,
		CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func validateReviewInput(restaurantName string, rating int, comment string, sub SubRatings) error {
	if !utils.IsValidRestaurantName(restaurantName) {
		return apperr.Validation("restaurant name must be 1-50 characters")
	}
	if !utils.IsValidRating(rating) {
		return apperr.Validation("rating must be an integer between 1 and 5")
	}
	if !utils.IsValidComment(comment) {
		return apperr.Validation("comment must be 1-1000 characters")
	}
	for name, v := range map[string]int{
		"food":        sub.Food,
		"service":     sub.Service,
		"atmosphere":  sub.Atmosphere,
		"price":       sub.Price,
		"cleanliness": sub.Cleanliness,
	} {
		if !utils.IsValidSubRating(v) {
			return apperr.Validationf("%s rating must be between 0 and 5", name)
		}
	}
	return nil
}

func (s *ReviewService) Create(authorID uint, req CreateReviewRequest) (*models.Review, error) {
	req.RestaurantName = utils.SanitizeString(req.RestaurantName)
	req.Comment = utils.SanitizeString(req.Comment)

	if err := validateReviewInput(req.RestaurantName, req.Rating, req.Comment, req.SubRatings); err != nil {
		return nil, err
	}

	review := models.Review{
		UserID:            authorID,
		RestaurantName:    req.RestaurantName,
		Rating:            req.Rating,
		Comment:           req.Comment,
		FoodRating:        req.SubRatings.Food,
		ServiceRating:     req.SubRatings.Service,
		AtmosphereRating:  req.SubRatings.Atmosphere,
		PriceRating:       req.SubRatings.Price,
		CleanlinessRating: req.SubRatings.Cleanliness,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, apperr.Internal("failed to create review", err)
	}
	s.db.Preload("User").First(&review, review.ID)

	// Fan-out: broadcast and durable notification are independent effects.
	if s.notifier != nil {
		s.notifier.Push(models.NotificationTypeReview, toReviewResponse(&review))
		s.notifier.Record(authorID, models.NotificationTypeReview,
			fmt.Sprintf("Your review of %s was published", review.RestaurantName))
	}

	return &review, nil
}

func (s *ReviewService) GetByID(reviewID uint) (*ReviewResponse, error) {
	var review models.Review
	err := s.db.Preload("User").Preload("Response").Preload("Photos").
		First(&review, reviewID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, apperr.Internal("failed to fetch review", err)
	}
	resp := toReviewResponse(&review)
	return &resp, nil
}

// List returns active reviews, newest first. Archived reviews do not exist as
// live rows, so no filtering beyond the query itself is needed.
func (s *ReviewService) List(restaurantName string, page, limit int) ([]ReviewResponse, error) {
	var reviews []models.Review
	offset := (page - 1) * limit

	query := s.db.Preload("User").Preload("Response").Preload("Photos").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit)
	if restaurantName != "" {
		query = query.Where("restaurant_name = ?", restaurantName)
	}
	if err := query.Find(&reviews).Error; err != nil {
		return nil, apperr.Internal("failed to fetch reviews", err)
	}

	response := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		response = append(response, toReviewResponse(&reviews[i]))
	}
	return response, nil
}

// Vote records an immutable up/down vote. The (review, voter) unique index in
// the store arbitrates concurrent duplicates; the vote insert, the tally
// adjustment and the author aggregate all commit in one transaction.
func (s *ReviewService) Vote(reviewID, voterID uint, voteType string) (*models.ReviewVote, error) {
	if !utils.IsValidVoteType(voteType) {
		return nil, apperr.Validation("vote type must be 'up' or 'down'")
	}

	vote := models.ReviewVote{ReviewID: reviewID, UserID: voterID, VoteType: voteType}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("review not found")
			}
			return apperr.Internal("failed to fetch review", err)
		}
		if review.UserID == voterID {
			return apperr.Forbidden("you cannot vote on your own review")
		}

		if err := tx.Create(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return err // resolved to Conflict below, outside the aborted tx
			}
			return apperr.Internal("failed to record vote", err)
		}

		if err := tx.Model(&models.Review{}).Where("id = ?", reviewID).
			Update("likes", gorm.Expr("likes + ?", vote.Delta())).Error; err != nil {
			return apperr.Internal("failed to update vote tally", err)
		}
		return recomputeAuthorLikes(tx, review.UserID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateVoteConflict(reviewID, voterID)
		}
		return nil, err
	}
	return &vote, nil
}

// duplicateVoteConflict answers a duplicate vote with the original vote type
// so the caller can render "already voted as X".
func (s *ReviewService) duplicateVoteConflict(reviewID, voterID uint) error {
	var existing models.ReviewVote
	if err := s.db.Where("review_id = ? AND user_id = ?", reviewID, voterID).
		First(&existing).Error; err != nil {
		return apperr.Internal("failed to resolve existing vote", err)
	}
	return apperr.Conflict("you have already voted on this review").
		WithField("vote_type", existing.VoteType)
}

// Respond upserts the single manager response for a review. Re-submitting
// updates the existing row instead of creating a duplicate.
func (s *ReviewService) Respond(reviewID, responderID uint, text string) (*models.ManagerResponse, error) {
	text = utils.SanitizeString(text)
	if text == "" {
		return nil, apperr.Validation("response text cannot be empty")
	}

	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, apperr.Internal("failed to fetch review", err)
	}

	var response models.ManagerResponse
	err := s.db.Where("review_id = ?", reviewID).First(&response).Error
	if err == nil {
		response.Text = text
		response.ResponderID = responderID
		if err := s.db.Save(&response).Error; err != nil {
			return nil, apperr.Internal("failed to update response", err)
		}
		return &response, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("failed to fetch response", err)
	}

	response = models.ManagerResponse{
		ReviewID:    reviewID,
		ResponderID: responderID,
		Text:        text,
	}
	if err := s.db.Create(&response).Error; err != nil {
		return nil, apperr.Internal("failed to create response", err)
	}
	return &response, nil
}

// Update lets the author or an admin-level actor edit a review. Changed
// fields are re-validated against the same rules as creation.
func (s *ReviewService) Update(reviewID uint, actor roles.Actor, req UpdateReviewRequest) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, apperr.Internal("failed to fetch review", err)
	}

	if review.UserID != actor.ID && !roles.HasAtLeast(actor.Role, roles.RoleAdmin) {
		return nil, apperr.Forbidden("only the author or an admin can edit this review")
	}

	if req.Rating != nil {
		if !utils.IsValidRating(*req.Rating) {
			return nil, apperr.Validation("rating must be an integer between 1 and 5")
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		comment := utils.SanitizeString(*req.Comment)
		if !utils.IsValidComment(comment) {
			return nil, apperr.Validation("comment must be 1-1000 characters")
		}
		review.Comment = comment
	}
	if req.SubRatings != nil {
		sub := *req.SubRatings
		if err := validateReviewInput(review.RestaurantName, review.Rating, review.Comment, sub); err != nil {
			return nil, err
		}
		review.FoodRating = sub.Food
		review.ServiceRating = sub.Service
		review.AtmosphereRating = sub.Atmosphere
		review.PriceRating = sub.Price
		review.CleanlinessRating = sub.Cleanliness
	}

	if err := s.db.Save(&review).Error; err != nil {
		return nil, apperr.Internal("failed to update review", err)
	}
	return &review, nil
}

// AttachPhoto uploads a photo to S3 and links it to the author's review.
func (s *ReviewService) AttachPhoto(reviewID, actorID uint, file multipart.File, header *multipart.FileHeader) (*models.ReviewPhoto, error) {
	if s.s3 == nil {
		return nil, apperr.Validation("photo storage is not configured")
	}

	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, apperr.Internal("failed to fetch review", err)
	}
	if review.UserID != actorID {
		return nil, apperr.Forbidden("only the author can attach photos")
	}

	result, err := s.s3.UploadReviewPhoto(file, header)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	photo := models.ReviewPhoto{
		ReviewID:    reviewID,
		FileName:    result.FileName,
		S3Key:       result.Key,
		S3URL:       result.URL,
		ContentType: result.ContentType,
		Size:        result.Size,
	}
	if err := s.db.Create(&photo).Error; err != nil {
		// best effort cleanup of the orphaned object
		_ = s.s3.DeletePhoto(result.Key)
		return nil, apperr.Internal("failed to save photo record", err)
	}
	return &photo, nil
}

// recomputeAuthorLikes refreshes a user's aggregate like count as the sum of
// tallies across their surviving reviews.
func recomputeAuthorLikes(tx *gorm.DB, authorID uint) error {
	var total int64
	if err := tx.Model(&models.Review{}).Where("user_id = ?", authorID).
		Select("COALESCE(SUM(likes), 0)").Scan(&total).Error; err != nil {
		return apperr.Internal("failed to compute author likes", err)
	}
	if err := tx.Model(&models.User{}).Where("id = ?", authorID).
		Update("total_likes", total).Error; err != nil {
		return apperr.Internal("failed to update author likes", err)
	}
	return nil
}
