package services

import (
	"errors"

	"github.com/platefeed/feedback-backend/internal/apperr"
	"github.com/platefeed/feedback-backend/internal/models"
	"github.com/platefeed/feedback-backend/internal/utils"
	"gorm.io/gorm"
)

type RestaurantService struct {
	db *gorm.DB
}

func NewRestaurantService(db *gorm.DB) *RestaurantService {
	return &RestaurantService{db: db}
}

type CreateRestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Cuisine     string `json:"cuisine"`
	ImageURL    string `json:"image_url"`
	ManagerID   *uint  `json:"manager_id"`
}

type UpdateRestaurantRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Cuisine     *string `json:"cuisine"`
	ImageURL    *string `json:"image_url"`
	ManagerID   *uint   `json:"manager_id"`
	IsActive    *bool   `json:"is_active"`
}

type RestaurantSummary struct {
	models.Restaurant
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

func (s *RestaurantService) Create(req CreateRestaurantRequest) (*models.Restaurant, error) {
	req.Name = utils.SanitizeString(req.Name)
	if !utils.IsValidRestaurantName(req.Name) {
		return nil, apperr.Validation("restaurant name must be 1-50 characters")
	}

	restaurant := models.Restaurant{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Cuisine:     req.Cuisine,
		ImageURL:    req.ImageURL,
		ManagerID:   req.ManagerID,
		IsActive:    true,
	}
	if err := s.db.Create(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a restaurant with this name already exists")
		}
		return nil, apperr.Internal("failed to create restaurant", err)
	}
	return &restaurant, nil
}

func (s *RestaurantService) Update(restaurantID uint, req UpdateRestaurantRequest) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("restaurant not found")
		}
		return nil, apperr.Internal("failed to fetch restaurant", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		name := utils.SanitizeString(*req.Name)
		if !utils.IsValidRestaurantName(name) {
			return nil, apperr.Validation("restaurant name must be 1-50 characters")
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Cuisine != nil {
		updates["cuisine"] = *req.Cuisine
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.ManagerID != nil {
		updates["manager_id"] = *req.ManagerID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&restaurant).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Conflict("a restaurant with this name already exists")
			}
			return nil, apperr.Internal("failed to update restaurant", err)
		}
	}

	if err := s.db.First(&restaurant, restaurantID).Error; err != nil {
		return nil, apperr.Internal("failed to reload restaurant", err)
	}
	return &restaurant, nil
}

func (s *RestaurantService) GetByID(restaurantID uint) (*RestaurantSummary, error) {
	var restaurant models.Restaurant
	err := s.db.Preload("Manager").Where("is_active = ?", true).First(&restaurant, restaurantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("restaurant not found")
		}
		return nil, apperr.Internal("failed to fetch restaurant", err)
	}
	return s.withSummary(restaurant)
}

func (s *RestaurantService) List(search string, page, limit int) ([]RestaurantSummary, error) {
	var restaurants []models.Restaurant
	offset := (page - 1) * limit

	query := s.db.Where("is_active = ?", true).Order("name").Offset(offset).Limit(limit)
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if err := query.Find(&restaurants).Error; err != nil {
		return nil, apperr.Internal("failed to fetch restaurants", err)
	}

	summaries := make([]RestaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		summary, err := s.withSummary(r)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *RestaurantService) withSummary(restaurant models.Restaurant) (*RestaurantSummary, error) {
	var count int64
	var avg float64
	if err := s.db.Model(&models.Review{}).
		Where("restaurant_name = ?", restaurant.Name).Count(&count).Error; err != nil {
		return nil, apperr.Internal("failed to count reviews", err)
	}
	if count > 0 {
		if err := s.db.Model(&models.Review{}).
			Where("restaurant_name = ?", restaurant.Name).
			Select("AVG(rating)").Scan(&avg).Error; err != nil {
			return nil, apperr.Internal("failed to compute average rating", err)
		}
	}
	return &RestaurantSummary{Restaurant: restaurant, AverageRating: avg, ReviewCount: count}, nil
}
