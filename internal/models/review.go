package models

import (
	"time"
)

type Review struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	UserID         uint   `json:"user_id" gorm:"not null;index"`
	RestaurantName string `json:"restaurant_name" gorm:"size:50;not null;index"`
	Rating         int    `json:"rating" gorm:"check:rating >= 1 AND rating <= 5"`
	Comment        string `json:"comment" gorm:"type:text"`

	FoodRating        int `json:"food_rating" gorm:"default:0"`
	ServiceRating     int `json:"service_rating" gorm:"default:0"`
	AtmosphereRating  int `json:"atmosphere_rating" gorm:"default:0"`
	PriceRating       int `json:"price_rating" gorm:"default:0"`
	CleanlinessRating int `json:"cleanliness_rating" gorm:"default:0"`

	// Likes is the running vote tally: sum of +1 (up) and -1 (down) votes.
	Likes     int       `json:"likes" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User     User             `json:"user,omitempty"`
	Votes    []ReviewVote     `json:"-"`
	Photos   []ReviewPhoto    `json:"photos,omitempty"`
	Response *ManagerResponse `json:"response,omitempty"`
}

const (
	VoteUp   = "up"
	VoteDown = "down"
)

// ReviewVote is immutable once created: there is no retraction or change.
// The composite unique index makes the store the arbiter of duplicate votes.
type ReviewVote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ReviewID  uint      `json:"review_id" gorm:"not null;uniqueIndex:idx_review_voter"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_review_voter"`
	VoteType  string    `json:"vote_type" gorm:"size:4;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReviewVote) TableName() string {
	return "review_votes"
}

// Delta is the tally contribution of this vote.
func (v ReviewVote) Delta() int {
	if v.VoteType == VoteDown {
		return -1
	}
	return 1
}

// ManagerResponse holds the single response a manager may leave on a review.
// A review counts as "responded" exactly when a row exists here.
type ManagerResponse struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ReviewID    uint      `json:"review_id" gorm:"not null;uniqueIndex"`
	ResponderID uint      `json:"responder_id" gorm:"not null"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReviewPhoto struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ReviewID    uint      `json:"review_id" gorm:"not null;index"`
	FileName    string    `json:"file_name"`
	S3Key       string    `json:"-"`
	S3URL       string    `json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeletedReview is the audit snapshot written when a moderator removes a
// review. It is created exactly once, in the same transaction that destroys
// the live row, and never mutated afterwards.
type DeletedReview struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ReviewID       uint   `json:"review_id" gorm:"not null;index"`
	UserID         uint   `json:"user_id" gorm:"not null;index"`
	RestaurantName string `json:"restaurant_name" gorm:"size:50"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment" gorm:"type:text"`

	FoodRating        int `json:"food_rating"`
	ServiceRating     int `json:"service_rating"`
	AtmosphereRating  int `json:"atmosphere_rating"`
	PriceRating       int `json:"price_rating"`
	CleanlinessRating int `json:"cleanliness_rating"`
	Likes             int `json:"likes"`

	RemovedByID uint      `json:"removed_by_id" gorm:"not null"`
	Reason      string    `json:"reason" gorm:"type:text;not null"`
	ReviewedAt  time.Time `json:"reviewed_at"` // original review creation time
	RemovedAt   time.Time `json:"removed_at" gorm:"autoCreateTime"`
}

func (DeletedReview) TableName() string {
	return "deleted_reviews"
}
