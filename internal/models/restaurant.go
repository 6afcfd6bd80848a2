package models

import "time"

type Restaurant struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:50;unique;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Address     string    `json:"address"`
	Cuisine     string    `json:"cuisine" gorm:"size:50"`
	ImageURL    string    `json:"image_url"`
	ManagerID   *uint     `json:"manager_id"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Manager *User `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
}
