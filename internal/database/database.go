package database

import (
	"github.com/platefeed/feedback-backend/internal/models"
	"github.com/platefeed/feedback-backend/internal/roles"
	"github.com/platefeed/feedback-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Init(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		// Unique-key violations must surface as gorm.ErrDuplicatedKey so the
		// vote path can answer races with the existing vote.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate schemas
	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Review{},
		&models.ReviewVote{},
		&models.ManagerResponse{},
		&models.ReviewPhoto{},
		&models.DeletedReview{},
		&models.Ticket{},
		&models.TicketMessage{},
		&models.Notification{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// SeedHeadAdmin makes sure the reserved bootstrap account exists. It is the
// only head_admin created by the system itself.
func SeedHeadAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		logger.Warn("skip seeding head admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := models.User{
		Email:       email,
		Password:    password, // hashed by the BeforeCreate hook
		DisplayName: "Head Admin",
		Role:        string(roles.RoleHeadAdmin),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Info("seeded bootstrap head admin: " + email)
	return nil
}

// NormalizeLegacyRoles rewrites historical role spellings to the canonical
// four-value set. Running it at startup keeps authorization checks free of
// alias branches.
func NormalizeLegacyRoles(db *gorm.DB) error {
	var users []models.User
	if err := db.Select("id", "role").Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		canonical := string(roles.Normalize(u.Role))
		if canonical != u.Role {
			if err := db.Model(&models.User{}).Where("id = ?", u.ID).
				Update("role", canonical).Error; err != nil {
				return err
			}
			logger.Infof("normalized role %q -> %q for user %d", u.Role, canonical, u.ID)
		}
	}
	return nil
}
