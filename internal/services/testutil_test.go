package services

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/platefeed/feedback-backend/internal/models"
	"github.com/platefeed/feedback-backend/internal/roles"
	"github.com/platefeed/feedback-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// newTestDB opens a per-test in-memory database with the same error
// translation the production store uses, so unique-key violations surface as
// gorm.ErrDuplicatedKey here as well.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
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
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role roles.Role) *models.User {
	t.Helper()
	user := models.User{
		Email:       email,
		Password:    "password123",
		DisplayName: strings.Split(email, "@")[0],
		Role:        string(role),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func asActor(u *models.User) roles.Actor {
	return roles.Actor{ID: u.ID, Email: u.Email, Role: roles.Role(u.Role)}
}

func createReview(t *testing.T, svc *ReviewService, authorID uint, restaurant string) *models.Review {
	t.Helper()
	review, err := svc.Create(authorID, CreateReviewRequest{
		RestaurantName: restaurant,
		Rating:         4,
		Comment:        "Solid food, friendly staff.",
		SubRatings:     SubRatings{Food: 4, Service: 5},
	})
	require.NoError(t, err)
	return review
}
