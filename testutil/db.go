package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sepnoty-tech/sepnoty-api/logger"
	"github.com/sepnoty-tech/sepnoty-api/models"
)

// NewDB opens an isolated in-memory database with the full schema migrated.
// Application logs from the test run land in the test output.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Replace(zaptest.NewLogger(t))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

// NewUser persists a user with a cart and returns it.
func NewUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		Name:     "Test User",
		Email:    email,
		Provider: "local",
		Cart:     models.Cart{},
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// NewProduct persists a catalog product and returns it.
func NewProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := models.Product{
		Name:         name,
		Price:        price,
		CountInStock: stock,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}
