package testutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backend_fleetmon/database"
	"backend_fleetmon/models"
)

// SetupTestDB создает тестовое хранилище в памяти вместе с key-value
// областью. Эта функция должна использоваться во всех тестах для
// обеспечения консистентности.
func SetupTestDB(t *testing.T) (*gorm.DB, *database.LocalStore) {
	t.Helper()

	db, err := database.ConnectInMemory()
	require.NoError(t, err)

	return db, database.NewLocalStore(db)
}

// CreateTestUser создает тестового пользователя с указанной ролью
func CreateTestUser(t *testing.T, db *gorm.DB, id, role string) *models.User {
	t.Helper()

	user := &models.User{
		ID:       id,
		Name:     "Test User " + id,
		Email:    "user" + id + "@test.local",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestProduct создает тестовый товар каталога
func CreateTestProduct(t *testing.T, db *gorm.DB, id string, price int64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:       id,
		Name:     "Test Product " + id,
		Category: models.CategorySensor,
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
