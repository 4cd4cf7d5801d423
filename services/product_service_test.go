package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backend_fleetmon/models"
	"backend_fleetmon/testutils"
)

func setupProductServiceTest(t *testing.T) (*gorm.DB, *ProductService, *models.User, *models.User) {
	db, _ := testutils.SetupTestDB(t)
	admin := testutils.CreateTestUser(t, db, "1", models.RoleAdmin)
	user := testutils.CreateTestUser(t, db, "2", models.RoleUser)
	return db, NewProductService(db, 0), admin, user
}

func TestProductService_ListOrder(t *testing.T) {
	db, svc, _, _ := setupProductServiceTest(t)
	testutils.CreateTestProduct(t, db, "p1", 2500000, 10)
	testutils.CreateTestProduct(t, db, "p2", 1800000, 5)
	testutils.CreateTestProduct(t, db, "p3", 750000, 0)

	products, err := svc.List()
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "p2", products[1].ID)
	assert.Equal(t, "p3", products[2].ID)
}

func TestProductService_Get(t *testing.T) {
	db, svc, _, _ := setupProductServiceTest(t)
	testutils.CreateTestProduct(t, db, "p1", 2500000, 10)

	product, err := svc.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, "Test Product p1", product.Name)

	_, err = svc.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductService_CreateAdminOnly(t *testing.T) {
	_, svc, admin, user := setupProductServiceTest(t)

	input := ProductInput{
		Name:     "Sensor Suhu Industri",
		Price:    decimal.NewFromInt(2500000),
		Category: models.CategorySensor,
		Stock:    15,
		IsActive: true,
	}

	_, err := svc.Create(user, input)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Create(nil, input)
	assert.ErrorIs(t, err, ErrForbidden)

	product, err := svc.Create(admin, input)
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.True(t, product.IsPurchasable())

	stored, err := svc.Get(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sensor Suhu Industri", stored.Name)
}

func TestProductService_CreateValidation(t *testing.T) {
	_, svc, admin, _ := setupProductServiceTest(t)

	tests := []struct {
		name  string
		input ProductInput
		field string
	}{
		{"empty name", ProductInput{Price: decimal.NewFromInt(100)}, "name"},
		{"negative price", ProductInput{Name: "X", Price: decimal.NewFromInt(-1)}, "price"},
		{"negative stock", ProductInput{Name: "X", Stock: -1}, "stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(admin, tt.input)
			require.Error(t, err)

			var fe FieldErrors
			require.ErrorAs(t, err, &fe)
			assert.True(t, fe.Has(tt.field))
		})
	}
}

func TestProductService_Update(t *testing.T) {
	db, svc, admin, user := setupProductServiceTest(t)
	testutils.CreateTestProduct(t, db, "p1", 2500000, 10)

	input := ProductInput{
		Name:     "Sensor Suhu v2",
		Price:    decimal.NewFromInt(2750000),
		Category: models.CategorySensor,
		Stock:    8,
		IsActive: true,
	}

	_, err := svc.Update(user, "p1", input)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(admin, "p1", input)
	require.NoError(t, err)
	assert.Equal(t, "Sensor Suhu v2", updated.Name)
	assert.True(t, decimal.NewFromInt(2750000).Equal(updated.Price))
	assert.Equal(t, 8, updated.Stock)

	_, err = svc.Update(admin, "missing", input)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductService_Delete(t *testing.T) {
	db, svc, admin, user := setupProductServiceTest(t)
	testutils.CreateTestProduct(t, db, "p1", 2500000, 10)

	assert.ErrorIs(t, svc.Delete(user, "p1"), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(admin, "missing"), ErrNotFound)

	require.NoError(t, svc.Delete(admin, "p1"))
	_, err := svc.Get("p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProduct_IsPurchasable(t *testing.T) {
	assert.True(t, (&models.Product{IsActive: true, Stock: 1}).IsPurchasable())
	assert.False(t, (&models.Product{IsActive: true, Stock: 0}).IsPurchasable())
	assert.False(t, (&models.Product{IsActive: false, Stock: 5}).IsPurchasable())
}
