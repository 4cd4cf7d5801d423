package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend_fleetmon/models"
	"backend_fleetmon/testutils"
)

func TestDashboardService_AdminStats(t *testing.T) {
	db, _ := testutils.SetupTestDB(t)
	admin := testutils.CreateTestUser(t, db, "1", models.RoleAdmin)
	user := testutils.CreateTestUser(t, db, "2", models.RoleUser)

	testutils.CreateTestProduct(t, db, "p1", 2500000, 10)
	testutils.CreateTestProduct(t, db, "p2", 1800000, 5)

	maintenance := NewMaintenanceService(db, 0)
	request, err := maintenance.Create(user, validInput())
	require.NoError(t, err)
	_, err = maintenance.Create(user, validInput())
	require.NoError(t, err)
	// Одобренная заявка не считается ожидающей
	_, err = maintenance.Update(admin, request.ID, MaintenanceUpdate{Status: models.MaintenanceStatusApproved})
	require.NoError(t, err)

	// При нулевом источнике уровень топлива критический: одна
	// непрочитанная тревога
	monitoring := NewMonitoringService(constRand(0), 30*time.Second)
	monitoring.Refresh()

	stats, err := NewDashboardService(db, monitoring).AdminStats()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.PendingMaintenanceRequests)
	assert.Equal(t, 1, stats.ActiveMonitoringAlerts)
	// 10 * 2 500 000 + 5 * 1 800 000
	assert.True(t, decimal.NewFromInt(34000000).Equal(stats.CatalogValue),
		"catalog value: %s", stats.CatalogValue)
}

func TestDashboardService_UserStats(t *testing.T) {
	db, _ := testutils.SetupTestDB(t)
	user := testutils.CreateTestUser(t, db, "2", models.RoleUser)
	other := testutils.CreateTestUser(t, db, "3", models.RoleUser)

	testutils.CreateTestProduct(t, db, "p1", 2500000, 10)
	testutils.CreateTestProduct(t, db, "p2", 1800000, 0) // нет на складе

	maintenance := NewMaintenanceService(db, 0)
	_, err := maintenance.Create(user, validInput())
	require.NoError(t, err)
	_, err = maintenance.Create(other, validInput())
	require.NoError(t, err)

	monitoring := NewMonitoringService(constRand(0.5), 30*time.Second)
	monitoring.Refresh()

	stats, err := NewDashboardService(db, monitoring).UserStats(user.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.MaintenanceRequests)
	assert.Equal(t, int64(1), stats.PendingRequests)
	assert.Equal(t, int64(1), stats.AvailableProducts)
	assert.Empty(t, stats.MonitoringAlerts)
}

func TestDashboardService_EmptyDatabase(t *testing.T) {
	db, _ := testutils.SetupTestDB(t)

	monitoring := NewMonitoringService(constRand(0.5), 30*time.Second)
	monitoring.Refresh()

	stats, err := NewDashboardService(db, monitoring).AdminStats()
	require.NoError(t, err)

	assert.Zero(t, stats.TotalUsers)
	assert.Zero(t, stats.TotalProducts)
	assert.Zero(t, stats.PendingMaintenanceRequests)
	assert.Zero(t, stats.ActiveMonitoringAlerts)
	assert.True(t, stats.CatalogValue.IsZero())
}
