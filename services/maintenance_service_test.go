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

func setupMaintenanceServiceTest(t *testing.T) (*gorm.DB, *MaintenanceService, *models.User, *models.User) {
	db, _ := testutils.SetupTestDB(t)
	admin := testutils.CreateTestUser(t, db, "1", models.RoleAdmin)
	owner := testutils.CreateTestUser(t, db, "2", models.RoleUser)
	return db, NewMaintenanceService(db, 0), admin, owner
}

func validInput() MaintenanceInput {
	return MaintenanceInput{
		Title:       "Perbaikan Sensor Suhu",
		Description: "Sensor tidak akurat",
		Category:    models.MaintenanceCategoryRepair,
		Priority:    models.MaintenancePriorityHigh,
	}
}

func TestMaintenanceService_Create(t *testing.T) {
	_, svc, _, owner := setupMaintenanceServiceTest(t)

	request, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	assert.Equal(t, "MR001", request.ID)
	assert.Equal(t, models.MaintenanceStatusPending, request.Status)
	assert.Equal(t, owner.ID, request.UserID)
	// Снапшот владельца без пароля
	assert.Equal(t, owner.Name, request.User.Name)
	assert.Empty(t, request.User.Password)

	// Следующая заявка получает очередной номер
	second, err := svc.Create(owner, validInput())
	require.NoError(t, err)
	assert.Equal(t, "MR002", second.ID)
}

func TestMaintenanceService_CreateAfterDelete(t *testing.T) {
	_, svc, _, owner := setupMaintenanceServiceTest(t)

	first, err := svc.Create(owner, validInput())
	require.NoError(t, err)
	second, err := svc.Create(owner, validInput())
	require.NoError(t, err)
	require.Equal(t, "MR002", second.ID)

	// Номер выводится из максимального существующего идентификатора:
	// после удаления счетчик не откатывается на занятый номер
	require.NoError(t, svc.Delete(owner, first.ID))

	third, err := svc.Create(owner, validInput())
	require.NoError(t, err)
	assert.Equal(t, "MR003", third.ID)

	// Удаление последней заявки освобождает ее номер
	require.NoError(t, svc.Delete(owner, third.ID))
	fourth, err := svc.Create(owner, validInput())
	require.NoError(t, err)
	assert.Equal(t, "MR003", fourth.ID)
}

func TestMaintenanceService_CreateValidation(t *testing.T) {
	_, svc, _, owner := setupMaintenanceServiceTest(t)

	negative := decimal.NewFromInt(-100)
	tests := []struct {
		name  string
		input MaintenanceInput
		field string
	}{
		{"empty title", MaintenanceInput{Category: models.MaintenanceCategoryRepair, Priority: models.MaintenancePriorityLow}, "title"},
		{"unknown category", MaintenanceInput{Title: "X", Category: "demolition", Priority: models.MaintenancePriorityLow}, "category"},
		{"unknown priority", MaintenanceInput{Title: "X", Category: models.MaintenanceCategoryRepair, Priority: "asap"}, "priority"},
		{"negative cost", MaintenanceInput{Title: "X", Category: models.MaintenanceCategoryRepair, Priority: models.MaintenancePriorityLow, EstimatedCost: &negative}, "estimated_cost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(owner, tt.input)
			require.Error(t, err)

			var fe FieldErrors
			require.ErrorAs(t, err, &fe)
			assert.True(t, fe.Has(tt.field))
		})
	}
}

func TestMaintenanceService_ListRoleScoped(t *testing.T) {
	db, svc, admin, owner := setupMaintenanceServiceTest(t)
	other := testutils.CreateTestUser(t, db, "3", models.RoleUser)

	_, err := svc.Create(owner, validInput())
	require.NoError(t, err)
	_, err = svc.Create(other, validInput())
	require.NoError(t, err)

	all, err := svc.List(admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.List(owner)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, owner.ID, own[0].UserID)

	_, err = svc.List(nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestMaintenanceService_GetAccessControl(t *testing.T) {
	db, svc, admin, owner := setupMaintenanceServiceTest(t)
	other := testutils.CreateTestUser(t, db, "3", models.RoleUser)

	request, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	_, err = svc.Get(admin, request.ID)
	assert.NoError(t, err)

	_, err = svc.Get(other, request.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(owner, "MR999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMaintenanceService_StatusTransitions(t *testing.T) {
	_, svc, admin, owner := setupMaintenanceServiceTest(t)

	request, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	// pending -> approved -> in_progress -> completed
	updated, err := svc.Update(admin, request.ID, MaintenanceUpdate{Status: models.MaintenanceStatusApproved})
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusApproved, updated.Status)

	updated, err = svc.Update(admin, request.ID, MaintenanceUpdate{Status: models.MaintenanceStatusInProgress})
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusInProgress, updated.Status)

	updated, err = svc.Update(admin, request.ID, MaintenanceUpdate{Status: models.MaintenanceStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedDate)
}

func TestMaintenanceService_InvalidTransitions(t *testing.T) {
	_, svc, admin, owner := setupMaintenanceServiceTest(t)

	request, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	// pending -> completed запрещен
	_, err = svc.Update(admin, request.ID, MaintenanceUpdate{Status: models.MaintenanceStatusCompleted})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Из терминального rejected переходов нет
	_, err = svc.Update(admin, request.ID, MaintenanceUpdate{Status: models.MaintenanceStatusRejected})
	require.NoError(t, err)
	_, err = svc.Update(admin, request.ID, MaintenanceUpdate{Status: models.MaintenanceStatusPending})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMaintenanceService_UpdateAdminOnlyFields(t *testing.T) {
	_, svc, admin, owner := setupMaintenanceServiceTest(t)

	request, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	// Владелец не может назначать техника
	_, err = svc.Update(owner, request.ID, MaintenanceUpdate{AssignedTo: "Teknisi Ahmad"})
	assert.ErrorIs(t, err, ErrForbidden)

	// Администратор может
	cost := decimal.NewFromInt(500000)
	updated, err := svc.Update(admin, request.ID, MaintenanceUpdate{
		AssignedTo: "Teknisi Ahmad",
		ActualCost: &cost,
		AdminNotes: "Estimasi selesai 2 hari",
	})
	require.NoError(t, err)
	assert.Equal(t, "Teknisi Ahmad", updated.AssignedTo)
	assert.True(t, cost.Equal(*updated.ActualCost))
}

func TestMaintenanceService_UpdateOwnFields(t *testing.T) {
	_, svc, _, owner := setupMaintenanceServiceTest(t)

	request, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	updated, err := svc.Update(owner, request.ID, MaintenanceUpdate{
		Title:    "Judul baru",
		Priority: models.MaintenancePriorityUrgent,
	})
	require.NoError(t, err)
	assert.Equal(t, "Judul baru", updated.Title)
	assert.Equal(t, models.MaintenancePriorityUrgent, updated.Priority)
	// Нетронутые поля сохраняются
	assert.Equal(t, "Sensor tidak akurat", updated.Description)
}

func TestMaintenanceService_Delete(t *testing.T) {
	db, svc, _, owner := setupMaintenanceServiceTest(t)
	other := testutils.CreateTestUser(t, db, "3", models.RoleUser)

	request, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(other, request.ID), ErrForbidden)
	assert.NoError(t, svc.Delete(owner, request.ID))

	_, err = svc.Get(owner, request.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsValidMaintenanceTransition(t *testing.T) {
	assert.True(t, models.IsValidMaintenanceTransition(models.MaintenanceStatusPending, models.MaintenanceStatusApproved))
	assert.True(t, models.IsValidMaintenanceTransition(models.MaintenanceStatusPending, models.MaintenanceStatusPending))
	assert.True(t, models.IsValidMaintenanceTransition(models.MaintenanceStatusApproved, models.MaintenanceStatusRejected))
	assert.False(t, models.IsValidMaintenanceTransition(models.MaintenanceStatusCompleted, models.MaintenanceStatusPending))
	assert.False(t, models.IsValidMaintenanceTransition(models.MaintenanceStatusRejected, models.MaintenanceStatusInProgress))
	assert.False(t, models.IsValidMaintenanceTransition(models.MaintenanceStatusInProgress, models.MaintenanceStatusApproved))
}
