package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Категории заявок на обслуживание
const (
	MaintenanceCategoryRepair      = "repair"
	MaintenanceCategoryInspection  = "inspection"
	MaintenanceCategoryReplacement = "replacement"
	MaintenanceCategoryUpgrade     = "upgrade"
)

// Приоритеты заявок
const (
	MaintenancePriorityLow    = "low"
	MaintenancePriorityMedium = "medium"
	MaintenancePriorityHigh   = "high"
	MaintenancePriorityUrgent = "urgent"
)

// Статусы заявок
const (
	MaintenanceStatusPending    = "pending"
	MaintenanceStatusApproved   = "approved"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusCompleted  = "completed"
	MaintenanceStatusRejected   = "rejected"
)

// Граф допустимых переходов статуса заявки. Заявка начинает жизнь
// в pending; completed и rejected — терминальные статусы.
var maintenanceStatusTransitions = map[string][]string{
	MaintenanceStatusPending:    {MaintenanceStatusApproved, MaintenanceStatusInProgress, MaintenanceStatusRejected},
	MaintenanceStatusApproved:   {MaintenanceStatusInProgress, MaintenanceStatusRejected},
	MaintenanceStatusInProgress: {MaintenanceStatusCompleted},
	MaintenanceStatusCompleted:  {},
	MaintenanceStatusRejected:   {},
}

// IsValidMaintenanceTransition проверяет, допустим ли переход статуса.
// Повторная установка текущего статуса переходом не считается.
func IsValidMaintenanceTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, allowed := range maintenanceStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidMaintenanceCategory проверяет корректность категории заявки
func IsValidMaintenanceCategory(category string) bool {
	switch category {
	case MaintenanceCategoryRepair, MaintenanceCategoryInspection,
		MaintenanceCategoryReplacement, MaintenanceCategoryUpgrade:
		return true
	}
	return false
}

// IsValidMaintenancePriority проверяет корректность приоритета заявки
func IsValidMaintenancePriority(priority string) bool {
	switch priority {
	case MaintenancePriorityLow, MaintenancePriorityMedium,
		MaintenancePriorityHigh, MaintenancePriorityUrgent:
		return true
	}
	return false
}

// MaintenanceRequest представляет заявку на обслуживание оборудования
type MaintenanceRequest struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Владелец заявки и его снапшот на момент создания
	UserID string `json:"user_id" gorm:"index;not null"`
	User   User   `json:"user" gorm:"serializer:json"`

	// Основные поля
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category" gorm:"not null"`
	Priority    string `json:"priority" gorm:"not null"`
	Status      string `json:"status" gorm:"default:'pending';index"`

	// Заполняются администратором по ходу обработки
	AssignedTo    string           `json:"assigned_to,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty" gorm:"type:decimal(14,2)"`
	ActualCost    *decimal.Decimal `json:"actual_cost,omitempty" gorm:"type:decimal(14,2)"`
	ScheduledDate *time.Time       `json:"scheduled_date,omitempty"`
	CompletedDate *time.Time       `json:"completed_date,omitempty"`
	Images        []string         `json:"images,omitempty" gorm:"serializer:json"`
	AdminNotes    string           `json:"admin_notes,omitempty" gorm:"type:text"`
}

// TableName задает имя таблицы для модели MaintenanceRequest
func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

// IsOwnedBy проверяет, принадлежит ли заявка пользователю
func (m *MaintenanceRequest) IsOwnedBy(userID string) bool {
	return m.UserID == userID
}
