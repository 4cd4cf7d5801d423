package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backend_fleetmon/models"
)

// MaintenanceService предоставляет CRUD-операции над заявками на
// обслуживание. Обычный пользователь видит и изменяет только свои заявки,
// администратор — все.
type MaintenanceService struct {
	db      *gorm.DB
	latency time.Duration
}

// NewMaintenanceService создает новый экземпляр MaintenanceService
func NewMaintenanceService(db *gorm.DB, latency time.Duration) *MaintenanceService {
	return &MaintenanceService{db: db, latency: latency}
}

// MaintenanceInput представляет данные формы создания заявки
type MaintenanceInput struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	Priority      string           `json:"priority"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty"`
	ScheduledDate *time.Time       `json:"scheduled_date,omitempty"`
	Images        []string         `json:"images,omitempty"`
}

// Validate проверяет данные заявки и возвращает ошибки по полям
func (in *MaintenanceInput) Validate() FieldErrors {
	fe := FieldErrors{}
	if in.Title == "" {
		fe["title"] = "title is required"
	}
	if !models.IsValidMaintenanceCategory(in.Category) {
		fe["category"] = "unknown category"
	}
	if !models.IsValidMaintenancePriority(in.Priority) {
		fe["priority"] = "unknown priority"
	}
	if in.EstimatedCost != nil && in.EstimatedCost.IsNegative() {
		fe["estimated_cost"] = "estimated cost must not be negative"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// MaintenanceUpdate представляет частичное обновление заявки.
// Нулевые поля не изменяются.
type MaintenanceUpdate struct {
	Title         string           `json:"title,omitempty"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category,omitempty"`
	Priority      string           `json:"priority,omitempty"`
	Status        string           `json:"status,omitempty"`
	AssignedTo    string           `json:"assigned_to,omitempty"`
	ActualCost    *decimal.Decimal `json:"actual_cost,omitempty"`
	ScheduledDate *time.Time       `json:"scheduled_date,omitempty"`
	CompletedDate *time.Time       `json:"completed_date,omitempty"`
	AdminNotes    string           `json:"admin_notes,omitempty"`
}

// List возвращает заявки, видимые наблюдателю, в порядке создания
func (s *MaintenanceService) List(viewer *models.User) ([]models.MaintenanceRequest, error) {
	if viewer == nil {
		return nil, ErrNotAuthenticated
	}

	query := s.db.Order("created_at, id")
	if !viewer.IsAdmin() {
		query = query.Where("user_id = ?", viewer.ID)
	}

	var requests []models.MaintenanceRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("ошибка при получении заявок: %w", err)
	}
	return requests, nil
}

// Get возвращает заявку по идентификатору с проверкой прав доступа
func (s *MaintenanceService) Get(viewer *models.User, id string) (*models.MaintenanceRequest, error) {
	if viewer == nil {
		return nil, ErrNotAuthenticated
	}

	var request models.MaintenanceRequest
	if err := s.db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении заявки %s: %w", id, err)
	}

	if !viewer.IsAdmin() && !request.IsOwnedBy(viewer.ID) {
		return nil, ErrForbidden
	}
	return &request, nil
}

// Create добавляет новую заявку от имени пользователя. Статус всегда
// pending, идентификатор — очередной номер вида MR001.
func (s *MaintenanceService) Create(viewer *models.User, input MaintenanceInput) (*models.MaintenanceRequest, error) {
	if viewer == nil {
		return nil, ErrNotAuthenticated
	}
	if fe := input.Validate(); fe != nil {
		return nil, fe
	}

	id, err := s.nextRequestID()
	if err != nil {
		return nil, err
	}

	s.simulateLatency()

	snapshot := *viewer
	snapshot.Password = ""

	request := models.MaintenanceRequest{
		ID:            id,
		UserID:        viewer.ID,
		User:          snapshot,
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		Priority:      input.Priority,
		Status:        models.MaintenanceStatusPending,
		EstimatedCost: input.EstimatedCost,
		ScheduledDate: input.ScheduledDate,
		Images:        input.Images,
	}

	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("ошибка при создании заявки: %w", err)
	}
	return &request, nil
}

// Update применяет частичное обновление заявки. Владелец меняет описание
// заявки, администратор — еще и служебные поля. Смена статуса допускается
// только по графу переходов.
func (s *MaintenanceService) Update(viewer *models.User, id string, update MaintenanceUpdate) (*models.MaintenanceRequest, error) {
	request, err := s.Get(viewer, id)
	if err != nil {
		return nil, err
	}

	// Служебные поля доступны только администратору
	adminOnly := update.AssignedTo != "" || update.AdminNotes != "" || update.ActualCost != nil
	if adminOnly && !viewer.IsAdmin() {
		return nil, ErrForbidden
	}

	if update.Status != "" && update.Status != request.Status {
		if !models.IsValidMaintenanceTransition(request.Status, update.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, request.Status, update.Status)
		}
		request.Status = update.Status
		if update.Status == models.MaintenanceStatusCompleted && update.CompletedDate == nil {
			now := time.Now()
			request.CompletedDate = &now
		}
	}

	if update.Title != "" {
		request.Title = update.Title
	}
	if update.Description != "" {
		request.Description = update.Description
	}
	if update.Category != "" {
		if !models.IsValidMaintenanceCategory(update.Category) {
			return nil, FieldErrors{"category": "unknown category"}
		}
		request.Category = update.Category
	}
	if update.Priority != "" {
		if !models.IsValidMaintenancePriority(update.Priority) {
			return nil, FieldErrors{"priority": "unknown priority"}
		}
		request.Priority = update.Priority
	}
	if update.AssignedTo != "" {
		request.AssignedTo = update.AssignedTo
	}
	if update.ActualCost != nil {
		if update.ActualCost.IsNegative() {
			return nil, FieldErrors{"actual_cost": "actual cost must not be negative"}
		}
		request.ActualCost = update.ActualCost
	}
	if update.ScheduledDate != nil {
		request.ScheduledDate = update.ScheduledDate
	}
	if update.CompletedDate != nil {
		request.CompletedDate = update.CompletedDate
	}
	if update.AdminNotes != "" {
		request.AdminNotes = update.AdminNotes
	}

	s.simulateLatency()

	if err := s.db.Save(request).Error; err != nil {
		return nil, fmt.Errorf("ошибка при обновлении заявки %s: %w", id, err)
	}
	return request, nil
}

// Delete удаляет заявку. Доступно владельцу и администратору.
func (s *MaintenanceService) Delete(viewer *models.User, id string) error {
	request, err := s.Get(viewer, id)
	if err != nil {
		return err
	}

	s.simulateLatency()

	if err := s.db.Delete(request).Error; err != nil {
		return fmt.Errorf("ошибка при удалении заявки %s: %w", id, err)
	}
	return nil
}

// nextRequestID выдает очередной номер вида MR001. Номер выводится из
// максимального существующего идентификатора, а не из количества строк:
// после удаления заявки счетчик не должен откатываться на занятый номер.
func (s *MaintenanceService) nextRequestID() (string, error) {
	var ids []string
	err := s.db.Model(&models.MaintenanceRequest{}).
		Order("id DESC").Limit(1).Pluck("id", &ids).Error
	if err != nil {
		return "", fmt.Errorf("ошибка при нумерации заявки: %w", err)
	}

	next := 1
	if len(ids) > 0 {
		var last int
		if _, err := fmt.Sscanf(ids[0], "MR%d", &last); err != nil {
			return "", fmt.Errorf("ошибка при разборе номера заявки %s: %w", ids[0], err)
		}
		next = last + 1
	}
	return fmt.Sprintf("MR%03d", next), nil
}

func (s *MaintenanceService) simulateLatency() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}
