package services

import (
	"strings"

	"backend_fleetmon/models"
)

// FilterAll отключает ограничение по соответствующему критерию
const FilterAll = "all"

// RequestFilter задает критерии отбора заявок на обслуживание
type RequestFilter struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// ProductFilter задает критерии отбора товаров каталога
type ProductFilter struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

// VisibleRequests ограничивает коллекцию заявок по роли наблюдателя:
// администратор видит все, обычный пользователь — только свои.
// Порядок исходной коллекции сохраняется.
func VisibleRequests(items []models.MaintenanceRequest, viewer *models.User) []models.MaintenanceRequest {
	if viewer == nil {
		return []models.MaintenanceRequest{}
	}
	if viewer.IsAdmin() {
		return append([]models.MaintenanceRequest{}, items...)
	}

	visible := make([]models.MaintenanceRequest, 0, len(items))
	for _, item := range items {
		if item.IsOwnedBy(viewer.ID) {
			visible = append(visible, item)
		}
	}
	return visible
}

// FilterRequests применяет критерии к коллекции заявок. Поиск — регистро-
// независимое вхождение по заголовку, описанию и идентификатору (достаточно
// совпадения любого поля); статус и приоритет — точное совпадение, если
// не "all". Активные критерии комбинируются через логическое И.
func FilterRequests(items []models.MaintenanceRequest, filter RequestFilter) []models.MaintenanceRequest {
	filtered := make([]models.MaintenanceRequest, 0, len(items))
	search := strings.ToLower(filter.Search)

	for _, item := range items {
		if search != "" && !matchesAny(search, item.Title, item.Description, item.ID) {
			continue
		}
		if !matchesCategory(filter.Status, item.Status) {
			continue
		}
		if !matchesCategory(filter.Priority, item.Priority) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// FilterProducts применяет критерии к каталогу: поиск по названию и
// описанию, категория — точное совпадение, если не "all"
func FilterProducts(items []models.Product, filter ProductFilter) []models.Product {
	filtered := make([]models.Product, 0, len(items))
	search := strings.ToLower(filter.Search)

	for _, item := range items {
		if search != "" && !matchesAny(search, item.Name, item.Description) {
			continue
		}
		if !matchesCategory(filter.Category, item.Category) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// RequestStatusCounts считает заявки по статусам. Считается по уже
// ограниченной ролью, но не отфильтрованной коллекции: активные критерии
// поиска на сводку не влияют.
func RequestStatusCounts(items []models.MaintenanceRequest) map[string]int {
	counts := map[string]int{
		models.MaintenanceStatusPending:    0,
		models.MaintenanceStatusApproved:   0,
		models.MaintenanceStatusInProgress: 0,
		models.MaintenanceStatusCompleted:  0,
		models.MaintenanceStatusRejected:   0,
	}
	for _, item := range items {
		counts[item.Status]++
	}
	return counts
}

// ReadingStatusCounts считает показания телеметрии по статусам
func ReadingStatusCounts(readings []models.MonitoringReading) map[string]int {
	counts := map[string]int{
		models.ReadingStatusNormal:   0,
		models.ReadingStatusWarning:  0,
		models.ReadingStatusCritical: 0,
	}
	for _, reading := range readings {
		counts[reading.Status]++
	}
	return counts
}

// matchesAny проверяет вхождение поискового запроса хотя бы в одно поле
func matchesAny(search string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// matchesCategory проверяет точное совпадение категориального критерия.
// Пустое значение и "all" ограничения не накладывают.
func matchesCategory(want, got string) bool {
	return want == "" || want == FilterAll || want == got
}
