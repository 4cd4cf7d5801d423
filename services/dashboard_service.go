package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backend_fleetmon/models"
)

// DashboardService собирает сводные показатели для дашбордов
// администратора и пользователя
type DashboardService struct {
	db         *gorm.DB
	monitoring *MonitoringService
}

// NewDashboardService создает новый экземпляр DashboardService
func NewDashboardService(db *gorm.DB, monitoring *MonitoringService) *DashboardService {
	return &DashboardService{db: db, monitoring: monitoring}
}

// AdminDashboardStats содержит сводку для дашборда администратора
type AdminDashboardStats struct {
	TotalUsers                 int64           `json:"total_users"`
	TotalProducts              int64           `json:"total_products"`
	PendingMaintenanceRequests int64           `json:"pending_maintenance_requests"`
	ActiveMonitoringAlerts     int             `json:"active_monitoring_alerts"`
	CatalogValue               decimal.Decimal `json:"catalog_value"`
}

// UserDashboardStats содержит сводку для дашборда пользователя
type UserDashboardStats struct {
	MaintenanceRequests int64                    `json:"maintenance_requests"`
	PendingRequests     int64                    `json:"pending_requests"`
	AvailableProducts   int64                    `json:"available_products"`
	MonitoringAlerts    []models.MonitoringAlert `json:"monitoring_alerts"`
}

// AdminStats возвращает сводку для администратора
func (s *DashboardService) AdminStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{CatalogValue: decimal.Zero}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("ошибка при подсчете пользователей: %w", err)
	}
	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("ошибка при подсчете товаров: %w", err)
	}
	if err := s.db.Model(&models.MaintenanceRequest{}).
		Where("status = ?", models.MaintenanceStatusPending).
		Count(&stats.PendingMaintenanceRequests).Error; err != nil {
		return nil, fmt.Errorf("ошибка при подсчете заявок: %w", err)
	}

	var products []models.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("ошибка при оценке каталога: %w", err)
	}
	for _, product := range products {
		stats.CatalogValue = stats.CatalogValue.Add(
			product.Price.Mul(decimal.NewFromInt(int64(product.Stock))))
	}

	for _, alert := range s.monitoring.Alerts() {
		if !alert.IsRead {
			stats.ActiveMonitoringAlerts++
		}
	}

	return stats, nil
}

// UserStats возвращает сводку для обычного пользователя
func (s *DashboardService) UserStats(userID string) (*UserDashboardStats, error) {
	stats := &UserDashboardStats{}

	if err := s.db.Model(&models.MaintenanceRequest{}).
		Where("user_id = ?", userID).
		Count(&stats.MaintenanceRequests).Error; err != nil {
		return nil, fmt.Errorf("ошибка при подсчете заявок пользователя: %w", err)
	}
	if err := s.db.Model(&models.MaintenanceRequest{}).
		Where("user_id = ? AND status = ?", userID, models.MaintenanceStatusPending).
		Count(&stats.PendingRequests).Error; err != nil {
		return nil, fmt.Errorf("ошибка при подсчете ожидающих заявок: %w", err)
	}
	if err := s.db.Model(&models.Product{}).
		Where("is_active = ? AND stock > 0", true).
		Count(&stats.AvailableProducts).Error; err != nil {
		return nil, fmt.Errorf("ошибка при подсчете доступных товаров: %w", err)
	}

	stats.MonitoringAlerts = s.monitoring.Alerts()
	return stats, nil
}
