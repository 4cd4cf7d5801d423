package database

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"backend_fleetmon/models"
)

// Seed наполняет хранилище демонстрационными данными: предустановленные
// аккаунты, каталог сенсоров и несколько заявок на обслуживание.
// Повторный запуск существующие записи не дублирует.
func Seed(db *gorm.DB, demoPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("не удалось захешировать демо-пароль: %w", err)
	}

	now := time.Now()

	users := []models.User{
		{
			ID:       "1",
			Name:     "Admin User",
			Email:    "admin@example.com",
			Password: string(hash),
			Role:     models.RoleAdmin,
			Avatar:   "https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg?auto=compress&cs=tinysrgb&w=150",
			Phone:    "+62812345678",
			Address:  "Jakarta, Indonesia",
			IsActive: true,
		},
		{
			ID:       "2",
			Name:     "Regular User",
			Email:    "user@example.com",
			Password: string(hash),
			Role:     models.RoleUser,
			Avatar:   "https://images.pexels.com/photos/1239291/pexels-photo-1239291.jpeg?auto=compress&cs=tinysrgb&w=150",
			Phone:    "+62812345679",
			Address:  "Bandung, Indonesia",
			IsActive: true,
		},
	}
	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("ошибка при создании пользователя %s: %w", user.Email, err)
		}
	}

	products := []models.Product{
		{
			ID:          "1",
			Name:        "Fuel Level Sensor Pro",
			Description: "Sensor level BBM dengan akurasi tinggi untuk monitoring real-time konsumsi bahan bakar kendaraan tambang",
			Price:       decimal.NewFromInt(2500000),
			Category:    models.CategorySensor,
			ImageURL:    "https://images.pexels.com/photos/442150/pexels-photo-442150.jpeg?auto=compress&cs=tinysrgb&w=400",
			Stock:       25,
			IsActive:    true,
		},
		{
			ID:          "2",
			Name:        "GPS Tracker Heavy Duty",
			Description: "GPS tracker tahan banting untuk kendaraan tambang dengan battery life hingga 2 tahun",
			Price:       decimal.NewFromInt(1800000),
			Category:    models.CategoryAccessories,
			ImageURL:    "https://images.pexels.com/photos/325229/pexels-photo-325229.jpeg?auto=compress&cs=tinysrgb&w=400",
			Stock:       10,
			IsActive:    true,
		},
		{
			ID:          "3",
			Name:        "Engine Temperature Sensor",
			Description: "Sensor suhu mesin khusus untuk kendaraan berat dengan alert otomatis overheating",
			Price:       decimal.NewFromInt(750000),
			Category:    models.CategorySensor,
			ImageURL:    "https://images.pexels.com/photos/163100/circuit-circuit-board-resistor-computer-163100.jpeg?auto=compress&cs=tinysrgb&w=400",
			Stock:       15,
			IsActive:    true,
		},
		{
			ID:          "4",
			Name:        "Complete Mining IoT Kit",
			Description: "Paket lengkap sensor IoT untuk monitoring kendaraan tambang: fuel, GPS, suhu, getaran",
			Price:       decimal.NewFromInt(8500000),
			Category:    models.CategoryMonitoring,
			ImageURL:    "https://images.pexels.com/photos/159298/gears-cogs-machine-machinery-159298.jpeg?auto=compress&cs=tinysrgb&w=400",
			Stock:       5,
			IsActive:    true,
		},
		{
			ID:          "5",
			Name:        "Vibration Sensor Industrial",
			Description: "Sensor getaran untuk deteksi dini kerusakan mesin dan prediksi maintenance",
			Price:       decimal.NewFromInt(1200000),
			Category:    models.CategorySensor,
			ImageURL:    "https://images.pexels.com/photos/442150/pexels-photo-442150.jpeg?auto=compress&cs=tinysrgb&w=400",
			Stock:       8,
			IsActive:    true,
		},
	}
	for _, product := range products {
		if err := db.Where("id = ?", product.ID).FirstOrCreate(&product).Error; err != nil {
			return fmt.Errorf("ошибка при создании товара %s: %w", product.Name, err)
		}
	}

	regular := users[1]
	regular.Password = ""

	estimatedRepair := decimal.NewFromInt(500000)
	estimatedInspection := decimal.NewFromInt(200000)
	estimatedReplacement := decimal.NewFromInt(800000)
	actualReplacement := decimal.NewFromInt(750000)
	scheduledRepair := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	scheduledReplacement := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	completedReplacement := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

	requests := []models.MaintenanceRequest{
		{
			ID:            "MR001",
			UserID:        regular.ID,
			User:          regular,
			Title:         "Perbaikan Sensor Suhu A1",
			Description:   "Sensor suhu A1 tidak memberikan pembacaan yang akurat. Perlu dikalibrasi atau diganti.",
			Category:      models.MaintenanceCategoryRepair,
			Priority:      models.MaintenancePriorityHigh,
			Status:        models.MaintenanceStatusInProgress,
			AssignedTo:    "Teknisi Ahmad",
			EstimatedCost: &estimatedRepair,
			ScheduledDate: &scheduledRepair,
			Images:        []string{"https://images.pexels.com/photos/159298/gears-cogs-machine-machinery-159298.jpeg?auto=compress&cs=tinysrgb&w=400"},
			AdminNotes:    "Sedang dalam proses perbaikan, estimasi selesai 2 hari.",
		},
		{
			ID:            "MR002",
			UserID:        regular.ID,
			User:          regular,
			Title:         "Kalibrasi Data Logger",
			Description:   "Data logger perlu dikalibrasi ulang karena hasil pembacaan tidak konsisten.",
			Category:      models.MaintenanceCategoryInspection,
			Priority:      models.MaintenancePriorityMedium,
			Status:        models.MaintenanceStatusPending,
			EstimatedCost: &estimatedInspection,
		},
		{
			ID:            "MR003",
			UserID:        regular.ID,
			User:          regular,
			Title:         "Penggantian Baterai UPS",
			Description:   "Baterai UPS sudah lemah dan perlu diganti untuk menjaga kontinuitas sistem.",
			Category:      models.MaintenanceCategoryReplacement,
			Priority:      models.MaintenancePriorityLow,
			Status:        models.MaintenanceStatusCompleted,
			AssignedTo:    "Teknisi Budi",
			EstimatedCost: &estimatedReplacement,
			ActualCost:    &actualReplacement,
			ScheduledDate: &scheduledReplacement,
			CompletedDate: &completedReplacement,
			AdminNotes:    "Penggantian baterai berhasil dilakukan. Sistem berjalan normal.",
		},
	}
	for _, request := range requests {
		if err := db.Where("id = ?", request.ID).FirstOrCreate(&request).Error; err != nil {
			return fmt.Errorf("ошибка при создании заявки %s: %w", request.ID, err)
		}
	}

	log.Printf("✅ Демоданные загружены: %d пользователей, %d товаров, %d заявок (%s)",
		len(users), len(products), len(requests), now.Format("2006-01-02 15:04:05"))
	return nil
}
