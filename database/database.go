package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backend_fleetmon/models"
)

// Connect открывает встроенное хранилище по указанному пути и выполняет
// миграции. Хранилище живет в одном процессе, долговечность данных
// ограничена файлом на диске.
func Connect(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть хранилище %s: %w", path, err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	log.Printf("✅ Хранилище '%s' успешно инициализировано", path)
	return db, nil
}

// ConnectInMemory открывает хранилище в памяти (используется в тестах)
func ConnectInMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть хранилище в памяти: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// migrate выполняет миграции всех моделей
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.MaintenanceRequest{},
		&KVEntry{},
	)
	if err != nil {
		return fmt.Errorf("ошибка при выполнении миграций: %w", err)
	}
	return nil
}
