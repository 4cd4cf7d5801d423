package models

import (
	"time"
)

// Типы сенсоров телеметрии
const (
	SensorTypeSensor      = "sensor"
	SensorTypeOperational = "operational"
	SensorTypeFuel        = "fuel"
	SensorTypeMaintenance = "maintenance"
)

// Статусы показаний
const (
	ReadingStatusNormal   = "normal"
	ReadingStatusWarning  = "warning"
	ReadingStatusCritical = "critical"
)

// Уровни важности алертов
const (
	AlertSeverityWarning  = "warning"
	AlertSeverityCritical = "critical"
	AlertSeverityInfo     = "info"
)

// Направления тренда показания
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// ReadingMetadata содержит вспомогательные данные показания
type ReadingMetadata struct {
	Trend           string    `json:"trend"`
	LastMaintenance time.Time `json:"last_maintenance"`
	VehicleID       string    `json:"vehicle_id"`
}

// MonitoringReading представляет одно синтетическое показание сенсора.
// Показания не персистятся: каждый цикл генерации полностью заменяет
// предыдущую коллекцию.
type MonitoringReading struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Name      string          `json:"name"`
	Value     float64         `json:"value"`
	Unit      string          `json:"unit"`
	Status    string          `json:"status"`
	Location  string          `json:"location"`
	Timestamp time.Time       `json:"timestamp"`
	Metadata  ReadingMetadata `json:"metadata"`
}

// MonitoringAlert представляет алерт по показанию вне нормы
type MonitoringAlert struct {
	ID        string    `json:"id"`
	Severity  string    `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
