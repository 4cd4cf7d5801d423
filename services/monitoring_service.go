package services

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"backend_fleetmon/models"
)

// RandSource абстрагирует источник случайности генератора телеметрии,
// чтобы тесты могли подставить детерминированную последовательность.
// *rand.Rand из math/rand удовлетворяет интерфейсу.
type RandSource interface {
	Float64() float64
}

// sensorSpec описывает один сенсор автопарка
type sensorSpec struct {
	Name     string
	Type     string
	Unit     string
	Location string
}

// Фиксированный список сенсоров автопарка
var fleetSensors = []sensorSpec{
	{Name: "BBM Level DT-001", Type: models.SensorTypeFuel, Unit: "%", Location: "Dump Truck DT-001"},
	{Name: "GPS Tracker DT-001", Type: models.SensorTypeOperational, Unit: "km/h", Location: "Area Tambang A"},
	{Name: "Engine Temp EX-002", Type: models.SensorTypeSensor, Unit: "°C", Location: "Excavator EX-002"},
	{Name: "Fuel Flow BD-003", Type: models.SensorTypeFuel, Unit: "L/h", Location: "Bulldozer BD-003"},
	{Name: "Vibration Sensor DT-004", Type: models.SensorTypeSensor, Unit: "Hz", Location: "Dump Truck DT-004"},
	{Name: "Load Weight DT-001", Type: models.SensorTypeOperational, Unit: "ton", Location: "Dump Truck DT-001"},
}

// MonitoringService генерирует синтетическую телеметрию автопарка.
// Каждый цикл генерации полностью заменяет коллекции показаний и алертов,
// история не накапливается.
type MonitoringService struct {
	rnd      RandSource
	interval time.Duration
	cron     *cron.Cron

	mu         sync.RWMutex
	readings   []models.MonitoringReading
	alerts     []models.MonitoringAlert
	lastUpdate time.Time
}

// NewMonitoringService создает новый экземпляр MonitoringService
func NewMonitoringService(rnd RandSource, interval time.Duration) *MonitoringService {
	return &MonitoringService{
		rnd:      rnd,
		interval: interval,
		cron:     cron.New(),
	}
}

// Start выполняет первичную генерацию и запускает периодическое обновление
func (s *MonitoringService) Start() error {
	s.Refresh()

	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.Refresh()
	})
	if err != nil {
		return fmt.Errorf("не удалось запланировать обновление телеметрии: %w", err)
	}

	s.cron.Start()
	log.Printf("✅ Планировщик телеметрии запущен (каждые %v)", s.interval)
	return nil
}

// Stop останавливает периодическое обновление, чтобы не оставлять
// осиротевших таймеров после закрытия экрана мониторинга
func (s *MonitoringService) Stop() {
	s.cron.Stop()
	log.Println("Планировщик телеметрии остановлен")
}

// Refresh генерирует новые показания и алерты, целиком заменяя предыдущие.
// Вызывается и планировщиком, и вручную по кнопке обновления.
func (s *MonitoringService) Refresh() {
	now := time.Now()
	readings := make([]models.MonitoringReading, 0, len(fleetSensors))
	for i, spec := range fleetSensors {
		readings = append(readings, s.generateReading(i, spec, now))
	}
	alerts := s.generateAlerts(readings, now)

	s.mu.Lock()
	s.readings = readings
	s.alerts = alerts
	s.lastUpdate = now
	s.mu.Unlock()
}

// Readings возвращает снапшот текущих показаний
func (s *MonitoringService) Readings() []models.MonitoringReading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MonitoringReading{}, s.readings...)
}

// Alerts возвращает снапшот текущих алертов
func (s *MonitoringService) Alerts() []models.MonitoringAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MonitoringAlert{}, s.alerts...)
}

// LastUpdate возвращает время последнего цикла генерации
func (s *MonitoringService) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// generateReading строит одно показание: случайное значение в диапазоне,
// специфичном для типа сенсора и единицы измерения, плюс статус по
// пороговой таблице
func (s *MonitoringService) generateReading(index int, spec sensorSpec, now time.Time) models.MonitoringReading {
	value := math.Round(s.generateValue(spec.Type, spec.Unit)*100) / 100

	return models.MonitoringReading{
		ID:        fmt.Sprintf("sensor-%d", index+1),
		Type:      spec.Type,
		Name:      spec.Name,
		Value:     value,
		Unit:      spec.Unit,
		Status:    ClassifyReading(spec.Type, spec.Unit, value),
		Location:  spec.Location,
		Timestamp: now,
		Metadata: models.ReadingMetadata{
			Trend:           s.generateTrend(),
			LastMaintenance: now.Add(-time.Duration(s.rnd.Float64() * 30 * 24 * float64(time.Hour))),
			VehicleID:       vehicleIDFromLocation(spec.Location),
		},
	}
}

// generateValue возвращает правдоподобное значение для сенсора
func (s *MonitoringService) generateValue(sensorType, unit string) float64 {
	r := s.rnd.Float64()
	switch sensorType {
	case models.SensorTypeSensor:
		switch unit {
		case "°C":
			return 70 + r*50 // температура двигателя 70-120°C
		case "Hz":
			return 10 + r*20 // вибрация 10-30 Hz
		default:
			return 1 + r*3
		}
	case models.SensorTypeOperational:
		switch unit {
		case "km/h":
			return r * 60
		case "ton":
			return 10 + r*40
		default:
			return 220 + r*20 // напряжение 220-240V
		}
	case models.SensorTypeFuel:
		if unit == "%" {
			return 20 + r*60 // уровень топлива 20-80%
		}
		return 15 + r*25 // расход 15-40 L/h
	case models.SensorTypeMaintenance:
		return 70 + r*30
	default:
		return r * 100
	}
}

// ClassifyReading вычисляет статус показания по фиксированным порогам.
// Пороги различаются по типу сенсора и единице измерения; для уровня
// топлива сравнение инвертировано — опасны низкие значения.
func ClassifyReading(sensorType, unit string, value float64) string {
	switch sensorType {
	case models.SensorTypeSensor:
		switch unit {
		case "°C":
			return thresholdAbove(value, 110, 95)
		case "Hz":
			return thresholdAbove(value, 25, 20)
		default:
			return thresholdAbove(value, 3.5, 3)
		}
	case models.SensorTypeOperational:
		switch unit {
		case "km/h":
			if value > 50 {
				return models.ReadingStatusWarning
			}
			return models.ReadingStatusNormal
		case "ton":
			if value > 45 {
				return models.ReadingStatusWarning
			}
			return models.ReadingStatusNormal
		default:
			// напряжение: опасны отклонения в обе стороны
			if value < 210 || value > 240 {
				return models.ReadingStatusCritical
			}
			if value < 220 || value > 235 {
				return models.ReadingStatusWarning
			}
			return models.ReadingStatusNormal
		}
	case models.SensorTypeFuel:
		if unit == "%" {
			if value < 25 {
				return models.ReadingStatusCritical
			}
			if value < 40 {
				return models.ReadingStatusWarning
			}
			return models.ReadingStatusNormal
		}
		// расход топлива: только верхний порог предупреждения
		if value > 35 {
			return models.ReadingStatusWarning
		}
		return models.ReadingStatusNormal
	case models.SensorTypeMaintenance:
		if value < 75 {
			return models.ReadingStatusCritical
		}
		if value < 80 {
			return models.ReadingStatusWarning
		}
		return models.ReadingStatusNormal
	default:
		return models.ReadingStatusNormal
	}
}

// thresholdAbove классифицирует значение по двум верхним порогам
func thresholdAbove(value, critical, warning float64) string {
	if value > critical {
		return models.ReadingStatusCritical
	}
	if value > warning {
		return models.ReadingStatusWarning
	}
	return models.ReadingStatusNormal
}

// generateAlerts синтезирует по одному алерту на каждое показание вне
// нормы. Важность алерта повторяет статус показания, флаг прочтения
// рандомизирован.
func (s *MonitoringService) generateAlerts(readings []models.MonitoringReading, now time.Time) []models.MonitoringAlert {
	alerts := make([]models.MonitoringAlert, 0, len(readings))
	for _, reading := range readings {
		value := strconv.FormatFloat(reading.Value, 'f', -1, 64)
		switch reading.Status {
		case models.ReadingStatusCritical:
			alerts = append(alerts, models.MonitoringAlert{
				ID:        "alert-" + reading.ID,
				Severity:  models.AlertSeverityCritical,
				Title:     reading.Name + " - KRITIS",
				Message:   fmt.Sprintf("%s: %s%s melebihi batas aman", reading.Location, value, reading.Unit),
				IsRead:    s.rnd.Float64() > 0.7,
				CreatedAt: now,
			})
		case models.ReadingStatusWarning:
			alerts = append(alerts, models.MonitoringAlert{
				ID:        "alert-" + reading.ID,
				Severity:  models.AlertSeverityWarning,
				Title:     reading.Name + " - PERINGATAN",
				Message:   fmt.Sprintf("%s: %s%s mendekati batas", reading.Location, value, reading.Unit),
				IsRead:    s.rnd.Float64() > 0.5,
				CreatedAt: now,
			})
		}
	}
	return alerts
}

// generateTrend возвращает случайное направление тренда
func (s *MonitoringService) generateTrend() string {
	if s.rnd.Float64() > 0.5 {
		return models.TrendUp
	}
	if s.rnd.Float64() > 0.5 {
		return models.TrendDown
	}
	return models.TrendStable
}

// vehicleIDFromLocation извлекает идентификатор техники из локации
func vehicleIDFromLocation(location string) string {
	parts := strings.Fields(location)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
