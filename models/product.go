package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Категории каталога сенсоров и оборудования
const (
	CategorySensor      = "sensor"
	CategoryMonitoring  = "monitoring"
	CategoryAccessories = "accessories"
)

// Product представляет товар каталога (сенсор или оборудование для мониторинга)
type Product struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Основные поля
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(14,2)"`
	Category    string          `json:"category" gorm:"index"`
	ImageURL    string          `json:"image_url"`
	Stock       int             `json:"stock" gorm:"default:0"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`
}

// TableName задает имя таблицы для модели Product
func (Product) TableName() string {
	return "products"
}

// IsPurchasable проверяет, доступен ли товар для покупки.
// Нулевой остаток или неактивный товар покупку запрещают.
func (p *Product) IsPurchasable() bool {
	return p.IsActive && p.Stock > 0
}
