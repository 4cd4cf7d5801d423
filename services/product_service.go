package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backend_fleetmon/models"
)

// ProductService предоставляет CRUD-операции каталога товаров.
// Мутации доступны только администратору.
type ProductService struct {
	db      *gorm.DB
	latency time.Duration
}

// NewProductService создает новый экземпляр ProductService
func NewProductService(db *gorm.DB, latency time.Duration) *ProductService {
	return &ProductService{db: db, latency: latency}
}

// ProductInput представляет данные формы создания/редактирования товара
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	Stock       int             `json:"stock"`
	IsActive    bool            `json:"is_active"`
}

// Validate проверяет данные товара и возвращает ошибки по полям
func (in *ProductInput) Validate() FieldErrors {
	fe := FieldErrors{}
	if in.Name == "" {
		fe["name"] = "name is required"
	}
	if in.Price.IsNegative() {
		fe["price"] = "price must not be negative"
	}
	if in.Stock < 0 {
		fe["stock"] = "stock must not be negative"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// List возвращает все товары в порядке создания
func (s *ProductService) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("created_at, id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("ошибка при получении каталога: %w", err)
	}
	return products, nil
}

// Get возвращает товар по идентификатору
func (s *ProductService) Get(id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении товара %s: %w", id, err)
	}
	return &product, nil
}

// Create добавляет товар в каталог. Идентификатор выводится из текущего
// времени, как и остальные одноразовые идентификаторы в системе.
func (s *ProductService) Create(actor *models.User, input ProductInput) (*models.Product, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if fe := input.Validate(); fe != nil {
		return nil, fe
	}

	s.simulateLatency()

	product := models.Product{
		ID:          strconv.FormatInt(time.Now().UnixMilli(), 10),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
		IsActive:    input.IsActive,
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("ошибка при создании товара: %w", err)
	}
	return &product, nil
}

// Update заменяет редактируемые поля товара и обновляет UpdatedAt
func (s *ProductService) Update(actor *models.User, id string, input ProductInput) (*models.Product, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if fe := input.Validate(); fe != nil {
		return nil, fe
	}

	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	s.simulateLatency()

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	product.ImageURL = input.ImageURL
	product.Stock = input.Stock
	product.IsActive = input.IsActive

	if err := s.db.Save(product).Error; err != nil {
		return nil, fmt.Errorf("ошибка при обновлении товара %s: %w", id, err)
	}
	return product, nil
}

// Delete удаляет товар по идентификатору. Каскада на существующие позиции
// корзины нет: в них остается снапшот товара.
func (s *ProductService) Delete(actor *models.User, id string) error {
	if actor == nil || !actor.IsAdmin() {
		return ErrForbidden
	}

	product, err := s.Get(id)
	if err != nil {
		return err
	}

	s.simulateLatency()

	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("ошибка при удалении товара %s: %w", id, err)
	}
	return nil
}

func (s *ProductService) simulateLatency() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}
