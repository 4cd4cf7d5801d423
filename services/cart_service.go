package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backend_fleetmon/database"
	"backend_fleetmon/models"
)

// CartService управляет корзиной покупок. После каждой мутации состояние
// персистится целиком под ключом cart; суммы пересчитываются при каждом
// чтении и нигде не кэшируются.
type CartService struct {
	store   *database.LocalStore
	latency time.Duration

	items []models.CartItem
}

// NewCartService создает новый экземпляр CartService и загружает
// сохраненную корзину из хранилища
func NewCartService(store *database.LocalStore, latency time.Duration) *CartService {
	s := &CartService{store: store, latency: latency}
	s.load()
	return s
}

// load восстанавливает корзину из хранилища. Поврежденные данные
// отбрасываются: корзина стартует пустой.
func (s *CartService) load() {
	var items []models.CartItem
	if err := s.store.GetJSON(database.KeyCart, &items); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Warning: сохраненная корзина повреждена, сбрасываем: %v", err)
			if err := s.store.Remove(database.KeyCart); err != nil {
				log.Printf("Warning: не удалось удалить ключ %s: %v", database.KeyCart, err)
			}
		}
		s.items = []models.CartItem{}
		return
	}
	s.items = items
}

// AddItem добавляет товар в корзину. Если позиция для этого товара уже
// существует, ее количество увеличивается; иначе создается новая позиция
// с ценой, зафиксированной в момент добавления.
func (s *CartService) AddItem(product models.Product, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("количество должно быть не меньше 1, получено %d", quantity)
	}

	s.simulateLatency()

	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			return s.persist()
		}
	}

	s.items = append(s.items, models.CartItem{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		Product:   product,
		Quantity:  quantity,
		Price:     product.Price,
	})
	return s.persist()
}

// SetQuantity устанавливает количество позиции. Неположительное количество
// удаляет позицию целиком. Неизвестный идентификатор — no-op.
func (s *CartService) SetQuantity(itemID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(itemID)
	}

	s.simulateLatency()

	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
			return s.persist()
		}
	}
	return nil
}

// RemoveItem безусловно удаляет позицию. Неизвестный идентификатор — no-op.
func (s *CartService) RemoveItem(itemID string) error {
	s.simulateLatency()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return s.persist()
}

// Clear опустошает корзину
func (s *CartService) Clear() error {
	s.simulateLatency()
	s.items = []models.CartItem{}
	return s.persist()
}

// Items возвращает копию позиций корзины
func (s *CartService) Items() []models.CartItem {
	return append([]models.CartItem{}, s.items...)
}

// TotalItems возвращает суммарное количество единиц товара в корзине
func (s *CartService) TotalItems() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalAmount возвращает общую стоимость корзины (Σ цена × количество)
func (s *CartService) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// persist сохраняет корзину целиком, без инкрементальных диффов
func (s *CartService) persist() error {
	if err := s.store.SetJSON(database.KeyCart, s.items); err != nil {
		return fmt.Errorf("ошибка при сохранении корзины: %w", err)
	}
	return nil
}

// simulateLatency имитирует сетевую задержку перед завершением мутации
func (s *CartService) simulateLatency() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}
