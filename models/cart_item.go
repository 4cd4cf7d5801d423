package models

import (
	"github.com/shopspring/decimal"
)

// CartItem представляет позицию корзины. Хранится не в таблице,
// а целиком в key-value хранилище под ключом "cart" в виде JSON.
type CartItem struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`

	// Снапшот товара на момент добавления в корзину: последующие
	// изменения каталога уже созданных позиций не затрагивают
	Product Product `json:"product"`

	Quantity int `json:"quantity"`

	// Цена фиксируется при добавлении и не пересчитывается из каталога
	Price decimal.Decimal `json:"price"`
}

// Subtotal возвращает стоимость позиции (цена × количество)
func (ci *CartItem) Subtotal() decimal.Decimal {
	return ci.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
