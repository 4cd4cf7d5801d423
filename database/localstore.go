package database

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ключи key-value хранилища. Набор фиксирован: сессия и корзина.
const (
	KeyAuthUser  = "auth_user"
	KeyAuthToken = "auth_token"
	KeyCart      = "cart"
)

// KVEntry представляет одну запись key-value хранилища.
// Значения хранятся строками в JSON-кодировке.
type KVEntry struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"type:text"`
}

// TableName задает имя таблицы для модели KVEntry
func (KVEntry) TableName() string {
	return "kv_entries"
}

// LocalStore предоставляет строково-ключевое хранилище поверх встроенной
// базы. Последняя запись по ключу выигрывает, инкрементальных обновлений нет.
type LocalStore struct {
	db *gorm.DB
}

// NewLocalStore создает новый экземпляр LocalStore
func NewLocalStore(db *gorm.DB) *LocalStore {
	return &LocalStore{db: db}
}

// Get возвращает значение по ключу. Второй результат false, если ключа нет.
func (ls *LocalStore) Get(key string) (string, bool, error) {
	var entry KVEntry
	err := ls.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("ошибка при чтении ключа %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// GetJSON читает значение по ключу и декодирует его в dest.
// Отсутствующий ключ возвращается как gorm.ErrRecordNotFound.
func (ls *LocalStore) GetJSON(key string, dest interface{}) error {
	value, ok, err := ls.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return fmt.Errorf("некорректный JSON под ключом %s: %w", key, err)
	}
	return nil
}

// Set записывает значение по ключу, перезаписывая существующее
func (ls *LocalStore) Set(key, value string) error {
	entry := KVEntry{Key: key, Value: value}
	err := ls.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("ошибка при записи ключа %s: %w", key, err)
	}
	return nil
}

// SetJSON кодирует значение в JSON и записывает его по ключу
func (ls *LocalStore) SetJSON(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("ошибка при кодировании значения для ключа %s: %w", key, err)
	}
	return ls.Set(key, string(data))
}

// Remove удаляет запись по ключу. Отсутствие ключа ошибкой не считается.
func (ls *LocalStore) Remove(key string) error {
	if err := ls.db.Delete(&KVEntry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("ошибка при удалении ключа %s: %w", key, err)
	}
	return nil
}

// Clear удаляет все записи хранилища
func (ls *LocalStore) Clear() error {
	if err := ls.db.Where("1 = 1").Delete(&KVEntry{}).Error; err != nil {
		return fmt.Errorf("ошибка при очистке хранилища: %w", err)
	}
	return nil
}
