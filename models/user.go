package models

import (
	"time"
)

// Роли пользователей в системе
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет модель пользователя в системе
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Основные поля
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-"` // bcrypt-хеш, не возвращается в JSON

	// Дополнительные поля
	Role     string `json:"role" gorm:"default:'user'"`
	Avatar   string `json:"avatar,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

// TableName задает имя таблицы для модели User
func (User) TableName() string {
	return "users"
}

// IsAdmin проверяет, имеет ли пользователь права администратора
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
