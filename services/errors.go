package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Общие ошибки сервисного слоя. Ничто из них не фатально: вызывающая
// сторона показывает сообщение и остается в стабильном состоянии.
var (
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("operation not permitted for this role")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// FieldErrors содержит ошибки валидации по полям формы
type FieldErrors map[string]string

// Error реализует интерфейс error
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, fe[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has проверяет наличие ошибки по указанному полю
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}
