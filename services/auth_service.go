package services

import (
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"backend_fleetmon/config"
	"backend_fleetmon/database"
	"backend_fleetmon/models"
)

// AuthService управляет сессией текущего пользователя: вход, регистрация,
// выход и обновление профиля. Состояние сессии персистится целиком в
// key-value хранилище под ключами auth_user и auth_token.
type AuthService struct {
	db    *gorm.DB
	store *database.LocalStore
	cfg   config.SessionConfig

	user          *models.User
	authenticated bool
}

// RegisterRequest представляет данные формы регистрации
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Phone                string `json:"phone,omitempty"`
}

// Validate проверяет данные регистрации и возвращает ошибки по полям
func (r *RegisterRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if r.Name == "" {
		fe["name"] = "name is required"
	}
	if r.Email == "" {
		fe["email"] = "email is required"
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		fe["email"] = "email is malformed"
	}
	if len(r.Password) < 6 {
		fe["password"] = "password must be at least 6 characters"
	}
	if r.Password != r.PasswordConfirmation {
		fe["password_confirmation"] = "passwords do not match"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// UpdateUserRequest представляет частичное обновление профиля.
// Пустые поля не изменяются.
type UpdateUserRequest struct {
	Name    string `json:"name,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// NewAuthService создает новый экземпляр AuthService и сразу пытается
// восстановить сессию из хранилища
func NewAuthService(db *gorm.DB, store *database.LocalStore, cfg config.SessionConfig) *AuthService {
	s := &AuthService{db: db, store: store, cfg: cfg}
	s.restore()
	return s
}

// restore восстанавливает сессию из персистентного состояния. Некорректные
// данные отбрасываются: сервис стартует разлогиненным, но не падает.
func (s *AuthService) restore() {
	var user models.User
	if err := s.store.GetJSON(database.KeyAuthUser, &user); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Warning: сохраненная сессия повреждена, сбрасываем: %v", err)
		}
		s.clearSession()
		return
	}

	token, ok, err := s.store.Get(database.KeyAuthToken)
	if err != nil || !ok || !s.validateToken(token) {
		log.Printf("Warning: токен сессии отсутствует или недействителен, сбрасываем")
		s.clearSession()
		return
	}

	s.user = &user
	s.authenticated = true
}

// Login выполняет вход по email и паролю. Успех только при точном
// совпадении пароля с демо-паролем известного аккаунта. Ошибки наружу
// не выбрасываются: любой сбой означает разлогиненное состояние и false.
func (s *AuthService) Login(email, password string) bool {
	var user models.User
	err := s.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if err != nil {
		s.clearSession()
		return false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.clearSession()
		return false
	}

	if !s.persistSession(&user) {
		return false
	}
	return true
}

// Register создает нового пользователя с ролью user и сразу открывает
// сессию. Возвращает false только при ошибке валидации или персистенции.
func (s *AuthService) Register(req RegisterRequest) bool {
	if fe := req.Validate(); fe != nil {
		log.Printf("Warning: регистрация отклонена: %v", fe)
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.clearSession()
		return false
	}

	user := models.User{
		ID:       strconv.FormatInt(time.Now().UnixMilli(), 10),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleUser, // роль фиксирована и не меняется
		Phone:    req.Phone,
		IsActive: true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		log.Printf("Warning: не удалось создать пользователя %s: %v", req.Email, err)
		s.clearSession()
		return false
	}

	return s.persistSession(&user)
}

// Logout безусловно очищает персистентное и in-memory состояние сессии
func (s *AuthService) Logout() {
	s.clearSession()
}

// UpdateUser вливает непустые поля в профиль текущего пользователя и
// переперсистит сессию. Без залогиненного пользователя — no-op.
// Изменения вливаются в свежую запись из хранилища: восстановленная
// сессия не содержит хеша пароля, и сохранение копии из сессии стерло
// бы его в таблице пользователей.
func (s *AuthService) UpdateUser(req UpdateUserRequest) {
	if s.user == nil {
		return
	}

	user := *s.user
	var stored models.User
	if err := s.db.First(&stored, "id = ?", s.user.ID).Error; err != nil {
		log.Printf("Warning: не удалось перечитать профиль %s: %v", s.user.ID, err)
	} else {
		user = stored
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}

	if err := s.db.Save(&user).Error; err != nil {
		log.Printf("Warning: не удалось сохранить профиль: %v", err)
	}
	s.user = &user
	if err := s.store.SetJSON(database.KeyAuthUser, s.user); err != nil {
		log.Printf("Warning: не удалось переперсистить сессию: %v", err)
	}
}

// CurrentUser возвращает текущего пользователя сессии (nil, если выхода нет)
func (s *AuthService) CurrentUser() *models.User {
	return s.user
}

// IsAuthenticated сообщает, открыта ли сессия
func (s *AuthService) IsAuthenticated() bool {
	return s.authenticated
}

// persistSession записывает пользователя и подписанный токен в хранилище.
// Любая ошибка персистенции откатывает сессию в разлогиненное состояние.
func (s *AuthService) persistSession(user *models.User) bool {
	token, err := s.issueToken(user)
	if err != nil {
		log.Printf("Warning: не удалось подписать токен сессии: %v", err)
		s.clearSession()
		return false
	}

	if err := s.store.SetJSON(database.KeyAuthUser, user); err != nil {
		log.Printf("Warning: не удалось сохранить сессию: %v", err)
		s.clearSession()
		return false
	}
	if err := s.store.Set(database.KeyAuthToken, token); err != nil {
		log.Printf("Warning: не удалось сохранить токен: %v", err)
		s.clearSession()
		return false
	}

	s.user = user
	s.authenticated = true
	return true
}

// clearSession сбрасывает сессию в хранилище и в памяти
func (s *AuthService) clearSession() {
	if err := s.store.Remove(database.KeyAuthUser); err != nil {
		log.Printf("Warning: не удалось удалить ключ %s: %v", database.KeyAuthUser, err)
	}
	if err := s.store.Remove(database.KeyAuthToken); err != nil {
		log.Printf("Warning: не удалось удалить ключ %s: %v", database.KeyAuthToken, err)
	}
	s.user = nil
	s.authenticated = false
}

// issueToken подписывает JWT-токен сессии для пользователя
func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return "", fmt.Errorf("ошибка при подписании токена: %w", err)
	}
	return signed, nil
}

// validateToken проверяет подпись и срок действия токена сессии
func (s *AuthService) validateToken(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return []byte(s.cfg.TokenSecret), nil
	})
	return err == nil && token.Valid
}
