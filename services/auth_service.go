package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/repositories"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceError özel servis hataları
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrAuthEmailRequired      AuthServiceError = "e-posta adresi zorunludur"
	ErrAuthPasswordTooShort   AuthServiceError = "şifre en az 8 karakter olmalıdır"
	ErrAuthEmailTaken         AuthServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrAuthInvalidCredentials AuthServiceError = "e-posta veya şifre hatalı"
	ErrAuthInvalidToken       AuthServiceError = "geçersiz veya süresi dolmuş oturum"
	ErrAuthRegisterFailed     AuthServiceError = "kayıt işlemi tamamlanamadı"
)

const minPasswordLength = 8

// RegisterInput yeni kullanıcı kaydı girdisidir.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginInput oturum açma girdisidir.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthTokenDTO başarılı oturum açma yanıtıdır.
type AuthTokenDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    uint      `json:"userId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// TokenClaims JWT içinde taşınan oturum bilgisidir.
type TokenClaims struct {
	UserID   uint `json:"uid"`
	IsSystem bool `json:"sys"`
	jwt.RegisteredClaims
}

// IAuthService kimlik doğrulama işlemleri için arayüz.
type IAuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*AuthTokenDTO, error)
	ValidateToken(tokenString string) (*TokenClaims, error)
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	repo        repositories.IUserRepository
	jwtSecret   []byte
	tokenExpiry time.Duration
	bcryptCost  int
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService() IAuthService {
	return NewAuthServiceWithDeps(
		repositories.NewUserRepository(),
		[]byte(configs.GetJWTSecret()),
		time.Duration(configs.GetJWTExpiryHours())*time.Hour,
		configs.GetBcryptCost(),
	)
}

// NewAuthServiceWithDeps bağımlılıkları dışarıdan alır (testler için).
func NewAuthServiceWithDeps(repo repositories.IUserRepository, jwtSecret []byte, tokenExpiry time.Duration, bcryptCost int) IAuthService {
	return &AuthService{
		repo:        repo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
		bcryptCost:  bcryptCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register yeni kullanıcı kaydeder. Şifre bcrypt ile saklanır.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrAuthEmailRequired
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrAuthPasswordTooShort
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, ErrAuthRegisterFailed
	}
	if exists {
		return nil, ErrAuthEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		configslog.Log.Error("Register: bcrypt hatası", zap.Error(err))
		return nil, ErrAuthRegisterFailed
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, ErrAuthEmailTaken
		}
		configslog.Log.Error("Register: repository hatası", zap.Error(err))
		return nil, ErrAuthRegisterFailed
	}
	configslog.SLog.Infof("Yeni kullanıcı kaydedildi: ID %d", user.ID)
	return user, nil
}

// Login kimlik bilgilerini doğrular ve imzalı JWT üretir. Kullanıcının
// var olup olmadığı yanıttan anlaşılmasın diye her iki durumda da aynı
// hata döner.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthTokenDTO, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrAuthInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenExpiry)
	claims := TokenClaims{
		UserID:   user.ID,
		IsSystem: user.IsSystem,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "etkinlik.link",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		configslog.Log.Error("Login: token imzalanamadı", zap.Error(err))
		return nil, ErrAuthInvalidCredentials
	}

	return &AuthTokenDTO{
		Token:     signed,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// ValidateToken JWT imzasını ve süresini doğrular, claim'leri döner.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrAuthInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrAuthInvalidToken
	}
	return claims, nil
}

// Arayüz uyumluluğu kontrolü
var _ IAuthService = (*AuthService)(nil)
