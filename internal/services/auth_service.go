package services

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/classpulse/classpulse/internal/models"
)

type AuthStore interface {
	GetAdminByEmail(email string) (*models.Admin, error)
	InsertAdmin(a *models.Admin) error
	CountAdmins() (int, error)
}

type AuthService struct {
	store    AuthStore
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

type LoginResult struct {
	Token string        `json:"token"`
	Admin *models.Admin `json:"admin"`
}

func NewAuthService(store AuthStore, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		store:    store,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Login exchanges admin credentials for a signed HS256 token.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, NewInvalidError("email and password are required")
	}
	admin, err := s.store.GetAdminByEmail(email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   admin.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Admin: admin}, nil
}

// VerifyToken returns the admin ID carried by a valid token.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, NewUnauthorizedError("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", NewUnauthorizedError("invalid or expired token")
	}
	return claims.Subject, nil
}

// EnsureAdmin creates the bootstrap admin account when none exists yet.
func (s *AuthService) EnsureAdmin(email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	count, err := s.store.CountAdmins()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.store.InsertAdmin(&models.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	})
}
