package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindful_companion/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL   = time.Hour
	anonymousPrefix   = "anon-"
	minSigningKeySize = 8
)

// Domain errors for auth flows.
var (
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidUsername   = errors.New("invalid username")
	ErrAlreadyRegistered = errors.New("account is already registered")
	ErrWeakSigningKey    = errors.New("signing key is too short")
	ErrUsernameTaken     = errors.New("username is already taken")
	ErrEmptyPassword     = errors.New("password is empty")
	ErrPasswordTooLong   = errors.New("password is too long")
)

// AuthService handles user auth logic
type AuthService struct {
	authRepo   repository.Authorization
	eventRepo  repository.EventRepo
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(repo repository.Authorization, eventRepo repository.EventRepo, signingKey string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		authRepo:   repo,
		eventRepo:  eventRepo,
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
	}
}

// SignUp hashes password and creates a new user
func (s *AuthService) SignUp(username, password string) (int, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return 0, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	id, err := s.authRepo.Create(username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	s.record(id, EventSignUp, "Account created", nil)
	return id, nil
}

// SignInAnonymous creates a guest user and returns its ID with a token.
func (s *AuthService) SignInAnonymous() (int, string, error) {
	id, err := s.authRepo.CreateAnonymous(anonymousPrefix + uuid.NewString())
	if err != nil {
		return 0, "", err
	}
	token, err := s.issueToken(id)
	if err != nil {
		return 0, "", err
	}
	return id, token, nil
}

// LinkCredentials upgrades a guest to a registered account. The user keeps
// its ID, so everything recorded as a guest stays attached.
func (s *AuthService) LinkCredentials(userID int, username, password string) error {
	username, err := normalizeUsername(username)
	if err != nil {
		return err
	}
	u, err := s.authRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if !u.IsAnonymous {
		return ErrAlreadyRegistered
	}

	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}
	if err := s.authRepo.LinkCredentials(userID, username, hash); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotAnonymous):
			return ErrAlreadyRegistered
		case errors.Is(err, repository.ErrUsernameTaken):
			return ErrUsernameTaken
		}
		return err
	}
	s.record(userID, EventAccountLink, "Guest account linked to credentials", map[string]any{"username": username})
	return nil
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken validates credentials and returns JWT
func (s *AuthService) GenerateToken(username, password string) (string, error) {
	u, err := s.authRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	if u == nil || u.IsAnonymous {
		return "", ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}

	return s.issueToken(u.ID)
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// ValidateSigningKey rejects keys too short to be taken seriously.
func ValidateSigningKey(key string) error {
	if len(key) < minSigningKeySize {
		return ErrWeakSigningKey
	}
	return nil
}

// record appends an activity event; auth flows never fail because of it.
func (s *AuthService) record(userID int, typ, description string, meta any) {
	recordEvent(context.Background(), s.eventRepo, userID, typ, description, meta)
}

// helper: trim and reject empty usernames and the reserved guest prefix
func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.HasPrefix(username, anonymousPrefix) {
		return "", ErrInvalidUsername
	}
	return username, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}
