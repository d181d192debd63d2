package services

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// bcryptCost matches the cost the hashpw command uses; hashes
	// generated at other costs still verify.
	bcryptCost = 12

	// DefaultTokenTTL is used when no expiry is configured.
	DefaultTokenTTL = 7 * 24 * time.Hour

	adminRole = "admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfigured      = errors.New("admin password hash not configured")
	ErrMissingToken       = errors.New("no token provided")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims is the payload carried by a session token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService verifies the single admin credential and issues and
// validates signed, time-limited session tokens. It keeps no state
// between requests; a token is self-contained and cannot be revoked
// before its expiry.
type AuthService struct {
	secret        []byte
	tokenTTL      time.Duration
	adminUsername string
	adminHash     string
}

// NewAuthService creates a new AuthService
func NewAuthService(secret, adminUsername, adminHash string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		secret:        []byte(secret),
		tokenTTL:      tokenTTL,
		adminUsername: adminUsername,
		adminHash:     adminHash,
	}
}

// Authenticate checks the presented credentials against the configured
// admin identity and password hash and issues a token on success.
// ErrNotConfigured means the deployment is missing the password hash and
// authentication can never succeed.
func (s *AuthService) Authenticate(username, password string) (string, *Claims, error) {
	if username != s.adminUsername {
		return "", nil, ErrInvalidCredentials
	}
	if s.adminHash == "" {
		return "", nil, ErrNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := &Claims{
		Username: s.adminUsername,
		Role:     adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Verify validates the token's signature and expiry and returns its
// claims. It returns nil on every failure mode alike; callers cannot
// tell an expired token from a forged one.
func (s *AuthService) Verify(tokenStr string) *Claims {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil
	}
	return claims
}

// Authorize extracts the bearer token from the request's Authorization
// header and validates it. A nil return permits the call to proceed.
func (s *AuthService) Authorize(r *http.Request) error {
	token := extractBearer(r)
	if token == "" {
		return ErrMissingToken
	}
	if s.Verify(token) == nil {
		return ErrInvalidToken
	}
	return nil
}

// HashPassword hashes a plaintext admin password for configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
