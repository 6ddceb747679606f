package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role that may manage the catalog and review orders.
const RoleAdmin = "admin"

// ErrInvalidCredentials is returned for any failed login. It never says which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthProvider authenticates the back-office and verifies its tokens.
type AuthProvider interface {
	Login(email, password string) (string, error)
	ValidateToken(tokenString string) (jwt.MapClaims, error)
}

// StaticAuthProvider knows a single admin account configured at startup.
type StaticAuthProvider struct {
	email        string
	passwordHash []byte
	jwtSecret    []byte
	tokenDurat   time.Duration // Duration for which JWT is valid
}

var _ AuthProvider = (*StaticAuthProvider)(nil)

// NewStaticAuthProvider hashes the admin password once and keeps only the hash.
func NewStaticAuthProvider(email, password, jwtSecret string, tokenTTL time.Duration) (*StaticAuthProvider, error) {
	if email == "" || password == "" {
		return nil, errors.New("admin email and password are required")
	}
	if jwtSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &StaticAuthProvider{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: hash,
		jwtSecret:    []byte(jwtSecret),
		tokenDurat:   tokenTTL,
	}, nil
}

// Login checks the admin credentials and returns a signed JWT.
func (p *StaticAuthProvider) Login(email, password string) (string, error) {
	if strings.ToLower(strings.TrimSpace(email)) != p.email {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(p.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  p.email,
		"role": RoleAdmin,
		"exp":  now.Add(p.tokenDurat).Unix(),
		"iat":  now.Unix(),
	})

	tokenString, err := token.SignedString(p.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (p *StaticAuthProvider) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.jwtSecret, nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("token validation failed")
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if role, _ := claims["role"].(string); role != RoleAdmin {
		return nil, errors.New("invalid token: missing admin role")
	}
	return claims, nil
}
