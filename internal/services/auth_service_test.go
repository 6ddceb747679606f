package services_test

import (
	"fmt"
	"testing"
	"time"

	"sporton/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test_jwt_secret"

func newAuthProvider(t *testing.T) *services.StaticAuthProvider {
	t.Helper()
	p, err := services.NewStaticAuthProvider("admin@sporton.com", "admin123", testJWTSecret, time.Hour)
	require.NoError(t, err)
	return p
}

func TestNewStaticAuthProvider_RequiresSettings(t *testing.T) {
	_, err := services.NewStaticAuthProvider("", "admin123", testJWTSecret, time.Hour)
	assert.Error(t, err)

	_, err = services.NewStaticAuthProvider("admin@sporton.com", "admin123", "", time.Hour)
	assert.Error(t, err)
}

func TestStaticAuthProvider_Login(t *testing.T) {
	p := newAuthProvider(t)

	token, err := p.Login(" Admin@Sporton.com ", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "admin@sporton.com", claims["sub"])
	assert.Equal(t, services.RoleAdmin, claims["role"])

	// Wrong password
	_, err = p.Login("admin@sporton.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown email gets the same error
	_, err = p.Login("someone@sporton.com", "admin123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestStaticAuthProvider_ValidateToken(t *testing.T) {
	p := newAuthProvider(t)

	token, err := p.Login("admin@sporton.com", "admin123")
	require.NoError(t, err)

	claims, err := p.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@sporton.com", claims["sub"])

	_, err = p.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin@sporton.com",
		"role": services.RoleAdmin,
		"exp":  jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = p.ValidateToken(expiredTokenString)
	assert.Error(t, err)

	noRole := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin@sporton.com",
		"exp": jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	noRoleString, _ := noRole.SignedString([]byte(testJWTSecret))
	_, err = p.ValidateToken(noRoleString)
	assert.Error(t, err)

	otherSecret := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin@sporton.com",
		"role": services.RoleAdmin,
		"exp":  jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	otherSecretString, _ := otherSecret.SignedString([]byte("another_secret"))
	_, err = p.ValidateToken(otherSecretString)
	assert.Error(t, err)
}
