package jwt_test

import (
	"testing"
	"time"

	"recipe-catalog/domain"
	jwtpkg "recipe-catalog/pkg/jwt"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-tests"

func TestGenerateAndParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	jwtService := jwtpkg.NewJWTService()
	userID := uuid.New().String()

	token := jwtService.GenerateTokenUser(userID, domain.RoleUser)
	require.NotEmpty(t, token)

	gotID, gotRole, err := jwtService.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, domain.RoleUser, gotRole)
}

func TestParseMalformedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	jwtService := jwtpkg.NewJWTService()

	_, _, err := jwtService.GetUserIDByToken("not-a-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestParseExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	jwtService := jwtpkg.NewJWTService()

	claims := jwt.MapClaims{
		"user_id": uuid.New().String(),
		"role":    domain.RoleUser,
		"exp":     jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		"iat":     jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, err = jwtService.GetUserIDByToken(expired)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestParseTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	jwtService := jwtpkg.NewJWTService()
	token := jwtService.GenerateTokenUser(uuid.New().String(), domain.RoleUser)

	t.Setenv("JWT_SECRET", "a-completely-different-secret")
	otherService := jwtpkg.NewJWTService()

	_, _, err := otherService.GetUserIDByToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
