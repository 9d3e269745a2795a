package auth

import (
	"time"

	"github.com/SafidyRakotonirina/blessing/app/config"
	"github.com/SafidyRakotonirina/blessing/app/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Claims carried by both access and refresh tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func accessSecret() []byte {
	return []byte(config.Getenv("JWT_SECRET", "vagues-dev-secret"))
}

func refreshSecret() []byte {
	return []byte(config.Getenv("JWT_REFRESH_SECRET", "vagues-dev-refresh-secret"))
}

func accessTTL() time.Duration {
	if d, err := time.ParseDuration(config.Getenv("JWT_EXPIRE", "1h")); err == nil {
		return d
	}
	return time.Hour
}

func refreshTTL() time.Duration {
	if d, err := time.ParseDuration(config.Getenv("JWT_REFRESH_EXPIRE", "168h")); err == nil {
		return d
	}
	return 168 * time.Hour
}

func signToken(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	claims := Claims{
		UserID: user.ID,
		Email:  email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "blessing-api",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// GenerateTokens issues the access/refresh token pair for a user.
func GenerateTokens(user *models.User) (accessToken, refreshToken string, err error) {
	if accessToken, err = signToken(user, accessSecret(), accessTTL()); err != nil {
		return "", "", err
	}
	if refreshToken, err = signToken(user, refreshSecret(), refreshTTL()); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func parseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// ValidateAccessToken verifies an access token and returns its claims.
func ValidateAccessToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, accessSecret())
}

// ValidateRefreshToken verifies a refresh token and returns its claims.
func ValidateRefreshToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, refreshSecret())
}
