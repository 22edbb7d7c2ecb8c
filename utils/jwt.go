package utils

import (
	"errors"
	"time"

	"studiobook/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "studiobook-dev"
	}
	return []byte(secret)
}

// GenerateAdminToken creates a signed JWT for an administrator of the given
// organization. The token expires after the specified duration.
func GenerateAdminToken(subject, orgID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"org": orgID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractOrgFromToken extracts the "org" claim from a valid JWT token string.
func ExtractOrgFromToken(tokenString string) (string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	org, ok := claims["org"].(string)
	if !ok || org == "" {
		return "", errors.New("token does not contain a valid 'org' claim")
	}

	return org, nil
}
