package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"routed/config"
)

// secretKey reads the signing secret from the loaded configuration.
// Fallback to a default (not recommended in production). Resolved per call
// because config.LoadConfig runs after package init.
func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "routed-dev"
	}
	return []byte(secret)
}

// GenerateSessionToken creates a signed JWT scoped to a single voice session.
// Event posts for the session must carry this token; it expires with the call.
func GenerateSessionToken(userID, sessionID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"sid": sessionID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractSessionFromToken returns the user ID and voice session ID from a
// session grant token, or an error if validation fails.
func ExtractSessionFromToken(tokenString string) (string, string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token claims")
	}
	userID, _ := claims["sub"].(string)
	sessionID, _ := claims["sid"].(string)
	if userID == "" || sessionID == "" {
		return "", "", errors.New("token missing session claims")
	}
	return userID, sessionID, nil
}
