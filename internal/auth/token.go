package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"atelier-backend/internal/models"
)

// Claims is the authenticated principal extracted from a bearer token.
type Claims struct {
	UserID string
	Email  string
	Role   models.Role
}

// IssueToken signs an HS256 token carrying the principal's id, email and
// role, expiring after ttl.
func IssueToken(secret string, ttl time.Duration, user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	sub, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)
	if sub == "" || email == "" || !models.ValidRole(models.Role(role)) {
		return nil, fmt.Errorf("token is missing required claims")
	}

	return &Claims{UserID: sub, Email: email, Role: models.Role(role)}, nil
}
