package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/models"
)

const tokenTTL = 30 * 24 * time.Hour

// IssueToken signs a session JWT for a locally authenticated user.
func IssueToken(secret string, user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// JWTVerifier resolves locally issued HMAC session tokens.
type JWTVerifier struct {
	secret     []byte
	db         *gorm.DB
	adminEmail string
}

func NewJWTVerifier(db *gorm.DB, secret, adminEmail string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), db: db, adminEmail: adminEmail}
}

func (v *JWTVerifier) Name() string { return "jwt" }

func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("token missing user_id")
	}

	var user models.User
	if err := v.db.WithContext(ctx).First(&user, uint(rawID)).Error; err != nil {
		return nil, errors.New("user not found")
	}

	return &Identity{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin || user.Email == v.adminEmail,
	}, nil
}
