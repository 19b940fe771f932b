package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vrevia/vrevia-back/internal/models"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

// Claims carried by both access and refresh tokens. TokenType is "refresh"
// on refresh tokens and empty on access tokens.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	StudentID *uint  `json:"student_id,omitempty"`
	TokenType string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// IssueTokens signs a fresh access/refresh pair for the user.
func IssueTokens(secret []byte, u *models.User) (access, refresh string, err error) {
	now := time.Now()

	accessClaims := &Claims{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		StudentID: u.StudentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(secret)
	if err != nil {
		return "", "", err
	}

	refreshClaims := &Claims{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		StudentID: u.StudentID,
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(secret)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ParseToken validates a token string and returns its claims.
func ParseToken(secret []byte, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
