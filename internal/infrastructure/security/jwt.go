package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AdminRole is the only role issued by the admin login.
const AdminRole = "admin"

var ErrInvalidToken = errors.New("invalid token")

// AdminClaims identify an authenticated site operator.
type AdminClaims struct {
	TenantID string `json:"tenantId"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAdminToken signs an HS256 token scoped to one tenant.
func GenerateAdminToken(tenantID, jwtSecret string, expiry time.Duration) (string, time.Time, error) {
	if jwtSecret == "" {
		return "", time.Time{}, errors.New("empty jwt secret")
	}
	now := time.Now().UTC()
	expiresAt := now.Add(expiry)
	claims := AdminClaims{
		TenantID: tenantID,
		Role:     AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        GenerateULIDAt(now),
			Subject:   tenantID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateAdminToken parses tokenString and checks it belongs to tenantID.
func ValidateAdminToken(tokenString, jwtSecret, tenantID string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Role != AdminRole {
		return nil, ErrInvalidToken
	}
	if claims.TenantID != tenantID {
		return nil, fmt.Errorf("%w: tenant mismatch", ErrInvalidToken)
	}
	return claims, nil
}
