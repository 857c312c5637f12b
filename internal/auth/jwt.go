package auth

import (
	"time"

	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session identity: the account id plus the role the
// session was opened with.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
	Role   models.Role
}

// GenerateToken mints an HS256 session token for the given user. Each token
// gets a random jti so two logins in the same second still differ.
func GenerateToken(user *models.User, secretKey []byte, validityDuration time.Duration) (string, error) {
	jti, err := common.MakeRandHexString(8)
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: user.ID,
		Role:   user.Role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates a session token and returns its claims.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, common.ErrorUnauthorized
	}

	return claims, nil
}
