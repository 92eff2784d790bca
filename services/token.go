package services

import (
	"fmt"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"

	apperrors "vacarent/errors"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken emite un token de sesión con el id y el rol del usuario
func GenerateToken(userID uint, role int) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"exp":    time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// GetUserIDFromToken valida el token y devuelve id y rol
func GetUserIDFromToken(tokenString string) (uint, int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token no válido", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token no válido", nil)
	}

	userID, ok := claims["userId"].(float64)
	if !ok {
		return 0, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token sin identificador de usuario", nil)
	}
	role, _ := claims["role"].(float64)

	return uint(userID), int(role), nil
}
