package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken возвращается для любого непрошедшего проверку токена.
var ErrInvalidToken = errors.New("token inválido")

// TokenVerifier проверяет access токены, выпущенные внешним провайдером авторизации.
// Провайдер подписывает их HS256 общим секретом; sub содержит UUID пользователя.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier создаёт верификатор токенов.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// ParseAccess извлекает userID и роль из access токена.
func (v *TokenVerifier) ParseAccess(token string) (uuid.UUID, string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return uuid.Nil, "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, "", ErrInvalidToken
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	return userID, role, nil
}
