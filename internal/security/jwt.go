package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrExpiredToken = errors.New("token expired")

// TokenExpiry читает exp из JWT без проверки подписи.
// Подпись проверяет каталог; здесь срок нужен только чтобы ограничить время кэширования.
// ok равно false для непрозрачных токенов и токенов без exp.
func TokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()

	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// CheckExpiry возвращает ErrExpiredToken, если срок действия JWT истек к моменту now
func CheckExpiry(token string, now time.Time) error {
	expiry, ok := TokenExpiry(token)
	if ok && !expiry.After(now) {
		return ErrExpiredToken
	}
	return nil
}
