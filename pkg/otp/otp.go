package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidLength возвращается при недопустимой длине кода
var ErrInvalidLength = errors.New("otp: invalid code length")

const maxDigits = 18

// GenerateDigits генерирует криптографически случайный код из length цифр.
// Распределение равномерное на [0, 10^length), ведущие нули сохраняются.
func GenerateDigits(length int) (string, error) {
	if length <= 0 || length > maxDigits {
		return "", fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	upper := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return "", fmt.Errorf("otp: failed to read random: %w", err)
	}

	return fmt.Sprintf("%0*d", length, n.Int64()), nil
}

// Equal сравнивает коды за постоянное время
func Equal(expected, actual string) bool {
	expected = strings.TrimSpace(expected)
	actual = strings.TrimSpace(actual)
	if len(expected) != len(actual) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}

// DigitsGenerator генерирует цифровые коды фиксированной длины
type DigitsGenerator struct {
	Length int
}

// Generate генерирует новый код
func (g DigitsGenerator) Generate() (string, error) {
	return GenerateDigits(g.Length)
}
