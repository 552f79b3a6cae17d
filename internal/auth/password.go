package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"blogstarter/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and checks passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher accepts either a number of rounds ("10") or a bcrypt salt
// or hash string ("$2b$10$..."), in which case the embedded cost is used.
// Salts are always generated by bcrypt itself.
func NewPasswordHasher(saltOrRounds string) (*PasswordHasher, error) {
	cost, err := parseCost(strings.TrimSpace(saltOrRounds))
	if err != nil {
		return nil, err
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &PasswordHasher{cost: cost}, nil
}

func parseCost(saltOrRounds string) (int, error) {
	if rounds, err := strconv.Atoi(saltOrRounds); err == nil {
		return rounds, nil
	}

	// $2a$10$..., $2b$10$..., $2y$10$...
	parts := strings.Split(saltOrRounds, "$")
	if len(parts) < 3 || parts[0] != "" || !strings.HasPrefix(parts[1], "2") {
		return 0, fmt.Errorf("invalid bcrypt salt or rounds %q", saltOrRounds)
	}
	cost, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("invalid bcrypt cost in salt %q", saltOrRounds)
	}
	return cost, nil
}

func (h *PasswordHasher) Cost() int {
	return h.cost
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password must not exceed 72 bytes", models.ErrBadRequest)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify never fails on mismatch; malformed hashes also yield false.
func (h *PasswordHasher) Verify(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
