package auth

import "golang.org/x/crypto/bcrypt"

// PasswordEncoder hashes and verifies passwords with bcrypt.
type PasswordEncoder struct {
	cost int
}

// NewPasswordEncoder returns an encoder using cost, or bcrypt.DefaultCost when cost is out of range.
func NewPasswordEncoder(cost int) *PasswordEncoder {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordEncoder{cost: cost}
}

// Hash returns a salted bcrypt digest of password.
func (e *PasswordEncoder) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), e.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Matches reports whether password hashes to digest. A malformed digest never matches.
func (e *PasswordEncoder) Matches(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
