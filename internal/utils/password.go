package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a customer password with bcrypt at the given cost.
// The plain text never reaches the customer table; registration stores
// only this hash.
func HashPassword(plain string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
// Login folds a mismatch into the same failure message as an unknown
// username, so this returns a bare bool rather than an error.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
