package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a salted bcrypt digest. The salt is random per
// call, so hashing the same password twice yields different blobs.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedPassword), nil
}

// CheckPassword compares a stored hash against a plaintext candidate.
// A malformed stored hash reports as a mismatch rather than panicking.
func CheckPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
