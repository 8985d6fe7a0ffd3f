package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password with bcrypt.
// Parameters:
//   - password: plaintext password.
// Returns:
//   - string: bcrypt hash suitable for storage.
//   - error: non-nil if hashing fails.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword reports whether a plaintext password matches a stored hash.
// Parameters:
//   - hash: stored bcrypt hash.
//   - password: plaintext candidate.
// Returns:
//   - bool: true when the password matches.
func ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
