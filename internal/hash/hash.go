package hash

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the brute-force resistance the API has always promised;
// raising it invalidates nothing but slows every signup and signin.
const bcryptCost = 8

func HashPassword(password string) (string, error) {
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hashbytes), nil
}

// CheckPassword compares the stored hash against a plaintext candidate.
// bcrypt re-derives the hash under the stored salt and compares in constant
// time, so callers must never fall back to comparing hash strings directly.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
