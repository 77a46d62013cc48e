package utils

import "golang.org/x/crypto/bcrypt"

// HashPIN returns the bcrypt hash of an admin PIN.  Used by deployment
// tooling to produce the ADMIN_PIN_HASH value; the server itself only
// verifies.
func HashPIN(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPIN safely compares the stored bcrypt hash and a submitted PIN.
func VerifyPIN(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
