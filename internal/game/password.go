package game

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns plaintext passwords into stored digests.
//
// Deterministic hashers can be matched in SQL (username AND digest). Salted
// hashers cannot, so stores look up the digest by username and call Verify.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(digest, password string) bool
	Deterministic() bool
}

// HashPassword returns the unsalted hex SHA-256 digest of password.
//
// This is the legacy scheme every existing account uses. It is open to
// precomputed dictionary attacks; BcryptHasher is the salted alternative.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	return HashPassword(password), nil
}

func (SHA256Hasher) Verify(digest, password string) bool {
	return subtle.ConstantTimeCompare([]byte(digest), []byte(HashPassword(password))) == 1
}

func (SHA256Hasher) Deterministic() bool {
	return true
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(digest), nil
}

func (BcryptHasher) Verify(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

func (BcryptHasher) Deterministic() bool {
	return false
}
