package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id cost parameters; fixed policy, stored inside each hash.
const (
	argon2Time    = 2
	argon2Memory  = 32 * 1024 // 32 MiB
	argon2Threads = 8
	argon2SaltLen = 16
	argon2KeyLen  = 32
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	// Hash produces a salted, self-describing argon2id hash.
	Hash(password string) (string, error)

	// Verify reports whether candidate matches the stored hash. A
	// malformed or corrupt stored hash verifies as false, never as an
	// error.
	Verify(candidate, stored string) bool
}

type argon2idHasher struct{}

// NewPasswordHasher returns the argon2id implementation.
func NewPasswordHasher() PasswordHasher {
	return &argon2idHasher{}
}

func (h *argon2idHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must be non-empty")
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	// PHC string format: $argon2id$v=19$m=32768,t=2,p=8$<salt>$<key>
	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

func (h *argon2idHasher) Verify(candidate, stored string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if threads == 0 || threads > 255 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false
	}

	computed := argon2.IDKey([]byte(candidate), salt, time, memory, uint8(threads), uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1
}
