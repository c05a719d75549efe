// Package auth hashes member passwords and tracks login sessions.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Params tunes Argon2id hashing.
type Params struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength uint32
}

// DefaultParams are used by HashPassword.
var DefaultParams = Params{
	Time:       1,
	Memory:     64 * 1024,
	Threads:    4,
	KeyLength:  32,
	SaltLength: 16,
}

// ErrMalformedHash is returned when a stored hash cannot be decoded.
var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword hashes password with DefaultParams and returns the encoded
// form "argon2id$time$memory$threads$salt$hash".
func HashPassword(password string) (string, error) {
	return HashWith(password, DefaultParams)
}

// HashWith hashes password with p.
func HashWith(password string, p Params) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLength)
	return fmt.Sprintf("argon2id$%d$%d$%d$%s$%s",
		p.Time, p.Memory, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether password matches the encoded hash.
func VerifyPassword(password, encoded string) (bool, error) {
	p, salt, want, err := decode(encoded)
	if err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func decode(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "argon2id" {
		return Params{}, nil, nil, ErrMalformedHash
	}
	var nums [3]uint64
	for i := range nums {
		n, err := strconv.ParseUint(parts[i+1], 10, 32)
		if err != nil {
			return Params{}, nil, nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
		}
		nums[i] = n
	}
	if nums[2] == 0 || nums[2] > 255 {
		return Params{}, nil, nil, fmt.Errorf("%w: thread count %d", ErrMalformedHash, nums[2])
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}
	p := Params{
		Time:    uint32(nums[0]),
		Memory:  uint32(nums[1]),
		Threads: uint8(nums[2]),
	}
	return p, salt, key, nil
}
