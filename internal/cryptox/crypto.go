// Package cryptox derives and verifies password hashes for the local user
// registry.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/coursemanager/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

const hashPrefix = "$argon2id$"

var ErrInvalidHash = errors.New("invalid password hash")

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashPassword returns an encoded argon2id hash of password in the form
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// with salt and key in unpadded standard base64.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(argonSaltLen)
	key := DeriveKey(password, salt)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s", hashPrefix,
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

// Bounds accepted when decoding a hash. They cover every value HashPassword
// writes and keep a tampered record from stalling or exhausting memory.
const (
	maxMemory  = 256 * 1024
	maxTime    = 16
	maxThreads = 16
	minSaltLen = 8
	minKeyLen  = 16
	maxKeyLen  = 64
)

type argonHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

// decodeHash parses an encoded argon2id hash and checks its parameters.
func decodeHash(encoded string) (argonHash, error) {
	var h argonHash

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return h, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return h, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return h, fmt.Errorf("%w: unsupported version %d", ErrInvalidHash, version)
	}

	var memory, timeCost, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &threads); err != nil {
		return h, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	switch {
	case timeCost < 1 || timeCost > maxTime:
		return h, fmt.Errorf("%w: time cost %d out of range", ErrInvalidHash, timeCost)
	case threads < 1 || threads > maxThreads:
		return h, fmt.Errorf("%w: parallelism %d out of range", ErrInvalidHash, threads)
	case memory < 8*threads || memory > maxMemory:
		return h, fmt.Errorf("%w: memory %d out of range", ErrInvalidHash, memory)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return h, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return h, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if len(salt) < minSaltLen || len(key) < minKeyLen || len(key) > maxKeyLen {
		return h, fmt.Errorf("%w: salt or key length out of range", ErrInvalidHash)
	}

	h.memory, h.time, h.threads = memory, timeCost, uint8(threads)
	h.salt, h.key = salt, key
	return h, nil
}

// HasHashPrefix reports whether s claims to be an argon2id hash, valid or
// not.
func HasHashPrefix(s string) bool {
	return strings.HasPrefix(s, hashPrefix)
}

// IsPasswordHash reports whether s is a well-formed hash that VerifyPassword
// accepts. Backups written by older builds carry plaintext passwords.
func IsPasswordHash(s string) bool {
	_, err := decodeHash(s)
	return err == nil
}

// VerifyPassword checks password against an encoded hash in constant time.
// Malformed or out-of-range hashes return ErrInvalidHash.
func VerifyPassword(password []byte, encoded string) (bool, error) {
	h, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}
	got := argon2.IDKey(password, h.salt, h.time, h.memory, h.threads, uint32(len(h.key)))
	return subtle.ConstantTimeCompare(got, h.key) == 1, nil
}
