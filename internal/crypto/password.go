// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// passwordHasher is the private implementation of [PasswordHasher] backed by
// Argon2id.
type passwordHasher struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewPasswordHasher constructs a [PasswordHasher] with the Argon2id
// parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewPasswordHasher() PasswordHasher {
	return &passwordHasher{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// Hash implements [PasswordHasher]. It reads a 16-byte salt from the OS
// CSPRNG, derives an Argon2id digest, and encodes both in the standard
// PHC string format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<digest>
func (p *passwordHasher) Hash(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("error generating password salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, p.argonTime, p.argonMemory, p.argonThreads, p.argonKeyLen)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.argonMemory, p.argonTime, p.argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	return encoded, nil
}

// Verify implements [PasswordHasher]. It re-derives the digest from password
// using the parameters and salt embedded in encoded and compares the result
// in constant time. Malformed encodings verify as false, never panic.
func (p *passwordHasher) Verify(password, encoded string) bool {
	params, salt, want, err := decodeDigest(encoded)
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, params.argonTime, params.argonMemory, params.argonThreads, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1
}

// decodeDigest splits a PHC-format Argon2id string into its parameters,
// salt, and digest.
func decodeDigest(encoded string) (*passwordHasher, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, nil, errors.New("malformed argon2id digest")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("malformed argon2id version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, errors.New("unsupported argon2id version")
	}

	params := &passwordHasher{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.argonMemory, &params.argonTime, &params.argonThreads); err != nil {
		return nil, nil, nil, fmt.Errorf("malformed argon2id parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("malformed argon2id salt: %w", err)
	}

	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("malformed argon2id digest: %w", err)
	}

	return params, salt, digest, nil
}
