// SPDX-License-Identifier: Apache-2.0

package crypto

//go:generate mockgen -source=interfaces.go -destination=mock/crypto_mock.go -package=mock

// PasswordHasher derives and verifies password digests. It knows nothing
// about the network, the database, or users; its only job is to protect
// credentials at rest.
type PasswordHasher interface {
	// Hash derives an encoded digest from a plaintext password. The result
	// embeds the algorithm parameters and salt, so it is self-describing
	// and safe to store.
	Hash(password string) (string, error)

	// Verify reports whether password matches the encoded digest produced
	// by a previous Hash call.
	Verify(password, encoded string) bool
}
