// Package hashx provides deterministic content digests used to identify and
// de-duplicate passes.
package hashx

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256 returns the lowercase hex SHA-256 digest of the UTF-8 bytes of text.
// The result is always 64 characters long.
func SHA256(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// PassFingerprint derives a stable pass id from the issuer's pass type
// identifier and serial number. Two imports of the same logical pass yield the
// same fingerprint, so the second import replaces the first.
func PassFingerprint(passTypeIdentifier, serialNumber string) string {
	return SHA256(passTypeIdentifier + "\x00" + serialNumber)
}
