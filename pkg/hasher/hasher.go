package hasher

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
)

// PasswordDigest returns the md5 hex digest of a password. The HomGar login
// endpoint expects this digest on the wire instead of the clear text.
func PasswordDigest(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

// DeviceID generates the random 16-byte hex device identifier sent with
// every login request.
func DeviceID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
