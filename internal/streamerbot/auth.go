package streamerbot

import (
	"crypto/sha256"
	"encoding/base64"
)

// AuthHash answers a Streamer.bot authentication challenge:
// base64(sha256(base64(sha256(password + salt)) + challenge))
func AuthHash(password, salt, challenge string) string {
	secret := sha256.Sum256([]byte(password + salt))
	encodedSecret := base64.StdEncoding.EncodeToString(secret[:])

	answer := sha256.Sum256([]byte(encodedSecret + challenge))
	return base64.StdEncoding.EncodeToString(answer[:])
}
