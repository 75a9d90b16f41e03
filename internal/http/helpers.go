package http

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"unicode"

	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	mdb "github.com/liondandelion/larets/internal/db"
)

// Seal encrypts a vault payload under the master-key GCM, prepending the
// random nonce so the blob is self-contained in the db.
func Seal(gcm cipher.AEAD, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal.
func Open(gcm cipher.AEAD, sealed []byte) ([]byte, error) {
	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("sealed blob is %d bytes, shorter than a nonce", len(sealed))
	}
	nonce, ct := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ct, nil)
}

func OTPValidate(username, otpCode string, db mdb.DB, gcm cipher.AEAD) (bool, error) {
	otpSecretEnc, err := db.UserOTPSecretGet(username)
	if err != nil {
		log.Printf("OTPValidate: failed to get secret: %v", err)
		return false, err
	}

	otpSecretB, err := Open(gcm, otpSecretEnc)
	if err != nil {
		log.Printf("OTPValidate: failed to open: %v", err)
		return false, err
	}
	otpSecret := string(otpSecretB)

	return totp.Validate(otpCode, otpSecret), nil
}

func HashPassword(password []byte) ([]byte, error) {
	/* encodedSaltSize = 22 bytes */
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return bytes, err
}

func HTMXRedirect(w http.ResponseWriter, path string) {
	h := w.Header()
	h.Set("HX-Redirect", path)
	w.WriteHeader(http.StatusOK)
}

func UsernameIsValid(username string) bool {
	if len(username) == 0 {
		return false
	}

	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			if r != '_' {
				return false
			}
		}
	}
	return true
}

func PasswordIsValid(password string) bool {
	return len(password) >= 4
}

func SecretNameIsValid(name string) bool {
	if len(name) == 0 || len(name) > 128 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}
