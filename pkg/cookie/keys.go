package cookie

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keySize = 32

// keyPair holds the keys derived from one configured secret.
type keyPair struct {
	sign    []byte
	encrypt []byte
}

// deriveKeys expands secret into independent signing and encryption keys.
func deriveKeys(secret string) (keyPair, error) {
	sign, err := expand(secret, "cookie-sign")
	if err != nil {
		return keyPair{}, err
	}
	enc, err := expand(secret, "cookie-encrypt")
	if err != nil {
		return keyPair{}, err
	}
	return keyPair{sign: sign, encrypt: enc}, nil
}

func expand(secret, info string) ([]byte, error) {
	key := make([]byte, keySize)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}
