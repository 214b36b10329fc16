package exchange

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
)

const (
	Iterations = 100000
	SaltSize   = 32
	KeySize    = 32
	IVSize     = aes.BlockSize
)

// ErrEmptyPassphrase is returned by Encode when no passphrase is given.
var ErrEmptyPassphrase = errors.New("passphrase must not be empty")

// DeriveKey stretches passphrase into an AES-256 key.
func DeriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, Iterations, KeySize, sha256.New)
}

// Encode serializes bundle and encrypts it under passphrase.
func Encode(ctx context.Context, bundle Bundle, passphrase string) (string, error) {
	return encode(ctx, bundle, passphrase, rand.Reader)
}

func encode(ctx context.Context, bundle Bundle, passphrase string, random io.Reader) (string, error) {
	if passphrase == "" {
		return "", ErrEmptyPassphrase
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	plaintext, err := json.Marshal(bundle)
	if err != nil {
		return "", fmt.Errorf("encoding bundle: %w", err)
	}

	header := make([]byte, SaltSize+IVSize)
	if _, err := io.ReadFull(random, header); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	salt, iv := header[:SaltSize], header[SaltSize:]

	block, err := aes.NewCipher(DeriveKey(passphrase, salt))
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	padded := pad(plaintext, aes.BlockSize)
	out := make([]byte, len(header)+len(padded))
	copy(out, header)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(header):], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decode reverses Encode. Any failure to open the artifact is reported as
// ErrDecryptionFailed.
func Decode(ctx context.Context, artifact, passphrase string) (Bundle, error) {
	if err := ctx.Err(); err != nil {
		return Bundle{}, err
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(artifact))
	if err != nil {
		return Bundle{}, kerrors.ErrDecryptionFailed
	}
	if len(raw) < SaltSize+IVSize+aes.BlockSize || (len(raw)-SaltSize-IVSize)%aes.BlockSize != 0 {
		return Bundle{}, kerrors.ErrDecryptionFailed
	}

	salt := raw[:SaltSize]
	iv := raw[SaltSize : SaltSize+IVSize]
	ciphertext := raw[SaltSize+IVSize:]

	block, err := aes.NewCipher(DeriveKey(passphrase, salt))
	if err != nil {
		return Bundle{}, kerrors.ErrDecryptionFailed
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, ok := unpad(padded, aes.BlockSize)
	if !ok {
		return Bundle{}, kerrors.ErrDecryptionFailed
	}

	var bundle Bundle
	if err := json.Unmarshal(plaintext, &bundle); err != nil {
		return Bundle{}, kerrors.ErrDecryptionFailed
	}
	if bundle.Profile.Name == "" {
		return Bundle{}, kerrors.ErrDecryptionFailed
	}
	return bundle, nil
}

func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(append([]byte(nil), data...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}
