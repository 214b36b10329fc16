// Package exchange encodes profiles into passphrase-protected artifacts that
// can be moved between machines.
//
// An artifact is the standard base64 encoding of salt || iv || ciphertext.
// The key is derived with PBKDF2-HMAC-SHA256 (100 000 iterations, 32-byte
// salt) and the JSON payload is encrypted with AES-256-CBC and PKCS#7
// padding. Decode reports every failure as errors.ErrDecryptionFailed so a
// wrong passphrase cannot be told apart from a damaged artifact.
package exchange
