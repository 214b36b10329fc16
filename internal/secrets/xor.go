package secrets

// DefaultXORMask is the fixed obfuscation byte. Changing it makes every
// previously stored fallback secret unreadable.
const DefaultXORMask byte = 0x5A

// XORProtector obfuscates bytes with a single-byte mask. It is NOT
// encryption and only deters casual inspection of the files.
type XORProtector struct {
	Mask byte
}

func (p XORProtector) Protect(plaintext []byte) ([]byte, error) {
	return p.apply(plaintext), nil
}

func (p XORProtector) Unprotect(data []byte) ([]byte, error) {
	return p.apply(data), nil
}

func (p XORProtector) apply(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ p.Mask
	}
	return out
}
