//go:build !windows && !darwin

package secrets

func newPlatformBackend(opts Options) (Backend, error) {
	return NewFileBackend(opts.Dir, XORProtector{Mask: DefaultXORMask}, KindObfuscatedFile), nil
}
