//go:build windows

package secrets

func newPlatformBackend(opts Options) (Backend, error) {
	return NewFileBackend(opts.Dir, DPAPIProtector{}, KindDPAPI), nil
}
