package tokencache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
)

type cachingSource struct {
	ctx     context.Context
	adapter *Adapter
	src     oauth2.TokenSource

	mu sync.Mutex
}

// TokenSource returns a source that serves the cached token while it is
// valid and otherwise asks src, saving the new token through adapter.
func TokenSource(ctx context.Context, adapter *Adapter, src oauth2.TokenSource) oauth2.TokenSource {
	return &cachingSource{ctx: ctx, adapter: adapter, src: src}
}

func (s *cachingSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.adapter.OnBeforeAccess(s.ctx)
	if ok {
		var cached oauth2.Token
		if err := json.Unmarshal(previous, &cached); err == nil && cached.Valid() {
			return &cached, nil
		}
	}

	token, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	blob, err := json.Marshal(token)
	if err != nil {
		return nil, fmt.Errorf("encoding token: %w", err)
	}
	if err := s.adapter.OnAfterAccess(s.ctx, blob, !bytes.Equal(blob, previous)); err != nil {
		return nil, err
	}
	return token, nil
}
