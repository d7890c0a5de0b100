// Package translate post-processes encoded text through an external
// machine-translation service: the text is split into line-aligned
// chunks, each chunk is translated independently (concurrently, with a
// per-chunk timeout), and the results are reassembled in original
// chunk order. A failed chunk degrades to its untranslated text unless
// the caller demands failure.
package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Client translates a single chunk of text. Implementations wrap the
// external service; NopClient disables translation.
type Client interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// ChunkError reports a failed chunk when Options.FailFast is set.
type ChunkError struct {
	Index int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("translate: chunk %d: %v", e.Index, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// Options configures a Service.
type Options struct {
	// ChunkSize is the maximum characters per chunk (default 4000).
	ChunkSize int

	// Concurrency bounds in-flight chunk translations (default 4).
	Concurrency int

	// ChunkTimeout is the per-chunk deadline (default 30s).
	ChunkTimeout time.Duration

	// FailFast turns any chunk failure into a hard error instead of
	// falling back to the untranslated chunk.
	FailFast bool

	// Cache stores translated chunks across calls (optional).
	Cache Cache

	// Logger receives per-chunk warnings (default no-op).
	Logger *zap.Logger
}

// Service runs chunked translation against a Client. It satisfies the
// encoder's Translator capability.
type Service struct {
	client Client
	opts   Options
}

// NewService builds a Service, filling option defaults.
func NewService(client Client, opts Options) *Service {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.ChunkTimeout <= 0 {
		opts.ChunkTimeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{client: client, opts: opts}
}

// Translate splits text, translates the chunks concurrently, and
// concatenates the results in input order: output chunk i always
// corresponds to input chunk i, whatever the completion order.
func (s *Service) Translate(ctx context.Context, text, lang string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("translate: no client configured")
	}
	target, err := ResolveLanguage(lang)
	if err != nil {
		return "", err
	}

	chunks := Split(text, s.opts.ChunkSize)
	if len(chunks) == 0 {
		return text, nil
	}

	out := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			translated, err := s.translateChunk(gctx, chunk, target)
			if err != nil {
				if s.opts.FailFast {
					return &ChunkError{Index: i, Err: err}
				}
				s.opts.Logger.Warn("chunk translation failed, keeping original text",
					zap.Int("chunk", i),
					zap.String("lang", target),
					zap.Error(err))
				out[i] = chunk
				return nil
			}
			out[i] = translated
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var joined strings.Builder
	for _, c := range out {
		joined.WriteString(c)
	}
	return joined.String(), nil
}

func (s *Service) translateChunk(ctx context.Context, chunk, target string) (string, error) {
	key := chunkKey(target, chunk)
	if s.opts.Cache != nil {
		v, ok, err := s.opts.Cache.Get(ctx, key)
		if err != nil {
			s.opts.Logger.Warn("chunk cache read failed", zap.Error(err))
		} else if ok {
			return v, nil
		}
	}

	cctx, cancel := context.WithTimeout(ctx, s.opts.ChunkTimeout)
	defer cancel()

	translated, err := s.client.Translate(cctx, chunk, target)
	if err != nil {
		return "", err
	}

	if s.opts.Cache != nil {
		if err := s.opts.Cache.Set(ctx, key, translated); err != nil {
			s.opts.Logger.Warn("chunk cache write failed", zap.Error(err))
		}
	}
	return translated, nil
}

// NopClient returns its input unchanged. Useful as an injected
// stand-in when translation is disabled.
type NopClient struct{}

// Translate returns text as-is.
func (NopClient) Translate(_ context.Context, text, _ string) (string, error) {
	return text, nil
}
