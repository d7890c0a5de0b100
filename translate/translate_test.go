package translate

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// stubClient translates by uppercasing. Per-chunk delays force
// completions out of input order; failures are keyed by substring.
type stubClient struct {
	delays   map[string]time.Duration
	failOn   string
	calls    atomic.Int32
	lastLang atomic.Value
}

func (c *stubClient) Translate(ctx context.Context, text, target string) (string, error) {
	c.calls.Add(1)
	c.lastLang.Store(target)

	if d, ok := c.delays[strings.TrimSuffix(text, "\n")]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if c.failOn != "" && strings.Contains(text, c.failOn) {
		return "", errors.New("service unavailable")
	}
	return strings.ToUpper(text), nil
}

func TestServiceReassemblesInOrder(t *testing.T) {
	// Three chunks; the first is the slowest, so completion order is
	// the reverse of input order.
	client := &stubClient{delays: map[string]time.Duration{
		"aaa": 60 * time.Millisecond,
		"bbb": 30 * time.Millisecond,
	}}
	svc := NewService(client, Options{ChunkSize: 4, Concurrency: 3})

	got, err := svc.Translate(context.Background(), "aaa\nbbb\nccc\n", "zh-cn")
	require.NoError(t, err)
	assert.Equal(t, "AAA\nBBB\nCCC\n", got)
	assert.EqualValues(t, 3, client.calls.Load())
}

func TestServiceChunkFailureFallsBackToOriginal(t *testing.T) {
	client := &stubClient{failOn: "bbb"}
	svc := NewService(client, Options{ChunkSize: 4})

	got, err := svc.Translate(context.Background(), "aaa\nbbb\nccc\n", "german")
	require.NoError(t, err)
	// Failed chunk keeps its untranslated text; the rest translate.
	assert.Equal(t, "AAA\nbbb\nCCC\n", got)
}

func TestServiceFailFast(t *testing.T) {
	client := &stubClient{failOn: "bbb"}
	svc := NewService(client, Options{ChunkSize: 4, FailFast: true})

	_, err := svc.Translate(context.Background(), "aaa\nbbb\nccc\n", "de")
	require.Error(t, err)

	var ce *ChunkError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Index)
}

func TestServiceResolvesLanguageName(t *testing.T) {
	client := &stubClient{}
	svc := NewService(client, Options{})

	_, err := svc.Translate(context.Background(), "hello", "german")
	require.NoError(t, err)
	assert.Equal(t, "de", client.lastLang.Load())
}

func TestServiceRejectsUnknownLanguage(t *testing.T) {
	svc := NewService(&stubClient{}, Options{})
	_, err := svc.Translate(context.Background(), "hello", "!!not-a-language!!")
	require.Error(t, err)
}

func TestServiceEmptyText(t *testing.T) {
	client := &stubClient{}
	svc := NewService(client, Options{})

	got, err := svc.Translate(context.Background(), "", "de")
	require.NoError(t, err)
	assert.Equal(t, "", got)
	assert.Zero(t, client.calls.Load())
}

func TestServiceUsesCache(t *testing.T) {
	cache := NewMemoryCache()
	client := &stubClient{}
	svc := NewService(client, Options{Cache: cache})

	_, err := svc.Translate(context.Background(), "hello", "de")
	require.NoError(t, err)
	require.EqualValues(t, 1, client.calls.Load())

	// Second run is served from the cache.
	got, err := svc.Translate(context.Background(), "hello", "de")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", got)
	assert.EqualValues(t, 1, client.calls.Load())
}

func TestServicePerChunkTimeout(t *testing.T) {
	client := &stubClient{delays: map[string]time.Duration{
		"slow": time.Second,
	}}
	svc := NewService(client, Options{ChunkTimeout: 20 * time.Millisecond})

	got, err := svc.Translate(context.Background(), "slow", "de")
	require.NoError(t, err)
	// Timed-out chunk degrades to its original text.
	assert.Equal(t, "slow", got)
}

// brokenCache fails every operation, as a backend outage would.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("backend down")
}

func (brokenCache) Set(context.Context, string, string) error {
	return errors.New("backend down")
}

func TestServiceCacheFailureIsNotFatal(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	client := &stubClient{}
	svc := NewService(client, Options{
		Cache:  brokenCache{},
		Logger: zap.New(core),
	})

	got, err := svc.Translate(context.Background(), "hello", "de")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", got)
	assert.EqualValues(t, 1, client.calls.Load())

	// Both the failed read and the failed write are surfaced as warnings.
	assert.Equal(t, 1, logs.FilterMessage("chunk cache read failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("chunk cache write failed").Len())
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v"))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestChunkKeyDistinguishesLanguageAndContent(t *testing.T) {
	assert.NotEqual(t, chunkKey("de", "a"), chunkKey("fr", "a"))
	assert.NotEqual(t, chunkKey("de", "a"), chunkKey("de", "b"))
	assert.Equal(t, chunkKey("de", "a"), chunkKey("de", "a"))
}
