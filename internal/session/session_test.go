package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newMiniRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(context.Background(), RedisConfig{Addr: mr.Addr(), TTL: ttl})
	require.NoError(t, err)
	return s, mr
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	rs, _ := newMiniRedisStore(t, time.Hour)
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sq,
		"redis":  rs,
	}
	for _, s := range stores {
		t.Cleanup(func() { _ = s.Close() })
	}
	return stores
}

func sample() []Message {
	return []Message{
		{Role: RoleUser, Content: "wheat"},
		{Role: RoleAssistant, Content: "🌾 **Bread Wheat**"},
	}
}

func TestStore_Contract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, "a", sample()))
			got, err := s.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, sample(), got)

			replaced := append(sample(), Message{Role: RoleUser, Content: "barley"})
			require.NoError(t, s.Put(ctx, "a", replaced))
			got, err = s.Get(ctx, "a")
			require.NoError(t, err)
			assert.Len(t, got, 3)

			require.NoError(t, s.Delete(ctx, "a"))
			_, err = s.Get(ctx, "a")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.NoError(t, s.Delete(ctx, "a"), "deleting twice is fine")

			require.NoError(t, s.Put(ctx, "x", sample()))
			require.NoError(t, s.Put(ctx, "y", sample()))
			require.NoError(t, s.Reset(ctx, "x"))
			got, err = s.Get(ctx, "x")
			require.NoError(t, err)
			assert.Empty(t, got)
			got, err = s.Get(ctx, "y")
			require.NoError(t, err)
			assert.Len(t, got, 2, "reset touches only the given id")

			require.NoError(t, s.Reset(ctx, "fresh"))
			got, err = s.Get(ctx, "fresh")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestStore_UnicodeRoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			h := []Message{{Role: RoleUser, Content: "قمح أو شعير؟ blé"}}
			require.NoError(t, s.Put(ctx, "u", h))
			got, err := s.Get(ctx, "u")
			require.NoError(t, err)
			assert.Equal(t, h, got)
		})
	}
}

func TestMemoryStore_IsolatesCallerSlices(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	h := sample()
	require.NoError(t, s.Put(ctx, "a", h))
	h[0].Content = "mutated"

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "wheat", got[0].Content)

	got[1].Content = "mutated"
	again, _ := s.Get(ctx, "a")
	assert.Equal(t, "🌾 **Bread Wheat**", again[1].Content)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := []string{"a", "b", "c"}[i%3]
			_ = s.Put(ctx, id, sample())
			_, _ = s.Get(ctx, id)
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, s.Len())
}

func TestLoad_UnknownIsEmpty(t *testing.T) {
	h, err := Load(context.Background(), NewMemoryStore(), "nope")
	require.NoError(t, err)
	assert.NotNil(t, h)
	assert.Empty(t, h)
}

func TestTrim(t *testing.T) {
	h := make([]Message, 25)
	for i := range h {
		h[i] = Message{Role: RoleUser, Content: string(rune('a' + i))}
	}
	trimmed := Trim(h, 20)
	require.Len(t, trimmed, 20)
	assert.Equal(t, "f", trimmed[0].Content)
	assert.Equal(t, "y", trimmed[19].Content)

	assert.Len(t, Trim(h, 0), 25)
	assert.Len(t, Trim(h[:3], 20), 3)
}

func TestMessage_IsUser(t *testing.T) {
	assert.True(t, Message{Role: RoleUser}.IsUser())
	assert.False(t, Message{Role: RoleBot}.IsUser())
	assert.False(t, Message{Role: RoleAssistant}.IsUser())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Options{Backend: BackendSQLite, SQLitePath: t.TempDir() + "/nested/sessions.db"})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Options{Backend: "etcd"})
	assert.ErrorContains(t, err, "unsupported session backend")
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := NewRedisStore(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	assert.ErrorContains(t, err, "redis ping failed")
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()

	s, mr := newMiniRedisStore(t, 30*time.Minute)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Put(ctx, "field-7", sample()))
	assert.True(t, mr.Exists("zer3az:session:field-7"))
	assert.Equal(t, 30*time.Minute, mr.TTL("zer3az:session:field-7"))

	mr.FastForward(20 * time.Minute)
	require.NoError(t, s.Reset(ctx, "field-7"))
	assert.Equal(t, 30*time.Minute, mr.TTL("zer3az:session:field-7"), "every write refreshes the ttl")

	mr.FastForward(31 * time.Minute)
	_, err := s.Get(ctx, "field-7")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_NoTTL(t *testing.T) {
	s, mr := newMiniRedisStore(t, 0)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Put(context.Background(), "keep", sample()))
	assert.Zero(t, mr.TTL("zer3az:session:keep"))
}

func TestRedisStore_CorruptValue(t *testing.T) {
	s, mr := newMiniRedisStore(t, 0)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, mr.Set("zer3az:session:bad", "{not json"))
	_, err := s.Get(context.Background(), "bad")
	assert.ErrorContains(t, err, "decode session bad")
}

func TestRedisStore_ClosedClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := newRedisStore(client, RedisConfig{Prefix: "test:"})
	require.NoError(t, s.Close())

	assert.ErrorContains(t, s.Put(context.Background(), "a", sample()), "redis set")
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	s := newRedisStore(nil, RedisConfig{})
	assert.Equal(t, "zer3az:session:abc", s.key("abc"))

	s = newRedisStore(nil, RedisConfig{Prefix: "test:"})
	assert.Equal(t, "test:abc", s.key("abc"))
}
