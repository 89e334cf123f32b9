package contact

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Guard hands out at most one in-flight submission per key.
// Acquire returns ErrSubmitInProgress while the key is held.
type Guard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// LocalGuard holds keys in process memory.
type LocalGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{held: make(map[string]struct{})}
}

func (g *LocalGuard) Acquire(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.held[key]; busy {
		return nil, ErrSubmitInProgress
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, nil
}

const redisGuardPrefix = "portfolio:contact:inflight:"

// releaseScript deletes the key only if it still carries our token, so an
// expired-then-reacquired key is never released by the old holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard shares held keys across replicas. Keys expire after ttl so a
// crashed holder cannot block a client forever.
type RedisGuard struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func NewRedisGuard(rdb *redis.Client, ttl time.Duration, log *slog.Logger) *RedisGuard {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	return &RedisGuard{rdb: rdb, ttl: ttl, log: log}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	k := redisGuardPrefix + key
	token := uuid.NewString()

	ok, err := g.rdb.SetNX(ctx, k, token, g.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSubmitInProgress
	}

	var once sync.Once
	return func() {
		once.Do(func() { g.release(k, token) })
	}, nil
}

// release drops k if it still carries token. A failure leaves the key to
// expire after ttl, which blocks the client until then, so it is logged.
func (g *RedisGuard) release(k, token string) {
	// The request context may already be done; release on a fresh one.
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, g.rdb, []string{k}, token).Err(); err != nil {
		g.log.Warn("contact guard release failed", "key", k, "ttl", g.ttl, "error", err)
	}
}
