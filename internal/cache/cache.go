package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

func Init(addr string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

// SetPoolTotal caches the last-known prize pool total for a week. Advisory
// display data only; short TTL so a stale number ages out on its own.
func SetPoolTotal(weekID string, total int64) {
	if Rdb == nil {
		return
	}
	Rdb.Set(context.Background(), "pool:"+weekID, total, 10*time.Minute)
}

// PoolTotal returns the cached pool total, ok=false on miss or no redis.
func PoolTotal(weekID string) (int64, bool) {
	if Rdb == nil {
		return 0, false
	}
	v, err := Rdb.Get(context.Background(), "pool:"+weekID).Int64()
	if err != nil {
		return 0, false
	}
	return v, true
}
