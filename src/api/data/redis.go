package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/OneOfOne/xxhash"
	"github.com/redis/go-redis/v9"
)

const (
	snapshotPrefix = "snapshot:"
	discoverKey    = "discover:feed"

	SnapshotTTL = 24 * time.Hour
	DiscoverTTL = time.Hour
)

func MustRedis(rawURL string) *redis.Client {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// NormalizeListingURL strips fragments, query noise and trailing slashes so
// byte-different URLs for the same listing share one cache slot.
func NormalizeListingURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return strings.TrimSpace(rawURL)
	}
	u.Fragment = ""
	u.RawQuery = ""
	u.Host = strings.ToLower(u.Host)
	return strings.TrimRight(u.String(), "/")
}

// SnapshotCacheKey hashes the normalized listing URL into a fixed-width key.
func SnapshotCacheKey(rawURL string) string {
	return fmt.Sprintf("%s%x", snapshotPrefix, xxhash.ChecksumString64(NormalizeListingURL(rawURL)))
}

func SetCachedSnapshot(ctx context.Context, rdb *redis.Client, rawURL string, snap any) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, SnapshotCacheKey(rawURL), payload, SnapshotTTL).Err()
}

// GetCachedSnapshot unmarshals a cached snapshot into out. Returns false on
// a cache miss or an unreadable entry.
func GetCachedSnapshot(ctx context.Context, rdb *redis.Client, rawURL string, out any) bool {
	payload, err := rdb.Get(ctx, SnapshotCacheKey(rawURL)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, out) == nil
}

func SetCachedDiscoverFeed(ctx context.Context, rdb *redis.Client, feed any) error {
	payload, err := json.Marshal(feed)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, discoverKey, payload, DiscoverTTL).Err()
}

func GetCachedDiscoverFeed(ctx context.Context, rdb *redis.Client, out any) bool {
	payload, err := rdb.Get(ctx, discoverKey).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, out) == nil
}
