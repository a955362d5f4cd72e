package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// LedgerSummaryKeyFmt keys a client's cached ledger summary by user ID.
const LedgerSummaryKeyFmt = "ledger:summary:%d"

var client *redis.Client

// Init initializes the Redis connection. On failure the client stays nil and
// every cache call degrades to a no-op.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// Close releases the Redis connection if one was established.
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	userID, err := client.Get(ctx, hashCredentials(email, password)).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int64) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(email, password), userID, 15*time.Minute)
}

// GetCachedLedgerSummary returns a client's cached summary if available.
func GetCachedLedgerSummary(ctx context.Context, userID int) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(LedgerSummaryKeyFmt, userID)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheLedgerSummary caches a client's summary for 5 minutes.
func CacheLedgerSummary(ctx context.Context, userID int, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(LedgerSummaryKeyFmt, userID), data, 5*time.Minute)
}

// InvalidateLedgerCaches clears a client's cached summary.
// Called when: CreateSale, MarkPaid.
func InvalidateLedgerCaches(ctx context.Context, userID int) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(LedgerSummaryKeyFmt, userID))
}

// Healthy reports whether the cache connection is up.
func Healthy(ctx context.Context) bool {
	if client == nil {
		return false
	}
	return client.Ping(ctx).Err() == nil
}
