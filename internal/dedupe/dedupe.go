package dedupe

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Deduper remembers event keys for a window so redelivered events count once.
type Deduper interface {
	// Seen marks key as seen and reports whether it had already been seen within the window.
	Seen(ctx context.Context, key string) (bool, error)
}

// EventKey builds the dedupe key for a platform message.
func EventKey(platform string, chatID, messageID int64) string {
	return platform + ":" + strconv.FormatInt(chatID, 10) + ":" + strconv.FormatInt(messageID, 10)
}

// LRU is an in-process Deduper bounded by size and window.
type LRU struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, struct{}]
}

// NewLRU creates an in-process deduper holding at most size keys for window.
func NewLRU(size int, window time.Duration) *LRU {
	return &LRU{
		lru: expirable.NewLRU[string, struct{}](size, nil, window),
	}
}

// Seen implements Deduper
func (d *LRU) Seen(_ context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lru.Contains(key) {
		return true, nil
	}
	d.lru.Add(key, struct{}{})
	return false, nil
}

// Len returns the number of remembered keys.
func (d *LRU) Len() int {
	return d.lru.Len()
}
