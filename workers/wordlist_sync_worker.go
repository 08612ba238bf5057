// workers/wordlist_sync_worker.go
package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"word-league-system/services"
)

// ObjectSource is the remote store holding the word list (R2 in production).
type ObjectSource interface {
	ETag(ctx context.Context, key string) (string, error)
	Download(ctx context.Context, key string) ([]byte, string, error)
}

// WordListSyncWorker keeps an in-memory word list in step with an object in the bucket.
type WordListSyncWorker struct {
	source   ObjectSource
	key      string
	list     *services.WordList
	interval time.Duration

	lastETag string
}

func NewWordListSyncWorker(source ObjectSource, key string, list *services.WordList, interval time.Duration) *WordListSyncWorker {
	return &WordListSyncWorker{source: source, key: key, list: list, interval: interval}
}

// SyncOnce downloads the list when its ETag changed and swaps it in. It reports whether
// the list was replaced. A download without usable words keeps the current list.
func (w *WordListSyncWorker) SyncOnce(ctx context.Context) (bool, error) {
	if w.lastETag != "" {
		etag, err := w.source.ETag(ctx, w.key)
		if err != nil {
			return false, err
		}
		if etag == w.lastETag {
			return false, nil
		}
	}

	data, etag, err := w.source.Download(ctx, w.key)
	if err != nil {
		return false, err
	}
	words, err := services.ParseWordList(w.key, data)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", w.key, err)
	}

	// Check before swapping: an empty upload must not wipe the live list
	if services.NewWordList(words).Len() == 0 {
		return false, fmt.Errorf("word list %s has no usable words", w.key)
	}
	n := w.list.Replace(words)
	w.lastETag = etag
	log.Printf("[WORDS] 📥 loaded %d word(s) from %s (etag %s)", n, w.key, etag)
	return true, nil
}

// Run polls until ctx is cancelled.
func (w *WordListSyncWorker) Run(ctx context.Context) {
	log.Printf("[WORDS] Starting word list polling every %s...", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[WORDS] Word list polling stopped.")
			return
		case <-ticker.C:
			if _, err := w.SyncOnce(ctx); err != nil {
				// Keep serving the previous list; retry next tick
				log.Printf("[WORDS] ❌ sync failed: %v", err)
			}
		}
	}
}
