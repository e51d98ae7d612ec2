package insights

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitstats/internal/telemetry/metrics"
)

const snapshotCacheKeyPrefix = "insights::snapshot::"

// SnapshotCache memoizes Compute results, keyed by a content hash of
// the whole input. An unchanged workout log is not re-analyzed, and any
// change to the input naturally produces a new key, so there is nothing
// to invalidate by hand. Entries expire after the TTL to bound how far
// the snapshot clock can lag behind.
type SnapshotCache struct {
	engine     *Engine
	cache      *freecache.Cache
	ttlSeconds int
	metrics    *metrics.Manager
}

func NewSnapshotCache(
	engine *Engine,
	cacheSizeBytes int,
	ttlSeconds int,
	metricsManager *metrics.Manager,
) *SnapshotCache {
	return &SnapshotCache{
		engine:     engine,
		cache:      freecache.NewCache(cacheSizeBytes),
		ttlSeconds: ttlSeconds,
		metrics:    metricsManager,
	}
}

// Compute returns the cached snapshot for this exact input if present,
// otherwise computes and caches a fresh one. Cache trouble is logged
// and never stops the computation.
func (sc *SnapshotCache) Compute(ctx context.Context, in ComputeInput) Snapshot {
	key, err := sc.inputHash(in)
	if err != nil {
		log.Errorf("snapshot cache, hash input: %s", err)
		return sc.engine.Compute(ctx, in)
	}

	if cachedBytes, err := sc.cache.Get(key); err == nil {
		var snapshot Snapshot
		if err := json.Unmarshal(cachedBytes, &snapshot); err == nil {
			sc.metrics.CounterSnapshotCacheHits.Inc()
			return snapshot
		}
		log.Errorf("snapshot cache, unmarshal cached snapshot: %s", err)
	}

	sc.metrics.CounterSnapshotCacheMisses.Inc()

	snapshot := sc.engine.Compute(ctx, in)

	snapshotBytes, err := json.Marshal(snapshot)
	if err != nil {
		log.Errorf("snapshot cache, marshal snapshot: %s", err)
		return snapshot
	}
	if err := sc.cache.Set(key, snapshotBytes, sc.ttlSeconds); err != nil {
		log.Errorf("snapshot cache, set: %s", err)
	}

	return snapshot
}

func (sc *SnapshotCache) inputHash(in ComputeInput) ([]byte, error) {
	inputJson, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	hash := sha256.Sum256(inputJson)
	return []byte(snapshotCacheKeyPrefix + hex.EncodeToString(hash[:])), nil
}
