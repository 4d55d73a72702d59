package challengeservice

import (
	"context"
	"sync"

	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// DefaultPrefetchLimit bounds the prefetch cache when no limit is configured.
const DefaultPrefetchLimit = 20

// PrefetchCache is a bounded, per-instance cache of upcoming challenge
// views. It is advisory only: losing it costs extra reads, never
// correctness.
type PrefetchCache struct {
	mu       sync.Mutex
	entries  map[sharedtypes.ChallengeID]*ChallengeView
	order    []sharedtypes.ChallengeID
	capacity int
}

// NewPrefetchCache returns a PrefetchCache. A non-positive capacity selects
// DefaultPrefetchLimit.
func NewPrefetchCache(capacity int) *PrefetchCache {
	if capacity <= 0 {
		capacity = DefaultPrefetchLimit
	}
	return &PrefetchCache{
		entries:  make(map[sharedtypes.ChallengeID]*ChallengeView),
		capacity: capacity,
	}
}

// Get returns the cached view, if present.
func (c *PrefetchCache) Get(id sharedtypes.ChallengeID) (*ChallengeView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	view, ok := c.entries[id]
	return view, ok
}

// Contains reports presence without returning the entry.
func (c *PrefetchCache) Contains(id sharedtypes.ChallengeID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

// Put stores a view, evicting the oldest entry once the capacity is reached.
func (c *PrefetchCache) Put(id sharedtypes.ChallengeID, view *ChallengeView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[id]; ok {
		c.entries[id] = view
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[id] = view
	c.order = append(c.order, id)
}

// Len reports the number of cached entries.
func (c *PrefetchCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// PreloadNext warms the cache with the challenges following currentIndex,
// clipped to the list bounds. Preloading nothing at the end of the list is
// fine. Enrichment failures are logged and the bare challenge is cached
// anyway; preloading never fails the caller.
func (s *ChallengeService) PreloadNext(ctx context.Context, currentIndex int, challenges []*challengedb.Challenge, count int) {
	if count <= 0 || currentIndex >= len(challenges)-1 {
		return
	}

	start := currentIndex + 1
	if start < 0 {
		start = 0
	}
	end := start + count
	if end > len(challenges) {
		end = len(challenges)
	}

	preloaded := 0
	for _, challenge := range challenges[start:end] {
		if challenge == nil || s.prefetch.Contains(challenge.ID) {
			continue
		}

		view := &ChallengeView{Challenge: challenge}
		creator, err := s.profiles.GetProfile(ctx, challenge.CreatorID)
		if err != nil {
			s.logger.WarnContext(ctx, "Prefetch enrichment failed, caching bare challenge",
				attr.ChallengeID("challenge_id", challenge.ID),
				attr.Error(err),
			)
			s.metrics.RecordPrefetchEnrichmentFailure(ctx)
		} else {
			view.Creator = creator
		}

		s.prefetch.Put(challenge.ID, view)
		preloaded++
	}

	if preloaded > 0 {
		s.metrics.RecordPrefetchedChallenges(ctx, preloaded)
	}
}
