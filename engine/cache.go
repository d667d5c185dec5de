package engine

import (
	"encoding/binary"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/sibexico/pagesim/replacement"
)

// resultCache memoizes finished runs. Results are immutable, so a cached
// value can be handed to several callers.
type resultCache struct {
	internal *lru.Cache
}

func newResultCache(size int) (*resultCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	return &resultCache{internal: c}, nil
}

// cacheKey identifies a run by policy, frame count and the full reference
// string, so distinct inputs never share an entry.
func cacheKey(policy replacement.Policy, ref []replacement.PageID, frames int) string {
	buf := make([]byte, 0, len(policy)+binary.MaxVarintLen64*(len(ref)+1)+1)
	buf = append(buf, string(policy)...)
	buf = append(buf, 0)
	buf = binary.AppendVarint(buf, int64(frames))
	for _, page := range ref {
		buf = binary.AppendVarint(buf, int64(page))
	}
	return string(buf)
}

func (c *resultCache) get(key string) (*replacement.Result, bool) {
	v, ok := c.internal.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*replacement.Result), true
}

func (c *resultCache) add(key string, r *replacement.Result) {
	c.internal.Add(key, r)
}

func (c *resultCache) len() int {
	return c.internal.Len()
}
