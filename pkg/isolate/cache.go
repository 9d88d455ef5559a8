package isolate

import (
	"math"
	"slices"
	"sync"

	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/philipparndt/neurosight/pkg/scene"
)

// Tint selects the optional heatmap decorator for cached isolations
type Tint struct {
	Enabled   bool
	Intensity float64
}

// NoTint leaves material colors alone
var NoTint = Tint{}

// Heat enables the heatmap at the given intensity
func Heat(intensity float64) Tint {
	return Tint{Enabled: true, Intensity: clampUnit(intensity)}
}

type cacheKey struct {
	source *scene.Node
	clip   []geometry.Plane
	tint   Tint
}

func newCacheKey(src *scene.Node, clip []geometry.Plane, tint Tint) cacheKey {
	return cacheKey{source: src, clip: slices.Clone(clip), tint: tint.normalized()}
}

func (k cacheKey) equal(other cacheKey) bool {
	return k.source == other.source && k.tint == other.tint && slices.EqualFunc(k.clip, other.clip, samePlane)
}

// normalized maps tints that draw the same colors to the same value
func (t Tint) normalized() Tint {
	if !t.Enabled {
		return NoTint
	}
	return Heat(t.Intensity)
}

// samePlane compares planes so that a NaN offset matches itself
func samePlane(a, b geometry.Plane) bool {
	return sameFloat(a.Normal.X, b.Normal.X) && sameFloat(a.Normal.Y, b.Normal.Y) &&
		sameFloat(a.Normal.Z, b.Normal.Z) && sameFloat(a.Distance, b.Distance)
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// CacheStats reports how often Get reused the previous isolation
type CacheStats struct {
	Hits   int
	Misses int
}

// Cache remembers the most recent isolation. Camera movement does not change
// the key, so interaction frames reuse the same Renderable; only a new source,
// clip or tint triggers another pass. Each Cache owns its copies, so separate
// caches never share materials.
type Cache struct {
	mu      sync.Mutex
	opts    []Option
	key     cacheKey
	current *Renderable
	stats   CacheStats
}

// NewCache creates a cache whose isolations use opts in addition to the tint
func NewCache(opts ...Option) *Cache {
	return &Cache{opts: opts}
}

// Get returns the isolation of src for clip and tint, reusing the previous result when the key is unchanged
func (c *Cache) Get(src *scene.Node, clip []geometry.Plane, tint Tint) *Renderable {
	key := newCacheKey(src, clip, tint)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.key.equal(key) {
		c.stats.Hits++
		return c.current
	}

	opts := c.opts
	if key.tint.Enabled {
		opts = append(slices.Clip(opts), WithDecorator(Heatmap(key.tint.Intensity)))
	}
	c.current = Isolate(src, key.clip, opts...)
	c.key = key
	c.stats.Misses++
	return c.current
}

// Invalidate drops the remembered isolation
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.key = cacheKey{}
}

// Stats returns the hit and miss counters
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
