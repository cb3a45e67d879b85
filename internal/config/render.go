package config

import "sync"

const (
	MinRenderDistance     = 2
	MaxRenderDistance     = 32
	DefaultRenderDistance = 6

	// hideMargin is how far beyond the render distance a chunk stays
	// visible before it is hidden.
	hideMargin = 2
)

// RenderSettings holds render configuration
type RenderSettings struct {
	mu             sync.RWMutex
	renderDistance int // in chunks
	evictDistance  int // in chunks, 0 keeps every chunk
}

var globalRenderSettings = &RenderSettings{
	renderDistance: DefaultRenderDistance,
}

// GetRenderDistance returns the current render distance in chunks
func GetRenderDistance() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderDistance
}

// SetRenderDistance sets the render distance in chunks, clamped to
// [MinRenderDistance, MaxRenderDistance]. It returns the stored value.
func SetRenderDistance(distance int) int {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if distance < MinRenderDistance {
		distance = MinRenderDistance
	}
	if distance > MaxRenderDistance {
		distance = MaxRenderDistance
	}

	globalRenderSettings.renderDistance = distance
	return distance
}

// HideRadius returns the distance beyond which stored chunks are hidden for
// a given render distance.
func HideRadius(renderDistance int) int {
	return renderDistance + hideMargin
}

// GetChunkHideRadius returns the hide radius for the current render distance.
func GetChunkHideRadius() int {
	return HideRadius(GetRenderDistance())
}

// GetChunkEvictRadius returns the distance beyond which chunks are dropped
// from memory, or 0 when eviction is off. It never undercuts the hide radius.
func GetChunkEvictRadius() int {
	globalRenderSettings.mu.RLock()
	evict := globalRenderSettings.evictDistance
	rd := globalRenderSettings.renderDistance
	globalRenderSettings.mu.RUnlock()
	if evict <= 0 {
		return 0
	}
	return max(evict, HideRadius(rd)+1)
}

// SetEvictDistance enables eviction beyond distance chunks; 0 disables it.
func SetEvictDistance(distance int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.evictDistance = max(distance, 0)
}
