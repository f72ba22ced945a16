package constants

import "time"

// Redis cache keys and TTLs for clubhub read models.
// Pattern: clubhub:{module}:{operation}:{identifier?}

const (
	CACHE_PREFIX = "clubhub"
)

// Registry read models
const (
	CACHE_KEY_HALL_SCHEME   = CACHE_PREFIX + ":computers:hall_scheme"
	CACHE_KEY_COMPUTER_LIST = CACHE_PREFIX + ":computers:list"
)

// Tournament read models
const (
	CACHE_KEY_TOURNAMENTS_UPCOMING = CACHE_PREFIX + ":tournaments:upcoming"
)

// TTLs. The hall scheme is realtime-sensitive: it is also invalidated
// explicitly on every status-affecting transition, so the TTL is just a
// backstop against missed invalidations.
const (
	TTL_HALL_SCHEME          = 30 * time.Second
	TTL_COMPUTER_LIST        = 5 * time.Minute
	TTL_TOURNAMENTS_UPCOMING = 1 * time.Minute
)

// Invalidation patterns
const (
	PATTERN_INVALIDATE_COMPUTERS = CACHE_PREFIX + ":computers:*"
)
