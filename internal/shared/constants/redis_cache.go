package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Pattern: boothreserve:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_REALTIME_SHORT = 30 * time.Second // 30 seconds - for live booth availability
	TTL_LEASE_DEFAULT  = 1 * time.Minute  // 1 minute - sweeper lease
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "boothreserve"
)

// ================== AVAILABILITY MODULE ==================

const (
	CACHE_KEY_AVAILABILITY_EVENT      = CACHE_PREFIX + ":availability:event:" // + event-id
	CACHE_KEY_AVAILABILITY_GENERATION = CACHE_PREFIX + ":availability:gen:"   // + event-id
)

const (
	TTL_AVAILABILITY            = TTL_REALTIME_SHORT // 30 seconds, capped by the earliest hold deadline
	TTL_AVAILABILITY_GENERATION = 24 * time.Hour     // must outlive every cached view
)

// ================== RESERVATIONS MODULE ==================

const (
	LEASE_KEY_SWEEPER = CACHE_PREFIX + ":sweeper:lease"
)

// ================== RATE LIMIT MODULE ==================

const (
	RATE_LIMIT_PREFIX = CACHE_PREFIX + ":ratelimit:" // + type:client
)

// ================== HELPER FUNCTIONS ==================

// BuildAvailabilityKey -> "boothreserve:availability:event:spring-market"
func BuildAvailabilityKey(eventID string) string {
	return CACHE_KEY_AVAILABILITY_EVENT + eventID
}

// BuildAvailabilityGenerationKey -> "boothreserve:availability:gen:spring-market"
func BuildAvailabilityGenerationKey(eventID string) string {
	return CACHE_KEY_AVAILABILITY_GENERATION + eventID
}

// BuildRateLimitKey -> "boothreserve:ratelimit:reservation:ip:10.0.0.1"
func BuildRateLimitKey(limitType, clientID string) string {
	return fmt.Sprintf("%s%s:%s", RATE_LIMIT_PREFIX, limitType, clientID)
}
