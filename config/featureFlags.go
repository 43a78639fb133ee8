package config

import (
	"os"
	"strings"
)

// AllowNegativeStock disables the stock check on sale creation. Some shops
// record sales before goods-in paperwork catches up.
//
// Set via env:
// - ALLOW_NEGATIVE_STOCK=true
func AllowNegativeStock() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("ALLOW_NEGATIVE_STOCK")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// TillEventsEnabled gates the Pub/Sub event outbox dispatcher. When off,
// event records still accumulate in the outbox table but nothing is published.
//
// Set via env:
// - TILL_EVENTS_ENABLED=true
func TillEventsEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("TILL_EVENTS_ENABLED")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
