// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// StationKey is the context key for the scoring station ID.
// Exported so it can be used consistently across packages.
type StationKey struct{}

// WithStationID returns a context carrying the ID of the station (weigh-in
// desk, laptop) issuing the operation.
func WithStationID(ctx context.Context, stationID string) context.Context {
	return context.WithValue(ctx, StationKey{}, stationID)
}

// StationFromContext returns the station ID from context, or empty string if not set.
func StationFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(StationKey{}).(string); ok {
		return v
	}
	return ""
}
