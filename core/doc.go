// Package core contains the entitlements domain contracts, entities, and
// client orchestration logic. Lower-level adapters must depend on this
// package; core must not depend on transport-specific adapters.
package core
