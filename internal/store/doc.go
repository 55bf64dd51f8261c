// Package store holds the latest known value of every entity.
//
// New(ttl) creates a Store. Put/PutAll record values from the pollers and the
// push receiver; Snapshot returns the live entries as a types.Snapshot for a
// render pass. Entries not refreshed within the TTL are excluded from
// Snapshot and List, so their donuts fall back to the missing-entity
// placeholder, and Run(ctx) evicts them in the background. A TTL of zero
// keeps entries forever.
//
// Subscribe returns a channel that receives a tick whenever a stored value
// actually changes, which the WebSocket hub and the terminal view use to
// re-render.
package store
