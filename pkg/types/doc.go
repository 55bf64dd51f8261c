// Package types defines the live-state types shared by the state sources,
// the entity store, the render model, and the HTTP surface.
//
// StateRecord is the wire shape a host pushes or a Home Assistant instance
// returns from /api/states. LiveValue is the flattened in-memory form the
// render model reads, and Snapshot maps entity IDs to LiveValues for one
// render pass.
package types
