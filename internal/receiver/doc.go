// Package receiver implements the push endpoint through which a host sends
// entity states instead of waiting for a poller.
//
// Receiver.ServeHTTP accepts POST bodies holding one state record or a JSON
// array of them (the Home Assistant state shape). Every record must carry a
// non-empty entity_id; otherwise the whole batch is rejected with 400 and
// nothing is stored. Accepted records are written to the store in one PutAll.
// Authentication is enforced upstream by the API router (see package auth),
// so the receiver itself only performs structural validation.
//
// New(st) wires the receiver to the given entity store.
package receiver
