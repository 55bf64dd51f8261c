// Package ws streams the rendered card to browsers over WebSocket.
//
// New(store, cards, interval) creates a Hub. Hub.Run(ctx) broadcasts the
// card model whenever the store changes, when Trigger is called after a card
// reload, and at least once per interval. It blocks until ctx is cancelled,
// then closes every connection. Hub.ServeHTTP upgrades a request, sends the
// current model straight away and then streams updates.
//
// Message format:
//
//	{
//	  "event": "card",
//	  "data":  { /* same schema as GET /api/v1/card */ }
//	}
//
// Nothing is sent while no card is loaded. The hub is mounted at /ws.
package ws
