// Package source pulls entity states from the places a card's sensors live.
//
// Each Source returns a batch of types.LiveValue per Fetch:
//   - homeassistant.go: GET <endpoint>/api/states with a bearer token
//   - prometheus.go: scrape a text exposition endpoint; each selected metric
//     family becomes one entity holding the family's summed value
//   - file.go: a JSON or YAML list of state records on disk
//
// Authentication (API key, bearer token, basic) is handled by the shared
// authRoundTripper in base.go; HTTP sources receive a pre-configured
// *http.Client from New().
//
// Poller fetches every source concurrently once per interval and writes the
// results to the entity store. A failing source is logged and skipped; it
// never blocks the others.
package source
