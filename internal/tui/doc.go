// Package tui is the interactive terminal view behind `sensordonut watch`.
//
// Model recomputes the card from the current card definition and entity
// snapshot and draws it with view.Terminal. It re-renders when the store
// signals a change (the channel from store.Subscribe), when the shell sends
// ReloadMsg after the card file changed, and when the user presses r.
//
// Every refresh also records each donut's fill percentage. Pressing h shows
// the recent history of the selected donut as a braille line chart; tab
// moves the selection.
package tui
