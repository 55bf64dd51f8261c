// Package registry records which card types the application serves.
//
// The shell registers card metadata once at startup (Register); the API lists
// it (List) and the CLI prints Banner on launch. Nothing registers itself from
// an init function.
package registry
