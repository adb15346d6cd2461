// Package cli parses command-line arguments into an app.Config, kept
// separate from main so it can be unit-tested without touching os.Args or
// os.Exit.
package cli
