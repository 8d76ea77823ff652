// Package web holds the browser client served at the site root.
package web

import _ "embed"

//go:embed index.html
var index []byte

// Index returns the single-page client.
func Index() []byte {
	return index
}
