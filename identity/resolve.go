// Package identity decides which wallet address is "the user" and owns the
// connect / disconnect lifecycle of that choice.
package identity

import "strings"

// Resolve picks the connected account among entries: only addresses tagged
// with symbol count, the first one carrying preferredPrefix wins, otherwise
// the first match in wallet order. ok is false when nothing matches.
func Resolve(entries []Entry, symbol, preferredPrefix string) (address string, ok bool) {
	var first string
	for _, e := range entries {
		if e.Symbol != symbol || e.Address == "" {
			continue
		}
		if preferredPrefix != "" && strings.HasPrefix(e.Address, preferredPrefix) {
			return e.Address, true
		}
		if first == "" {
			first = e.Address
		}
	}
	return first, first != ""
}
