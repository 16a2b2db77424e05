package identity

import (
	"fmt"
	"regexp"
	"strings"
)

// Entry is one address a wallet exposes, tagged with its chain symbol.
type Entry struct {
	Address string `json:"address"`
	Symbol  string `json:"symbol"`
}

var entryPattern = regexp.MustCompile(`^([0-9A-Za-z]+)@([A-Za-z]+)$`)

// ParseEntries reads a comma separated list like "SP1...@STX,bc1q...@BTC",
// keeping the order given.
func ParseEntries(input string) ([]Entry, error) {
	var result []Entry

	for _, entry := range strings.Split(input, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		matches := entryPattern.FindStringSubmatch(entry)
		if matches == nil {
			return nil, fmt.Errorf("invalid entry: %s", entry)
		}

		result = append(result, Entry{
			Address: matches[1],
			Symbol:  strings.ToUpper(matches[2]),
		})
	}
	return result, nil
}
