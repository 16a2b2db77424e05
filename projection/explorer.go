package projection

import (
	"net/url"
	"strings"
)

// DefaultExplorerURL is the public block explorer.
const DefaultExplorerURL = "https://explorer.stacks.co"

// Explorer builds block-explorer links for one network.
type Explorer struct {
	BaseURL string
	Network string
}

func (e Explorer) link(kind, id string) string {
	base := strings.TrimRight(e.BaseURL, "/")
	if base == "" {
		base = DefaultExplorerURL
	}
	q := url.Values{"chain": {e.Network}}
	return base + "/" + kind + "/" + url.PathEscape(id) + "?" + q.Encode()
}

func (e Explorer) TxURL(txID string) string { return e.link("txid", txID) }

func (e Explorer) AddressURL(address string) string { return e.link("address", address) }

// ShortenAddress keeps chars+2 leading and chars trailing characters.
func ShortenAddress(address string, chars int) string {
	if chars <= 0 || len(address) <= 2*chars+2 {
		return address
	}
	return address[:chars+2] + "..." + address[len(address)-chars:]
}
