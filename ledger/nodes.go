package ledger

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// DefaultProbeTimeout bounds one node-info request during a probe.
const DefaultProbeTimeout = 3 * time.Second

// NodeProbe is the outcome of asking one API node for its tip.
type NodeProbe struct {
	URL     string
	Online  bool
	Latency time.Duration
	Height  int64
	Err     error
}

// ProbeNodes queries every distinct url concurrently. Online nodes come
// first, fastest first; offline nodes keep their input order after them.
func ProbeNodes(ctx context.Context, urls []string, timeout time.Duration) []NodeProbe {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	urls = dedupe(urls)
	results := make(chan NodeProbe)
	for _, u := range urls {
		go probeNode(ctx, u, timeout, results)
	}

	byURL := make(map[string]NodeProbe, len(urls))
	for range urls {
		p := <-results
		byURL[p.URL] = p
	}

	res := make([]NodeProbe, 0, len(urls))
	for _, u := range urls {
		res = append(res, byURL[u])
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Online != res[j].Online {
			return res[i].Online
		}
		return res[i].Online && res[i].Latency < res[j].Latency
	})
	return res
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}

func probeNode(ctx context.Context, u string, timeout time.Duration, results chan NodeProbe) {
	p := NodeProbe{URL: u}
	g := NewGateway(u, Contract{}, WithHTTPClient(&http.Client{Timeout: timeout}))

	t0 := time.Now()
	h, err := g.GetCurrentBlockHeight(ctx)
	if err == nil {
		p.Online = true
		p.Latency = time.Since(t0)
		p.Height = h
	} else {
		p.Err = err
	}
	results <- p
}

// ClosestNode picks the fastest online node from ProbeNodes output.
func ClosestNode(probes []NodeProbe) (string, bool) {
	for _, p := range probes {
		if p.Online {
			return p.URL, true
		}
	}
	return "", false
}
