package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

var intents = []string{"popular", "trending", "random", "favorites"}

var searchTerms = []string{"jazz", "news", "rock", "classical", "talk", "fm"}

var httpClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// seen collects station ids returned by browsing so that the mixed phase
// can star and unstar real stations.
type seen struct {
	mu  sync.Mutex
	ids []string
}

func (s *seen) add(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ids) < 500 {
		s.ids = append(s.ids, ids...)
	}
}

func (s *seen) pick(rng *rand.Rand) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ids) == 0 {
		return ""
	}
	return s.ids[rng.IntN(len(s.ids))]
}

var (
	baseURL  string
	workers  int
	duration time.Duration
	stations seen
)

func main() {
	flag.StringVar(&baseURL, "addr", "http://127.0.0.1:8711", "stationd base URL")
	flag.IntVar(&workers, "workers", 8, "concurrent clients")
	flag.DurationVar(&duration, "duration", 10*time.Second, "length of each phase")
	flag.Parse()

	fmt.Println("=== stationd load test ===")
	fmt.Printf("Target: %s | Workers: %d | Phase: %s\n\n", baseURL, workers, duration)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Browsing (open, page, close) ---")
	runPhase(duration, browse)

	fmt.Println("\n--- Phase 2: Mixed load (browse, star, saved searches) ---")
	runPhase(duration, func(rng *rand.Rand) []result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return browse(rng)
		case r < 0.60:
			return toggleTwice(rng)
		case r < 0.80:
			return []result{do(http.MethodGet, "/starred", "GET /starred", http.StatusOK)}
		default:
			q := url.QueryEscape(searchTerms[rng.IntN(len(searchTerms))])
			return []result{
				do(http.MethodPost, "/searches?q="+q, "POST /searches", http.StatusCreated),
				do(http.MethodPost, "/searches/remove?q="+q, "POST /searches/remove", http.StatusNoContent),
			}
		}
	})

	fmt.Println("\n--- Phase 3: Local reads (starred, searches, health) ---")
	runPhase(duration, func(rng *rand.Rand) []result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return []result{do(http.MethodGet, "/starred", "GET /starred", http.StatusOK)}
		case r < 0.60:
			return []result{do(http.MethodGet, "/searches", "GET /searches", http.StatusOK)}
		case r < 0.80:
			return []result{do(http.MethodGet, "/starred/export", "GET /starred/export", http.StatusOK)}
		default:
			return []result{do(http.MethodGet, "/health", "GET /health", http.StatusOK)}
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) []result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
			for {
				select {
				case <-stop:
					return
				default:
					for _, r := range workFn(rng) {
						results <- r
					}
				}
			}
		}(rand.Uint64() + uint64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-24s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 90))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-24s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		fmt.Println("  no requests completed")
		return
	}
	fmt.Println("  " + strings.Repeat("-", 90))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

// browse opens a cursor for a random intent, reads up to three pages and closes it.
func browse(rng *rand.Rand) []result {
	intent := intents[rng.IntN(len(intents))]
	var opened struct {
		ID string `json:"id"`
	}
	res := doJSON(http.MethodPost, "/sources?intent="+intent+"&page_size=20", "POST /sources", http.StatusCreated, &opened)
	out := []result{res}
	if res.err || opened.ID == "" {
		return out
	}

	for range 3 {
		var page struct {
			Stations []struct {
				UUID string `json:"stationuuid"`
			} `json:"stations"`
			HasMore bool `json:"has_more"`
		}
		res = doJSON(http.MethodGet, "/sources/next?id="+opened.ID, "GET /sources/next", http.StatusOK, &page)
		out = append(out, res)
		if res.err {
			break
		}
		for _, st := range page.Stations {
			stations.add(st.UUID)
		}
		if !page.HasMore {
			break
		}
	}
	return append(out, do(http.MethodPost, "/sources/close?id="+opened.ID, "POST /sources/close", http.StatusNoContent))
}

// toggleTwice stars a previously seen station and unstars it again so the
// starred set does not grow during the run.
func toggleTwice(rng *rand.Rand) []result {
	id := stations.pick(rng)
	if id == "" {
		return []result{do(http.MethodGet, "/health", "GET /health", http.StatusOK)}
	}
	path := "/starred/toggle?uuid=" + url.QueryEscape(id)
	return []result{
		do(http.MethodPost, path, "POST /starred/toggle", http.StatusOK),
		do(http.MethodPost, path, "POST /starred/toggle", http.StatusOK),
	}
}

func do(method, path, endpoint string, want int) result {
	return doJSON(method, path, endpoint, want, nil)
}

func doJSON(method, path, endpoint string, want int, into any) result {
	req, err := http.NewRequest(method, baseURL+path, nil)
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	defer resp.Body.Close()

	if into != nil && resp.StatusCode == want {
		if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
			return result{endpoint, resp.StatusCode, lat, true}
		}
		return result{endpoint, resp.StatusCode, lat, false}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
