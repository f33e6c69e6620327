package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

const (
	numWorkers   = 50
	testDuration = 10 * time.Second
	numMovies    = 200
)

var baseURL string

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
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

type viewCount struct {
	MovieID int `json:"movie_id"`
	Count   int `json:"count"`
}

// recorded counts the accepted POSTs per movie so the final counts can be checked.
type recorded struct {
	mu     sync.Mutex
	counts map[int]int
}

func (r *recorded) add(id int) {
	r.mu.Lock()
	r.counts[id]++
	r.mu.Unlock()
}

func main() {
	flag.StringVar(&baseURL, "url", "http://127.0.0.1:8080", "server base URL")
	flag.Parse()

	fmt.Println("=== Movie Review App Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Movies: %d\n\n", numWorkers, testDuration, numMovies)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
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

	// Offset ids so repeated runs against a persistent backend start from zero.
	offset := int(time.Now().Unix()%100000) * 1000
	rec := &recorded{counts: make(map[int]int)}

	fmt.Println("\n--- Phase 1: Concurrent views (POST /views/{id}) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doRecordView(rng, offset, rec)
	})

	fmt.Println("\n--- Phase 2: Mixed load (40% POST views, 40% GET views, 20% GET /trending) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doRecordView(rng, offset, rec)
		case r < 0.80:
			return doGetViews(rng, offset)
		default:
			return doGetTrending()
		}
	})

	fmt.Println("\n--- Verifying counts ---")
	verify(offset, rec)
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	totalOps := atomic.NewInt64(0)
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Inc()
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
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

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 90))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doRecordView(rng *rand.Rand, offset int, rec *recorded) result {
	id := offset + rng.Intn(numMovies) + 1
	data, _ := json.Marshal(map[string]string{
		"poster_path": fmt.Sprintf("/poster-%d.jpg", id),
		"movie_name":  fmt.Sprintf("Load Test %d", id),
	})

	start := time.Now()
	resp, err := httpClient.Post(fmt.Sprintf("%s/views/%d", baseURL, id), "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /views/{id}", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		rec.add(id)
	}
	return result{"POST /views/{id}", resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func doGetViews(rng *rand.Rand, offset int) result {
	id := offset + rng.Intn(numMovies) + 1
	start := time.Now()
	resp, err := httpClient.Get(fmt.Sprintf("%s/views/%d", baseURL, id))
	lat := time.Since(start)
	if err != nil {
		return result{"GET /views/{id}", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /views/{id}", resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func doGetTrending() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/trending?limit=10")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /trending", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /trending", resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

// verify compares the server's counts with the accepted POSTs; any gap is a lost update.
func verify(offset int, rec *recorded) {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	mismatches := 0
	for id, want := range rec.counts {
		resp, err := httpClient.Get(fmt.Sprintf("%s/views/%d", baseURL, id))
		if err != nil {
			fmt.Printf("  movie %d: %v\n", id, err)
			mismatches++
			continue
		}
		var vc viewCount
		err = json.NewDecoder(resp.Body).Decode(&vc)
		resp.Body.Close()
		if err != nil || vc.Count != want {
			fmt.Printf("  movie %d: want %d, got %d (%v)\n", id-offset, want, vc.Count, err)
			mismatches++
		}
	}
	fmt.Printf("  %d movies checked, %d mismatches\n", len(rec.counts), mismatches)
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
