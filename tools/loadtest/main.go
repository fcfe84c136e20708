// Command loadtest drives the allocation API with concurrent lookup traffic
// and reports latency and throughput numbers.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"
)

const (
	defaultBaseURL     = "http://localhost:8080"
	defaultConcurrency = 16
	defaultDuration    = 30 * time.Second
)

type Config struct {
	BaseURL      string
	Concurrency  int
	Duration     time.Duration
	AddressFile  string        // newline-separated addresses; random ones are generated when empty
	Timeout      time.Duration // per-request timeout
	OutputFile   string        // optional markdown report path
	WarmupPeriod time.Duration // samples collected before this are discarded
}

type sample struct {
	latency time.Duration
	status  int
	err     bool
}

type report struct {
	Total      int
	ByStatus   map[int]int
	Errors     int
	Elapsed    time.Duration
	Latencies  []time.Duration // sorted
	MinLatency time.Duration
	MaxLatency time.Duration
}

func main() {
	cfg := parseFlags()

	addresses, err := loadAddresses(cfg.AddressFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load addresses: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("Target:      %s\n", cfg.BaseURL)
	fmt.Printf("Concurrency: %d\n", cfg.Concurrency)
	fmt.Printf("Duration:    %s\n", cfg.Duration)
	fmt.Printf("Addresses:   %d\n\n", len(addresses))

	rep := run(ctx, cfg, addresses)
	out := formatReport(cfg, rep)
	fmt.Print(out)

	if cfg.OutputFile != "" {
		if err := os.WriteFile(cfg.OutputFile, []byte(out), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", cfg.OutputFile)
	}
}

func parseFlags() Config {
	var cfg Config
	var fileCfg *FileConfig
	if loaded, err := LoadConfig(GetDefaultConfigPath()); err == nil {
		fileCfg = loaded
	}

	baseURL := defaultBaseURL
	if fileCfg != nil && fileCfg.BaseURL != "" {
		baseURL = fileCfg.BaseURL
	}

	flag.StringVar(&cfg.BaseURL, "url", baseURL, "base URL of the allocation API")
	flag.IntVar(&cfg.Concurrency, "c", defaultConcurrency, "number of concurrent workers")
	flag.DurationVar(&cfg.Duration, "d", defaultDuration, "test duration")
	flag.StringVar(&cfg.AddressFile, "addresses", "", "file with one address per line (random when empty)")
	flag.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "per-request timeout")
	flag.StringVar(&cfg.OutputFile, "o", "", "write the report to this file")
	flag.DurationVar(&cfg.WarmupPeriod, "warmup", 2*time.Second, "discard samples collected before this")
	flag.Parse()

	return cfg
}

// loadAddresses reads addresses from a file, or generates a synthetic set when
// no file is given. Synthetic addresses mostly miss the store, which still
// exercises the full lookup path.
func loadAddresses(path string) ([]string, error) {
	if path == "" {
		addresses := make([]string, 1000)
		for i := range addresses {
			addresses[i] = randomAddress()
		}
		return addresses, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var addresses []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addresses = append(addresses, line)
	}
	if len(addresses) == 0 {
		return nil, fmt.Errorf("no addresses in %s", path)
	}
	return addresses, nil
}

func randomAddress() string {
	buf := make([]byte, 20)
	_, _ = rand.Read(buf)
	return "0x" + hex.EncodeToString(buf)
}

func run(ctx context.Context, cfg Config, addresses []string) *report {
	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	client := &http.Client{Timeout: cfg.Timeout}
	samples := make(chan sample, cfg.Concurrency*4)

	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for n := worker; ; n++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				s := lookupOnce(ctx, client, cfg.BaseURL, addresses[n%len(addresses)])
				select {
				case samples <- s:
				case <-ctx.Done():
					return
				}
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(samples)
	}()

	rep := &report{ByStatus: make(map[int]int)}
	for s := range samples {
		if time.Since(start) < cfg.WarmupPeriod {
			continue
		}
		rep.Total++
		if s.err {
			rep.Errors++
			continue
		}
		rep.ByStatus[s.status]++
		rep.Latencies = append(rep.Latencies, s.latency)
	}
	rep.Elapsed = time.Since(start) - cfg.WarmupPeriod

	sort.Slice(rep.Latencies, func(i, j int) bool { return rep.Latencies[i] < rep.Latencies[j] })
	if len(rep.Latencies) > 0 {
		rep.MinLatency = rep.Latencies[0]
		rep.MaxLatency = rep.Latencies[len(rep.Latencies)-1]
	}
	return rep
}

func lookupOnce(ctx context.Context, client *http.Client, baseURL, address string) sample {
	url := fmt.Sprintf("%s/api/v1/allocations/%s", baseURL, address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return sample{err: true}
	}

	start := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return sample{err: true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	return sample{latency: latency, status: resp.StatusCode}
}

// percentile returns the p-th percentile from sorted latencies
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}

func formatReport(cfg Config, rep *report) string {
	var b strings.Builder

	b.WriteString("# Allocation API Load Test\n\n")
	fmt.Fprintf(&b, "- Target: %s\n", cfg.BaseURL)
	fmt.Fprintf(&b, "- Requests: %d (%s)\n", rep.Total, formatRate(rep.Total, rep.Elapsed))
	fmt.Fprintf(&b, "- Errors: %d (%s)\n\n", rep.Errors, percentageString(rep.Errors, rep.Total))

	b.WriteString("## Status codes\n\n")
	statuses := make([]int, 0, len(rep.ByStatus))
	for status := range rep.ByStatus {
		statuses = append(statuses, status)
	}
	sort.Ints(statuses)
	for _, status := range statuses {
		fmt.Fprintf(&b, "- %d: %d (%s)\n", status, rep.ByStatus[status], percentageString(rep.ByStatus[status], rep.Total))
	}

	b.WriteString("\n## Latency\n\n")
	fmt.Fprintf(&b, "- min: %s\n", formatDuration(rep.MinLatency))
	fmt.Fprintf(&b, "- p50: %s\n", formatDuration(percentile(rep.Latencies, 50)))
	fmt.Fprintf(&b, "- p90: %s\n", formatDuration(percentile(rep.Latencies, 90)))
	fmt.Fprintf(&b, "- p99: %s\n", formatDuration(percentile(rep.Latencies, 99)))
	fmt.Fprintf(&b, "- max: %s\n", formatDuration(rep.MaxLatency))

	return b.String()
}
