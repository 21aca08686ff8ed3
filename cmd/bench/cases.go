// README: Smoke cases for the freight API (hubs, lookups, batch), DB/Redis checks and a lookup load test.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	hub := map[string]any{
		"state": r.cfg.State, "city": "Bhopal",
		"tyre10Rate": 2450, "tyre12Rate": 2900, "tyre14Rate": 3400,
	}
	lookup := map[string]any{"state": r.cfg.State, "city": r.cfg.City}

	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "shared geocode cache disabled"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: "SKIP", Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				b, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, stmt := range splitSQL(string(b)) {
					if _, err := r.db.Exec(ctx, stmt); err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				var missing []string
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, t).Scan(&exists)
					if err != nil || !exists {
						missing = append(missing, t)
					}
				}
				if len(missing) > 0 {
					return Result{Status: "FAIL", Note: "missing " + strings.Join(missing, ", ")}
				}
				return Result{Status: "PASS", Note: fmt.Sprintf("%d tables", len(tables))}
			},
		},
		httpCaseMethod("Health", http.MethodGet, base+"/health", nil, []int{200}, nil),
		httpCaseMethod("Metrics", http.MethodGet, base+"/metrics", nil, []int{200}, nil),
		httpCase("Hubs: register", base+"/api/hubs", hub, []int{200, 201}, []int{502}),
		httpCase("Hubs: duplicate is idempotent", base+"/api/hubs", hub, []int{200}, []int{502}),
		httpCase("Hubs: invalid rates rejected", base+"/api/hubs", map[string]any{
			"state": r.cfg.State, "city": "Bhopal", "tyre10Rate": 0, "tyre12Rate": 1, "tyre14Rate": 1,
		}, []int{400}, nil),
		httpCaseMethod("Hubs: list", http.MethodGet, base+"/api/hubs", nil, []int{200}, nil),
		httpCase("Rates: lookup", base+"/api/rates", lookup, []int{200}, []int{409, 502}),
		httpCaseMethod("Rates: read back", http.MethodGet,
			fmt.Sprintf("%s/api/rates?state=%s&city=%s", base, url.QueryEscape(r.cfg.State), url.QueryEscape(r.cfg.City)),
			nil, []int{200}, []int{404}),
		httpCase("Rates: unknown place", base+"/api/rates", map[string]any{
			"state": r.cfg.State, "city": "Qwxzv Nowhere",
		}, []int{404}, []int{502}),
		httpCase("Batch: JSON sheets", base+"/api/rates/batch", map[string]any{
			"hubs": map[string]any{
				"headers": []string{"State", "Destination", "Freight Rate 10 Tyre", "Freight Rate 12 Tyre", "Freight Rate 14 Tyre"},
				"rows": []map[string]any{
					{"State": r.cfg.State, "Destination": "Bhopal", "Freight Rate 10 Tyre": "2450", "Freight Rate 12 Tyre": "2900", "Freight Rate 14 Tyre": "3400"},
				},
			},
			"destinations": map[string]any{
				"rows": []map[string]any{{"New Destination": r.cfg.City}},
			},
		}, []int{200}, nil),
		{
			Name: "Hubs: concurrent registration inserts once",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentRegister(ctx, r, base+"/api/hubs")
			},
		},
		{
			Name: "Perf: cached lookups",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/rates", lookup)
			},
		},
	}
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != nil {
				b, _ := json.Marshal(body)
				reader = strings.NewReader(string(b))
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			latency := time.Since(start)

			note := fmt.Sprintf("status=%d", resp.StatusCode)
			if contains(okStatuses, resp.StatusCode) {
				return Result{Status: "PASS", Latency: latency, Note: note}
			}
			if contains(pendingStatuses, resp.StatusCode) {
				return Result{Status: "PENDING", Latency: latency, Note: note}
			}
			return Result{Status: "FAIL", Latency: latency, Note: note}
		},
	}
}

// concurrentRegister fires the same new hub identity from every worker; at
// most one request may answer 201.
func concurrentRegister(ctx context.Context, r *Runner, url string) Result {
	payload := map[string]any{
		"state": r.cfg.State, "city": "Vidisha", "pincode": fmt.Sprintf("%d", time.Now().Unix()%1000000),
		"tyre10Rate": 2700, "tyre12Rate": 3100, "tyre14Rate": 3600,
	}
	b, _ := json.Marshal(payload)
	var wg sync.WaitGroup
	var mu sync.Mutex
	created, other := 0, 0

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
			req.Header.Set("Content-Type", "application/json")
			resp, err := r.httpc.Do(req)
			if err != nil {
				return
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			mu.Lock()
			switch resp.StatusCode {
			case http.StatusCreated:
				created++
			case http.StatusOK:
			default:
				other++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if other == r.cfg.Concurrency {
		return Result{Status: "PENDING", Note: "geocoder unavailable"}
	}
	if created <= 1 {
		return Result{Status: "PASS", Note: fmt.Sprintf("created=%d", created)}
	}
	return Result{Status: "FAIL", Note: fmt.Sprintf("created=%d", created)}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				if resp.StatusCode != http.StatusOK {
					errCount++
				}
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f non200=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
