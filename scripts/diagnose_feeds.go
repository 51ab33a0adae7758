// Command diagnose_feeds checks every feed in feeds.yaml: HTTP status,
// parseability, item count and conditional-GET support. Run it before
// enabling a new feed to see how it will behave in the pipeline.
//
// Usage:
//
//	go run ./scripts/diagnose_feeds.go [feeds.yaml]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"

	feedsconfig "betpress/internal/config"
)

type diagnostic struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	Status          string `json:"status"` // OK, HTTP_ERROR, PARSE_ERROR, EMPTY
	HTTPCode        int    `json:"http_code"`
	ItemCount       int    `json:"item_count"`
	LatestDate      string `json:"latest_date,omitempty"`
	SupportsETag    bool   `json:"supports_etag"`
	SupportsLastMod bool   `json:"supports_last_modified"`
	ResponseMillis  int64  `json:"response_time_ms"`
	Error           string `json:"error,omitempty"`
}

func main() {
	path := "feeds.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	feeds, err := feedsconfig.LoadFeeds(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", path, err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	parser := gofeed.NewParser()
	results := make([]diagnostic, 0, len(feeds))

	for _, fd := range feeds {
		results = append(results, diagnose(client, parser, fd.Name, fd.URL))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		fmt.Fprintf(os.Stderr, "encode results: %v\n", err)
		os.Exit(1)
	}

	for _, r := range results {
		if r.Status != "OK" {
			os.Exit(2)
		}
	}
}

func diagnose(client *http.Client, parser *gofeed.Parser, name, url string) diagnostic {
	d := diagnostic{Name: name, URL: url}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		d.Status = "HTTP_ERROR"
		d.Error = err.Error()
		return d
	}
	req.Header.Set("User-Agent", "betpress-diagnose/1.0")

	start := time.Now()
	resp, err := client.Do(req)
	d.ResponseMillis = time.Since(start).Milliseconds()
	if err != nil {
		d.Status = "HTTP_ERROR"
		d.Error = err.Error()
		return d
	}
	defer resp.Body.Close()

	d.HTTPCode = resp.StatusCode
	d.SupportsETag = resp.Header.Get("ETag") != ""
	d.SupportsLastMod = resp.Header.Get("Last-Modified") != ""
	if resp.StatusCode != http.StatusOK {
		d.Status = "HTTP_ERROR"
		return d
	}

	parsed, err := parser.Parse(resp.Body)
	if err != nil {
		d.Status = "PARSE_ERROR"
		d.Error = err.Error()
		return d
	}

	d.ItemCount = len(parsed.Items)
	if d.ItemCount == 0 {
		d.Status = "EMPTY"
		return d
	}
	if parsed.Items[0].PublishedParsed != nil {
		d.LatestDate = parsed.Items[0].PublishedParsed.Format(time.RFC3339)
	}
	d.Status = "OK"
	return d
}
