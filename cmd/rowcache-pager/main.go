// rowcache-pager pages through a CSV dataset from the command line.
// It is the external caller the pagination core expects: it owns file
// loading and output formatting, nothing more.
//
// Usage:
//
//	rowcache-pager --file=names.csv --mode=page --page=2 --page-size=10
//	rowcache-pager --file=names.csv --mode=hyper --page=3
//	rowcache-pager --file=names.csv --mode=index --index=40 --export=page.csv
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
	"github.com/spf13/pflag"
	"github.com/tailscale/hujson"

	"github.com/rowcache/rowcache/dataset"
	"github.com/rowcache/rowcache/pager"
)

// cliConfig holds defaults that can be set once in a config file instead
// of repeated on every invocation. The file is HuJSON: comments and
// trailing commas are allowed.
type cliConfig struct {
	PageSize      int `json:"page_size"`
	SnapshotLimit int `json:"snapshot_limit"`
}

func loadConfig(path string) (cliConfig, error) {
	cfg := cliConfig{
		PageSize:      10,
		SnapshotLimit: pager.DefaultSnapshotLimit,
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	file := pflag.String("file", "", "CSV dataset to page through (required)")
	mode := pflag.String("mode", "page", "pagination mode: page, hyper, or index")
	page := pflag.Int("page", 1, "1-based page number (page and hyper modes)")
	index := pflag.Int("index", 0, "start index (index mode)")
	pageSize := pflag.Int("page-size", 0, "records per page (overrides config)")
	configPath := pflag.String("config", "", "optional HuJSON config file")
	export := pflag.String("export", "", "also write the fetched records to this CSV file")
	pflag.Parse()

	if err := run(*file, *mode, *page, *index, *pageSize, *configPath, *export); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(file, mode string, page, index, pageSize int, configPath, export string) error {
	if file == "" {
		pflag.Usage()
		return errors.New("--file is required")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	size := cfg.PageSize
	if pageSize > 0 {
		size = pageSize
	}

	loader, err := dataset.NewLoader(0)
	if err != nil {
		return err
	}
	src, err := loader.Load(file)
	if err != nil {
		return err
	}

	p, err := pager.New[[]string](src, pager.WithSnapshotLimit(cfg.SnapshotLimit))
	if err != nil {
		return err
	}

	var records [][]string
	switch mode {
	case "page":
		records, err = p.GetPage(page, size)
		if err != nil {
			return err
		}

	case "hyper":
		hp, err := p.GetHyper(page, size)
		if err != nil {
			return err
		}
		records = hp.Data
		if err := printJSON(hp); err != nil {
			return err
		}

	case "index":
		ip, err := p.GetIndexPage(index, size)
		if err != nil {
			return err
		}
		records = ip.Data
		if err := printJSON(ip); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown mode %q (want page, hyper, or index)", mode)
	}

	if mode == "page" {
		if err := writeCSV(os.Stdout, records); err != nil {
			return err
		}
	}

	if export != "" {
		var buf bytes.Buffer
		if err := writeCSV(&buf, records); err != nil {
			return err
		}
		if err := atomic.WriteFile(export, &buf); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "exported %d records to %s\n", len(records), export)
	}

	return nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Println(string(out))
	return err
}

func writeCSV(w io.Writer, records [][]string) error {
	return csv.NewWriter(w).WriteAll(records)
}
