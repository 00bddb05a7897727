package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultLoaderCapacity bounds how many parsed files a Loader retains.
const DefaultLoaderCapacity = 16

// Loader reads CSV files into slice sources, dropping the header row.
// Parsed files are memoized in a bounded LRU keyed by path; a content
// fingerprint detects on-disk changes and forces a re-parse, so a stale
// snapshot of the file is never served.
type Loader struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *loadedFile]
}

type loadedFile struct {
	fingerprint uint64
	source      *SliceSource[[]string]
}

// NewLoader creates a Loader retaining up to maxFiles parsed files.
// maxFiles <= 0 selects DefaultLoaderCapacity.
func NewLoader(maxFiles int) (*Loader, error) {
	if maxFiles <= 0 {
		maxFiles = DefaultLoaderCapacity
	}
	cache, err := lru.New[string, *loadedFile](maxFiles)
	if err != nil {
		return nil, fmt.Errorf("loader cache: %w", err)
	}
	return &Loader{cache: cache}, nil
}

// Load returns a Source over the data rows of the CSV file at path.
// The header row is skipped. Repeated loads of an unchanged file return
// the memoized parse.
func (l *Loader) Load(path string) (*SliceSource[[]string], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	fingerprint := xxhash.Sum64(data)

	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.cache.Get(path); ok {
		if cached.fingerprint == fingerprint {
			return cached.source, nil
		}
		log.Warn("dataset changed on disk, reloading", "path", path)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) > 0 {
		rows = rows[1:] // header
	}

	src := FromSlice(rows)
	l.cache.Add(path, &loadedFile{fingerprint: fingerprint, source: src})
	log.Info("loaded dataset", "path", path, "rows", src.Len())
	return src, nil
}
