// Package dataset loads the raw lineup records and owns the read-only,
// process-wide snapshot of the built schedule model. The dataset is
// treated as immutable input: a refresh rebuilds the whole snapshot and
// swaps it atomically, nothing is ever patched in place.
package dataset

import (
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/lucianorarrua/cosquin-rock-lineup/internal/config"
	appLog "github.com/lucianorarrua/cosquin-rock-lineup/internal/log"
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/model"
)

// defaultLineup is the curated dataset shipped with the binary, used
// when neither a dataset URL nor a local path is configured.
//
//go:embed lineup.json
var defaultLineup []byte

// cacheMeta holds HTTP cache metadata for a remote dataset URL.
type cacheMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Loader resolves the configured dataset source into raw records.
// Remote sources are fetched with ETag / Last-Modified conditional
// requests backed by a disk cache, so a flaky network degrades to the
// last known lineup instead of an empty grid.
type Loader struct {
	client *http.Client
	cfg    config.DatasetConfig
}

// NewLoader creates a Loader for the given dataset source.
func NewLoader(cfg config.DatasetConfig) *Loader {
	if cfg.CacheDir == "" {
		cfg.CacheDir = "./cache/lineup"
	}
	return &Loader{
		client: &http.Client{Timeout: 15 * time.Second},
		cfg:    cfg,
	}
}

// Load returns the raw lineup records from the configured source:
// remote URL, then local file, then the embedded default.
func (l *Loader) Load(ctx context.Context) ([]model.RawEventRecord, error) {
	switch {
	case l.cfg.URL != "":
		body, fromCache, err := l.fetchRemote(ctx)
		if err != nil {
			return nil, err
		}
		appLog.Info("lineup dataset fetched", "url", l.cfg.URL, "from_cache", fromCache, "bytes", len(body))
		return decodeRecords(body)

	case l.cfg.Path != "":
		body, err := os.ReadFile(l.cfg.Path)
		if err != nil {
			return nil, errors.Wrap(err, "read lineup file")
		}
		appLog.Info("lineup dataset read", "path", l.cfg.Path, "bytes", len(body))
		return decodeRecords(body)

	default:
		return decodeRecords(defaultLineup)
	}
}

// fetchRemote fetches the dataset URL, honoring ETag and Last-Modified,
// and falls back to the cached body on network failure or non-OK status.
func (l *Loader) fetchRemote(ctx context.Context) (body []byte, fromCache bool, err error) {
	cachePath := l.cachePath()
	if err := os.MkdirAll(cachePath, 0o700); err != nil {
		return nil, false, err
	}

	meta, _ := l.loadCacheMeta(cachePath)
	cachedBody, _ := os.ReadFile(filepath.Join(cachePath, "body.json"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.URL, nil)
	if err != nil {
		return nil, false, err
	}
	if meta.ETag != "" {
		req.Header.Set("If-None-Match", meta.ETag)
	}
	if meta.LastModified != "" {
		req.Header.Set("If-Modified-Since", meta.LastModified)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		if len(cachedBody) > 0 {
			appLog.Error("dataset fetch failed, using cached body", err, "url", l.cfg.URL)
			return cachedBody, true, nil
		}
		return nil, false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		fresh, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, false, readErr
		}
		newMeta := cacheMeta{
			URL:          l.cfg.URL,
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
			UpdatedAt:    time.Now().UTC(),
		}
		if err := l.saveCache(cachePath, newMeta, fresh); err != nil {
			appLog.Error("dataset cache save failed", err, "url", l.cfg.URL)
		}
		return fresh, false, nil

	case http.StatusNotModified:
		if len(cachedBody) == 0 {
			return nil, false, errors.New("304 Not Modified but no cached body available")
		}
		return cachedBody, true, nil

	default:
		if len(cachedBody) > 0 {
			appLog.Error("dataset fetch non-OK, using cached body", errors.New(resp.Status), "url", l.cfg.URL, "status", resp.StatusCode)
			return cachedBody, true, nil
		}
		return nil, false, errors.New(resp.Status)
	}
}

func (l *Loader) cachePath() string {
	sum := sha256.Sum256([]byte(l.cfg.URL))
	return filepath.Join(l.cfg.CacheDir, hex.EncodeToString(sum[:8]))
}

func (l *Loader) loadCacheMeta(cachePath string) (cacheMeta, error) {
	var meta cacheMeta
	data, err := os.ReadFile(filepath.Join(cachePath, "meta.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheMeta{}, err
	}
	return meta, nil
}

func (l *Loader) saveCache(cachePath string, meta cacheMeta, body []byte) error {
	// Write body first so meta never points at a missing body.
	if err := os.WriteFile(filepath.Join(cachePath, "body.json"), body, 0o600); err != nil {
		return err
	}
	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cachePath, "meta.json"), data, 0o600)
}

func decodeRecords(body []byte) ([]model.RawEventRecord, error) {
	var records []model.RawEventRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, errors.Wrap(err, "decode lineup records")
	}
	return records, nil
}
