package sizes

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/huangsam/sizewatch/core"
	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/schema"
)

// Collector walks a build tree and measures every matching file.
type Collector struct {
	Pattern     string // Glob a file's slash-separated relative path must match
	Exclude     string // Glob that removes files matched by Pattern; empty excludes nothing
	Compression schema.CompressionMode
	Normalizer  core.Normalizer // Optional rewrite of the relative path into its logical name
	Workers     int
}

var _ contract.SizeCollector = &Collector{} // Compile-time check

// NewCollector builds a Collector from the validated configuration.
func NewCollector(cfg *contract.Config) *Collector {
	return &Collector{
		Pattern:     cfg.Pattern,
		Exclude:     cfg.Exclude,
		Compression: cfg.Compression,
		Normalizer:  core.NewNormalizer(cfg.StripHash),
		Workers:     cfg.Workers,
	}
}

// measured is the outcome of sizing one file.
type measured struct {
	rel  string
	size int64
	err  error
}

// Collect returns the compressed size of every matching file under root, keyed
// by its normalized relative path. Files that normalize to the same name have
// their sizes summed.
func (c *Collector) Collect(ctx context.Context, root string) (schema.SizeMap, error) {
	files, err := c.matchFiles(ctx, root)
	if err != nil {
		return nil, err
	}

	results := c.measureAll(ctx, root, files)

	raw := make(schema.SizeMap, len(results))
	for _, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("failed to measure %s: %w", r.rel, r.err)
		}
		raw[r.rel] = r.size
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return core.NormalizeSizes(raw, c.Normalizer), nil
}

// matchFiles walks root in lexical order and returns the relative paths of
// files matching Pattern and not Exclude.
func (c *Collector) matchFiles(ctx context.Context, root string) ([]string, error) {
	if !doublestar.ValidatePattern(c.Pattern) {
		return nil, fmt.Errorf("invalid pattern '%s': %w", c.Pattern, doublestar.ErrBadPattern)
	}
	if c.Exclude != "" && !doublestar.ValidatePattern(c.Exclude) {
		return nil, fmt.Errorf("invalid exclude '%s': %w", c.Exclude, doublestar.ErrBadPattern)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		ok, err := c.Matches(rel)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return files, nil
}

// Matches reports whether a slash-separated relative path is collected.
func (c *Collector) Matches(rel string) (bool, error) {
	included, err := doublestar.Match(c.Pattern, rel)
	if err != nil {
		return false, fmt.Errorf("invalid pattern '%s': %w", c.Pattern, err)
	}
	if !included || c.Exclude == "" {
		return included, nil
	}
	excluded, err := doublestar.Match(c.Exclude, rel)
	if err != nil {
		return false, fmt.Errorf("invalid exclude '%s': %w", c.Exclude, err)
	}
	return !excluded, nil
}

// measureAll sizes files with a bounded worker pool. Results keep the input order.
func (c *Collector) measureAll(ctx context.Context, root string, files []string) []measured {
	results := make([]measured, len(files))
	idxCh := make(chan int, len(files))
	var wg sync.WaitGroup

	for range max(c.Workers, 1) {
		wg.Go(func() {
			for i := range idxCh {
				rel := files[i]
				if err := ctx.Err(); err != nil {
					results[i] = measured{rel: rel, err: err}
					continue
				}
				size, err := FileSize(c.Compression, filepath.Join(root, filepath.FromSlash(rel)))
				results[i] = measured{rel: rel, size: size, err: err}
			}
		})
	}

	for i := range files {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()
	return results
}
