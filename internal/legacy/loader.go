package legacy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"gopkg.in/yaml.v3"
)

// DefaultExtensions are the data file extensions searched in each folder.
var DefaultExtensions = []string{".yaml", ".yml", ".json"}

// DefaultWorkers bounds concurrent file decoding.
const DefaultWorkers = 4

// Loader reads data files from a list of folders.
type Loader struct {
	// Extensions selects the files to read, default DefaultExtensions
	Extensions []string
	// Workers bounds how many files are decoded at once
	Workers int
	// Debug aborts the load on the first file that cannot be decoded
	Debug bool
	Log   zerolog.Logger
}

// DecodeFile reads one data file. JSON is decoded by the YAML decoder.
func DecodeFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses the content of a data file.
func Decode(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Files lists the data files of the given folders: non-recursive, sorted by
// name within a folder, folders in the given order.
func (l *Loader) Files(folders []string) ([]string, error) {
	extensions := l.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	var paths []string
	for _, folder := range folders {
		entries, err := os.ReadDir(folder)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", folder, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if !slices.Contains(extensions, strings.ToLower(filepath.Ext(e.Name()))) {
				continue
			}
			paths = append(paths, filepath.Join(folder, e.Name()))
		}
	}
	return paths, nil
}

// Load decodes all data files concurrently and merges them in file order.
// Check metrics are only merged when withTranslations is set. A file that
// cannot be decoded is logged and skipped unless Debug is set.
func (l *Loader) Load(ctx context.Context, folders []string, withTranslations bool) (*Corpus, error) {
	paths, err := l.Files(folders)
	if err != nil {
		return nil, err
	}

	workers := l.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	sem := semaphore.NewWeighted(int64(workers))

	files := make([]*File, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			f, err := DecodeFile(path)
			if err != nil {
				l.Log.Error().Err(err).Str("file", path).Msg("Cannot load file")
				if l.Debug {
					return fmt.Errorf("failed to load %s: %w", path, err)
				}
				return nil
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	corpus := NewCorpus()
	for i, f := range files {
		if f == nil {
			continue
		}
		l.Log.Debug().Str("file", paths[i]).Msg("Loaded file")
		corpus.Merge(f, withTranslations)
	}
	return corpus, nil
}
