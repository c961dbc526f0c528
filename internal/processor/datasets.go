// Package processor handles the fetching and converting of survey datasets.
package processor

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/surveykit/sp1conv/internal/config"
	"github.com/surveykit/sp1conv/internal/convert"
	"github.com/surveykit/sp1conv/internal/sp1"

	"github.com/rs/zerolog/log"
)

// Options controls a batch conversion run.
type Options struct {
	OutDir   string
	WriteCSV bool // also emit <name>.csv next to <name>.geojson
	Strict   bool // fail datasets with unparseable coordinates
	Force    bool // overwrite existing outputs
}

// ProcessDataset fetches one configured dataset, converts it and writes the
// outputs under opts.OutDir. Existing outputs are kept unless Force is set.
func ProcessDataset(client *http.Client, ds config.Dataset, opts Options) error {
	destFile := filepath.Join(opts.OutDir, ds.Name+".geojson")

	if _, err := os.Stat(destFile); err == nil && !opts.Force {
		log.Debug().Str("dataset", ds.Name).Msg("GeoJSON output exists, skipping")
		return nil
	}

	content, err := fetchSource(client, ds.Source)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", ds.Source, err)
	}

	data, err := parseSource(content, ds, opts.Strict)
	if err != nil {
		return err
	}

	log.Info().
		Str("dataset", ds.Name).
		Int("points", len(data.Points)).
		Msg("Dataset parsed")

	if err := saveGeoJSON(opts.OutDir, destFile, data); err != nil {
		return err
	}

	if opts.WriteCSV {
		csvFile := filepath.Join(opts.OutDir, ds.Name+".csv")
		if err := os.WriteFile(csvFile, []byte(convert.ToCSV(data)), 0644); err != nil {
			return err
		}
	}

	return nil
}

// fetchSource reads the dataset content from a local path or an HTTP URL.
func fetchSource(client *http.Client, source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := client.Get(source)
		if err != nil {
			return "", err
		}
		// Explicitly ignore close error as it's a read-only operation
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != 200 {
			return "", fmt.Errorf("status %d", resp.StatusCode)
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	raw, err := os.ReadFile(source)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// parseSource picks the reader for the dataset's format. When the config does
// not name one, .csv sources are read as CSV and everything else as SP1.
func parseSource(content string, ds config.Dataset, strict bool) (*sp1.Data, error) {
	format := ds.Format
	if format == "" {
		format = FormatForName(ds.Source)
	}

	switch format {
	case "csv":
		if strict {
			return convert.FromCSVStrict(content, ds.Meta.Header())
		}
		return convert.FromCSV(content, ds.Meta.Header())
	case "sp1":
		if strict {
			return sp1.ParseStrict(content)
		}
		return sp1.Parse(content), nil
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
}

// FormatForName infers a source format from a file name or URL extension.
func FormatForName(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return "csv"
	}
	return "sp1"
}

// saveGeoJSON converts the dataset and writes it to disk.
func saveGeoJSON(dir, path string, data *sp1.Data) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	return json.NewEncoder(f).Encode(convert.ToGeoJSON(data))
}
