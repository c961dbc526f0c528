// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/surveykit/sp1conv/internal/convert"
	"github.com/surveykit/sp1conv/internal/processor"
	"github.com/surveykit/sp1conv/internal/sp1"
)

// targets maps a conversion target to its content type and file extension.
var targets = map[string]struct {
	contentType string
	extension   string
}{
	"geojson": {"application/geo+json", ".geojson"},
	"csv":     {"text/csv; charset=utf-8", ".csv"},
	"sp1":     {"text/plain; charset=utf-8", ".sp1"},
}

// HandleFormats lists the supported source and target formats.
func (s *ServerContext) HandleFormats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(map[string][]string{
		"from": {"sp1", "csv"},
		"to":   {"geojson", "csv", "sp1"},
	})
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleConvert converts an uploaded survey file.
// Path: /api/convert/{geojson|csv|sp1}. The upload is a multipart "file"
// field; an optional "from" field overrides the format inferred from the
// file extension.
func (s *ServerContext) HandleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	target := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/convert/"), "/")
	out, ok := targets[target]
	if !ok {
		http.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxUpload)
	if err := r.ParseMultipartForm(s.Config.MaxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	from := r.FormValue("from")
	if from == "" {
		from = processor.FormatForName(header.Filename)
	}

	data, err := s.readUpload(string(raw), from)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body []byte
	switch target {
	case "geojson":
		body, err = json.MarshalIndent(convert.ToGeoJSON(data), "", "  ")
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to encode GeoJSON")
			return
		}
	case "csv":
		body = []byte(convert.ToCSV(data))
	case "sp1":
		body = []byte(sp1.Write(data))
	}

	base := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	if base == "" {
		base = "converted"
	}

	w.Header().Set("Content-Type", out.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+out.extension))
	_, _ = w.Write(body)
}

// readUpload parses the uploaded content with the configured metadata and
// strictness.
func (s *ServerContext) readUpload(content, from string) (*sp1.Data, error) {
	switch from {
	case "csv":
		if s.Config.Strict {
			return convert.FromCSVStrict(content, s.Config.Meta.Header())
		}
		return convert.FromCSV(content, s.Config.Meta.Header())
	case "sp1":
		if s.Config.Strict {
			return sp1.ParseStrict(content)
		}
		return sp1.Parse(content), nil
	default:
		return nil, fmt.Errorf("unsupported source format %q", from)
	}
}

// writeError sends a JSON error body the web UI can surface as a toast.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
