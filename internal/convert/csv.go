package convert

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/surveykit/sp1conv/internal/sp1"
)

// Column header patterns for CSV import. Matching is case-insensitive and
// exact, after trimming.
var (
	idColRegex   = regexp.MustCompile(`(?i)^id$`)
	xColRegex    = regexp.MustCompile(`(?i)^x$`)
	yColRegex    = regexp.MustCompile(`(?i)^y$`)
	elevColRegex = regexp.MustCompile(`(?i)^(elevation|z)$`)
)

// ToCSV renders the dataset as comma-delimited text. The header row is the
// fixed ID,X,Y,Elevation prefix followed by the lexicographically sorted
// union of every attribute key seen across all points, so a key defined by a
// single point still becomes a column for every row. Cells are written raw,
// without quoting.
func ToCSV(d *sp1.Data) string {
	seen := make(map[string]bool)
	var attrKeys []string
	for i := range d.Points {
		for _, a := range d.Points[i].Attributes {
			if !seen[a.Key] {
				seen[a.Key] = true
				attrKeys = append(attrKeys, a.Key)
			}
		}
	}
	sort.Strings(attrKeys)

	lines := []string{strings.Join(append([]string{"ID", "X", "Y", "Elevation"}, attrKeys...), ",")}

	for i := range d.Points {
		p := &d.Points[i]

		elev := ""
		if p.Elevation != nil {
			elev = formatFloat(*p.Elevation)
		}

		row := []string{p.ID, formatFloat(p.X), formatFloat(p.Y), elev}
		for _, key := range attrKeys {
			value, _ := p.Attr(key)
			row = append(row, value)
		}

		lines = append(lines, strings.Join(row, ","))
	}

	return strings.Join(lines, "\n")
}

// formatFloat uses the shortest decimal representation. CSV keeps the source
// precision, unlike the fixed-decimal SP1 output.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FromCSV parses a comma-delimited point table into a dataset. The first
// non-blank line must name (case-insensitively) id, x and y columns; an
// elevation or z column is optional and every remaining column becomes a
// point attribute under its original name. The supplied meta header is
// attached verbatim, since CSV carries no survey metadata of its own. There
// is no quote handling: cells cannot contain commas.
func FromCSV(content string, meta sp1.Header) (*sp1.Data, error) {
	return fromCSV(content, meta, false)
}

// FromCSVStrict is FromCSV with strict coordinates, failing with a
// *CoordinateParseError when an x or y cell is not a number.
func FromCSVStrict(content string, meta sp1.Header) (*sp1.Data, error) {
	return fromCSV(content, meta, true)
}

func fromCSV(content string, meta sp1.Header, strict bool) (*sp1.Data, error) {
	var lines []string
	for _, raw := range strings.Split(content, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 1 {
		return nil, sp1.ErrEmptyInput
	}

	columns := strings.Split(lines[0], ",")
	for i := range columns {
		columns[i] = strings.TrimSpace(columns[i])
	}

	idCol, xCol, yCol, elevCol := -1, -1, -1, -1
	for i, name := range columns {
		switch {
		case idColRegex.MatchString(name):
			idCol = i
		case xColRegex.MatchString(name):
			xCol = i
		case yColRegex.MatchString(name):
			yCol = i
		case elevColRegex.MatchString(name):
			elevCol = i
		}
	}

	var missing []string
	if idCol < 0 {
		missing = append(missing, "ID")
	}
	if xCol < 0 {
		missing = append(missing, "X")
	}
	if yCol < 0 {
		missing = append(missing, "Y")
	}
	if len(missing) > 0 {
		return nil, &sp1.MissingColumnsError{Columns: missing}
	}

	d := &sp1.Data{Header: meta}

	for rowNo, line := range lines[1:] {
		values := strings.Split(line, ",")
		if len(values) < 3 {
			continue
		}
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}

		p := sp1.Point{ID: cell(values, idCol)}

		var err error
		if p.X, err = strconv.ParseFloat(cell(values, xCol), 64); err != nil {
			if strict {
				return nil, &sp1.CoordinateParseError{Line: rowNo + 2, Field: "x", Value: cell(values, xCol)}
			}
			p.X = math.NaN()
		}
		if p.Y, err = strconv.ParseFloat(cell(values, yCol), 64); err != nil {
			if strict {
				return nil, &sp1.CoordinateParseError{Line: rowNo + 2, Field: "y", Value: cell(values, yCol)}
			}
			p.Y = math.NaN()
		}

		if elevCol >= 0 {
			if elev, elevErr := strconv.ParseFloat(cell(values, elevCol), 64); elevErr == nil && !math.IsNaN(elev) && !math.IsInf(elev, 0) {
				p.Elevation = &elev
			}
		}

		for i, value := range values {
			if i == idCol || i == xCol || i == yCol || i == elevCol || value == "" {
				continue
			}
			if i < len(columns) {
				p.SetAttr(columns[i], value)
			}
		}

		d.Points = append(d.Points, p)
	}

	return d, nil
}

// cell tolerates short rows: out-of-range columns read as empty.
func cell(values []string, i int) string {
	if i >= 0 && i < len(values) {
		return values[i]
	}
	return ""
}
