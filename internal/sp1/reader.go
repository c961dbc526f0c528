package sp1

import (
	"math"
	"strconv"
	"strings"
)

// parseMode is the reader's header/data state. The transition is one-way:
// once a line fails the header pattern the reader stays in data mode for the
// rest of the input, even for lines that contain a colon.
type parseMode int

const (
	modeHeader parseMode = iota
	modeData
)

// setHeaderField stores a recognized metadata key, matched case-insensitively.
// Unknown keys are silently ignored.
func setHeaderField(h *Header, key, value string) {
	switch strings.ToLower(key) {
	case "version":
		h.Version = value
	case "survey":
		h.Survey = value
	case "datum":
		h.Datum = value
	case "projection":
		h.Projection = value
	}
}

// Parse reads SP1 text into a Data. It is total: blank lines and data lines
// with fewer than three tokens are dropped, unknown header keys are ignored
// and unparseable x/y tokens come back as NaN, so any input (including empty)
// yields a result and never an error.
func Parse(content string) *Data {
	d, _ := parse(content, false)
	return d
}

// ParseStrict is Parse with strict coordinates: an x or y token that does not
// parse as a number aborts with a *CoordinateParseError instead of NaN.
func ParseStrict(content string) (*Data, error) {
	return parse(content, true)
}

func parse(content string, strict bool) (*Data, error) {
	d := &Data{}
	mode := modeHeader

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		// comment lines feed the header and never end header mode
		if strings.HasPrefix(line, "#") {
			d.Header.Comments = append(d.Header.Comments, strings.TrimSpace(line[1:]))
			continue
		}

		if mode == modeHeader {
			if key, value, ok := strings.Cut(line, ":"); ok {
				setHeaderField(&d.Header, strings.TrimSpace(key), strings.TrimSpace(value))
				continue
			}
			mode = modeData
		}

		tokens := strings.Fields(line)
		if len(tokens) < 3 {
			continue
		}

		p := Point{ID: tokens[0]}

		var err error
		if p.X, err = strconv.ParseFloat(tokens[1], 64); err != nil {
			if strict {
				return nil, &CoordinateParseError{Line: i + 1, Field: "x", Value: tokens[1]}
			}
			p.X = math.NaN()
		}
		if p.Y, err = strconv.ParseFloat(tokens[2], 64); err != nil {
			if strict {
				return nil, &CoordinateParseError{Line: i + 1, Field: "y", Value: tokens[2]}
			}
			p.Y = math.NaN()
		}

		// token 3 becomes the elevation only when it is a finite number,
		// otherwise it is dropped entirely
		if len(tokens) > 3 {
			if elev, elevErr := strconv.ParseFloat(tokens[3], 64); elevErr == nil && !math.IsNaN(elev) && !math.IsInf(elev, 0) {
				p.Elevation = &elev
			}
		}

		for j := 4; j < len(tokens); j++ {
			p.SetAttr("attr"+strconv.Itoa(j-3), tokens[j])
		}

		d.Points = append(d.Points, p)
	}

	return d, nil
}
