package sp1

import (
	"fmt"
	"strings"
)

// Write serializes a Data back to SP1 text. It is the structural inverse of
// Parse but normalizes the layout: comments first, header fields in fixed
// order with absent fields omitted, one blank separator line, then one
// tab-delimited line per point with x/y at six decimals and elevation at
// three. Round trips are therefore not byte-identical: unrecognized header
// keys are gone and numeric precision is normalized.
func Write(d *Data) string {
	var lines []string

	for _, c := range d.Header.Comments {
		lines = append(lines, "# "+c)
	}

	for _, field := range []struct{ key, value string }{
		{"Version", d.Header.Version},
		{"Survey", d.Header.Survey},
		{"Datum", d.Header.Datum},
		{"Projection", d.Header.Projection},
	} {
		if field.value != "" {
			lines = append(lines, field.key+": "+field.value)
		}
	}

	lines = append(lines, "")

	for i := range d.Points {
		p := &d.Points[i]
		fields := []string{p.ID, fmt.Sprintf("%.6f", p.X), fmt.Sprintf("%.6f", p.Y)}
		if p.Elevation != nil {
			fields = append(fields, fmt.Sprintf("%.3f", *p.Elevation))
		}
		for _, a := range p.Attributes {
			fields = append(fields, a.Value)
		}
		lines = append(lines, strings.Join(fields, "\t"))
	}

	return strings.Join(lines, "\n")
}
