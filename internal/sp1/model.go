// Package sp1 implements the SEG SP1 ASCII survey point format: the shared
// point data model, a lenient line-oriented reader and a normalizing writer.
package sp1

// Header holds the optional survey metadata of an SP1 file.
// Empty string fields are treated as absent and omitted on write.
type Header struct {
	Version    string   `json:"version,omitempty" yaml:"version,omitempty"`
	Survey     string   `json:"survey,omitempty" yaml:"survey,omitempty"`
	Datum      string   `json:"datum,omitempty" yaml:"datum,omitempty"`
	Projection string   `json:"projection,omitempty" yaml:"projection,omitempty"`
	Comments   []string `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// Attribute is a single named value attached to a point. Attributes are kept
// as an ordered slice rather than a map because SP1 output emits them in
// encounter order, not key order.
type Attribute struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Point is one survey position. Elevation is nil when the source carried none.
// Points read from SP1 use synthetic attribute keys (attr1, attr2, ...) since
// the format has no column names; points read from CSV keep the original
// column names.
type Point struct {
	ID         string      `json:"id" yaml:"id"`
	X          float64     `json:"x" yaml:"x"`
	Y          float64     `json:"y" yaml:"y"`
	Elevation  *float64    `json:"elevation,omitempty" yaml:"elevation,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Attr returns the value of the named attribute and whether it is present.
func (p *Point) Attr(key string) (string, bool) {
	for _, a := range p.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing an existing entry with the same
// key and appending otherwise. Keys stay unique within a point.
func (p *Point) SetAttr(key, value string) {
	for i := range p.Attributes {
		if p.Attributes[i].Key == key {
			p.Attributes[i].Value = value
			return
		}
	}
	p.Attributes = append(p.Attributes, Attribute{Key: key, Value: value})
}

// Data is a fully parsed survey dataset: header metadata plus points in
// source order. Point order is stable through every conversion and duplicate
// IDs are preserved.
type Data struct {
	Header Header  `json:"header" yaml:"header"`
	Points []Point `json:"points" yaml:"points"`
}
