// Package convert projects SP1 survey data into GIS interchange formats
// (GeoJSON, CSV) and reads CSV point tables back into the shared model.
package convert

import (
	"github.com/surveykit/sp1conv/internal/sp1"

	geojson "github.com/paulmach/go.geojson"
)

// defaultCRS names the coordinate system assumed when the SP1 header does not
// carry a projection.
const defaultCRS = "EPSG:4326"

// ToGeoJSON projects a dataset into a GeoJSON FeatureCollection with one
// Point feature per survey point, in source order. Points without elevation
// are flattened to z=0 in the coordinate triple but carry no elevation
// property. The collection CRS names the header projection when present.
func ToGeoJSON(d *sp1.Data) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	crsName := d.Header.Projection
	if crsName == "" {
		crsName = defaultCRS
	}
	fc.CRS = map[string]interface{}{
		"type":       "name",
		"properties": map[string]interface{}{"name": crsName},
	}

	for i := range d.Points {
		p := &d.Points[i]

		z := 0.0
		if p.Elevation != nil {
			z = *p.Elevation
		}

		f := geojson.NewPointFeature([]float64{p.X, p.Y, z})
		f.SetProperty("id", p.ID)
		if p.Elevation != nil {
			f.SetProperty("elevation", *p.Elevation)
		}
		for _, a := range p.Attributes {
			f.SetProperty(a.Key, a.Value)
		}

		fc.AddFeature(f)
	}

	return fc
}
