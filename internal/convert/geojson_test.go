package convert

import (
	"encoding/json"
	"testing"

	"github.com/surveykit/sp1conv/internal/sp1"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGeoJSONOneFeaturePerPoint(t *testing.T) {
	elev := 50.25
	d := &sp1.Data{
		Points: []sp1.Point{
			{ID: "P1", X: 100.5, Y: 200.5, Elevation: &elev, Attributes: []sp1.Attribute{{Key: "zone", Value: "north"}}},
			{ID: "P2", X: 150, Y: 250},
		},
	}

	fc := ToGeoJSON(d)
	require.Len(t, fc.Features, 2)

	f1 := fc.Features[0]
	assert.Equal(t, []float64{100.5, 200.5, 50.25}, f1.Geometry.Point)
	assert.Equal(t, "P1", f1.Properties["id"])
	assert.Equal(t, 50.25, f1.Properties["elevation"])
	assert.Equal(t, "north", f1.Properties["zone"])

	// missing elevation flattens to z=0 without an elevation property
	f2 := fc.Features[1]
	assert.Equal(t, []float64{150, 250, 0}, f2.Geometry.Point)
	assert.Equal(t, "P2", f2.Properties["id"])
	_, hasElev := f2.Properties["elevation"]
	assert.False(t, hasElev)
}

func TestToGeoJSONCRSDefault(t *testing.T) {
	fc := ToGeoJSON(&sp1.Data{})

	require.NotNil(t, fc.CRS)
	props, ok := fc.CRS["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "EPSG:4326", props["name"])
	assert.Equal(t, "name", fc.CRS["type"])
}

func TestToGeoJSONCRSFromHeader(t *testing.T) {
	fc := ToGeoJSON(&sp1.Data{Header: sp1.Header{Projection: "EPSG:32633"}})

	props := fc.CRS["properties"].(map[string]interface{})
	assert.Equal(t, "EPSG:32633", props["name"])
}

func TestToGeoJSONMarshal(t *testing.T) {
	d := &sp1.Data{Points: []sp1.Point{{ID: "P1", X: 1, Y: 2}}}

	raw, err := json.Marshal(ToGeoJSON(d))
	require.NoError(t, err)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Type     string `json:"type"`
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
		CRS map[string]interface{} `json:"crs"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "FeatureCollection", decoded.Type)
	require.Len(t, decoded.Features, 1)
	assert.Equal(t, "Feature", decoded.Features[0].Type)
	assert.Equal(t, "Point", decoded.Features[0].Geometry.Type)
	assert.Equal(t, []float64{1, 2, 0}, decoded.Features[0].Geometry.Coordinates)
	assert.Contains(t, decoded.CRS, "properties")
}

func TestToGeoJSONPreservesOrder(t *testing.T) {
	d := &sp1.Data{
		Points: []sp1.Point{
			{ID: "C", X: 1, Y: 1},
			{ID: "A", X: 2, Y: 2},
			{ID: "B", X: 3, Y: 3},
		},
	}

	fc := ToGeoJSON(d)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, "C", fc.Features[0].Properties["id"])
	assert.Equal(t, "A", fc.Features[1].Properties["id"])
	assert.Equal(t, "B", fc.Features[2].Properties["id"])
}
