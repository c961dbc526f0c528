package convert

import (
	"math"
	"strings"
	"testing"

	"github.com/surveykit/sp1conv/internal/sp1"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCSVSortedAttributeUnion(t *testing.T) {
	elev := 5.5
	d := &sp1.Data{
		Points: []sp1.Point{
			{ID: "P1", X: 10, Y: 20, Elevation: &elev, Attributes: []sp1.Attribute{{Key: "zone", Value: "north"}}},
			{ID: "P2", X: 30, Y: 40, Attributes: []sp1.Attribute{{Key: "alpha", Value: "a"}}},
		},
	}

	lines := strings.Split(ToCSV(d), "\n")
	require.Len(t, lines, 3)

	// every attribute key seen anywhere becomes a column for every row
	assert.Equal(t, "ID,X,Y,Elevation,alpha,zone", lines[0])
	assert.Equal(t, "P1,10,20,5.5,,north", lines[1])
	assert.Equal(t, "P2,30,40,,a,", lines[2])
}

func TestToCSVNoAttributes(t *testing.T) {
	d := &sp1.Data{Points: []sp1.Point{{ID: "P1", X: 1.5, Y: -2.25}}}

	assert.Equal(t, "ID,X,Y,Elevation\nP1,1.5,-2.25,", ToCSV(d))
}

func TestToCSVEmptyData(t *testing.T) {
	assert.Equal(t, "ID,X,Y,Elevation", ToCSV(&sp1.Data{}))
}

func TestFromCSVBasic(t *testing.T) {
	d, err := FromCSV("ID,X,Y,Zone\nP1,10,20,North", sp1.Header{})

	require.NoError(t, err)
	require.Len(t, d.Points, 1)
	p := d.Points[0]
	assert.Equal(t, "P1", p.ID)
	assert.Equal(t, 10.0, p.X)
	assert.Equal(t, 20.0, p.Y)
	assert.Nil(t, p.Elevation)
	// attribute keyed by the original column name, not synthesized
	assert.Equal(t, []sp1.Attribute{{Key: "Zone", Value: "North"}}, p.Attributes)
}

func TestFromCSVMissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		missing []string
	}{
		{"all missing", "Name,Lat,Lon", []string{"ID", "X", "Y"}},
		{"y missing", "id,x,depth", []string{"Y"}},
		{"id missing", "x,y", []string{"ID"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromCSV(tc.header+"\nA,1,2", sp1.Header{})

			var colErr *sp1.MissingColumnsError
			require.ErrorAs(t, err, &colErr)
			assert.Equal(t, tc.missing, colErr.Columns)
		})
	}
}

func TestFromCSVEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "  \n\t\n"} {
		_, err := FromCSV(input, sp1.Header{})
		assert.ErrorIs(t, err, sp1.ErrEmptyInput)
	}
}

func TestFromCSVHeaderOnly(t *testing.T) {
	d, err := FromCSV("ID,X,Y", sp1.Header{})

	require.NoError(t, err)
	assert.Empty(t, d.Points)
}

func TestFromCSVColumnMatchingCaseInsensitive(t *testing.T) {
	d, err := FromCSV("Id,x,Y,ELEVATION\nP1,1,2,3", sp1.Header{})

	require.NoError(t, err)
	require.Len(t, d.Points, 1)
	require.NotNil(t, d.Points[0].Elevation)
	assert.Equal(t, 3.0, *d.Points[0].Elevation)
}

func TestFromCSVZAsElevation(t *testing.T) {
	d, err := FromCSV("id,x,y,z\nP1,1,2,9.75", sp1.Header{})

	require.NoError(t, err)
	require.NotNil(t, d.Points[0].Elevation)
	assert.Equal(t, 9.75, *d.Points[0].Elevation)
}

func TestFromCSVNonNumericElevationSkipped(t *testing.T) {
	d, err := FromCSV("id,x,y,elevation\nP1,1,2,high", sp1.Header{})

	require.NoError(t, err)
	p := d.Points[0]
	assert.Nil(t, p.Elevation)
	// the elevation column never turns into an attribute
	assert.Empty(t, p.Attributes)
}

func TestFromCSVSkipsShortRows(t *testing.T) {
	d, err := FromCSV("ID,X,Y\nA,1\nB,1,2", sp1.Header{})

	require.NoError(t, err)
	require.Len(t, d.Points, 1)
	assert.Equal(t, "B", d.Points[0].ID)
}

func TestFromCSVEmptyCellsNotAttributes(t *testing.T) {
	d, err := FromCSV("ID,X,Y,Zone,Note\nP1,1,2,,filled", sp1.Header{})

	require.NoError(t, err)
	assert.Equal(t, []sp1.Attribute{{Key: "Note", Value: "filled"}}, d.Points[0].Attributes)
}

func TestFromCSVLenientCoordinates(t *testing.T) {
	d, err := FromCSV("ID,X,Y\nP1,bad,2", sp1.Header{})

	require.NoError(t, err)
	assert.True(t, math.IsNaN(d.Points[0].X))
	assert.Equal(t, 2.0, d.Points[0].Y)
}

func TestFromCSVStrictCoordinates(t *testing.T) {
	_, err := FromCSVStrict("ID,X,Y\nP1,1,2\nP2,bad,2", sp1.Header{})

	var coordErr *sp1.CoordinateParseError
	require.ErrorAs(t, err, &coordErr)
	assert.Equal(t, "x", coordErr.Field)
	assert.Equal(t, "bad", coordErr.Value)
}

func TestFromCSVAttachesMetaHeader(t *testing.T) {
	meta := sp1.Header{Version: "1.0", Survey: "Demo", Datum: "WGS84"}
	d, err := FromCSV("ID,X,Y\nP1,1,2", meta)

	require.NoError(t, err)
	assert.Equal(t, meta, d.Header)
}

func TestCSVRoundTripPreservesOrder(t *testing.T) {
	d := &sp1.Data{
		Points: []sp1.Point{
			{ID: "B", X: 3, Y: 4},
			{ID: "A", X: 1, Y: 2},
			{ID: "B", X: 5, Y: 6},
		},
	}

	back, err := FromCSV(ToCSV(d), sp1.Header{})
	require.NoError(t, err)

	require.Len(t, back.Points, 3)
	for i := range d.Points {
		assert.Equal(t, d.Points[i].ID, back.Points[i].ID)
		assert.Equal(t, d.Points[i].X, back.Points[i].X)
		assert.Equal(t, d.Points[i].Y, back.Points[i].Y)
	}
}
