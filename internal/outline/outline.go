// Package outline exports the visible part of a flow as GeoJSON.
package outline

import (
	"encoding/json"
	"io"

	"github.com/paulmach/orb/geojson"

	"github.com/gruppe-adler/flowplot/internal/dem"
	"github.com/gruppe-adler/flowplot/internal/flow"
)

// margin is the visibility of the flow sampled at cell centers: 1 where the
// flow is visible and -1 elsewhere. Its zero line runs halfway between a
// visible and an invisible cell, whatever the sign of the threshold.
type margin struct {
	*flow.Field
}

func (m margin) Z(c, r int) float64 {
	if !m.Visible.At(c, r) {
		return -1
	}
	return 1
}

func (m margin) X(c int) float64 { return centerX(m.Field, c) }
func (m margin) Y(r int) float64 { return centerY(m.Field, r) }

func centerX(field *flow.Field, c int) float64 {
	return field.X(c) + field.CellSize/2
}

func centerY(field *flow.Field, r int) float64 {
	return field.Y(r) + field.CellSize/2
}

// Build returns the outline of the visible flow as line strings,
// followed by the local thickness maxima as points.
func Build(field *flow.Field) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, line := range dem.MarchingSquares(margin{field}, 0) {
		f := geojson.NewFeature(line)
		f.Properties["kind"] = "outline"
		f.Properties["threshold"] = field.Threshold
		f.Properties["closed"] = line[0].Equal(line[len(line)-1])
		fc.Append(f)
	}

	buildPeaks(field, fc)

	return fc
}

// Write encodes the outline of the field as indented GeoJSON.
func Write(w io.Writer, field *flow.Field) error {
	bytes, err := json.MarshalIndent(Build(field), "", "    ")
	if err != nil {
		return err
	}

	_, err = w.Write(bytes)
	return err
}
