package outline

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/gruppe-adler/flowplot/internal/flow"
)

// buildPeaks adds a point feature for every visible cell that is thicker than
// all of its visible neighbours. Features are sorted from thickest to thinnest.
func buildPeaks(field *flow.Field, fc *geojson.FeatureCollection) {
	peaks := []*geojson.Feature{}

	for c := 0; c < field.Ncols; c++ {
		for r := 0; r < field.Nrows; r++ {
			if !field.Visible.At(c, r) {
				continue
			}
			thickness := field.Thickness.At(c, r)

			if !isPeak(field, c, r, thickness) {
				continue
			}

			feature := geojson.NewFeature(orb.Point{centerX(field, c), centerY(field, r)})
			feature.Properties["kind"] = "peak"
			feature.Properties["thickness"] = thickness
			feature.Properties["text"] = fmt.Sprintf("%.2f", thickness)
			peaks = append(peaks, feature)
		}
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Properties["thickness"].(float64) > peaks[j].Properties["thickness"].(float64)
	})

	fc.Features = append(fc.Features, peaks...)
}

// isPeak reports whether all visible neighbours of (c, r) are thinner. A
// neighbour of equal thickness rules out a peak, so flat plateaus produce none.
func isPeak(field *flow.Field, c, r int, thickness float64) bool {
	hasLowerNeighbours := false

	for compareCol := c - 1; compareCol <= c+1; compareCol++ {
		for compareRow := r - 1; compareRow <= r+1; compareRow++ {
			// we don't want to compare to the reference cell
			if compareCol == c && compareRow == r {
				continue
			}
			if compareCol < 0 || compareRow < 0 || compareCol >= field.Ncols || compareRow >= field.Nrows {
				continue
			}
			if !field.Visible.At(compareCol, compareRow) {
				hasLowerNeighbours = true
				continue
			}

			if field.Thickness.At(compareCol, compareRow) >= thickness {
				return false
			}
			hasLowerNeighbours = true
		}
	}

	return hasLowerNeighbours
}
