package dem

import (
	"math"

	"github.com/paulmach/orb"
)

// Surface is a regular field of samples. Grid satisfies it, and so does
// gonum/plot's GridXYZ.
type Surface interface {
	Dims() (c, r int)
	Z(c, r int) float64
	X(c int) float64
	Y(r int) float64
}

// MarchingSquares calculates the contour lines of the surface at the given height.
// Segments sharing an end point are stitched into a single line string.
func MarchingSquares(surface Surface, height float64) []orb.LineString {
	lines := []orb.LineString{}
	cols, rows := surface.Dims()

	for col := 0; col < cols-1; col++ {
		for row := 0; row < rows-1; row++ {
			for _, newLine := range calcLinesForColRow(surface, col, row, height) {
				lines = addSegment(lines, newLine)
			}
		}
	}

	return lines
}

// addSegment merges newLine into the first lines it can be stitched to.
func addSegment(lines []orb.LineString, newLine orb.LineString) []orb.LineString {
	combinableIndices := []int{}
	for j := 0; j < len(lines); j++ {
		if canCombineLines(newLine, lines[j]) {
			combinableIndices = append(combinableIndices, j)

			if len(combinableIndices) == 2 {
				break
			}
		}
	}

	if len(combinableIndices) == 0 {
		return append(lines, newLine)
	}

	combinedLine := newLine
	for _, index := range combinableIndices {
		combinedLine = combineLines(combinedLine, lines[index])
	}
	lines[combinableIndices[0]] = combinedLine

	if len(combinableIndices) == 2 {
		// Remove the element at combinableIndices[1] by swapping in the last one.
		last := len(lines) - 1
		lines[combinableIndices[1]] = lines[last]
		lines[last] = nil
		lines = lines[:last]
	}

	return lines
}

// calcLinesForColRow returns the segments of the square spanned by the
// samples (col, row) and (col+1, row+1). Row indices increase northwards.
func calcLinesForColRow(surface Surface, col int, row int, height float64) []orb.LineString {
	blHeight := surface.Z(col, row)
	brHeight := surface.Z(col+1, row)
	trHeight := surface.Z(col+1, row+1)
	tlHeight := surface.Z(col, row+1)

	leftX := surface.X(col)
	rightX := surface.X(col + 1)
	bottomY := surface.Y(row)
	topY := surface.Y(row + 1)

	// find MS "case"
	index := 0
	if tlHeight > height {
		index = index | 8
	}
	if trHeight > height {
		index = index | 4
	}
	if brHeight > height {
		index = index | 2
	}
	if blHeight > height {
		index = index | 1
	}

	topEdgePoint := func() orb.Point {
		return orb.Point{interpolate(leftX, tlHeight, rightX, trHeight, height), topY}
	}
	leftEdgePoint := func() orb.Point {
		return orb.Point{leftX, interpolate(bottomY, blHeight, topY, tlHeight, height)}
	}
	bottomEdgePoint := func() orb.Point {
		return orb.Point{interpolate(leftX, blHeight, rightX, brHeight, height), bottomY}
	}
	rightEdgePoint := func() orb.Point {
		return orb.Point{rightX, interpolate(bottomY, brHeight, topY, trHeight, height)}
	}

	switch index {
	case 1, 14:
		return []orb.LineString{{bottomEdgePoint(), leftEdgePoint()}}
	case 2, 13:
		return []orb.LineString{{rightEdgePoint(), bottomEdgePoint()}}
	case 3, 12:
		return []orb.LineString{{rightEdgePoint(), leftEdgePoint()}}
	case 4, 11:
		return []orb.LineString{{topEdgePoint(), rightEdgePoint()}}
	case 5:
		// saddle
		return []orb.LineString{
			{leftEdgePoint(), topEdgePoint()},
			{bottomEdgePoint(), rightEdgePoint()},
		}
	case 6, 9:
		return []orb.LineString{{topEdgePoint(), bottomEdgePoint()}}
	case 7, 8:
		return []orb.LineString{{leftEdgePoint(), topEdgePoint()}}
	case 10:
		// saddle
		return []orb.LineString{
			{leftEdgePoint(), bottomEdgePoint()},
			{topEdgePoint(), rightEdgePoint()},
		}
	}

	// 0 and 15: square is entirely below or above
	return nil
}

func interpolate(c0, h0, c1, h1, height float64) float64 {
	if math.IsNaN(h0) || math.IsNaN(h1) || math.IsInf(h0, 0) || math.IsInf(h1, 0) {
		return (c0 + c1) / 2
	}
	return (c0*(h1-height) + c1*(height-h0)) / (h1 - h0)
}

// canCombineLines checks whether two lines share an end point.
func canCombineLines(l1 orb.LineString, l2 orb.LineString) bool {
	first1, last1 := l1[0], l1[len(l1)-1]
	first2, last2 := l2[0], l2[len(l2)-1]

	return last1.Equal(first2) || last2.Equal(first1) || first1.Equal(first2) || last1.Equal(last2)
}

// combineLines joins l1 and l2 at their shared end point. Callers must check canCombineLines first.
func combineLines(l1 orb.LineString, l2 orb.LineString) orb.LineString {
	first1, last1 := l1[0], l1[len(l1)-1]
	first2, last2 := l2[0], l2[len(l2)-1]

	switch {
	case last1.Equal(first2):
		return stitchLines(l1, l2)
	case last2.Equal(first1):
		return stitchLines(l2, l1)
	case first1.Equal(first2):
		return stitchLines(reversed(l1), l2)
	default: // last1 == last2
		return stitchLines(l1, reversed(l2))
	}
}

// reversed returns a reversed copy of line.
func reversed(line orb.LineString) orb.LineString {
	out := line.Clone()
	out.Reverse()
	return out
}

// stitchLines appends all points of line2 (except the first one) to a copy of line1
func stitchLines(line1 orb.LineString, line2 orb.LineString) orb.LineString {
	out := make(orb.LineString, 0, len(line1)+len(line2)-1)
	out = append(out, line1...)
	// 1 because the last point of line1 is equal to the first point of line2
	return append(out, line2[1:]...)
}
