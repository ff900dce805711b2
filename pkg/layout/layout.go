// Package layout classifies freeform sibling geometry as row, column,
// or overlapping, and estimates wrap-container column widths. Both are
// heuristics over lossy visual input; auto-layout containers bypass
// them entirely and use their declared direction.
package layout

import (
	"fmt"
	"math"

	"github.com/gnana997/designc/pkg/geom"
)

// Direction is the inferred arrangement of a sibling set.
type Direction string

const (
	DirectionRow         Direction = "row"
	DirectionColumn      Direction = "column"
	DirectionOverlapping Direction = "overlapping"
)

// overlapRatioThreshold is the fraction of the sibling count above
// which pairwise overlaps mean freeform stacking rather than flow.
const overlapRatioThreshold = 0.3

// InferFromChildren classifies sibling bounding boxes. Zero or one
// child is always a column. More pairwise overlaps than 30% of the
// sibling count means overlapping; otherwise a y-spread smaller than
// half the average height reads as a row, anything else as a column.
func InferFromChildren(rects []geom.Rect) Direction {
	if len(rects) <= 1 {
		return DirectionColumn
	}

	overlaps := 0
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Overlaps(rects[j]) {
				overlaps++
			}
		}
	}
	if float64(overlaps) > overlapRatioThreshold*float64(len(rects)) {
		return DirectionOverlapping
	}

	minY := math.Inf(1)
	maxY := math.Inf(-1)
	totalH := 0.0
	for _, r := range rects {
		minY = math.Min(minY, r.Y)
		maxY = math.Max(maxY, r.Y)
		totalH += r.H
	}
	avgH := totalH / float64(len(rects))
	if maxY-minY < avgH/2 {
		return DirectionRow
	}
	return DirectionColumn
}

// WrapColumns estimates the column count of a wrap container from the
// inner content width, the item gap, and one child's natural width.
// This is a deliberate approximation of flex-wrap: it assumes roughly
// uniform child widths and can diverge from true browser wrapping for
// irregular ones.
func WrapColumns(innerWidth, gap, childWidth float64) int {
	if childWidth <= 0 || innerWidth <= 0 {
		return 1
	}
	cols := int(math.Round((innerWidth + gap) / (childWidth + gap)))
	if cols < 1 {
		return 1
	}
	return cols
}

// WrapWidthClass renders a column count as a fractional-width utility
// class. Two, three, and four columns use exact percentage literals;
// larger counts fall back to the generic 100%/n form. One column is
// simply full width.
func WrapWidthClass(cols int, gap float64) string {
	adjust := gapAdjustment(cols, gap)
	switch {
	case cols <= 1:
		return "w-full"
	case cols == 2:
		return fmt.Sprintf("w-[calc(50%%-%spx)]", trimFloat(adjust))
	case cols == 3:
		return fmt.Sprintf("w-[calc(33.333%%-%spx)]", trimFloat(adjust))
	case cols == 4:
		return fmt.Sprintf("w-[calc(25%%-%spx)]", trimFloat(adjust))
	default:
		return fmt.Sprintf("w-[calc(100%%/%d-%spx)]", cols, trimFloat(adjust))
	}
}

// gapAdjustment is the per-item width reduction that makes n gapped
// columns fit: gap*(n-1)/n.
func gapAdjustment(cols int, gap float64) float64 {
	if cols <= 1 || gap <= 0 {
		return 0
	}
	return gap * float64(cols-1) / float64(cols)
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
