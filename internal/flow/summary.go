package flow

// Summary describes the visible part of a thickness field.
type Summary struct {
	VisibleCells  int     `json:"visibleCells"`
	Cells         int     `json:"cells"`
	Area          float64 `json:"area"`
	Volume        float64 `json:"volume"`
	MaxThickness  float64 `json:"maxThickness"`
	MeanThickness float64 `json:"meanThickness"`
	Threshold     float64 `json:"threshold"`
}

// Summary aggregates the visible cells of the field.
func (f *Field) Summary() Summary {
	s := Summary{
		Cells:     f.Ncols * f.Nrows,
		Threshold: f.Threshold,
	}

	sum := 0.0
	for c := 0; c < f.Ncols; c++ {
		for r := 0; r < f.Nrows; r++ {
			if !f.Visible.At(c, r) {
				continue
			}
			v := f.Thickness.At(c, r)
			if s.VisibleCells == 0 || v > s.MaxThickness {
				s.MaxThickness = v
			}
			s.VisibleCells++
			sum += v
		}
	}

	s.Area = float64(s.VisibleCells) * f.CellArea()
	s.Volume = sum * f.CellArea()
	if s.VisibleCells > 0 {
		s.MeanThickness = sum / float64(s.VisibleCells)
	}

	return s
}
