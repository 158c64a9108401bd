package dem

// Mask is a boolean field with the same (column, row) layout as a Grid.
type Mask struct {
	cols, rows int
	data       []bool
}

// NewMask returns a mask of the given dimensions with every cell unset.
func NewMask(cols, rows int) Mask {
	return Mask{cols: cols, rows: rows, data: make([]bool, cols*rows)}
}

// Dims returns the dimensions of the mask.
func (m Mask) Dims() (c, r int) {
	return m.cols, m.rows
}

// At reports whether the cell (c, r) is set.
func (m Mask) At(c, r int) bool {
	return m.data[c*m.rows+r]
}

// Set sets the cell (c, r) to v.
func (m Mask) Set(c, r int, v bool) {
	m.data[c*m.rows+r] = v
}

// Count returns the number of set cells.
func (m Mask) Count() int {
	n := 0
	for _, v := range m.data {
		if v {
			n++
		}
	}
	return n
}

// And returns a new mask set where both m and other are set.
// It panics if the dimensions differ.
func (m Mask) And(other Mask) Mask {
	if m.cols != other.cols || m.rows != other.rows {
		panic("dem: mask dimension mismatch")
	}
	out := NewMask(m.cols, m.rows)
	for i := range m.data {
		out.data[i] = m.data[i] && other.data[i]
	}
	return out
}
