package grid

// Mask is a boolean raster the same size as a Grid. The static wall mask of
// a map is built once and never written afterwards.
type Mask struct {
	shape Shape
	bits  []bool
}

// NewMask returns an all-false mask.
func NewMask(shape Shape) *Mask {
	g := New(shape)
	return &Mask{shape: g.shape, bits: make([]bool, g.shape.Cells())}
}

// WallsOf marks every Wall cell of g. Agent and Goal cells are not walls.
func WallsOf(g *Grid) *Mask {
	m := NewMask(g.shape)
	for i, s := range g.cells {
		m.bits[i] = s == Wall
	}
	return m
}

// MaskFromRows builds a mask where '#' is set and anything else is not.
func MaskFromRows(rows []string) (*Mask, error) {
	g, err := Parse(rows)
	if err != nil {
		return nil, err
	}
	return WallsOf(g), nil
}

func (m *Mask) Shape() Shape { return m.shape }

// Has reports whether p is set. Points outside the mask are not set.
func (m *Mask) Has(p Point) bool {
	if !m.shape.Contains(p) {
		return false
	}
	return m.bits[p.Row*m.shape.Width+p.Col]
}

// Set marks p. Only used while a mask is being built.
func (m *Mask) Set(p Point, v bool) {
	if !m.shape.Contains(p) {
		return
	}
	m.bits[p.Row*m.shape.Width+p.Col] = v
}

// Count returns the number of set cells.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Paint writes s into every cell of g that is set in the mask.
// Shapes must match; extra cells on either side are ignored.
func (m *Mask) Paint(g *Grid, s State) {
	n := len(m.bits)
	if len(g.cells) < n {
		n = len(g.cells)
	}
	for i := 0; i < n; i++ {
		if m.bits[i] {
			g.cells[i] = s
		}
	}
}

// Clone returns an independent copy.
func (m *Mask) Clone() *Mask {
	bits := make([]bool, len(m.bits))
	copy(bits, m.bits)
	return &Mask{shape: m.shape, bits: bits}
}

// Equal reports identical shape and bits.
func (m *Mask) Equal(other *Mask) bool {
	if other == nil || m.shape != other.shape {
		return false
	}
	for i, b := range m.bits {
		if other.bits[i] != b {
			return false
		}
	}
	return true
}
