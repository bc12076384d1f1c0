package analyzer

// Mask is a binary raster with one byte per pixel (0 or 1), row-major.
type Mask struct {
	Width  int
	Height int
	Bits   []uint8
}

// NewMask allocates an all-zero mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Bits: make([]uint8, width*height)}
}

// At reports whether the pixel at (x, y) is set.
func (m *Mask) At(x, y int) bool {
	return m.Bits[y*m.Width+x] != 0
}

// Set marks the pixel at (x, y).
func (m *Mask) Set(x, y int) {
	m.Bits[y*m.Width+x] = 1
}

// CountNonzero returns the number of set pixels.
func (m *Mask) CountNonzero() int {
	n := 0
	for _, b := range m.Bits {
		if b != 0 {
			n++
		}
	}
	return n
}

// Equal reports whether two masks have identical dimensions and contents.
func (m *Mask) Equal(other *Mask) bool {
	if m.Width != other.Width || m.Height != other.Height {
		return false
	}
	for i := range m.Bits {
		if m.Bits[i] != other.Bits[i] {
			return false
		}
	}
	return true
}

type offset struct{ dx, dy int }

// diskKernel returns the offsets of a disk structuring element: all
// (dx, dy) with dx²+dy² <= radius². Radius 2 yields the 13-point disk
// inside a 5×5 neighborhood.
func diskKernel(radius int) []offset {
	var k []offset
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				k = append(k, offset{dx, dy})
			}
		}
	}
	return k
}

// Erode keeps a pixel only if every in-frame neighbor under the kernel is
// set. Neighbors outside the frame never veto, so a fully set mask is a
// fixed point: the frame border does not erode. Together with Dilate this
// forms an adjunction on the frame, which makes Open and Close idempotent.
func Erode(m *Mask, kernel []offset) *Mask {
	out := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			keep := true
			for _, o := range kernel {
				nx, ny := x+o.dx, y+o.dy
				if nx < 0 || nx >= m.Width || ny < 0 || ny >= m.Height {
					continue
				}
				if m.Bits[ny*m.Width+nx] == 0 {
					keep = false
					break
				}
			}
			if keep {
				out.Bits[y*m.Width+x] = 1
			}
		}
	}
	return out
}

// Dilate sets a pixel if any in-frame neighbor under the kernel is set.
func Dilate(m *Mask, kernel []offset) *Mask {
	out := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			for _, o := range kernel {
				nx, ny := x+o.dx, y+o.dy
				if nx < 0 || nx >= m.Width || ny < 0 || ny >= m.Height {
					continue
				}
				if m.Bits[ny*m.Width+nx] != 0 {
					out.Bits[y*m.Width+x] = 1
					break
				}
			}
		}
	}
	return out
}

// Open removes small foreground specks (salt noise): erosion then dilation.
func Open(m *Mask, kernel []offset) *Mask {
	return Dilate(Erode(m, kernel), kernel)
}

// Close fills small holes inside foreground regions: dilation then erosion.
func Close(m *Mask, kernel []offset) *Mask {
	return Erode(Dilate(m, kernel), kernel)
}
