package draw

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Canvas is a truecolor drawing buffer with 2x vertical resolution using
// half-block characters. Each terminal cell shows two pixels: the upper half
// in the foreground color and the lower half in the background color.
//
// Canvas is a Target; wrap it in a Context to draw in logical coordinates.
type Canvas struct {
	termWidth      int // Actual terminal columns
	termHeight     int // Actual terminal rows
	subPixelHeight int // termHeight * 2
	pixels         []rgb

	// Last frame written to the terminal, per cell. Only changed cells are sent.
	prev      []cellColors
	prevValid bool
	dirty     []bool // cells covered by overlay text

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder // Buffer for batching render output
	numBuf          [20]byte
	intersectionBuf []float64 // Reusable buffer for scanline intersections
}

type rgb struct {
	r, g, b float32
}

type cellColors struct {
	top, bottom [3]uint8
}

// NewCanvas creates a canvas for the given terminal dimensions.
// The canvas has 2x vertical resolution (height*2 sub-pixels).
func NewCanvas(termWidth, termHeight int) *Canvas {
	c := &Canvas{}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions. A resize forces the
// next Render to repaint every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	if termWidth == c.termWidth && termHeight == c.termHeight && c.pixels != nil {
		return
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]rgb, c.subPixelHeight*termWidth)
	c.prev = make([]cellColors, termWidth*termHeight)
	c.dirty = make([]bool, termWidth*termHeight)
	c.prevValid = false
}

// Size implements Target.
func (c *Canvas) Size() (int, int) {
	return c.termWidth, c.subPixelHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.prevValid = false
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared or text was drawn over the canvas.
func (c *Canvas) ForceRedraw() {
	c.prevValid = false
}

// MarkTextDirty makes the next Render repaint n cells starting at the
// 1-based canvas position (col, row), so overlay text written there does
// not linger once it is no longer drawn.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	row--
	col--
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := max(col, 0); x < min(col+n, c.termWidth); x++ {
		c.dirty[row*c.termWidth+x] = true
	}
}

// Clear fills every pixel with black.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// Pixel returns the color of a sub-pixel. Out of range pixels are black.
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return Black
	}
	p := c.pixels[y*c.termWidth+x]
	return Color{R: float64(p.r), G: float64(p.g), B: float64(p.b), A: 1}
}

// blend composites col over the pixel at (x, y).
func (c *Canvas) blend(x, y int, col Color) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight || col.A <= 0 {
		return
	}
	p := &c.pixels[y*c.termWidth+x]
	a := float32(col.A)
	p.r += (float32(col.R) - p.r) * a
	p.g += (float32(col.G) - p.g) * a
	p.b += (float32(col.B) - p.b) * a
}

// Line implements Target using Bresenham's algorithm on pixel centers.
func (c *Canvas) Line(a, b Point, s Shader) {
	a, b, ok := clipLine(a, b, -1, -1, float64(c.termWidth)+1, float64(c.subPixelHeight)+1)
	if !ok {
		return
	}
	x1, y1 := int(math.Floor(a.X)), int(math.Floor(a.Y))
	x2, y2 := int(math.Floor(b.X)), int(math.Floor(b.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.blend(x1, y1, s.At(float64(x1)+0.5, float64(y1)+0.5))

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillPolygons implements Target with an even-odd scanline fill sampled at
// pixel centers. Shapes smaller than a pixel that hit no center still tint
// the pixel under their centroid, weighted by their area, so tiny particles
// stay visible at terminal resolution.
func (c *Canvas) FillPolygons(rings [][]Point, s Shader) {
	minX, minY, maxX, maxY, ok := ringBounds(rings)
	if !ok {
		return
	}
	if maxX < 0 || maxY < 0 || minX >= float64(c.termWidth) || minY >= float64(c.subPixelHeight) {
		return
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	hit := false
	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		for _, ring := range rings {
			n := len(ring)
			for i := 0; i < n; i++ {
				p1 := ring[i]
				p2 := ring[(i+1)%n]
				if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
					t := (scanY - p1.Y) / (p2.Y - p1.Y)
					intersections = append(intersections, p1.X+t*(p2.X-p1.X))
				}
			}
		}
		c.intersectionBuf = intersections
		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := max(int(math.Ceil(intersections[i]-0.5)), 0)
			xEnd := min(int(math.Ceil(intersections[i+1]-0.5))-1, c.termWidth-1)
			for x := xStart; x <= xEnd; x++ {
				c.blend(x, y, s.At(float64(x)+0.5, scanY))
				hit = true
			}
		}
	}

	if !hit {
		cx, cy := (minX+maxX)/2, (minY+maxY)/2
		col := s.At(cx, cy)
		c.blend(int(math.Floor(cx)), int(math.Floor(cy)), col.MulAlpha(math.Min(1, ringArea(rings))))
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using truecolor half-block characters.
// Cells that did not change since the previous Render are skipped.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 8)

	var lastFG, lastBG [3]uint8
	colorsSet := false
	cursorCol, cursorRow := -1, -1

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cell := cellColors{
				top:    quantize(c.pixels[topOffset+col]),
				bottom: quantize(c.pixels[bottomOffset+col]),
			}
			idx := row*c.termWidth + col
			if c.prevValid && !c.dirty[idx] && c.prev[idx] == cell {
				continue
			}
			c.prev[idx] = cell
			c.dirty[idx] = false

			if cursorRow != row || cursorCol != col {
				c.moveCursor(row+1+c.offsetRow, col+1+c.offsetCol)
			}
			if !colorsSet || cell.top != lastFG {
				c.sgr(38, cell.top)
				lastFG = cell.top
			}
			if !colorsSet || cell.bottom != lastBG {
				c.sgr(48, cell.bottom)
				lastBG = cell.bottom
			}
			colorsSet = true
			c.renderBuf.WriteRune(BlockUpperHalf)
			cursorRow, cursorCol = row, col+1
		}
	}
	if colorsSet {
		c.renderBuf.WriteString(seqReset)
	}
	c.prevValid = true

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveCursor(row, col int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// sgr writes a 24-bit color sequence; layer is 38 (foreground) or 48 (background).
func (c *Canvas) sgr(layer int, v [3]uint8) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(v[0]), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(v[1]), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(v[2]), 10))
	c.renderBuf.WriteByte('m')
}

func quantize(p rgb) [3]uint8 {
	q := func(v float32) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return [3]uint8{q(p.r), q(p.g), q(p.b)}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.Grow((c.termWidth+2)*2 + c.termHeight*2*12) // Estimate buffer size

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}
