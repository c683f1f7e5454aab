package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// rgbImage exposes a row-major RGB8 buffer as an image.Image without copying.
type rgbImage struct {
	pix  []byte
	w, h int
}

func (m rgbImage) ColorModel() color.Model { return color.RGBAModel }
func (m rgbImage) Bounds() image.Rectangle { return image.Rect(0, 0, m.w, m.h) }
func (m rgbImage) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return color.RGBA{}
	}
	i := (y*m.w + x) * 3
	return color.RGBA{R: m.pix[i], G: m.pix[i+1], B: m.pix[i+2], A: 0xFF}
}

// Previewer downsamples frames to terminal cells. Each cell is a "▀" glyph
// with the top pixel as foreground and the bottom pixel as background.
type Previewer struct {
	cols, rows int
	dst        *image.RGBA
}

func NewPreviewer(cols, rows int) *Previewer {
	cols, rows = max(1, cols), max(1, rows)
	return &Previewer{
		cols: cols,
		rows: rows,
		dst:  image.NewRGBA(image.Rect(0, 0, cols, rows*2)),
	}
}

// Sample scales the frame into the previewer's pixel grid. It reads data
// only during the call.
func (p *Previewer) Sample(width int, data []byte) *image.RGBA {
	if width <= 0 || len(data) < width*3 {
		return p.dst
	}
	src := rgbImage{pix: data, w: width, h: len(data) / (width * 3)}
	draw.ApproxBiLinear.Scale(p.dst, p.dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return p.dst
}

// Lines renders the frame as rows of styled half-block cells.
func (p *Previewer) Lines(width int, data []byte) []string {
	img := p.Sample(width, data)
	lines := make([]string, p.rows)
	var sb strings.Builder
	for y := 0; y < p.rows; y++ {
		sb.Reset()
		for x := 0; x < p.cols; x++ {
			top := img.RGBAAt(x, y*2)
			bot := img.RGBAAt(x, y*2+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(hex(top)).
				Background(hex(bot)).
				Render("▀"))
		}
		lines[y] = sb.String()
	}
	return lines
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
