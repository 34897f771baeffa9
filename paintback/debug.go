package paintback

import (
	"io"

	"github.com/vlsirouter/drcore/canvas"
	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/vec"
)

// RenderDebugChannel builds a canvas.Canvas visualising ch's Result
// grid — one square per cell, coloured by its flags, plus a contact
// marker where FlagContact survived via minimisation. Grounded
// directly on the teacher's renderer.go, which builds a canvas.Canvas
// by appending one Object per topology element and lets canvas's own
// Renderer interface (SVG, etc.) do the actual drawing; cell size is
// fixed rather than derived from a style sheet since there is no
// font/label sizing concern here.
func RenderDebugChannel(ch *channel.Channel) *canvas.Canvas {
	const cell float32 = 12

	c := canvas.NewCanvas()
	for col := 0; col < ch.Length; col++ {
		for row := 0; row < ch.Width; row++ {
			f := ch.Result[col][row]
			pos := vec.Vec2{X: float32(col) * cell, Y: float32(ch.Width-1-row) * cell}

			r := canvas.NewRect(pos, cell, cell)
			r.Attributes.Style = &canvas.Style{FillColor: canvas.NewStyleColor(cellColor(f))}
			c.AppendChild(r)

			if f.Has(channel.FlagContact) {
				dot := canvas.NewCircle(pos.Add(vec.Vec2{X: cell / 2, Y: cell / 2}), cell/4)
				dot.Attributes.Style = &canvas.Style{FillColor: canvas.NewStyleColor(canvas.RGB(0, 0, 0))}
				c.AppendChild(dot)
			}
		}
	}
	return c
}

// RenderDebugSVG writes ch's debug visualisation to w as SVG, the way
// cmd/make-map's run() wired renderer.go's Canvas into an
// canvas.SVGRenderer — generalized here to a single channel's routed
// grid instead of a whole topology.
func RenderDebugSVG(w io.Writer, ch *channel.Channel) error {
	c := RenderDebugChannel(ch)
	c.Margin = vec.Vec2{X: 10, Y: 10}

	svgRenderer := canvas.NewSVGRenderer(w)
	svgRenderer.Indent = 2
	return c.Render(svgRenderer)
}

func cellColor(f channel.CellFlags) canvas.Color {
	switch {
	case f.Has(channel.FlagBlkMetal) && f.Has(channel.FlagBlkPoly):
		return canvas.RGB(0.2, 0.2, 0.2)
	case f.Has(channel.FlagBlkMetal):
		return canvas.RGB(0.8, 0.3, 0.3)
	case f.Has(channel.FlagBlkPoly):
		return canvas.RGB(0.3, 0.3, 0.8)
	case f.Has(channel.FlagVM):
		return canvas.RGB(0.9, 0.6, 0.1)
	case f.Has(channel.FlagUp) && f.Has(channel.FlagRight):
		return canvas.RGB(0.4, 0.8, 0.4)
	case f.Has(channel.FlagUp):
		return canvas.RGB(0.6, 0.9, 0.6)
	case f.Has(channel.FlagRight):
		return canvas.RGB(0.6, 0.6, 0.9)
	default:
		return canvas.RGB(1, 1, 1)
	}
}
