// Package render draws problems and fold states to PNG.
package render

import (
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/jbeda/geom"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/origami/dbg"
	"github.com/osuushi/origami/fold"
	"github.com/pkg/errors"
)

var ErrNothingToDraw = errors.New("nothing to draw")

type Options struct {
	// Pixels per unit of paper.
	Scale float64
	// Blank border around the drawing, in pixels.
	Padding float64
	// Label facets with their readable names.
	Labels bool
}

func DefaultOptions() Options {
	return Options{Scale: 600, Padding: 20, Labels: true}
}

// Bounding box of everything drawn so far.
type bounds struct {
	rect geom.Rect
	ok   bool
}

func (b *bounds) add(x, y float64) {
	c := geom.Coord{X: x, Y: y}
	if !b.ok {
		b.rect, b.ok = geom.Rect{Min: c, Max: c}, true
		return
	}
	b.rect.ExpandToContainCoord(c)
}

func (b bounds) empty() bool { return !b.ok }

// Set up a white canvas covering b, with the origin at the bottom left and
// paper units as the user space.
func newContext(b bounds, opts Options) *gg.Context {
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	width := int(math.Ceil(opts.Scale*b.rect.Width() + opts.Padding*2))
	height := int(math.Ceil(opts.Scale*b.rect.Height() + opts.Padding*2))
	c := gg.NewContext(width, height)
	c.SetRGB(1, 1, 1)
	c.Clear()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(opts.Padding, opts.Padding)
	c.Scale(opts.Scale, opts.Scale)
	c.Translate(-b.rect.Min.X, -b.rect.Min.Y)
	return c
}

func tracePolygon[N fold.Number[N]](c *gg.Context, points []fold.Point[N]) {
	c.MoveTo(points[0].X.Float64(), points[0].Y.Float64())
	for _, p := range points[1:] {
		c.LineTo(p.X.Float64(), p.Y.Float64())
	}
	c.ClosePath()
}

// Line widths are given in pixels, so they have to be divided by the scale
// while the paper transform is in effect.
func lineWidth(px float64, opts Options) float64 {
	if opts.Scale <= 0 {
		return px / DefaultOptions().Scale
	}
	return px / opts.Scale
}

// DrawProblem draws the silhouette (outer polygons pink, holes green) and the
// skeleton as dashed crimson lines on top.
func DrawProblem[N fold.Number[N]](shape fold.Shape[N], skel fold.Skeleton[N], opts Options) (image.Image, error) {
	var b bounds
	for _, poly := range shape.Polygons {
		for _, p := range poly.Points {
			b.add(p.X.Float64(), p.Y.Float64())
		}
	}
	for _, l := range skel.Lines {
		b.add(l.P1.X.Float64(), l.P1.Y.Float64())
		b.add(l.P2.X.Float64(), l.P2.Y.Float64())
	}
	if b.empty() {
		return nil, ErrNothingToDraw
	}

	c := newContext(b, opts)
	c.SetLineWidth(lineWidth(2, opts))
	for _, poly := range shape.Polygons {
		if poly.Len() < 3 {
			continue
		}
		tracePolygon(c, poly.Points)
		if poly.IsHole() {
			c.SetRGBA255(0x2d, 0xff, 0x47, 128)
		} else {
			c.SetRGBA255(0xff, 0x2d, 0xf7, 128)
		}
		c.FillPreserve()
		c.SetRGB(0, 0, 0)
		c.Stroke()
	}

	c.SetRGB255(220, 20, 60)
	c.SetDash(lineWidth(6, opts), lineWidth(4, opts))
	for _, l := range skel.Lines {
		c.DrawLine(l.P1.X.Float64(), l.P1.Y.Float64(), l.P2.X.Float64(), l.P2.Y.Float64())
		c.Stroke()
	}
	return c.Image(), nil
}

// DrawFacets draws each facet translucent so overlapping layers show darker.
func DrawFacets[N fold.Number[N]](facets []fold.Polygon[N], opts Options) (image.Image, error) {
	var b bounds
	for _, poly := range facets {
		for _, p := range poly.Points {
			b.add(p.X.Float64(), p.Y.Float64())
		}
	}
	if b.empty() {
		return nil, ErrNothingToDraw
	}

	c := newContext(b, opts)
	c.SetLineWidth(lineWidth(1.5, opts))
	for _, poly := range facets {
		if poly.Len() < 3 {
			continue
		}
		tracePolygon(c, poly.Points)
		c.SetRGBA(0.2, 0.4, 0.9, 0.25)
		c.FillPreserve()
		c.SetRGB(0, 0, 0.4)
		c.Stroke()
	}

	if opts.Labels {
		for _, poly := range facets {
			if poly.Len() < 3 {
				continue
			}
			var cx, cy float64
			for _, p := range poly.Points {
				cx += p.X.Float64()
				cy += p.Y.Float64()
			}
			n := float64(poly.Len())
			x, y := c.TransformPoint(cx/n, cy/n)
			// Text goes in device space so it isn't drawn upside down
			c.Push()
			c.Identity()
			c.SetRGB(0, 0, 0)
			c.DrawStringAnchored(dbg.Name(poly.Points), x, y, 0.5, 0.5)
			c.Pop()
		}
	}
	return c.Image(), nil
}

func SavePNG(img image.Image, path string) error {
	return errors.Wrapf(gg.SavePNG(path, img), "save %s", path)
}

// Show prints a saved PNG to the terminal. This only does anything useful in
// iTerm.
func Show(path string, w io.Writer) error {
	return errors.Wrapf(imgcat.CatFile(path, w), "show %s", path)
}
