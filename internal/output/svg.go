package output

import (
	"fmt"
	"html"
	"html/template"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"

	"github.com/canadavotes/canadavotes/internal/geo"
	"github.com/canadavotes/canadavotes/internal/view"
)

// SVG viewport size of the exported map.
const (
	svgWidth  = 800
	svgHeight = 600
)

// renderSVG draws the choropleth: poll fills, riding outlines and labels.
func renderSVG(r *view.Rendering, width, height int) template.HTML {
	proj := geo.NewProjector(r.Extent, width, height, 1)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" class="cv-map" role="img">`, width, height)
	b.WriteString(`<g class="cv-polls">`)
	for _, l := range r.Ridings {
		for _, p := range l.Polls {
			d := pathData(proj, p.Geometry)
			if d == "" {
				continue
			}
			info := r.Info(&p.Ref)
			fmt.Fprintf(&b, `<path d="%s" fill="%s" fill-opacity="0.6" stroke="gray" stroke-width="0" data-riding="%s" data-index="%d" tabindex="-1"><title>%s</title></path>`,
				d, p.Fill, html.EscapeString(l.ID), p.Ref.Index, html.EscapeString(infoText(info)))
		}
	}
	b.WriteString(`</g><g class="cv-ridings">`)
	for _, bd := range r.Boundaries {
		d := pathData(proj, bd.Geometry)
		if d == "" {
			continue
		}
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="black" stroke-width="3" stroke-opacity="0.8"><title>%s</title></path>`,
			d, html.EscapeString(bd.Name))
	}
	b.WriteString(`</g><g class="cv-riding-label">`)
	for _, lb := range r.Labels {
		x, y := proj.Forward(lb.Lon, lb.Lat)
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle">%s</text>`, num(x), num(y), html.EscapeString(lb.Text))
	}
	b.WriteString(`</g></svg>`)
	return template.HTML(b.String()) //nolint:gosec // every interpolated string is escaped above
}

// pathData converts polygon rings to an SVG path.
func pathData(proj *geo.Projector, g geom.T) string {
	var polys []*geom.Polygon
	switch g := g.(type) {
	case *geom.Polygon:
		polys = []*geom.Polygon{g}
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			polys = append(polys, g.Polygon(i))
		}
	default:
		return ""
	}

	var b strings.Builder
	for _, p := range polys {
		for i := 0; i < p.NumLinearRings(); i++ {
			ring := p.LinearRing(i)
			for j := 0; j < ring.NumCoords(); j++ {
				c := ring.Coord(j)
				x, y := proj.Forward(c.X(), c.Y())
				if j == 0 {
					b.WriteString("M")
				} else {
					b.WriteString("L")
				}
				b.WriteString(num(x))
				b.WriteByte(' ')
				b.WriteString(num(y))
			}
			b.WriteString("Z")
		}
	}
	return b.String()
}

// viewBox returns the SVG viewBox that frames b, or "" for no bounds.
func viewBox(proj *geo.Projector, b *geom.Bounds) string {
	if b == nil || b.IsEmpty() {
		return ""
	}
	x0, y0 := proj.Forward(b.Min(0), b.Max(1))
	x1, y1 := proj.Forward(b.Max(0), b.Min(1))
	return strings.Join([]string{num(x0), num(y0), num(x1 - x0), num(y1 - y0)}, " ")
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// infoText flattens an info panel to plain lines.
func infoText(i view.Info) string {
	lines := []string{i.Title}
	if i.Heading != "" {
		lines = append(lines, i.Heading)
	}
	lines = append(lines, i.Lines...)
	return strings.Join(lines, "\n")
}
