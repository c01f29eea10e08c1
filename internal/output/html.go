package output

import (
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"

	"github.com/canadavotes/canadavotes/internal/colorscale"
	"github.com/canadavotes/canadavotes/internal/geo"
	"github.com/canadavotes/canadavotes/internal/view"
)

func init() {
	RegisterFormatter(NewHTMLFormatter())
}

// HTMLFormatter writes a self-contained page with an SVG choropleth, its
// legend and the riding tables.
type HTMLFormatter struct {
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*HTMLFormatter)(nil)

// NewHTMLFormatter returns a new HTMLFormatter.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Name returns the format name.
func (h *HTMLFormatter) Name() string {
	return "html"
}

// Extension returns the file extension.
func (h *HTMLFormatter) Extension() string {
	return ".html"
}

var (
	htmlTmplOnce sync.Once
	htmlTmpl     *template.Template
)

// htmlData holds all template data for one page.
type htmlData struct {
	Title       string
	Description string
	Parties     string
	GeneratedAt string
	Map         template.HTML
	Legend      []colorscale.LegendEntry
	Tables      []htmlTable
	Idle        view.Info
	EmptyPolls  int
	Polls       int
}

// htmlTable is a riding table with the SVG viewBox its title zooms to.
type htmlTable struct {
	view.Table
	ViewBox string
}

// Format writes the page to w.
func (h *HTMLFormatter) Format(r *view.Rendering, w io.Writer) error {
	if err := nilRendering(r); err != nil {
		return err
	}

	htmlTmplOnce.Do(func() {
		htmlTmpl = template.Must(template.New("map").Parse(htmlTemplate))
	})

	now := time.Now()
	if h.nowFunc != nil {
		now = h.nowFunc()
	}

	v := r.View
	data := htmlData{
		Title:       fmt.Sprintf("Election %d: %s", v.Year, v.City),
		Description: v.Mode.Description(),
		Parties:     partiesLabel(v),
		GeneratedAt: now.UTC().Format("2006-01-02 15:04 UTC"),
		Map:         renderSVG(r, svgWidth, svgHeight),
		Legend:      r.Legend,
		Idle:        view.IdleInfo(v.Year),
		EmptyPolls:  r.Bounds.EmptyPolls,
		Polls:       r.Bounds.Polls,
	}
	proj := geo.NewProjector(r.Extent, svgWidth, svgHeight, 1)
	for _, l := range r.Ridings {
		data.Tables = append(data.Tables, htmlTable{
			Table:   l.Table,
			ViewBox: viewBox(proj, r.RidingExtent(l.Name)),
		})
	}

	if err := htmlTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute html template: %w", err)
	}
	return nil
}
