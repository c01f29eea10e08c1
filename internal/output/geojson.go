package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/canadavotes/canadavotes/internal/view"
)

func init() {
	RegisterFormatter(NewGeoJSONFormatter())
}

// GeoJSONFormatter writes styled polls as a GeoJSON FeatureCollection. Each
// poll carries its shares and fill colour so any map viewer can draw the
// choropleth; riding outlines follow with kind "riding".
type GeoJSONFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*GeoJSONFormatter)(nil)

// NewGeoJSONFormatter returns a new GeoJSONFormatter.
func NewGeoJSONFormatter() *GeoJSONFormatter {
	return &GeoJSONFormatter{}
}

// Name returns the format name.
func (g *GeoJSONFormatter) Name() string {
	return "geojson"
}

// Extension returns the file extension.
func (g *GeoJSONFormatter) Extension() string {
	return ".geojson"
}

// Format writes the FeatureCollection to w.
func (g *GeoJSONFormatter) Format(r *view.Rendering, w io.Writer) error {
	if err := nilRendering(r); err != nil {
		return err
	}
	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	ontario := r.View.Mode.Ontario
	for _, l := range r.Ridings {
		for _, p := range l.Polls {
			if p.Geometry == nil {
				continue
			}
			fc.Features = append(fc.Features, &geojson.Feature{
				Geometry: p.Geometry,
				Properties: map[string]any{
					"kind":      "poll",
					"riding_id": l.ID,
					"district":  p.Properties.DistrictName,
					"poll":      p.Properties.PollLabel(ontario),
					"share0":    p.Shares[0],
					"share1":    p.Shares[1],
					"value":     p.Value,
					"fill":      p.Fill,
					"empty":     p.Empty,
				},
			})
		}
	}
	for _, b := range r.Boundaries {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   b.Geometry,
			Properties: map[string]any{"kind": "riding", "district": b.Name},
		})
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}
	return nil
}
