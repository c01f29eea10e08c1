package election

import (
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Collection is a GeoJSON FeatureCollection of F.
type Collection[F any] struct {
	Features []F `json:"features"`
}

// UnmarshalJSON checks the collection type before decoding features.
func (c *Collection[F]) UnmarshalJSON(b []byte) error {
	var aux struct {
		Type     string `json:"type"`
		Features []F    `json:"features"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.Type != "" && aux.Type != "FeatureCollection" {
		return fmt.Errorf("expected FeatureCollection, got %q", aux.Type)
	}
	c.Features = aux.Features
	return nil
}

// MarshalJSON writes a GeoJSON FeatureCollection.
func (c Collection[F]) MarshalJSON() ([]byte, error) {
	features := c.Features
	if features == nil {
		features = []F{}
	}
	return json.Marshal(struct {
		Type     string `json:"type"`
		Features []F    `json:"features"`
	}{"FeatureCollection", features})
}

// PollFeature is one poll division: its polygon and its vote counts.
type PollFeature struct {
	Geometry   geom.T
	Properties PollProperties
}

// UnmarshalJSON decodes a GeoJSON feature with poll properties.
func (f *PollFeature) UnmarshalJSON(b []byte) error {
	var aux struct {
		Type       string            `json:"type"`
		Geometry   *geojson.Geometry `json:"geometry"`
		Properties PollProperties    `json:"properties"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	g, err := decodeGeometry(aux.Type, aux.Geometry)
	if err != nil {
		return err
	}
	f.Geometry = g
	f.Properties = aux.Properties
	return nil
}

// MarshalJSON encodes the feature back to GeoJSON.
func (f PollFeature) MarshalJSON() ([]byte, error) {
	return marshalFeature(f.Geometry, f.Properties)
}

// Feature is a GeoJSON feature with free-form properties, used for riding
// boundaries and label anchors.
type Feature struct {
	Geometry   geom.T
	Properties map[string]any
}

// DistrictName returns the DistrictName property, or "" when absent.
func (f *Feature) DistrictName() string {
	if s, ok := f.Properties[KeyDistrictName].(string); ok {
		return s
	}
	return ""
}

// UnmarshalJSON decodes a GeoJSON feature.
func (f *Feature) UnmarshalJSON(b []byte) error {
	var aux struct {
		Type       string            `json:"type"`
		Geometry   *geojson.Geometry `json:"geometry"`
		Properties map[string]any    `json:"properties"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	g, err := decodeGeometry(aux.Type, aux.Geometry)
	if err != nil {
		return err
	}
	f.Geometry = g
	f.Properties = aux.Properties
	return nil
}

// MarshalJSON encodes the feature back to GeoJSON.
func (f Feature) MarshalJSON() ([]byte, error) {
	return marshalFeature(f.Geometry, f.Properties)
}

func decodeGeometry(typ string, g *geojson.Geometry) (geom.T, error) {
	if typ != "" && typ != "Feature" {
		return nil, fmt.Errorf("expected Feature, got %q", typ)
	}
	if g == nil {
		return nil, nil
	}
	t, err := g.Decode()
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}
	return t, nil
}

func marshalFeature(g geom.T, props any) ([]byte, error) {
	var gj *geojson.Geometry
	if g != nil {
		var err error
		gj, err = geojson.Encode(g)
		if err != nil {
			return nil, fmt.Errorf("geometry: %w", err)
		}
	}
	return json.Marshal(struct {
		Type       string            `json:"type"`
		Geometry   *geojson.Geometry `json:"geometry"`
		Properties any               `json:"properties"`
	}{"Feature", gj, props})
}
