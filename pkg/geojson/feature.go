package geojson

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	orbjson "github.com/paulmach/orb/geojson"
)

// DefaultNameProperty is the property holding a feature's administrative name.
const DefaultNameProperty = "NAME"

// Feature is a geometry with its properties. Geometry is nil when the
// document has no geometry or an explicit null.
type Feature struct {
	Properties map[string]any
	Geometry   Geometry
}

// Name returns the feature's identifying name stored under prop.
// A missing property, a null value or missing properties all yield ok=false.
// Non-string values are formatted with fmt so numeric codes still work as names.
func (f *Feature) Name(prop string) (name string, ok bool) {
	if f.Properties == nil {
		return "", false
	}
	v, present := f.Properties[prop]
	if !present || v == nil {
		return "", false
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return fmt.Sprint(v), true
}

// FeatureCollection is an ordered list of features.
type FeatureCollection struct {
	Features []Feature
}

// ErrUnsupportedDocument is returned for GeoJSON documents that are neither a
// Feature nor a FeatureCollection.
var ErrUnsupportedDocument = errors.New("unsupported geojson document")

// Decode parses a GeoJSON FeatureCollection. A single Feature document is
// accepted and returned as a one-element collection.
func Decode(data []byte) (*FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("reading geojson type: %w", err)
	}

	switch head.Type {
	case "FeatureCollection":
		fc, err := orbjson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("decoding feature collection: %w", err)
		}
		out := &FeatureCollection{Features: make([]Feature, 0, len(fc.Features))}
		for _, f := range fc.Features {
			out.Features = append(out.Features, convertFeature(f))
		}
		return out, nil

	case "Feature":
		f, err := orbjson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("decoding feature: %w", err)
		}
		return &FeatureCollection{Features: []Feature{convertFeature(f)}}, nil

	default:
		return nil, fmt.Errorf("%w: type %q", ErrUnsupportedDocument, head.Type)
	}
}

func convertFeature(f *orbjson.Feature) Feature {
	if f == nil {
		return Feature{}
	}
	var props map[string]any
	if f.Properties != nil {
		props = map[string]any(f.Properties)
	}
	return Feature{
		Properties: props,
		Geometry:   convertGeometry(f.Geometry),
	}
}

func convertGeometry(g orb.Geometry) Geometry {
	switch g := g.(type) {
	case nil:
		return nil
	case orb.Point:
		return Point(g)
	case orb.MultiPoint:
		return MultiPoint(convertPoints(g))
	case orb.LineString:
		return LineString(convertPoints(g))
	case orb.MultiLineString:
		out := make(MultiLineString, len(g))
		for i, ls := range g {
			out[i] = LineString(convertPoints(ls))
		}
		return out
	case orb.Ring:
		return Polygon{Ring(convertPoints(g))}
	case orb.Polygon:
		return convertPolygon(g)
	case orb.MultiPolygon:
		out := make(MultiPolygon, len(g))
		for i, p := range g {
			out[i] = convertPolygon(p)
		}
		return out
	case orb.Collection:
		out := make(GeometryCollection, 0, len(g))
		for _, child := range g {
			if c := convertGeometry(child); c != nil {
				out = append(out, c)
			}
		}
		return out
	default:
		// orb.Bound and other non-GeoJSON shapes have no counterpart.
		return nil
	}
}

func convertPolygon(p orb.Polygon) Polygon {
	out := make(Polygon, len(p))
	for i, r := range p {
		out[i] = Ring(convertPoints(r))
	}
	return out
}

func convertPoints[S ~[]orb.Point](pts S) []Position {
	out := make([]Position, len(pts))
	for i, p := range pts {
		out[i] = Position(p)
	}
	return out
}
