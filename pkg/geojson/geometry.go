// Package geojson provides the feature and geometry types consumed by the globe
// pipelines, decoded from standard GeoJSON documents.
package geojson

// Position is a (longitude, latitude) pair in degrees.
type Position [2]float64

// Lon returns the longitude in degrees.
func (p Position) Lon() float64 { return p[0] }

// Lat returns the latitude in degrees.
func (p Position) Lat() float64 { return p[1] }

// Ring is a closed sequence of positions; the first and last entries are equal.
type Ring []Position

// Kind identifies a geometry variant.
type Kind int

// Geometry kinds.
const (
	KindPoint Kind = iota
	KindMultiPoint
	KindLineString
	KindMultiLineString
	KindPolygon
	KindMultiPolygon
	KindGeometryCollection
)

var kindNames = [...]string{
	KindPoint:              "Point",
	KindMultiPoint:         "MultiPoint",
	KindLineString:         "LineString",
	KindMultiLineString:    "MultiLineString",
	KindPolygon:            "Polygon",
	KindMultiPolygon:       "MultiPolygon",
	KindGeometryCollection: "GeometryCollection",
}

// String returns the GeoJSON type name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Geometry is one of the GeoJSON geometry variants. The set is closed:
// only the types in this package implement it.
type Geometry interface {
	Kind() Kind
	sealed()
}

// Point is a single position.
type Point Position

// MultiPoint is a set of positions.
type MultiPoint []Position

// LineString is an open polyline.
type LineString []Position

// MultiLineString is a set of polylines.
type MultiLineString []LineString

// Polygon is an outer ring followed by zero or more hole rings.
type Polygon []Ring

// MultiPolygon is a set of polygons.
type MultiPolygon []Polygon

// GeometryCollection is a heterogeneous set of geometries.
type GeometryCollection []Geometry

func (Point) Kind() Kind              { return KindPoint }
func (MultiPoint) Kind() Kind         { return KindMultiPoint }
func (LineString) Kind() Kind         { return KindLineString }
func (MultiLineString) Kind() Kind    { return KindMultiLineString }
func (Polygon) Kind() Kind            { return KindPolygon }
func (MultiPolygon) Kind() Kind       { return KindMultiPolygon }
func (GeometryCollection) Kind() Kind { return KindGeometryCollection }

func (Point) sealed()              {}
func (MultiPoint) sealed()         {}
func (LineString) sealed()         {}
func (MultiLineString) sealed()    {}
func (Polygon) sealed()            {}
func (MultiPolygon) sealed()       {}
func (GeometryCollection) sealed() {}

// Outer returns the outer ring, or nil for an empty polygon.
func (p Polygon) Outer() Ring {
	if len(p) == 0 {
		return nil
	}
	return p[0]
}

// Holes returns the hole rings.
func (p Polygon) Holes() []Ring {
	if len(p) < 2 {
		return nil
	}
	return p[1:]
}
