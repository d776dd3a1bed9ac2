package basemap

import (
	"image"
	"image/color"
	"math"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/Faultbox/geoglobe/internal/logger"
	"github.com/Faultbox/geoglobe/pkg/geojson"
)

// ProjectPixel maps longitude/latitude in degrees to pixel coordinates in a
// width x height equirectangular image:
//
//	px = floor(((lon/180 + 1) * 0.5) * width)
//	py = floor((1 - (lat/90 + 1) * 0.5) * height)
func ProjectPixel(lon, lat float64, width, height int) image.Point {
	return image.Point{
		X: int(math.Floor((lon/180 + 1) * 0.5 * float64(width))),
		Y: int(math.Floor((1 - (lat/90+1)*0.5) * float64(height))),
	}
}

// DrawOptions controls how features are painted.
type DrawOptions struct {
	// NameProperty defaults to "NAME".
	NameProperty string
	// Colors defaults to a time-seeded random source.
	Colors ColorSource
	// FillAllPolygons paints the outer ring of every polygon of a
	// multi-polygon instead of only the first one.
	FillAllPolygons bool
	// Logger defaults to the global logger named "basemap".
	Logger *zap.Logger
}

// DrawReport counts what DrawFeatures did.
type DrawReport struct {
	Features  int
	Unnamed   int
	Ignored   int
	Drawn     int
	Collapsed int // rings with fewer than 3 distinct pixels
}

// DrawFeatures paints each named multi-polygon feature as a filled
// antialiased polygon with a fresh opaque color. Painting is in place and in
// feature order, so later features cover earlier ones where they overlap.
func (b *Basemap) DrawFeatures(features []geojson.Feature, opts DrawOptions) DrawReport {
	if opts.NameProperty == "" {
		opts.NameProperty = geojson.DefaultNameProperty
	}
	if opts.Colors == nil {
		opts.Colors = NewColorSource(0)
	}
	log := opts.Logger
	if log == nil {
		log = logger.Named("basemap")
	}

	var report DrawReport
	z := vector.NewRasterizer(b.Width, b.Height)

	for fi := range features {
		f := &features[fi]
		report.Features++

		name, ok := f.Name(opts.NameProperty)
		if !ok {
			report.Unnamed++
			continue
		}

		polys, ok := f.Geometry.(geojson.MultiPolygon)
		if !ok {
			report.Ignored++
			continue
		}
		if !opts.FillAllPolygons && len(polys) > 1 {
			polys = polys[:1]
		}

		for pi, poly := range polys {
			points := b.ringPixels(poly.Outer())
			if len(points) < 3 {
				report.Collapsed++
				log.Debug("skipping collapsed ring",
					zap.String("feature", name), zap.Int("polygon", pi), zap.Int("pixels", len(points)))
				continue
			}

			c := opts.Colors.Next()
			fillPolygon(z, b.Image, points, c)
			report.Drawn++
		}
	}

	log.Info("basemap features drawn",
		zap.Int("features", report.Features),
		zap.Int("drawn", report.Drawn),
		zap.Int("collapsed", report.Collapsed),
	)

	return report
}

// ringPixels projects a closed ring to pixels, dropping consecutive
// duplicates and the closing repeat of the first pixel.
func (b *Basemap) ringPixels(ring geojson.Ring) []image.Point {
	points := make([]image.Point, 0, len(ring))
	for _, pos := range ring {
		p := b.ProjectPixel(pos.Lon(), pos.Lat())
		if n := len(points); n > 0 && points[n-1] == p {
			continue
		}
		points = append(points, p)
	}
	if n := len(points); n > 1 && points[n-1] == points[0] {
		points = points[:n-1]
	}
	return points
}

// fillPolygon rasterizes the polygon through pixel centers and composites c
// over dst with antialiased coverage. Only the pixel bounding box of the
// ring, clipped to dst, is rasterized.
func fillPolygon(z *vector.Rasterizer, dst *image.RGBA, points []image.Point, c color.RGBA) {
	r := pixelBounds(points).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}

	z.Reset(r.Dx(), r.Dy())
	z.DrawOp = draw.Over

	z.MoveTo(center(points[0].Sub(r.Min)))
	for _, p := range points[1:] {
		z.LineTo(center(p.Sub(r.Min)))
	}
	z.ClosePath()

	z.Draw(dst, r, image.NewUniform(c), image.Point{})
}

// pixelBounds returns the smallest rectangle holding every pixel in points.
func pixelBounds(points []image.Point) image.Rectangle {
	r := image.Rectangle{Min: points[0], Max: points[0].Add(image.Pt(1, 1))}
	for _, p := range points[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}

func center(p image.Point) (float32, float32) {
	return float32(p.X) + 0.5, float32(p.Y) + 0.5
}
