package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/Faultbox/geoglobe/internal/assets"
	"github.com/Faultbox/geoglobe/internal/config"
	"github.com/Faultbox/geoglobe/pkg/geojson"
)

// listFeatures prints one line per feature: name, geometry kind, polygon
// count and whether the pipelines use it.
func listFeatures(out io.Writer, mgr *assets.Manager, cfg *config.Config) error {
	fc, err := loadFeatures(mgr, cfg.Features.Path)
	if err != nil {
		return err
	}

	kinds := make(map[string]int)
	eligible := 0
	for i := range fc.Features {
		f := &fc.Features[i]

		name, named := f.Name(cfg.Features.NameProperty)
		if !named {
			name = "(unnamed)"
		}
		kind := "none"
		polygons := 0
		if f.Geometry != nil {
			kind = f.Geometry.Kind().String()
		}
		if mp, ok := f.Geometry.(geojson.MultiPolygon); ok {
			polygons = len(mp)
		}

		use := "-"
		if named && polygons > 0 {
			use = "yes"
			eligible++
		}
		kinds[kind]++

		fmt.Fprintf(out, "%-40s %-18s %5d  %s\n", name, kind, polygons, use)
	}

	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)

	fmt.Fprintf(out, "\n%d features, %d eligible\n", len(fc.Features), eligible)
	for _, k := range names {
		fmt.Fprintf(out, "  %-18s %d\n", k, kinds[k])
	}
	return nil
}
