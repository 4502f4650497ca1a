package search

import (
	"math"
	"testing"

	"tiffin/internal/types"
)

func TestDistanceMeters_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      types.Point
		wantM     float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Point{Lat: -1.2864, Lng: 36.8172},
			b:         types.Point{Lat: -1.2864, Lng: 36.8172},
			wantM:     0,
			tolerance: 0.001,
		},
		{
			name:      "midtown Manhattan short hop (~450m)",
			a:         types.Point{Lat: 40.7489, Lng: -73.9680},
			b:         types.Point{Lat: 40.7529, Lng: -73.9692},
			wantM:     455,
			tolerance: 20,
		},
		{
			name:      "New York to Los Angeles (~3944km)",
			a:         types.Point{Lat: 40.7128, Lng: -74.0060},
			b:         types.Point{Lat: 34.0522, Lng: -118.2437},
			wantM:     3944000,
			tolerance: 50000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := distanceMeters(tt.a, tt.b)
			if math.Abs(got-tt.wantM) > tt.tolerance {
				t.Errorf("distanceMeters() = %f, want %f (±%f)", got, tt.wantM, tt.tolerance)
			}
		})
	}
}

func TestDistanceMeters_Symmetry(t *testing.T) {
	a := types.Point{Lat: -1.28, Lng: 36.81}
	b := types.Point{Lat: -1.30, Lng: 36.85}
	d1 := distanceMeters(a, b)
	d2 := distanceMeters(b, a)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("distance is not symmetric: %f vs %f", d1, d2)
	}
	if d1 < 0 {
		t.Errorf("distance is negative: %f", d1)
	}
}

func TestBoundingBox_EnclosesRadius(t *testing.T) {
	center := types.Point{Lat: 40.7489, Lng: -73.9680}
	const radius = 3000.0

	b := boundingBox(center, radius)

	if b.MinLat >= b.MaxLat || b.MinLng >= b.MaxLng {
		t.Fatalf("degenerate box: %+v", b)
	}
	if center.Lat < b.MinLat || center.Lat > b.MaxLat || center.Lng < b.MinLng || center.Lng > b.MaxLng {
		t.Fatalf("box does not contain its center: %+v", b)
	}

	// every cardinal point exactly radius away must sit inside the box
	for _, p := range []types.Point{
		{Lat: b.MaxLat, Lng: center.Lng},
		{Lat: b.MinLat, Lng: center.Lng},
		{Lat: center.Lat, Lng: b.MaxLng},
		{Lat: center.Lat, Lng: b.MinLng},
	} {
		if d := distanceMeters(center, p); d < radius*0.99 {
			t.Errorf("box edge at %+v only %f m from center, want >= %f", p, d, radius)
		}
	}
}

func TestSortByDistance(t *testing.T) {
	matches := []Match{
		{DistanceM: 5.0},
		{DistanceM: 1.0},
		{DistanceM: 3.0},
	}
	sortByDistance(matches, func(m Match) float64 { return m.DistanceM })
	if matches[0].DistanceM != 1.0 || matches[1].DistanceM != 3.0 || matches[2].DistanceM != 5.0 {
		t.Errorf("unexpected sort order: %v", matches)
	}

	var empty []Match
	sortByDistance(empty, func(m Match) float64 { return m.DistanceM })
}
