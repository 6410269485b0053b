package geofence_test

import (
	"math"
	"testing"

	"go-attend/internal/geofence"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// pointAtDistance menggeser titik sejauh meters ke utara sepanjang meridian.
func pointAtDistance(lat, lng, meters float64) (float64, float64) {
	dLat := (meters / 6371000.0) * 180 / math.Pi
	return lat + dLat, lng
}

func TestValidateCoordinates(t *testing.T) {
	cases := []struct {
		name string
		lat  float64
		lng  float64
		want bool
	}{
		{"origin", 0, 0, true},
		{"jakarta office", -6.2088, 106.8456, true},
		{"lat north pole", 90, 0, true},
		{"lat out of range", 90.0001, 0, false},
		{"lat negative out of range", -91, 0, false},
		{"lng date line", 0, 180, true},
		{"lng out of range", 0, 180.5, false},
		{"lng negative out of range", 0, -181, false},
		{"nan lat", math.NaN(), 0, false},
		{"nan lng", 0, math.NaN(), false},
		{"inf lat", math.Inf(1), 0, false},
		{"negative inf lng", 0, math.Inf(-1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, geofence.ValidateCoordinates(tc.lat, tc.lng))
		})
	}
}

func TestDistance(t *testing.T) {
	t.Run("zero distance for same point", func(t *testing.T) {
		assert.Equal(t, 0.0, geofence.Distance(-6.2088, 106.8456, -6.2088, 106.8456))
	})

	t.Run("returns whole meters", func(t *testing.T) {
		lat2, lng2 := pointAtDistance(-6.2088, 106.8456, 123.4)
		d := geofence.Distance(-6.2088, 106.8456, lat2, lng2)
		assert.Equal(t, d, math.Round(d))
		assert.InDelta(t, 123, d, 1)
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := geofence.Distance(-6.2088, 106.8456, -6.1751, 106.8650)
		d2 := geofence.Distance(-6.1751, 106.8650, -6.2088, 106.8456)
		assert.Equal(t, d1, d2)
	})
}

func TestLocate(t *testing.T) {
	hq := geofence.Location{
		ID:           uuid.New(),
		Name:         "HQ",
		Latitude:     -6.2088,
		Longitude:    106.8456,
		RadiusMeters: 100,
	}
	branch := geofence.Location{
		ID:           uuid.New(),
		Name:         "Branch",
		Latitude:     -6.3000,
		Longitude:    106.9000,
		RadiusMeters: 150,
	}

	t.Run("match at center", func(t *testing.T) {
		got := geofence.Locate(hq.Latitude, hq.Longitude, []geofence.Location{hq, branch})
		assert.NotNil(t, got)
		assert.Equal(t, "HQ", got.Name)
	})

	t.Run("match inside radius", func(t *testing.T) {
		lat, lng := pointAtDistance(hq.Latitude, hq.Longitude, 95)
		got := geofence.Locate(lat, lng, []geofence.Location{hq, branch})
		assert.NotNil(t, got)
		assert.Equal(t, "HQ", got.Name)
	})

	t.Run("one meter inside radius matches", func(t *testing.T) {
		lat, lng := pointAtDistance(hq.Latitude, hq.Longitude, 99)
		got := geofence.Locate(lat, lng, []geofence.Location{hq})
		assert.NotNil(t, got)
	})

	t.Run("point exactly at radius still matches", func(t *testing.T) {
		lat, lng := pointAtDistance(hq.Latitude, hq.Longitude, 100)
		got := geofence.Locate(lat, lng, []geofence.Location{hq})
		assert.NotNil(t, got)
	})

	t.Run("one meter outside radius does not match", func(t *testing.T) {
		lat, lng := pointAtDistance(hq.Latitude, hq.Longitude, 101)
		got := geofence.Locate(lat, lng, []geofence.Location{hq, branch})
		assert.Nil(t, got)
	})

	t.Run("first location wins on overlap", func(t *testing.T) {
		overlapping := geofence.Location{
			ID:           uuid.New(),
			Name:         "Annex",
			Latitude:     hq.Latitude,
			Longitude:    hq.Longitude,
			RadiusMeters: 500,
		}

		got := geofence.Locate(hq.Latitude, hq.Longitude, []geofence.Location{hq, overlapping})
		assert.Equal(t, "HQ", got.Name)

		got = geofence.Locate(hq.Latitude, hq.Longitude, []geofence.Location{overlapping, hq})
		assert.Equal(t, "Annex", got.Name)
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Nil(t, geofence.Locate(0, 0, nil))
	})
}

func TestNearest(t *testing.T) {
	hq := geofence.Location{Name: "HQ", Latitude: -6.2088, Longitude: 106.8456, RadiusMeters: 100}
	branch := geofence.Location{Name: "Branch", Latitude: -6.3000, Longitude: 106.9000, RadiusMeters: 150}

	t.Run("returns closest with distance", func(t *testing.T) {
		lat, lng := pointAtDistance(hq.Latitude, hq.Longitude, 300)
		got, dist := geofence.Nearest(lat, lng, []geofence.Location{branch, hq})
		assert.NotNil(t, got)
		assert.Equal(t, "HQ", got.Name)
		assert.InDelta(t, 300, dist, 1)
	})

	t.Run("nil for empty list", func(t *testing.T) {
		got, dist := geofence.Nearest(0, 0, nil)
		assert.Nil(t, got)
		assert.Equal(t, 0.0, dist)
	})
}
