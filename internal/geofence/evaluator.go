package geofence

import "math"

const earthRadiusMeters = 6371000.0

// ValidateCoordinates menolak koordinat non-finite atau di luar rentang WGS84.
func ValidateCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Distance menghitung jarak great-circle (haversine) dalam meter,
// dibulatkan ke meter terdekat.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	latRad1 := lat1 * math.Pi / 180
	lngRad1 := lng1 * math.Pi / 180
	latRad2 := lat2 * math.Pi / 180
	lngRad2 := lng2 * math.Pi / 180

	diffLat := latRad2 - latRad1
	diffLng := lngRad2 - lngRad1

	a := math.Sin(diffLat/2)*math.Sin(diffLat/2) +
		math.Cos(latRad1)*math.Cos(latRad2)*
			math.Sin(diffLng/2)*math.Sin(diffLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusMeters * c)
}

// Locate mengembalikan lokasi PERTAMA (urutan caller) yang radiusnya memuat
// titik, bukan yang terdekat. Urutan input menentukan pemenang saat area
// saling tumpang tindih.
func Locate(lat, lng float64, locations []Location) *Location {
	for i := range locations {
		d := Distance(lat, lng, locations[i].Latitude, locations[i].Longitude)
		if d <= float64(locations[i].RadiusMeters) {
			return &locations[i]
		}
	}
	return nil
}

// Nearest dipakai untuk audit log saat check-in ditolak: lokasi terdekat
// beserta jaraknya dalam meter. Mengembalikan nil jika daftar kosong.
func Nearest(lat, lng float64, locations []Location) (*Location, float64) {
	var (
		best     *Location
		bestDist float64
	)
	for i := range locations {
		d := Distance(lat, lng, locations[i].Latitude, locations[i].Longitude)
		if best == nil || d < bestDist {
			best = &locations[i]
			bestDist = d
		}
	}
	return best, bestDist
}
