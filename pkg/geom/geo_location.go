package geom

import "math"

// EarthRadiusEquatorial is the WGS84 equatorial radius in metres.
const EarthRadiusEquatorial = 6378137.0

// GeoLocation is a geodetic coordinate. Unlike the Cartesian types it keeps
// double precision.
type GeoLocation struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Altitude  float64 `json:"altitude" yaml:"altitude"`
}

func NewGeoLocation(latitude, longitude, altitude float64) GeoLocation {
	return GeoLocation{Latitude: latitude, Longitude: longitude, Altitude: altitude}
}

// Transform returns the geodetic position of location, taking g as the
// position of the Cartesian origin. X points east, -Y points north.
func (g GeoLocation) Transform(location Location) GeoLocation {
	lat, lon := latLonAddMeters(g.Latitude, g.Longitude, float64(location.X), -float64(location.Y))
	return GeoLocation{
		Latitude:  lat,
		Longitude: lon,
		Altitude:  g.Altitude + float64(location.Z),
	}
}

func (g GeoLocation) Equal(o GeoLocation) bool {
	return g.Latitude == o.Latitude && g.Longitude == o.Longitude && g.Altitude == o.Altitude
}

func (g GeoLocation) String() string {
	return "GeoLocation(latitude=" + formatFloat(g.Latitude) +
		", longitude=" + formatFloat(g.Longitude) +
		", altitude=" + formatFloat(g.Altitude) + ")"
}

func latToScale(lat float64) float64 {
	return math.Cos(lat * math.Pi / 180)
}

func latLonToMercator(lat, lon, scale float64) (mx, my float64) {
	mx = scale * (lon * math.Pi / 180) * EarthRadiusEquatorial
	my = scale * EarthRadiusEquatorial * math.Log(math.Tan((90+lat)*math.Pi/360))
	return mx, my
}

func mercatorToLatLon(mx, my, scale float64) (lat, lon float64) {
	lon = mx * 180 / (math.Pi * EarthRadiusEquatorial * scale)
	lat = 360*math.Atan(math.Exp(my/(EarthRadiusEquatorial*scale)))/math.Pi - 90
	return lat, lon
}

func latLonAddMeters(lat, lon, dx, dy float64) (float64, float64) {
	scale := latToScale(lat)
	mx, my := latLonToMercator(lat, lon, scale)
	return mercatorToLatLon(mx+dx, my+dy, scale)
}
