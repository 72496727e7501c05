package spatial

import "math"

// WGS84 ellipsoid and transverse-mercator parameters.
const (
	wgs84A       = 6378137.0            // semi-major axis, meters
	wgs84F       = 1 / 298.257223563    // flattening
	utmScale     = 0.9996               // central meridian scale factor
	utmFalseEast = 500000.0             // false easting, meters
	utmFalseNorth = 10000000.0          // false northing, southern hemisphere
)

// UTMZone returns the UTM zone number for a longitude in degrees.
func UTMZone(lon float64) int {
	return int(math.Floor((lon+180)/6)) + 1
}

// UTMProjector projects WGS84 geodetic coordinates into the planar UTM zone
// chosen at construction. Distances between projected points are plain
// Euclidean meters.
type UTMProjector struct {
	zone     int
	lon0     float64 // central meridian, radians
	southern bool
}

// NewUTMProjector builds a projector for the zone containing the given
// reference coordinate, typically the track's mean position.
func NewUTMProjector(refLat, refLon float64) *UTMProjector {
	zone := UTMZone(refLon)
	lon0 := float64(zone-1)*6 - 180 + 3
	return &UTMProjector{
		zone:     zone,
		lon0:     lon0 * math.Pi / 180,
		southern: refLat < 0,
	}
}

// Zone returns the projector's UTM zone number.
func (p *UTMProjector) Zone() int {
	return p.zone
}

// Project converts a geodetic coordinate in degrees to planar easting and
// northing in meters.
func (p *UTMProjector) Project(lat, lon float64) (x, y float64) {
	phi := lat * math.Pi / 180
	lam := lon * math.Pi / 180

	e2 := wgs84F * (2 - wgs84F)
	ep2 := e2 / (1 - e2)

	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)

	n := wgs84A / math.Sqrt(1-e2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := ep2 * cosPhi * cosPhi
	a := (lam - p.lon0) * cosPhi

	// Meridional arc length.
	m := wgs84A * ((1-e2/4-3*e2*e2/64-5*e2*e2*e2/256)*phi -
		(3*e2/8+3*e2*e2/32+45*e2*e2*e2/1024)*math.Sin(2*phi) +
		(15*e2*e2/256+45*e2*e2*e2/1024)*math.Sin(4*phi) -
		(35*e2*e2*e2/3072)*math.Sin(6*phi))

	x = utmScale*n*(a+(1-t+c)*a*a*a/6+
		(5-18*t+t*t+72*c-58*ep2)*a*a*a*a*a/120) + utmFalseEast

	y = utmScale * (m + n*tanPhi*(a*a/2+
		(5-t+9*c+4*c*c)*a*a*a*a/24+
		(61-58*t+t*t+600*c-330*ep2)*a*a*a*a*a*a/720))
	if p.southern {
		y += utmFalseNorth
	}
	return x, y
}

// ProjectAll projects whole coordinate columns at once.
func (p *UTMProjector) ProjectAll(lats, lons []float64) (xs, ys []float64) {
	xs = make([]float64, len(lats))
	ys = make([]float64, len(lats))
	for i := range lats {
		xs[i], ys[i] = p.Project(lats[i], lons[i])
	}
	return xs, ys
}
