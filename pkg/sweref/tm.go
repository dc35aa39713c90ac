package sweref

import "math"

// GRS80 ellipsoid.
const (
	grsA  float64 = 6378137           // semi-major axis
	grsF  float64 = 1 / 298.257222101 // flattening
	grsE2 float64 = grsF * (2 - grsF) // eccentricity squared
	grsN  float64 = grsF / (2 - grsF)
)

// Derived constants for the Gauss conformal (Krueger) series.
var (
	aHat = grsA / (1 + grsN) * (1 + grsN*grsN/4 + grsN*grsN*grsN*grsN/64)

	beta1 = grsN/2 - 2*math.Pow(grsN, 2)/3 + 5*math.Pow(grsN, 3)/16 + 41*math.Pow(grsN, 4)/180
	beta2 = 13*math.Pow(grsN, 2)/48 - 3*math.Pow(grsN, 3)/5 + 557*math.Pow(grsN, 4)/1440
	beta3 = 61*math.Pow(grsN, 3)/240 - 103*math.Pow(grsN, 4)/140
	beta4 = 49561 * math.Pow(grsN, 4) / 161280

	delta1 = grsN/2 - 2*math.Pow(grsN, 2)/3 + 37*math.Pow(grsN, 3)/96 - math.Pow(grsN, 4)/360
	delta2 = math.Pow(grsN, 2)/48 + math.Pow(grsN, 3)/15 - 437*math.Pow(grsN, 4)/1440
	delta3 = 17*math.Pow(grsN, 3)/480 - 37*math.Pow(grsN, 4)/840
	delta4 = 4397 * math.Pow(grsN, 4) / 161280

	convA = grsE2
	convB = (5*math.Pow(grsE2, 2) - math.Pow(grsE2, 3)) / 6
	convC = (104*math.Pow(grsE2, 3) - 45*math.Pow(grsE2, 4)) / 120
	convD = 1237 * math.Pow(grsE2, 4) / 1260

	invA = grsE2 + math.Pow(grsE2, 2) + math.Pow(grsE2, 3) + math.Pow(grsE2, 4)
	invB = -(7*math.Pow(grsE2, 2) + 17*math.Pow(grsE2, 3) + 30*math.Pow(grsE2, 4)) / 6
	invC = (224*math.Pow(grsE2, 3) + 889*math.Pow(grsE2, 4)) / 120
	invD = -(4279 * math.Pow(grsE2, 4)) / 1260
)

// Forward projects geodetic WGS84/SWEREF99 lat/lon (degrees) into planar
// easting/northing (meters) for the given projection definition.
func Forward(lat, lon float64, p *Projection) (easting, northing float64) {
	phi := lat * math.Pi / 180
	dLam := (lon - p.CentralMeridian) * math.Pi / 180

	s2 := math.Pow(math.Sin(phi), 2)
	phiStar := phi - math.Sin(phi)*math.Cos(phi)*
		(convA+convB*s2+convC*s2*s2+convD*s2*s2*s2)

	xiP := math.Atan2(math.Tan(phiStar), math.Cos(dLam))
	etaP := math.Atanh(math.Cos(phiStar) * math.Sin(dLam))

	k := p.ScaleFactor

	northing = k*aHat*(xiP+
		beta1*math.Sin(2*xiP)*math.Cosh(2*etaP)+
		beta2*math.Sin(4*xiP)*math.Cosh(4*etaP)+
		beta3*math.Sin(6*xiP)*math.Cosh(6*etaP)+
		beta4*math.Sin(8*xiP)*math.Cosh(8*etaP)) + p.FalseNorthing

	easting = k*aHat*(etaP+
		beta1*math.Cos(2*xiP)*math.Sinh(2*etaP)+
		beta2*math.Cos(4*xiP)*math.Sinh(4*etaP)+
		beta3*math.Cos(6*xiP)*math.Sinh(6*etaP)+
		beta4*math.Cos(8*xiP)*math.Sinh(8*etaP)) + p.FalseEasting

	return easting, northing
}

// Inverse converts planar easting/northing (meters) back to geodetic
// lat/lon (degrees).
func Inverse(easting, northing float64, p *Projection) (lat, lon float64) {
	k := p.ScaleFactor

	xi := (northing - p.FalseNorthing) / (k * aHat)
	eta := (easting - p.FalseEasting) / (k * aHat)

	xiP := xi -
		delta1*math.Sin(2*xi)*math.Cosh(2*eta) -
		delta2*math.Sin(4*xi)*math.Cosh(4*eta) -
		delta3*math.Sin(6*xi)*math.Cosh(6*eta) -
		delta4*math.Sin(8*xi)*math.Cosh(8*eta)

	etaP := eta -
		delta1*math.Cos(2*xi)*math.Sinh(2*eta) -
		delta2*math.Cos(4*xi)*math.Sinh(4*eta) -
		delta3*math.Cos(6*xi)*math.Sinh(6*eta) -
		delta4*math.Cos(8*xi)*math.Sinh(8*eta)

	phiStar := math.Asin(math.Sin(xiP) / math.Cosh(etaP))
	dLam := math.Atan2(math.Sinh(etaP), math.Cos(xiP))

	s2 := math.Pow(math.Sin(phiStar), 2)
	phi := phiStar + math.Sin(phiStar)*math.Cos(phiStar)*
		(invA+invB*s2+invC*s2*s2+invD*s2*s2*s2)

	lat = phi * 180 / math.Pi
	lon = p.CentralMeridian + dLam*180/math.Pi

	return lat, lon
}

// Web Mercator (EPSG 3857), used when the host map runs the usual web
// tile reference.
const webMercR = 6378137.0

func ToWebMercator(lat, lon float64) (x, y float64) {
	x = webMercR * lon * math.Pi / 180
	y = webMercR * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))

	return x, y
}

func FromWebMercator(x, y float64) (lat, lon float64) {
	lon = x / webMercR * 180 / math.Pi
	lat = (2*math.Atan(math.Exp(y/webMercR)) - math.Pi/2) * 180 / math.Pi

	return lat, lon
}
