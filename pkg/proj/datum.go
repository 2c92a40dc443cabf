package proj

// datumDef links a datum name to its reference ellipsoid and WGS84
// shift parameters.
type datumDef struct {
	towgs84   []float64
	ellipse   string
	datumName string
}

var datumDefs = map[string]datumDef{
	"wgs84": {
		towgs84:   []float64{0, 0, 0},
		ellipse:   "WGS84",
		datumName: "WGS84",
	},
	"ggrs87": {
		towgs84:   []float64{-199.87, 74.79, 246.62},
		ellipse:   "GRS80",
		datumName: "Greek_Geodetic_Reference_System_1987",
	},
	"nad83": {
		towgs84:   []float64{0, 0, 0},
		ellipse:   "GRS80",
		datumName: "North_American_Datum_1983",
	},
	"nad27": {
		ellipse:   "clrk66",
		datumName: "North_American_Datum_1927",
	},
	"potsdam": {
		towgs84:   []float64{606.0, 23.0, 413.0},
		ellipse:   "bessel",
		datumName: "Potsdam Rauenberg 1950 DHDN",
	},
	"carthage": {
		towgs84:   []float64{-263.0, 6.0, 431.0},
		ellipse:   "clrk80",
		datumName: "Carthage 1934 Tunisia",
	},
	"hermannskogel": {
		towgs84:   []float64{653.0, -212.0, 449.0},
		ellipse:   "bessel",
		datumName: "Hermannskogel",
	},
	"ire65": {
		towgs84:   []float64{482.530, -130.596, 564.557, -1.042, -0.214, -0.631, 8.15},
		ellipse:   "mod_airy",
		datumName: "Ireland 1965",
	},
	"nzgd49": {
		towgs84:   []float64{59.47, -5.04, 187.44, 0.47, -0.1, 1.024, -4.5993},
		ellipse:   "intl",
		datumName: "New Zealand Geodetic Datum 1949",
	},
	"osgb36": {
		towgs84:   []float64{446.448, -125.157, 542.060, 0.1502, 0.2470, 0.8421, -20.4894},
		ellipse:   "airy",
		datumName: "Airy 1830",
	},
	"ch1903": {
		towgs84:   []float64{674.374, 15.056, 405.346},
		ellipse:   "bessel",
		datumName: "swiss",
	},
}

// ellipsoidDef holds the defining axes of a reference ellipsoid as
// they appear in proj4 strings. Values are strings to keep comparison
// tolerant of the textual forms found in catalogs.
type ellipsoidDef struct {
	a  string // semi-major axis, metres
	rf string // inverse flattening
}

var ellipsoidDefs = map[string]ellipsoidDef{
	"WGS84":    {a: "6378137", rf: "298.257223563"},
	"GRS80":    {a: "6378137", rf: "298.257222101"},
	"bessel":   {a: "6377397.155", rf: "299.1528128"},
	"clrk66":   {a: "6378206.4", rf: "294.9786982"},
	"clrk80":   {a: "6378249.145", rf: "293.465"},
	"airy":     {a: "6377563.396", rf: "299.3249646"},
	"mod_airy": {a: "6377340.189", rf: "299.3249646"},
	"intl":     {a: "6378388", rf: "297"},
	"GRS67":    {a: "6378160", rf: "298.247167427"},
	"krass":    {a: "6378245", rf: "298.3"},
	"sphere":   {a: "6370997", rf: ""},
}

// spheroidAcronyms maps WKT SPHEROID names to proj4 ellipsoid
// acronyms.
var spheroidAcronyms = map[string]string{
	"WGS 84":             "WGS84",
	"WGS84":              "WGS84",
	"WGS_1984":           "WGS84",
	"GRS 1980":           "GRS80",
	"GRS_1980":           "GRS80",
	"Bessel 1841":        "bessel",
	"Bessel_1841":        "bessel",
	"Clarke 1866":        "clrk66",
	"Clarke_1866":        "clrk66",
	"Clarke 1880 (IGN)":  "clrk80ign",
	"Clarke 1880 (RGS)":  "clrk80",
	"Airy 1830":          "airy",
	"Airy_1830":          "airy",
	"Airy Modified 1849": "mod_airy",
	"International 1924": "intl",
	"International_1924": "intl",
	"Krassowsky 1940":    "krass",
	"Krassowsky_1940":    "krass",
}

// wktProjections maps WKT PROJECTION names to proj4 projection
// acronyms.
var wktProjections = map[string]string{
	"Mercator_1SP":                           "merc",
	"Mercator_2SP":                           "merc",
	"Transverse_Mercator":                    "tmerc",
	"Gauss_Kruger":                           "tmerc",
	"Lambert_Conformal_Conic_1SP":            "lcc",
	"Lambert_Conformal_Conic_2SP":            "lcc",
	"Lambert_Azimuthal_Equal_Area":           "laea",
	"Albers_Conic_Equal_Area":                "aea",
	"Azimuthal_Equidistant":                  "aeqd",
	"Equirectangular":                        "eqc",
	"Polar_Stereographic":                    "stere",
	"Stereographic":                          "stere",
	"Oblique_Stereographic":                  "sterea",
	"Orthographic":                           "ortho",
	"Sinusoidal":                             "sinu",
	"Mollweide":                              "moll",
	"Robinson":                               "robin",
	"Cassini_Soldner":                        "cass",
	"Hotine_Oblique_Mercator":                "omerc",
	"New_Zealand_Map_Grid":                   "nzmg",
	"Oblique_Mercator":                       "omerc",
	"Popular_Visualisation_Pseudo_Mercator":  "merc",
	"Swiss_Oblique_Cylindrical":              "somerc",
	"Hotine_Oblique_Mercator_Azimuth_Center": "somerc",
}

// wktDatumNames maps WKT DATUM names (ESRI D_ prefixes already
// stripped) to proj4 datum acronyms.
var wktDatumNames = map[string]string{
	"WGS_1984":                        "WGS84",
	"World_Geodetic_System_1984":      "WGS84",
	"North_American_Datum_1983":       "NAD83",
	"North_American_Datum_1927":       "NAD27",
	"OSGB_1936":                       "OSGB36",
	"New_Zealand_Geodetic_Datum_1949": "nzgd49",
	"Deutsches_Hauptdreiecksnetz":     "potsdam",
	"CH1903":                          "ch1903",
}
