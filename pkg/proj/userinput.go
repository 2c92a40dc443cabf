package proj

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gnames/gn"

	"github.com/geonym/srsdb/pkg/errcode"
)

// UserInput is the classified form of a free-text CRS definition.
type UserInput struct {
	// Kind tells the caller which resolution path to take.
	Kind InputKind

	// EpsgID is set for authority-code inputs.
	EpsgID int64

	// Definition is set for WKT and proj4 inputs; for WKT it is
	// already morphed from ESRI form when needed.
	Definition string
}

// InputKind enumerates the recognized user-input families.
type InputKind int

const (
	InputEpsg InputKind = iota
	InputWkt
	InputProj4
)

var (
	reEpsg = regexp.MustCompile(`(?i)^epsga?:(\d+)$`)
	reUrn  = regexp.MustCompile(`(?i)^urn:ogc:def:crs:epsg:[\d.]*:(\d+)$`)
	reAuto = regexp.MustCompile(`(?i)^auto:(\d+)(?:,(-?[\d.]+))?(?:,(-?[\d.]+))?$`)
)

// wellKnownNames maps free-form names users commonly type to EPSG
// codes.
var wellKnownNames = map[string]int64{
	"WGS84":  4326,
	"WGS 84": 4326,
	"CRS:84": 4326,
	"CRS84":  4326,
	"NAD83":  4269,
	"NAD27":  4267,
}

// ClassifyUserInput normalizes the broad user-input taxonomy into one
// of three resolution paths: an EPSG code, a WKT document, or a proj4
// string. ESRI-flavored WKT is morphed into OGC form before it is
// returned. AUTO codes expand into proj4 definitions.
func ClassifyUserInput(input string) (UserInput, error) {
	def := strings.TrimSpace(input)
	if def == "" {
		return UserInput{}, userInputError(input, fmt.Errorf("empty input"))
	}

	if id, ok := wellKnownNames[strings.ToUpper(def)]; ok {
		return UserInput{Kind: InputEpsg, EpsgID: id}, nil
	}
	if m := reEpsg.FindStringSubmatch(def); m != nil {
		id, _ := strconv.ParseInt(m[1], 10, 64)
		return UserInput{Kind: InputEpsg, EpsgID: id}, nil
	}
	if m := reUrn.FindStringSubmatch(def); m != nil {
		id, _ := strconv.ParseInt(m[1], 10, 64)
		return UserInput{Kind: InputEpsg, EpsgID: id}, nil
	}
	if m := reAuto.FindStringSubmatch(def); m != nil {
		p4, err := expandAuto(m)
		if err != nil {
			return UserInput{}, userInputError(input, err)
		}
		return UserInput{Kind: InputProj4, Definition: p4}, nil
	}
	if IsWKT(def) || LooksLikeEsri(def) {
		if LooksLikeEsri(def) {
			def = MorphFromEsri(def)
		}
		return UserInput{Kind: InputWkt, Definition: def}, nil
	}
	if IsProj4(def) {
		return UserInput{Kind: InputProj4, Definition: def}, nil
	}

	return UserInput{}, userInputError(input,
		fmt.Errorf("unrecognized CRS definition"))
}

// expandAuto turns an OGC AUTO projection code with lon/lat parameters
// into a proj4 definition.
func expandAuto(m []string) (string, error) {
	code := m[1]
	lon, lat := 0.0, 0.0
	if m[2] != "" {
		lon, _ = strconv.ParseFloat(m[2], 64)
	}
	if m[3] != "" {
		lat, _ = strconv.ParseFloat(m[3], 64)
	}

	switch code {
	case "42001": // universal transverse mercator
		zone := int((lon+180)/6)%60 + 1
		return fmt.Sprintf(
			"+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", zone), nil
	case "42002": // transverse mercator centered on lon
		return fmt.Sprintf(
			"+proj=tmerc +lon_0=%g +lat_0=0 +k=0.9996 +x_0=500000 "+
				"+datum=WGS84 +units=m +no_defs", lon), nil
	case "42003": // orthographic
		return fmt.Sprintf(
			"+proj=ortho +lon_0=%g +lat_0=%g +datum=WGS84 +units=m +no_defs",
			lon, lat), nil
	case "42004": // equirectangular
		return fmt.Sprintf(
			"+proj=eqc +lon_0=%g +lat_ts=%g +datum=WGS84 +units=m +no_defs",
			lon, lat), nil
	}
	return "", fmt.Errorf("unsupported AUTO code %s", code)
}

func userInputError(input string, err error) error {
	short := input
	if len(short) > 60 {
		short = short[:60] + "..."
	}
	return &gn.Error{
		Code: errcode.UserInputError,
		Msg:  "Cannot interpret CRS input <em>%s</em>",
		Vars: []any{short},
		Err:  fmt.Errorf("user input %q: %w", input, err),
	}
}
