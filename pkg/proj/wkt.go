package proj

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"

	"github.com/geonym/srsdb/pkg/errcode"
)

// wktNode is one bracketed element of a WKT document:
// KEYWORD["name", value, CHILD[...]].
type wktNode struct {
	keyword  string
	values   []string
	children []*wktNode
}

// find returns the first descendant node with the given keyword,
// searching depth-first.
func (n *wktNode) find(keyword string) *wktNode {
	for _, c := range n.children {
		if c.keyword == keyword {
			return c
		}
	}
	for _, c := range n.children {
		if res := c.find(keyword); res != nil {
			return res
		}
	}
	return nil
}

// name returns the first quoted value of the node.
func (n *wktNode) name() string {
	if len(n.values) == 0 {
		return ""
	}
	return n.values[0]
}

// parseWkt extracts the structured representation from a WKT
// document.
func parseWkt(wkt string) (*SR, error) {
	root, err := parseWktTree(wkt)
	if err != nil {
		return nil, err
	}

	sr := &SR{Params: make(map[string]string)}

	switch root.keyword {
	case "GEOGCS":
		sr.Name = "longlat"
		sr.Geographic = true
		sr.Units = "degrees"
		fillGeogcs(sr, root)
	case "PROJCS":
		projection := root.find("PROJECTION")
		if projection == nil {
			return nil, wktError(wkt, fmt.Errorf("PROJCS without PROJECTION"))
		}
		acronym, ok := wktProjections[projection.name()]
		if !ok {
			return nil, wktError(wkt, fmt.Errorf(
				"unknown projection %q", projection.name()))
		}
		sr.Name = acronym
		sr.Units = "m"
		if unit := unitOf(root); unit != "" {
			sr.Units = unit
		}
		sr.Params["units"] = sr.Units
		fillGeogcs(sr, root)
		fillParameters(sr, root)
	default:
		return nil, wktError(wkt, fmt.Errorf(
			"unsupported WKT root %q", root.keyword))
	}

	return sr, nil
}

// fillGeogcs pulls datum and ellipsoid from the GEOGCS subtree (or
// directly from a GEOGCS root).
func fillGeogcs(sr *SR, root *wktNode) {
	datum := root.find("DATUM")
	if datum != nil {
		name := strings.TrimPrefix(datum.name(), "D_")
		if acronym, ok := wktDatumNames[name]; ok {
			sr.Datum = acronym
			sr.Params["datum"] = acronym
		}
	}
	spheroid := root.find("SPHEROID")
	if spheroid != nil {
		if acronym, ok := spheroidAcronyms[spheroid.name()]; ok {
			sr.Ellps = acronym
		} else if len(spheroid.values) >= 3 {
			// fall back to matching the defining axes
			sr.Params["a"] = spheroid.values[1]
			sr.Params["rf"] = spheroid.values[2]
			sr.Ellps = deriveEllipsoid(sr.Params)
			if sr.Ellps != "" {
				delete(sr.Params, "a")
				delete(sr.Params, "rf")
			}
		}
	}
	if towgs := root.find("TOWGS84"); towgs != nil {
		sr.Params["towgs84"] = strings.Join(towgs.values, ",")
	}
}

// wktParamNames maps WKT PARAMETER names to proj4 parameter keys.
var wktParamNames = map[string]string{
	"central_meridian":    "lon_0",
	"latitude_of_origin":  "lat_0",
	"latitude_of_center":  "lat_0",
	"longitude_of_center": "lon_0",
	"standard_parallel_1": "lat_1",
	"standard_parallel_2": "lat_2",
	"scale_factor":        "k",
	"false_easting":       "x_0",
	"false_northing":      "y_0",
	"azimuth":             "alpha",
}

func fillParameters(sr *SR, root *wktNode) {
	for _, c := range root.children {
		if c.keyword != "PARAMETER" || len(c.values) < 2 {
			continue
		}
		key, ok := wktParamNames[strings.ToLower(c.values[0])]
		if !ok {
			continue
		}
		sr.Params[key] = trimNumber(c.values[1])
	}
}

// unitOf returns the proj4 unit code of the node's direct UNIT child.
func unitOf(root *wktNode) string {
	for _, c := range root.children {
		if c.keyword != "UNIT" {
			continue
		}
		switch strings.ToLower(c.name()) {
		case "metre", "meter":
			return "m"
		case "us survey foot", "us_survey_feet":
			return "us-ft"
		case "foot", "feet":
			return "ft"
		case "degree":
			return "degrees"
		}
	}
	return ""
}

// trimNumber removes a trailing ".0"-style zero fraction so WKT
// numbers compare equal to their proj4 spelling.
func trimNumber(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" {
		s = "0"
	}
	return s
}

// parseWktTree parses a WKT document into its node tree.
func parseWktTree(wkt string) (*wktNode, error) {
	p := &wktParser{src: wkt}
	node, err := p.parseNode()
	if err != nil {
		return nil, wktError(wkt, err)
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, wktError(wkt, fmt.Errorf(
			"trailing content at offset %d", p.pos))
	}
	return node, nil
}

type wktParser struct {
	src string
	pos int
}

func (p *wktParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *wktParser) parseNode() (*wktNode, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isKeywordChar(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, fmt.Errorf("expected keyword at offset %d", start)
	}
	node := &wktNode{keyword: strings.ToUpper(p.src[start:p.pos])}

	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '[' {
		return nil, fmt.Errorf("expected '[' after %s", node.keyword)
	}
	p.pos++ // consume '['

	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("unterminated %s", node.keyword)
		}
		switch p.src[p.pos] {
		case ']':
			p.pos++
			return node, nil
		case ',':
			p.pos++
		case '"':
			val, err := p.parseQuoted()
			if err != nil {
				return nil, err
			}
			node.values = append(node.values, val)
		default:
			if isKeywordChar(p.src[p.pos]) && p.peekChild() {
				child, err := p.parseNode()
				if err != nil {
					return nil, err
				}
				node.children = append(node.children, child)
			} else {
				node.values = append(node.values, p.parseBare())
			}
		}
	}
}

// peekChild reports whether the upcoming token is a nested node
// (keyword followed by '[') rather than a bare value.
func (p *wktParser) peekChild() bool {
	i := p.pos
	for i < len(p.src) && isKeywordChar(p.src[i]) {
		i++
	}
	for i < len(p.src) {
		switch p.src[i] {
		case ' ', '\t', '\n', '\r':
			i++
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

func (p *wktParser) parseQuoted() (string, error) {
	p.pos++ // consume opening quote
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '"' {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return "", fmt.Errorf("unterminated string at offset %d", start)
	}
	val := p.src[start:p.pos]
	p.pos++ // consume closing quote
	return val, nil
}

func (p *wktParser) parseBare() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ',' || c == ']' || c == ' ' || c == '\t' ||
			c == '\n' || c == '\r' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func isKeywordChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' ||
		c >= '0' && c <= '9' || c == '_'
}

// LooksLikeEsri reports whether a WKT document appears to be
// ESRI-flavored: D_ datum prefixes or single-quoted strings.
func LooksLikeEsri(wkt string) bool {
	return strings.Contains(wkt, `"D_`) || strings.Contains(wkt, "['")
}

// MorphFromEsri rewrites known ESRI WKT quirks into OGC form: single
// quotes become double quotes, D_ datum prefixes are dropped, and
// ESRI unit spellings are replaced.
func MorphFromEsri(wkt string) string {
	wkt = strings.ReplaceAll(wkt, "'", `"`)
	wkt = strings.ReplaceAll(wkt, `DATUM["D_`, `DATUM["`)
	wkt = strings.ReplaceAll(wkt, `UNIT["Degree"`, `UNIT["degree"`)
	wkt = strings.ReplaceAll(wkt, `UNIT["Meter"`, `UNIT["metre"`)
	return wkt
}

func wktError(wkt string, err error) error {
	short := wkt
	if len(short) > 60 {
		short = short[:60] + "..."
	}
	return &gn.Error{
		Code: errcode.WktParseError,
		Msg:  "Cannot parse WKT definition <em>%s</em>",
		Vars: []any{short},
		Err:  fmt.Errorf("wkt parse: %w", err),
	}
}
