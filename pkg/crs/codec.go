package crs

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gnames/gn"

	"github.com/geonym/srsdb/pkg/errcode"
	"github.com/geonym/srsdb/pkg/proj"
)

// spatialRefSysXML is the fixed persisted shape of an entity. Every
// field is always emitted, empty when unset, so the schema stays
// stable across versions. The validation hint is transient and never
// persisted.
type spatialRefSysXML struct {
	XMLName           xml.Name `xml:"spatialrefsys"`
	Proj4             string   `xml:"proj4"`
	SrsID             string   `xml:"srsid"`
	Srid              string   `xml:"srid"`
	Epsg              string   `xml:"epsg"`
	Description       string   `xml:"description"`
	ProjectionAcronym string   `xml:"projectionacronym"`
	EllipsoidAcronym  string   `xml:"ellipsoidacronym"`
}

// decoded mirrors spatialRefSysXML with pointer fields so an absent
// element is distinguishable from an empty one.
type spatialRefSysDecoded struct {
	XMLName           xml.Name `xml:"spatialrefsys"`
	Proj4             *string  `xml:"proj4"`
	SrsID             *string  `xml:"srsid"`
	Srid              *string  `xml:"srid"`
	Epsg              *string  `xml:"epsg"`
	Description       *string  `xml:"description"`
	ProjectionAcronym *string  `xml:"projectionacronym"`
	EllipsoidAcronym  *string  `xml:"ellipsoidacronym"`
}

// MarshalXML writes the entity as a <spatialrefsys> subtree into the
// caller's document.
func (c *CRS) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	doc := spatialRefSysXML{
		Proj4:             c.proj4Params,
		SrsID:             numField(c.srsID),
		Srid:              numField(c.srid),
		Epsg:              numField(c.epsgID),
		Description:       c.description,
		ProjectionAcronym: c.projectionAcronym,
		EllipsoidAcronym:  c.ellipsoidAcronym,
	}
	start.Name = xml.Name{Local: "spatialrefsys"}
	return e.EncodeElement(doc, start)
}

// UnmarshalXML reads a <spatialrefsys> subtree. When any required
// field is absent the decode fails and the entity state is
// unspecified: callers must not rely on the prior state surviving a
// failed decode.
func (c *CRS) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var doc spatialRefSysDecoded
	if err := d.DecodeElement(&doc, &start); err != nil {
		return malformedError(err)
	}

	fields := map[string]*string{
		"proj4":             doc.Proj4,
		"srsid":             doc.SrsID,
		"srid":              doc.Srid,
		"epsg":              doc.Epsg,
		"description":       doc.Description,
		"projectionacronym": doc.ProjectionAcronym,
		"ellipsoidacronym":  doc.EllipsoidAcronym,
	}
	for tag, v := range fields {
		if v == nil {
			return malformedError(fmt.Errorf("missing element <%s>", tag))
		}
	}

	srsID, err := parseNumField("srsid", *doc.SrsID)
	if err != nil {
		return err
	}
	srid, err := parseNumField("srid", *doc.Srid)
	if err != nil {
		return err
	}
	epsg, err := parseNumField("epsg", *doc.Epsg)
	if err != nil {
		return err
	}

	*c = CRS{
		srsID:             srsID,
		srid:              srid,
		epsgID:            epsg,
		description:       *doc.Description,
		projectionAcronym: *doc.ProjectionAcronym,
		ellipsoidAcronym:  *doc.EllipsoidAcronym,
		proj4Params:       *doc.Proj4,
	}
	if epsg > 0 {
		c.authName = "EPSG"
	}

	// re-derive classification and units from the parameters
	if sr, err := proj.ParseProj4(c.ToProj4()); err == nil {
		c.geographic = sr.Geographic
		c.mapUnits = sr.Units
		c.derivedAxes = true
		c.axisInverted = c.geographic && c.authName == "EPSG"
	}
	return nil
}

// Write serializes the entity into w as a standalone subtree.
func (c *CRS) Write(w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(c); err != nil {
		return &gn.Error{
			Code: errcode.PersistEncodeError,
			Msg:  "Cannot serialize CRS",
			Err:  fmt.Errorf("encode spatialrefsys: %w", err),
		}
	}
	return enc.Close()
}

// Read deserializes a subtree produced by Write.
func Read(r io.Reader) (CRS, error) {
	var c CRS
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		var gnErr *gn.Error
		if errors.As(err, &gnErr) {
			return CRS{}, err
		}
		return CRS{}, malformedError(err)
	}
	return c, nil
}

func numField(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

func parseNumField(tag, s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, malformedError(
			fmt.Errorf("element <%s> holds %q, expected a number", tag, s))
	}
	return n, nil
}

func malformedError(err error) error {
	return &gn.Error{
		Code: errcode.MalformedPersistedStateError,
		Msg:  "Stored CRS document is malformed",
		Err:  fmt.Errorf("malformed spatialrefsys subtree: %w", err),
	}
}
