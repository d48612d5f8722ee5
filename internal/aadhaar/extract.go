package aadhaar

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrInvalidXML means the payload could not be parsed as XML.
	ErrInvalidXML = errors.New("invalid XML format")

	// ErrMissingRoot means the XML parsed but carries no
	// PrintLetterBarcodeData element.
	ErrMissingRoot = errors.New("missing " + rootElement + " element")
)

// maxDiagnosticLen bounds the parser diagnostic carried in ErrInvalidXML
// wrappers; raw scan text can be arbitrarily long garbage.
const maxDiagnosticLen = 100

// Extract parses normalized payload text and reads the card fields off the
// first PrintLetterBarcodeData element. Absent attributes become empty
// strings, unknown attributes are ignored, values are taken verbatim.
func Extract(xmlText string) (Record, error) {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return Record{}, ErrMissingRoot
		}
		if err != nil {
			return Record{}, fmt.Errorf("%w: %s", ErrInvalidXML, truncate(err.Error(), maxDiagnosticLen))
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != rootElement {
			continue
		}
		return recordFromAttrs(start.Attr), nil
	}
}

// recordFromAttrs maps the fifteen short attribute codes of the wire format
// onto a Record.
func recordFromAttrs(attrs []xml.Attr) Record {
	var record Record
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "uid":
			record.UID = attr.Value
		case "name":
			record.Name = attr.Value
		case "gender":
			record.Gender = attr.Value
		case "yob":
			record.YearOfBirth = attr.Value
		case "dob":
			record.DateOfBirth = attr.Value
		case "co":
			record.CareOf = attr.Value
		case "house":
			record.House = attr.Value
		case "street":
			record.Street = attr.Value
		case "loc":
			record.Locality = attr.Value
		case "vtc":
			record.VTC = attr.Value
		case "po":
			record.PostOffice = attr.Value
		case "dist":
			record.District = attr.Value
		case "subdist":
			record.SubDistrict = attr.Value
		case "state":
			record.State = attr.Value
		case "pc":
			record.PINCode = attr.Value
		}
	}
	return record
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
