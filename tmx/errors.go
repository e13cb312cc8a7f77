package tmx

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound occurs when the map document cannot be resolved.
	ErrNotFound = errors.New("tmx: document not found")

	// ErrMalformedDocument occurs when the XML is invalid or a required
	// attribute or element is missing.
	ErrMalformedDocument = errors.New("tmx: malformed document")

	// ErrUnsupportedEncoding is returned for tile data encodings other than
	// base64, csv or inline XML.
	ErrUnsupportedEncoding = errors.New("tmx: unsupported encoding")

	// ErrUnsupportedCompression is returned for any compression other than gzip.
	ErrUnsupportedCompression = errors.New("tmx: unsupported compression")

	// ErrCorruptPayload is returned when tile data cannot be decoded into
	// exactly width*height global ids.
	ErrCorruptPayload = errors.New("tmx: corrupt tile payload")
)

// ParseError identifies the construct that failed to parse. It unwraps to
// one of the sentinel errors above.
type ParseError struct {
	Element string
	Attr    string
	Value   string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Attr != "" && e.Value != "":
		return fmt.Sprintf("<%s %s=%q>: %v", e.Element, e.Attr, e.Value, e.Err)
	case e.Attr != "":
		return fmt.Sprintf("<%s %s>: %v", e.Element, e.Attr, e.Err)
	default:
		return fmt.Sprintf("<%s>: %v", e.Element, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func missingAttr(element, attr string) error {
	return &ParseError{Element: element, Attr: attr, Err: fmt.Errorf("%w: missing attribute", ErrMalformedDocument)}
}

func missingChild(element, child string) error {
	return &ParseError{Element: element, Err: fmt.Errorf("%w: missing <%s> element", ErrMalformedDocument, child)}
}
