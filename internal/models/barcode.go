package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/hashx"
)

// BarcodeFormat is the symbology a Barcode is rendered with.
type BarcodeFormat string

const (
	FormatQRCode     BarcodeFormat = "QR_CODE"
	FormatAztec      BarcodeFormat = "AZTEC"
	FormatDataMatrix BarcodeFormat = "DATA_MATRIX"
	FormatCode128    BarcodeFormat = "CODE_128"
	FormatCode39     BarcodeFormat = "CODE_39"
	FormatCode93     BarcodeFormat = "CODE_93"
	FormatEAN13      BarcodeFormat = "EAN_13"
	FormatPDF417     BarcodeFormat = "PDF_417"
)

// DefaultMessageEncoding is used when a barcode carries no usable charset.
const DefaultMessageEncoding = "UTF-8"

const pkFormatPrefix = "PKBarcodeFormat"

var linearFormats = map[BarcodeFormat]bool{
	FormatCode128: true,
	FormatCode39:  true,
	FormatCode93:  true,
	FormatEAN13:   true,
	FormatPDF417:  true,
}

var pkFormats = map[string]BarcodeFormat{
	"QR":         FormatQRCode,
	"Aztec":      FormatAztec,
	"DataMatrix": FormatDataMatrix,
	"PDF417":     FormatPDF417,
	"Code128":    FormatCode128,
	"Code39":     FormatCode39,
	"Code93":     FormatCode93,
	"EAN13":      FormatEAN13,
}

// AllBarcodeFormats lists the closed set of supported formats.
func AllBarcodeFormats() []BarcodeFormat {
	return []BarcodeFormat{
		FormatQRCode, FormatAztec, FormatDataMatrix,
		FormatCode128, FormatCode39, FormatCode93, FormatEAN13, FormatPDF417,
	}
}

// Valid reports whether f is a member of the closed format set.
func (f BarcodeFormat) Valid() bool {
	switch f {
	case FormatQRCode, FormatAztec, FormatDataMatrix,
		FormatCode128, FormatCode39, FormatCode93, FormatEAN13, FormatPDF417:
		return true
	}
	return false
}

// FormatFromString maps a "PKBarcodeFormat<Name>" identifier to a format.
// Anything it does not recognise, including "", yields FormatQRCode.
func FormatFromString(s string) BarcodeFormat {
	name, ok := strings.CutPrefix(s, pkFormatPrefix)
	if !ok {
		return FormatQRCode
	}
	if f, ok := pkFormats[name]; ok {
		return f
	}
	return FormatQRCode
}

// Barcode is an immutable scannable payload attached to a pass.
type Barcode struct {
	format          BarcodeFormat
	message         string
	messageEncoding string
	altText         *string
}

// NewBarcode builds a Barcode. The charset name is resolved through the IANA
// index; unknown or empty names fall back to UTF-8.
func NewBarcode(format BarcodeFormat, message, messageEncoding string, altText *string) Barcode {
	b := Barcode{
		format:          format,
		message:         message,
		messageEncoding: canonicalCharset(messageEncoding),
	}
	if altText != nil {
		s := *altText
		b.altText = &s
	}
	return b
}

func (b Barcode) Format() BarcodeFormat   { return b.format }
func (b Barcode) Message() string         { return b.message }
func (b Barcode) MessageEncoding() string { return b.messageEncoding }

// AltText returns the caption shown under the barcode, if any.
func (b Barcode) AltText() (string, bool) {
	if b.altText == nil {
		return "", false
	}
	return *b.altText, true
}

// Is1D reports whether the format is a linear symbology.
func (b Barcode) Is1D() bool {
	return linearFormats[b.format]
}

// Equal compares all four fields.
func (b Barcode) Equal(o Barcode) bool {
	if b.format != o.format || b.message != o.message || b.messageEncoding != o.messageEncoding {
		return false
	}
	if b.altText == nil || o.altText == nil {
		return b.altText == nil && o.altText == nil
	}
	return *b.altText == *o.altText
}

// Hash returns a structural digest; equal barcodes have equal hashes.
func (b Barcode) Hash() string {
	alt := "\x00nil"
	if b.altText != nil {
		alt = "\x01" + *b.altText
	}
	return hashx.SHA256(strings.Join([]string{string(b.format), b.message, b.messageEncoding, alt}, "\x1f"))
}

type barcodeJSON struct {
	Format          *string `json:"format"`
	Message         *string `json:"message"`
	MessageEncoding string  `json:"messageEncoding,omitempty"`
	AltText         *string `json:"altText,omitempty"`
}

// MarshalJSON writes the exchange shape. altText is omitted, not null, when unset.
func (b Barcode) MarshalJSON() ([]byte, error) {
	format := string(b.format)
	message := b.message
	return json.Marshal(barcodeJSON{
		Format:          &format,
		Message:         &message,
		MessageEncoding: b.messageEncoding,
		AltText:         b.altText,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON. Missing format or message is
// ErrMalformedBarcodeJSON; missing optional keys are tolerated.
func (b *Barcode) UnmarshalJSON(data []byte) error {
	var raw barcodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedBarcodeJSON, err)
	}
	if raw.Format == nil {
		return fmt.Errorf("%w: missing format", common.ErrMalformedBarcodeJSON)
	}
	if raw.Message == nil {
		return fmt.Errorf("%w: missing message", common.ErrMalformedBarcodeJSON)
	}
	format := BarcodeFormat(*raw.Format)
	if !format.Valid() {
		return fmt.Errorf("%w: unknown format %q", common.ErrMalformedBarcodeJSON, *raw.Format)
	}
	*b = NewBarcode(format, *raw.Message, raw.MessageEncoding, raw.AltText)
	return nil
}

// ToJSON is a convenience wrapper around MarshalJSON.
func (b Barcode) ToJSON() ([]byte, error) {
	return json.Marshal(b)
}

// BarcodeFromJSON decodes a barcode from its exchange shape.
func BarcodeFromJSON(data []byte) (Barcode, error) {
	var b Barcode
	if err := json.Unmarshal(data, &b); err != nil {
		return Barcode{}, err
	}
	return b, nil
}

func lookupCharset(name string) encoding.Encoding {
	if name == "" {
		return unicode.UTF8
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return unicode.UTF8
	}
	return enc
}

func canonicalCharset(name string) string {
	enc := lookupCharset(name)
	if enc == unicode.UTF8 {
		return DefaultMessageEncoding
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		return DefaultMessageEncoding
	}
	return canonical
}

// payload returns the message bytes in the barcode's charset.
func (b Barcode) payload() ([]byte, error) {
	out, err := lookupCharset(b.messageEncoding).NewEncoder().Bytes([]byte(b.message))
	if err != nil {
		return nil, fmt.Errorf("encode message as %s: %w", b.messageEncoding, err)
	}
	return out, nil
}
