package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophwallet/internal/common"
)

func strPtr(s string) *string { return &s }

func TestBarcode_Is1D_ClassifiesEveryFormat(t *testing.T) {
	want := map[BarcodeFormat]bool{
		FormatQRCode:     false,
		FormatAztec:      false,
		FormatDataMatrix: false,
		FormatCode128:    true,
		FormatCode39:     true,
		FormatCode93:     true,
		FormatEAN13:      true,
		FormatPDF417:     true,
	}
	require.Len(t, AllBarcodeFormats(), len(want))
	for _, f := range AllBarcodeFormats() {
		t.Run(string(f), func(t *testing.T) {
			b := NewBarcode(f, "test message", "UTF-8", nil)
			assert.Equal(t, want[f], b.Is1D())
		})
	}
}

func TestFormatFromString(t *testing.T) {
	tests := []struct {
		in   string
		want BarcodeFormat
	}{
		{"PKBarcodeFormatPDF417", FormatPDF417},
		{"PKBarcodeFormatAztec", FormatAztec},
		{"PKBarcodeFormatCode128", FormatCode128},
		{"PKBarcodeFormatCode39", FormatCode39},
		{"PKBarcodeFormatCode93", FormatCode93},
		{"PKBarcodeFormatQR", FormatQRCode},
		{"UnknownFormat", FormatQRCode},
		{"garbage", FormatQRCode},
		{"PKBarcodeFormat", FormatQRCode},
		{"", FormatQRCode},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromString(tt.in))
		})
	}
}

func TestBarcode_ToJSON_WithAltText(t *testing.T) {
	b := NewBarcode(FormatQRCode, "test message", "UTF-8", strPtr("alternative text"))

	data, err := b.ToJSON()
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "QR_CODE", m["format"])
	assert.Equal(t, "test message", m["message"])
	assert.Equal(t, "alternative text", m["altText"])
}

func TestBarcode_ToJSON_OmitsNilAltText(t *testing.T) {
	b := NewBarcode(FormatCode128, "12345", "UTF-8", nil)

	data, err := b.ToJSON()
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "CODE_128", m["format"])
	assert.Equal(t, "12345", m["message"])
	_, present := m["altText"]
	assert.False(t, present, "altText key must be absent, got %s", data)
}

func TestBarcodeFromJSON(t *testing.T) {
	t.Run("with alt text", func(t *testing.T) {
		b, err := BarcodeFromJSON([]byte(`{"format":"QR_CODE","message":"test message","messageEncoding":"UTF-8","altText":"alt"}`))
		require.NoError(t, err)
		assert.Equal(t, FormatQRCode, b.Format())
		alt, ok := b.AltText()
		require.True(t, ok)
		assert.Equal(t, "alt", alt)
	})

	t.Run("without alt text", func(t *testing.T) {
		b, err := BarcodeFromJSON([]byte(`{"format":"CODE_128","message":"test","messageEncoding":"UTF-8"}`))
		require.NoError(t, err)
		_, ok := b.AltText()
		assert.False(t, ok)
	})

	t.Run("missing encoding falls back to utf-8", func(t *testing.T) {
		b, err := BarcodeFromJSON([]byte(`{"format":"QR_CODE","message":"test"}`))
		require.NoError(t, err)
		assert.Equal(t, DefaultMessageEncoding, b.MessageEncoding())
	})

	t.Run("unknown encoding falls back to utf-8", func(t *testing.T) {
		b, err := BarcodeFromJSON([]byte(`{"format":"QR_CODE","message":"test","messageEncoding":"klingon-8"}`))
		require.NoError(t, err)
		assert.Equal(t, DefaultMessageEncoding, b.MessageEncoding())
	})

	t.Run("known charset is kept", func(t *testing.T) {
		b, err := BarcodeFromJSON([]byte(`{"format":"QR_CODE","message":"test","messageEncoding":"iso-8859-1"}`))
		require.NoError(t, err)
		assert.NotEqual(t, DefaultMessageEncoding, b.MessageEncoding())
		assert.True(t, b.Equal(NewBarcode(FormatQRCode, "test", "ISO-8859-1", nil)))
	})

	t.Run("extra keys are ignored", func(t *testing.T) {
		_, err := BarcodeFromJSON([]byte(`{"format":"AZTEC","message":"m","color":"red"}`))
		require.NoError(t, err)
	})
}

func TestBarcodeFromJSON_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing format", `{"message":"m"}`},
		{"missing message", `{"format":"QR_CODE"}`},
		{"unknown format", `{"format":"HOLOGRAM","message":"m"}`},
		{"not json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BarcodeFromJSON([]byte(tt.in))
			require.ErrorIs(t, err, common.ErrMalformedBarcodeJSON)
		})
	}
}

func TestBarcode_JSONRoundTrip(t *testing.T) {
	for _, alt := range []*string{nil, strPtr("caption")} {
		for _, f := range AllBarcodeFormats() {
			src := NewBarcode(f, "payload", "UTF-8", alt)
			data, err := src.ToJSON()
			require.NoError(t, err)

			got, err := BarcodeFromJSON(data)
			require.NoError(t, err)
			assert.True(t, src.Equal(got), "round trip changed %s", data)
		}
	}
}

func TestBarcode_EqualAndHash(t *testing.T) {
	base := NewBarcode(FormatQRCode, "message", "UTF-8", strPtr("alt"))

	same := NewBarcode(FormatQRCode, "message", "UTF-8", strPtr("alt"))
	assert.True(t, base.Equal(same))
	assert.Equal(t, base.Hash(), same.Hash())
	assert.Equal(t, base.Hash(), base.Hash())

	others := []Barcode{
		NewBarcode(FormatQRCode, "message2", "UTF-8", strPtr("alt")),
		NewBarcode(FormatCode128, "message", "UTF-8", strPtr("alt")),
		NewBarcode(FormatQRCode, "message", "UTF-8", strPtr("alt2")),
		NewBarcode(FormatQRCode, "message", "UTF-8", nil),
		NewBarcode(FormatQRCode, "message", "ISO-8859-1", strPtr("alt")),
	}
	for _, o := range others {
		assert.False(t, base.Equal(o))
		assert.NotEqual(t, base.Hash(), o.Hash())
	}

	assert.True(t, NewBarcode(FormatQRCode, "m", "", nil).Equal(NewBarcode(FormatQRCode, "m", "", nil)))
}

func TestNewBarcode_CopiesAltText(t *testing.T) {
	alt := "before"
	b := NewBarcode(FormatQRCode, "m", "", &alt)
	alt = "after"

	got, _ := b.AltText()
	assert.Equal(t, "before", got)
}
