package models

import (
	"fmt"
	"image"
	"image/color"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/aztec"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/code93"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/pdf417"
	"github.com/boombuler/barcode/qr"
	"github.com/disintegration/imaging"

	"github.com/dmitrijs2005/gophwallet/internal/common"
)

const pdf417SecurityLevel = 2

// symbol encodes the payload at one pixel per module.
func (b Barcode) symbol() (barcode.Barcode, error) {
	data, err := b.payload()
	if err != nil {
		return nil, err
	}
	switch b.format {
	case FormatAztec:
		return aztec.Encode(data, aztec.DEFAULT_EC_PERCENT, aztec.DEFAULT_LAYERS)
	case FormatDataMatrix:
		return datamatrix.Encode(string(data))
	case FormatCode128:
		return code128.Encode(string(data))
	case FormatCode39:
		return code39.Encode(string(data), false, true)
	case FormatCode93:
		return code93.Encode(string(data), true, true)
	case FormatEAN13:
		return ean.Encode(string(data))
	case FormatPDF417:
		return pdf417.Encode(string(data), pdf417SecurityLevel)
	default:
		return qr.Encode(string(data), qr.M, qr.Auto)
	}
}

// EncodeAsBitmap renders the barcode into an image of exactly width × height
// pixels. The symbol is scaled with nearest-neighbour sampling and centred;
// 2D symbols keep square modules, linear ones fill the full height. Invert
// swaps foreground and background.
func (b Barcode) EncodeAsBitmap(width, height int, invert bool) (*image.NRGBA, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", common.ErrInvalidDimensions, width, height)
	}

	sym, err := b.symbol()
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", b.format, err)
	}

	src := sym.Bounds()
	dw, dh := fitInto(src.Dx(), src.Dy(), width, height)
	scaled := imaging.Resize(sym, dw, dh, imaging.NearestNeighbor)

	canvas := imaging.New(width, height, color.White)
	out := imaging.PasteCenter(canvas, scaled)
	if invert {
		out = imaging.Invert(out)
	}
	return out, nil
}

// fitInto returns the largest size that fits w × h while keeping the source
// aspect ratio. A source that is one pixel high is a linear code and is
// stretched to the full height instead.
func fitInto(srcW, srcH, w, h int) (int, int) {
	if srcW < 1 || srcH < 1 {
		return w, h
	}
	if srcH == 1 {
		return w, h
	}
	dw, dh := w, srcH*w/srcW
	if dh > h {
		dw, dh = srcW*h/srcH, h
	}
	return max(dw, 1), max(dh, 1)
}
