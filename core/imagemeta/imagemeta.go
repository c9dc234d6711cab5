package imagemeta

import (
	"bytes"
	"fmt"
	"image"

	// Registers the PNG decoder with image.DecodeConfig.
	_ "image/png"
)

// Dimensions holds the pixel size of an image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Probe reads the dimensions of an image from its encoded bytes.
// Only the header is decoded; pixel data is never touched.
func Probe(data []byte) (Dimensions, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Dimensions{}, fmt.Errorf("failed to decode image header: %w", err)
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}

// IsSquare16 reports whether the dimensions are exactly 16x16.
func (d Dimensions) IsSquare16() bool {
	return d.Width == 16 && d.Height == 16
}

// String renders the dimensions as "WxH" for error messages.
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}
