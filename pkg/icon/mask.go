package icon

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

const (
	// DefaultSize is the width and height of firmware icons.
	DefaultSize = 32
	// DefaultThreshold is the alpha above which a pixel is opaque.
	DefaultThreshold uint8 = 128
)

// ErrNoAlpha indicates the image has no alpha channel.
var ErrNoAlpha = errors.New("image has no alpha channel")

// SizeError reports an image whose dimensions don't match the expected size.
type SizeError struct {
	Width, Height         int
	WantWidth, WantHeight int
}

// Error implements error.
func (e *SizeError) Error() string {
	return fmt.Sprintf("image is %dx%d, expected %dx%d", e.Width, e.Height, e.WantWidth, e.WantHeight)
}

// Mask is a packed 1 bit per pixel bitmap.
type Mask struct {
	Width  int
	Height int
	Bits   []byte
}

// NewMask creates a cleared mask.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Bits:   make([]byte, (width*height+7)/8),
	}
}

// Set sets the bit of pixel index i.
func (m *Mask) Set(i int) {
	m.Bits[i/8] |= 1 << uint(7-i%8)
}

// IsSet tests the bit of pixel index i.
func (m *Mask) IsSet(i int) bool {
	return m.Bits[i/8]&(1<<uint(7-i%8)) != 0
}

// At tests the pixel at (x, y).
func (m *Mask) At(x, y int) bool {
	return m.IsSet(x + m.Width*y)
}

// HasAlpha reports whether the image carries an alpha channel.
func HasAlpha(img image.Image) bool {
	return modelHasAlpha(img.ColorModel())
}

func modelHasAlpha(m color.Model) bool {
	switch m {
	case color.GrayModel, color.Gray16Model, color.YCbCrModel, color.CMYKModel:
		return false
	}
	return true
}

// DecodedHasAlpha reports whether a file decoded to color model m stored an
// alpha channel. Decoders use the premultiplied RGBA models only for
// truecolor files without alpha, and the non-premultiplied ones otherwise.
func DecodedHasAlpha(m color.Model) bool {
	switch m {
	case color.RGBAModel, color.RGBA64Model:
		return false
	}
	return modelHasAlpha(m)
}

// AlphaMask samples the alpha channel of img into a Mask.
// img must be exactly width x height.
func AlphaMask(img image.Image, width, height int, threshold uint8) (*Mask, error) {
	if !HasAlpha(img) {
		return nil, ErrNoAlpha
	}
	bounds := img.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		return nil, &SizeError{
			Width: bounds.Dx(), Height: bounds.Dy(),
			WantWidth: width, WantHeight: height,
		}
	}
	m := NewMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			_, _, _, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if uint8(a>>8) > threshold {
				m.Set(x + width*y)
			}
		}
	}
	return m, nil
}
