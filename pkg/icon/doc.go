// Package icon converts alpha-channel icons into 1 bit per pixel masks
// and renders them as PROGMEM byte arrays for firmware sources.
//
// A pixel is set when its 8-bit alpha is strictly greater than the
// threshold. Pixels are packed row-major, most significant bit first.
package icon
