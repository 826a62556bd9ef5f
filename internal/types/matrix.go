package types

import (
	"image"
	"image/color"
)

// Matrix represents a display matrix
type Matrix interface {
	// Clear clears the matrix
	Clear() error
	// SetPixel sets a pixel at the given coordinates to the given color
	SetPixel(x, y int, c color.Color) error
	// SetImage copies an image into the buffer
	SetImage(img image.Image) error
	// GetDimensions returns the logical frame size
	GetDimensions() (width, height int)
	// Show updates the display with the current buffer
	Show() error
	// Close closes the matrix
	Close() error
}
