package frame

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Scale resamples src to fill dst with bilinear filtering.
func Scale(dst xdraw.Image, src image.Image) {
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}

// Copy copies src into dst starting at sp in src, clipping to dst.
func Copy(dst xdraw.Image, src image.Image, sp image.Point) {
	xdraw.Copy(dst, image.Point{}, src, image.Rectangle{Min: sp, Max: sp.Add(dst.Bounds().Size())}, xdraw.Src, nil)
}

// Fit draws src into dst, copying when the sizes match and scaling
// otherwise.
func Fit(dst xdraw.Image, src image.Image) {
	if src.Bounds().Size() == dst.Bounds().Size() {
		Copy(dst, src, src.Bounds().Min)
		return
	}
	Scale(dst, src)
}
