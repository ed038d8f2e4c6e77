package thumb

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// CropRect returns the part of src with the aspect ratio w:h that a
// thumbnail shows. Wide images lose equal amounts on the left and right;
// tall images lose a third of the excess at the top and two thirds at the
// bottom, since subjects tend to sit above the middle.
func CropRect(src image.Rectangle, w, h int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 || w <= 0 || h <= 0 {
		return src
	}
	if sw*h > sh*w {
		cw := max(1, sh*w/h)
		x := src.Min.X + (sw-cw)/2
		return image.Rect(x, src.Min.Y, x+cw, src.Max.Y)
	}
	ch := max(1, sw*h/w)
	y := src.Min.Y + (sh-ch)/3
	return image.Rect(src.Min.X, y, src.Max.X, y+ch)
}

// Thumbnail crops src to w:h, scales it down to fit w x h and rounds its
// corners. Images smaller than the box are not scaled up.
func Thumbnail(src image.Image, w, h, radius int) *image.NRGBA {
	crop := CropRect(src.Bounds(), w, h)
	ow, oh := crop.Dx(), crop.Dy()
	if ow > w {
		oh = max(1, oh*w/ow)
		ow = w
	}
	if oh > h {
		ow = max(1, ow*h/oh)
		oh = h
	}

	dst := image.NewNRGBA(image.Rect(0, 0, ow, oh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	RoundCorners(dst, radius)
	return dst
}

// RoundCorners fades the corners of img outside a circle of radius r.
func RoundCorners(img *image.NRGBA, r int) {
	b := img.Bounds()
	r = min(r, b.Dx()/2, b.Dy()/2)
	if r <= 0 {
		return
	}

	rf := float64(r)
	for dy := 0; dy < r; dy++ {
		for dx := 0; dx < r; dx++ {
			// Distance from the pixel center to the corner circle's center.
			d := math.Hypot(rf-float64(dx)-0.5, rf-float64(dy)-0.5)
			cover := math.Max(0, math.Min(1, rf-d+0.5))
			if cover >= 1 {
				continue
			}
			for _, p := range [4]image.Point{
				{b.Min.X + dx, b.Min.Y + dy},
				{b.Max.X - 1 - dx, b.Min.Y + dy},
				{b.Min.X + dx, b.Max.Y - 1 - dy},
				{b.Max.X - 1 - dx, b.Max.Y - 1 - dy},
			} {
				c := img.NRGBAAt(p.X, p.Y)
				c.A = uint8(math.Round(float64(c.A) * cover))
				img.SetNRGBA(p.X, p.Y, c)
			}
		}
	}
}
