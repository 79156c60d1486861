package geoportal

import (
	"image"
	"image/color"
	"image/draw"
)

// Demo maps are reported as centered on Warsaw.
const (
	DemoLat = 52.2297
	DemoLon = 21.0122
)

// Default viewport when the caller does not specify one.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// DemoImage renders the built-in sample scene used when no live tile
// service is reachable. It is a flat aerial view with one prominent
// gable roof, so there is always something to trace and measure.
func DemoImage(width, height int) image.Image {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	grass := color.RGBA{R: 0x6e, G: 0x8c, B: 0x50, A: 0xff}
	asphalt := color.RGBA{R: 0x55, G: 0x55, B: 0x58, A: 0xff}
	tileLit := color.RGBA{R: 0xb4, G: 0x5a, B: 0x3c, A: 0xff}
	tileShade := color.RGBA{R: 0x8c, G: 0x41, B: 0x2d, A: 0xff}
	ridge := color.RGBA{R: 0x64, G: 0x2d, B: 0x1e, A: 0xff}
	shed := color.RGBA{R: 0x5a, G: 0x5f, B: 0x64, A: 0xff}
	drive := color.RGBA{R: 0x9a, G: 0x93, B: 0x85, A: 0xff}

	fillRect(img, img.Bounds(), grass)

	// Roads along the south and west edges.
	fillRect(img, image.Rect(0, height*17/20, width, height*18/20), asphalt)
	fillRect(img, image.Rect(width/20, 0, width*2/20, height*17/20), asphalt)

	// Driveway connecting the house to the south road.
	fillRect(img, image.Rect(width*11/20, height*13/20, width*12/20, height*17/20), drive)

	// Main house: a gable roof seen from above, ridge running
	// east-west. The north face is in shade, the south face lit.
	houseLeft := width * 6 / 20
	houseRight := width * 13 / 20
	houseTop := height * 5 / 20
	houseBottom := height * 12 / 20
	houseMid := (houseTop + houseBottom) / 2
	fillRect(img, image.Rect(houseLeft, houseTop, houseRight, houseMid), tileShade)
	fillRect(img, image.Rect(houseLeft, houseMid, houseRight, houseBottom), tileLit)
	fillRect(img, image.Rect(houseLeft, houseMid-1, houseRight, houseMid+1), ridge)

	// Small outbuilding with a flat roof.
	fillRect(img, image.Rect(width*15/20, height*6/20, width*18/20, height*9/20), shed)

	return img
}

func fillRect(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}
