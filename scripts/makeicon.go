//go:build ignore

// Generates the Plus Archiver application icon: a box with a plus sign.
package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
)

const size = 512

func main() {
	out := "Icon.png"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))

	background := color.RGBA{17, 24, 39, 255}
	box := color.RGBA{217, 119, 6, 255}
	plus := color.RGBA{255, 255, 255, 255}

	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	// Archive box with a lid band
	fill(img, image.Rect(96, 160, 416, 432), box)
	fill(img, image.Rect(80, 112, 432, 176), color.RGBA{180, 83, 9, 255})

	// Plus sign
	const arm, bar = 96, 28
	cx, cy := size/2, 304
	fill(img, image.Rect(cx-arm, cy-bar, cx+arm, cy+bar), plus)
	fill(img, image.Rect(cx-bar, cy-arm, cx+bar, cy+arm), plus)

	f, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		log.Fatal(err)
	}
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, &image.Uniform{c}, image.Point{}, draw.Src)
}
