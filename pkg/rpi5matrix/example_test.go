package rpi5matrix_test

import (
	"fmt"
	"image/color"

	"github.com/fcurrie/hub75-pixelmap/pkg/pixelmap"
	"github.com/fcurrie/hub75-pixelmap/pkg/rpi5matrix"
)

func Example() {
	// Two 64x32 panels stacked on one connector, four address lines.
	geom := pixelmap.PanelGeometry{
		PanelWidth:  64,
		PanelHeight: 32,
		Chains:      2,
		AddrLines:   4,
	}

	preview, err := rpi5matrix.NewPreviewDriver(geom)
	if err != nil {
		fmt.Printf("Failed to create driver: %v\n", err)
		return
	}

	matrix, err := rpi5matrix.NewMatrix(&rpi5matrix.Config{
		Geometry:   geom,
		Brightness: 255,
		FlipLanes:  2,
	}, preview)
	if err != nil {
		fmt.Printf("Failed to create matrix: %v\n", err)
		return
	}
	defer matrix.Close()

	if err := matrix.SetPixel(0, 0, color.RGBA{255, 0, 0, 255}); err != nil {
		fmt.Printf("Failed to set pixel: %v\n", err)
		return
	}
	if err := matrix.Show(); err != nil {
		fmt.Printf("Failed to show matrix: %v\n", err)
		return
	}

	fmt.Println(matrix)
	fmt.Println(preview.Image().RGBAAt(63, 31))
	// Output:
	// rpi5matrix{64x64 simple, 4 addr lines, 4 lanes (0 virtual), scan width 64}
	// {255 0 0 255}
}

func ExampleMatrix_Scroll() {
	geom := pixelmap.PanelGeometry{PanelWidth: 32, PanelHeight: 16, AddrLines: 3}
	preview, err := rpi5matrix.NewPreviewDriver(geom)
	if err != nil {
		fmt.Printf("Failed to create driver: %v\n", err)
		return
	}
	matrix, err := rpi5matrix.NewMatrix(&rpi5matrix.Config{Geometry: geom, Brightness: 255}, preview)
	if err != nil {
		fmt.Printf("Failed to create matrix: %v\n", err)
		return
	}
	defer matrix.Close()

	for x := 0; x < 32; x++ {
		if err := matrix.SetPixelColor(x, 0, 255, 0, 0); err != nil {
			fmt.Printf("Failed to set pixel: %v\n", err)
			return
		}
	}
	if err := matrix.Scroll(0, 5); err != nil {
		fmt.Printf("Failed to scroll matrix: %v\n", err)
		return
	}

	r, _, _, _ := matrix.GetPixelColor(10, 5)
	fmt.Println(r)
	// Output: 255
}
