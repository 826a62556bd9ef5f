package pixelmap_test

import (
	"fmt"

	"github.com/fcurrie/hub75-pixelmap/pkg/pixelmap"
)

func Example() {
	// Twelve 64x32 panels: four per chain on three connectors.
	geom := pixelmap.PanelGeometry{
		PanelWidth:     64,
		PanelHeight:    32,
		PanelsPerChain: 4,
		Chains:         3,
		AddrLines:      4,
	}

	m, err := geom.Build()
	if err != nil {
		fmt.Printf("Failed to build pixel map: %v\n", err)
		return
	}

	fmt.Println(geom)
	fmt.Println(m.Len(), m[0], m[256])
	// Output:
	// 256x96 simple, 4 addr lines, 6 lanes (0 virtual), scan width 256
	// 24576 0 4096
}

func ExampleNewLaneFlip() {
	flip, err := pixelmap.NewLaneFlip(64, 32, 2)
	if err != nil {
		fmt.Printf("Failed to create lane flip: %v\n", err)
		return
	}

	x, y := flip.Point(0, 0)
	fmt.Println(x, y)
	fmt.Println(flip.Point(x, y))
	// Output:
	// 63 15
	// 0 0
}

func ExampleSerpentine() {
	// Three lanes declared to the driver, two wired.
	m, err := pixelmap.Serpentine(4, 4, 1, 3, pixelmap.WithVirtualLanes(1))
	if err != nil {
		fmt.Printf("Failed to build pixel map: %v\n", err)
		return
	}
	fmt.Println(m)
	// Output:
	// [0 1 2 3 8 9 10 11 7 6 5 4 15 14 13 12]
}
