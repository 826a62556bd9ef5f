// Package pixelmap builds the scan-order index tables consumed by HUB75
// matrix drivers.
//
// A driver clocks pixels out address line by address line. For every
// address it walks each parallel data lane, and for every lane it clocks
// one column at a time. A Map lists, in exactly that order, the offset
// (x + width*y) of the framebuffer sample that must appear at each slot,
// so the caller can keep drawing into an ordinary row-major frame.
//
// Four wirings are supported: SimpleMultilane, ChainedMultilane (per-panel
// column remap), VerticalChain (panels chained down a lane) and Serpentine
// (odd address rows reversed). Lanes declared to the driver but not wired
// to any panel are declared with WithVirtualLanes and pruned from the map.
//
// LaneFlip and RotateLanes correct arrays whose lanes are mounted upside
// down by rotating each horizontal lane strip by 180 degrees.
//
// Maps are computed once and never mutated, so they can be shared between
// goroutines without locking.
package pixelmap
