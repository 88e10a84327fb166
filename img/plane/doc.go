// Package plane provides a row-major single-channel float32 image and the
// border rules used when a filter window reaches past the image edge.
//
// A Plane either owns its samples (New) or wraps a caller buffer (FromSlice):
//
//	p, err := plane.FromSlice(width, height, buf)
//	row := p.Row(y) // buf[y*width : (y+1)*width]
//
// # Border Handling
//
// Out-of-range coordinates are resolved per axis:
//
//	BorderMirror   - reflect, repeating the edge sample (-1 -> 0, -2 -> 1)
//	BorderClamp    - repeat the edge sample
//	BorderWrap     - tile the image
//	BorderConstant - read a fixed value
package plane
