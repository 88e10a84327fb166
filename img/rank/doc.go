// Package rank implements non-linear neighbourhood filters over square
// windows: median, minimum (erosion) and maximum (dilation).
//
// Windows reaching past the image edge read samples through the same border
// rules as the linear filters. A 3x3 median uses a fixed 19-exchange network;
// larger medians use quickselect on a per-task scratch window.
//
// NaN samples have no defined rank; results for windows containing NaN are
// unspecified.
package rank
