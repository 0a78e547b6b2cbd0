// Package chart lays out bar and line charts as device-independent scenes
// drawn onto the mount points of a Board.
//
// Renderers never write output themselves. DrawBar and DrawLine compute the
// scales, axes, marks and legend of a chart, store the resulting Scene on a
// Target, and leave encoding to the exporters (SVG, HTML). Every renderer
// clears its target first, so drawing the same data twice yields the same
// scene.
package chart
