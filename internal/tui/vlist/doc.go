// Package vlist implements a virtualized scrolling list for terminal UIs.
//
// Windowing is split from presentation. The pure engine (Compute, Window)
// maps a scroll offset onto the half-open item range [Start, End) that is
// worth rendering: the visible band plus a small overscan margin on each
// side. The Bubble Tea model (Model) drives the engine with key and mouse
// input, renders only the windowed items, and slices out the exact viewport
// band, so a list of 100k items costs the same to draw as a list of 40.
//
// A browser implementation of the same scheme would absolutely position a
// container spanning TotalHeight and translate the rendered block down by
// OffsetOf(Start). In a terminal there is no compositor, so the model
// instead skips the rows of the block that sit above the scroll offset and
// pads the tail, which preserves the same geometry.
package vlist
