// Package nodelink renders VirusTotal graphs as node-link diagrams.
//
// # Overview
//
// This package produces a Graphviz picture of a graph exactly as the API
// returned it, before any Maltego conversion. Entity nodes appear as rounded
// boxes; relationship nodes (link endpoints that VirusTotal does not list as
// nodes, or nodes of type "relationship") are drawn dashed and grey, and
// every edge is labelled with its connection type.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be written out and processed with external
// Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
