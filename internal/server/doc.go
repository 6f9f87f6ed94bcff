// Package server implements the MCP (Model Context Protocol) server for table
// cell detection.
//
// This package provides a JSON-RPC 2.0 server that exposes the ruled-line
// detection pipeline through the MCP protocol, so an MCP client can ask where
// the cells of a scanned table are before reading them.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - table_load: Load a page and get metadata
//   - table_detect_lines: Ruled line segments
//   - table_detect_cells: Resolved cells, optionally with lines and validated rectangles
//   - table_overlay: Page with cells outlined, as base64 PNG
//   - table_export_cells: One image file per cell
//   - table_sequence: Shaded frames showing resolution order
//
// Every detecting tool accepts line_weight, tolerance, merge_gap and
// threshold. Omitted values come from the config the server was built with.
//
// # Image Caching
//
// Decoded pages are cached by path for the lifetime of the process. Rasters
// are rebuilt per call because they depend on the threshold.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(cfg)
//	if err := srv.Serve(os.Stdin, os.Stdout); err != nil {
//	    slog.Error("server stopped", "error", err)
//	}
package server
