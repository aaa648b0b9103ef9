// Package server implements the MCP (Model Context Protocol) server for
// document location.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Document location:
//   - document_identify: Center, size, rotation and corners of the document
//   - document_identify_batch: Every scan of a directory, smoothed for SIMPLE batches
//   - document_correct_batch: Smooth documents found earlier
//   - document_mark: Working image with the document filled in
//   - document_crop: Straightened crop of the document
//   - document_ocr: Text of the straightened document
//
// Image helpers:
//   - image_dimensions: Width, height and format
//   - image_border_color: Estimated background color
//   - image_edge_detect: Canny edge map
//
// Batch calls that carry a progressToken in _meta receive
// notifications/progress after every file.
//
// # Image Caching
//
// Images are cached by path and reused across tool calls. Batch scans are
// evicted once the batch is done.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
