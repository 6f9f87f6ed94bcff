package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the page image",
	}
}

func outputDirProperty(what string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Directory to write " + what + " into (created if missing)",
	}
}

// detectionProperties are the per-call overrides shared by every tool that
// runs detection.
func detectionProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"line_weight": map[string]interface{}{
			"type":        "integer",
			"description": "Minimum run length in pixels for a line. Default from config (10)",
			"minimum":     1,
		},
		"tolerance": map[string]interface{}{
			"type":        "integer",
			"description": "Edge matching slack and interior inset in pixels. Default from config (5)",
			"minimum":     0,
		},
		"merge_gap": map[string]interface{}{
			"type":        "integer",
			"description": "Largest step in pixels between ink pixels of one line; 1 means contiguous. Default from config (5)",
			"minimum":     1,
		},
		"threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Binarization level 0-255; pixels darker than this are ink. 0 treats only pure black as ink. Default from config (128)",
			"minimum":     0,
			"maximum":     255,
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "table_load",
			Description: "Load a page image and return its dimensions, format and whether it is already black and white. The image stays cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "table_detect_lines",
			Description: "Find the horizontal and vertical ruled lines on a page. Returns one segment per line with its fixed coordinate and span.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectionProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "table_detect_cells",
			Description: "Find table cells drawn as ruled borders. Returns the smallest rectangles whose four edges are drawn lines and whose interior holds no further lines, as x1,y1,x2,y2 line positions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(detectionProperties(), map[string]interface{}{
					"include_lines": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the detected line segments and validated rectangles",
						"default":     false,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "table_overlay",
			Description: "Detect cells and return the page as base64 PNG with every cell outlined in its own color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(detectionProperties(), map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Fixed outline color as #RRGGBB or #RRGGBBAA. Default: one palette color per cell",
					},
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Outline width in pixels. Default 2",
					},
					"fill": map[string]interface{}{
						"type":        "number",
						"description": "Interior tint strength 0-1. Default 0.2",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "table_export_cells",
			Description: "Detect cells and save each one as a separate image file, named cell_000, cell_001, ... in resolution order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(detectionProperties(), map[string]interface{}{
					"output_dir": outputDirProperty("cell images"),
					"inset": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels trimmed from each side so ruled lines are excluded. Default 0",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor for each crop. Default 1.0",
						"default":     1.0,
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpg", "gif", "bmp", "tif"},
						"description": "Output file format. Default png",
					},
				}),
				"required": []string{"path", "output_dir"},
			},
		},
		{
			Name:        "table_sequence",
			Description: "Detect cells and write shaded frames (im0.png, im1.png, ...) showing the order in which cells were resolved. Returns the cells that were visible when shaded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(detectionProperties(), map[string]interface{}{
					"output_dir": outputDirProperty("frames"),
				}),
				"required": []string{"path", "output_dir"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
