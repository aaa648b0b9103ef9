package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func property(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func propertyWithDefault(typ, description string, def interface{}) map[string]interface{} {
	p := property(typ, description)
	p["default"] = def
	return p
}

func pathProperty() map[string]interface{} {
	return property("string", "Absolute path to the image file")
}

// identifyProperties are the optional identifier overrides shared by every
// tool that locates a document.
func identifyProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path":           pathProperty(),
		"working_size":   property("integer", "Longest side of the image the search runs on. Default from configuration (600)"),
		"max_retries":    property("integer", "Attempts that may be used up before giving up. Default from configuration (3)"),
		"padding_width":  property("integer", "Pixels added to the document width, -99 to 99"),
		"padding_height": property("integer", "Pixels added to the document height, -99 to 99"),
		"morphology": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"none", "opening", "closing", "dilation", "erosion"},
			"description": "Initial morphological operator. Default closing",
		},
		"morphology_size": propertyWithDefault("integer", "Radius of the square structuring element", 1),
		"sensitivity": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"low", "medium", "high"},
			"description": "Initial edge detector sensitivity. Default low",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Document location
		{
			Name: "document_identify",
			Description: "Locate the document photographed or scanned on an image. Returns its center, width, height and " +
				"clockwise rotation in degrees, its four corners, and how many attempts the search needed.",
			InputSchema: objectSchema(identifyProperties(nil), "path"),
		},
		{
			Name: "document_identify_batch",
			Description: "Locate the document on every image of a directory (or a single file). For SIMPLE batches of " +
				"three or more similar scans, sizes and positions are smoothed across the batch.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": property("string", "Absolute path to a directory of scans or to one image"),
				"file_filter": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "File name suffixes to include. Default .png .jpg .jpeg .tif .tiff .bmp",
				},
				"behavior": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"SIMPLE", "COMPLEX"},
					"description": "SIMPLE batches are position corrected. Default from configuration",
				},
				"padding_width":  property("integer", "Pixels added to every document width, -99 to 99"),
				"padding_height": property("integer", "Pixels added to every document height, -99 to 99"),
				"write_report":   propertyWithDefault("boolean", "Write DocCrop_out.txt next to the scans", false),
			}, "path"),
		},
		{
			Name:        "document_correct_batch",
			Description: "Smooth a batch of at least three documents: every document gets the size at the given quantile and a position that is the median of its neighbours.",
			InputSchema: objectSchema(map[string]interface{}{
				"documents": map[string]interface{}{
					"type":        "array",
					"description": "Documents as returned by document_identify (x, y, width, height, rotation, id)",
					"items":       map[string]interface{}{"type": "object"},
				},
				"quantile": propertyWithDefault("number", "Size quantile between 0 and 1", 0.5),
			}, "documents"),
		},
		{
			Name:        "document_mark",
			Description: "Locate the document and return the working size image with the document filled in a translucent color, as base64 PNG.",
			InputSchema: objectSchema(identifyProperties(map[string]interface{}{
				"color":        propertyWithDefault("string", "Fill color as #RRGGBB or #RRGGBBAA", "#FF000060"),
				"grid_spacing": property("integer", "Overlay a coordinate grid with lines this many source pixels apart (0 for none)"),
			}), "path"),
		},
		{
			Name:        "document_crop",
			Description: "Locate the document, cut it out of the full resolution image and straighten it. Returns base64 PNG.",
			InputSchema: objectSchema(identifyProperties(map[string]interface{}{
				"scale": propertyWithDefault("number", "Scale factor applied to the crop", 1.0),
			}), "path"),
		},
		{
			Name:        "document_ocr",
			Description: "Locate the document, straighten it and read its text with Tesseract. Requires Tesseract and the language data to be installed.",
			InputSchema: objectSchema(identifyProperties(map[string]interface{}{
				"language": propertyWithDefault("string", "Tesseract language code", "eng"),
			}), "path"),
		},

		// Image helpers
		{
			Name:        "image_dimensions",
			Description: "Get the width, height, format and color depth of an image file.",
			InputSchema: objectSchema(map[string]interface{}{"path": pathProperty()}, "path"),
		},
		{
			Name:        "image_border_color",
			Description: "Estimate the background color around the document from the image borders.",
			InputSchema: objectSchema(map[string]interface{}{"path": pathProperty()}, "path"),
		},
		{
			Name:        "image_edge_detect",
			Description: "Run Canny edge detection and return the edge map as base64 PNG. Useful to see what the document search works on.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":           pathProperty(),
				"threshold_low":  propertyWithDefault("integer", "Lower hysteresis threshold (0-255)", 50),
				"threshold_high": propertyWithDefault("integer", "Upper hysteresis threshold (0-255)", 150),
			}, "path"),
		},
	}
}
