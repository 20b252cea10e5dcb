package errors

import "sort"

// Registered error codes.
const (
	CodeOutOfOrderLine   = "ST001"
	CodeLineOverflow     = "ST002"
	CodeUnbalancedClose  = "ST003"
	CodeFinished         = "ST004"
	CodeInvalidConfig    = "ST005"
	CodeConfigNotFound   = "ST101"
	CodeConfigParse      = "ST102"
	CodeConfigInvalid    = "ST103"
	CodeScriptParse      = "ST201"
	CodeScriptOp         = "ST202"
	CodeUnknownComponent = "ST203"
	CodeMalformedFrames  = "ST301"
	CodeRender           = "ST302"
	CodePublish          = "ST401"
	CodePreview          = "ST402"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Build Errors (ST001-ST099)
	// ============================================

	CodeOutOfOrderLine: {
		Category: CategoryBuild,
		Message:  "Source line is lower than the previous one",
		Detail:   "Builder calls must be issued in source order during a single build pass.",
	},
	CodeLineOverflow: {
		Category: CategoryBuild,
		Message:  "Too many operations on one source line",
		Detail:   "The operations attributed to one line exceeded the configured per-line capacity.",
	},
	CodeUnbalancedClose: {
		Category: CategoryBuild,
		Message:  "Unbalanced open/close calls",
		Detail:   "Every element, component and region that is opened must be closed exactly once.",
	},
	CodeFinished: {
		Category: CategoryBuild,
		Message:  "Builder already finished",
		Detail:   "No operations may be issued after Finish.",
	},
	CodeInvalidConfig: {
		Category: CategoryBuild,
		Message:  "Invalid builder configuration",
	},

	// ============================================
	// Config Errors (ST100-ST199)
	// ============================================

	CodeConfigNotFound: {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
	CodeConfigParse: {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// ============================================
	// Script Errors (ST200-ST299)
	// ============================================

	CodeScriptParse: {
		Category: CategoryScript,
		Message:  "Invalid build script",
	},
	CodeScriptOp: {
		Category: CategoryScript,
		Message:  "Invalid script operation",
	},
	CodeUnknownComponent: {
		Category: CategoryScript,
		Message:  "Unknown component",
		Detail:   "The component name is not registered.",
	},

	// ============================================
	// Sink Errors (ST300-ST399)
	// ============================================

	CodeMalformedFrames: {
		Category: CategorySink,
		Message:  "Malformed render tree",
	},
	CodeRender: {
		Category: CategorySink,
		Message:  "Render failed",
	},

	// ============================================
	// Publish Errors (ST400-ST499)
	// ============================================

	CodePublish: {
		Category: CategoryPublish,
		Message:  "Upload failed",
	},
	CodePreview: {
		Category: CategoryPublish,
		Message:  "Preview server error",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
