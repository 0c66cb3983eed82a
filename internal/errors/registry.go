package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Suggestion: "Check that nestroute.json is valid JSON",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},
	"E141": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create nestroute.json in the project root or pass --config",
	},

	// ============================================
	// Pattern Errors (E200-E219)
	// ============================================

	"E200": {
		Category:   CategoryPattern,
		Message:    "Invalid route pattern",
		Suggestion: "Patterns look like /users/:id or /files/*path",
	},
	"E201": {
		Category:   CategoryPattern,
		Message:    "Parameter segment has no name",
		Suggestion: "Name the parameter, e.g. :id instead of :",
	},
	"E202": {
		Category:   CategoryPattern,
		Message:    "Wildcard segment must be last",
		Suggestion: "Move the wildcard to the end of the pattern",
	},
	"E203": {
		Category:   CategoryPattern,
		Message:    "Unknown parameter type",
		Suggestion: "Supported types are string, int, uint and uuid",
	},
	"E204": {
		Category:   CategoryPattern,
		Message:    "Empty path segment",
		Suggestion: "Remove the doubled slash from the pattern",
	},

	// ============================================
	// Manifest Errors (E300-E319)
	// ============================================

	"E300": {
		Category:   CategoryManifest,
		Message:    "Failed to parse route manifest",
		Suggestion: "Check the manifest for YAML or JSON syntax errors",
	},
	"E301": {
		Category: CategoryManifest,
		Message:  "Invalid manifest entry",
	},
	"E302": {
		Category:   CategoryManifest,
		Message:    "Route manifest not found",
		Suggestion: "Set \"manifest\" in nestroute.json or pass --manifest",
	},
	"E303": {
		Category:   CategoryManifest,
		Message:    "Unsupported manifest format",
		Suggestion: "Use a .yaml, .yml or .json file",
	},

	// ============================================
	// Publish Errors (E400-E419)
	// ============================================

	"E400": {
		Category: CategoryPublish,
		Message:  "Failed to publish route registry",
	},
	"E401": {
		Category:   CategoryPublish,
		Message:    "No publish target configured",
		Suggestion: "Set publish.file or publish.s3.bucket in nestroute.json",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
