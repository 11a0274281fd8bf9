package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Diagnostics (E001-E099)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Write to readonly target ignored",
		DocURL:   "https://minivue.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Component has no render function",
		DocURL:   "https://minivue.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryRuntime,
		Message:  "provide/inject called outside setup",
		DocURL:   "https://minivue.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryRuntime,
		Message:  "Unknown host node",
		DocURL:   "https://minivue.dev/docs/errors/E004",
	},
	"E005": {
		Category: CategoryRuntime,
		Message:  "Emit handler rejected arguments",
		DocURL:   "https://minivue.dev/docs/errors/E005",
	},

	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		DocURL:   "https://minivue.dev/docs/errors/E120",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   "https://minivue.dev/docs/errors/E122",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		DocURL:   "https://minivue.dev/docs/errors/E141",
	},

	// ============================================
	// Storage Errors (E200-E249)
	// ============================================

	"E201": {
		Category: CategoryStorage,
		Message:  "Snapshot write failed",
		DocURL:   "https://minivue.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryStorage,
		Message:  "Invalid snapshot target",
		DocURL:   "https://minivue.dev/docs/errors/E202",
	},

	// ============================================
	// Protocol Errors (E300-E349)
	// ============================================

	"E301": {
		Category: CategoryProtocol,
		Message:  "Malformed live message",
		DocURL:   "https://minivue.dev/docs/errors/E301",
	},
	"E302": {
		Category: CategoryProtocol,
		Message:  "Live event failed",
		DocURL:   "https://minivue.dev/docs/errors/E302",
	},

	// ============================================
	// CLI Errors (E400-E449)
	// ============================================

	"E401": {
		Category: CategoryCLI,
		Message:  "Unknown demo",
		DocURL:   "https://minivue.dev/docs/errors/E401",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
