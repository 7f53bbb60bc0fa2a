package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Selector Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategorySelector,
		Message:  "Invalid selector",
		Detail:   "A lone \"#\" or \".\" is not a selector. The collection is left empty.",
	},
	"E002": {
		Category: CategorySelector,
		Message:  "Selector failed to compile",
		Detail:   "The string is not a valid CSS selector and matched nothing.",
	},
	"E003": {
		Category: CategorySelector,
		Message:  "Unsupported selector argument",
		Detail:   "The factory accepts nil, strings, nodes, node slices, collections and ready callbacks.",
	},
	"E004": {
		Category: CategorySelector,
		Message:  "HTML fragment parse failed",
		Detail:   "The input could not be parsed as an HTML fragment.",
	},

	// ============================================
	// Data Errors (E020-E029)
	// ============================================

	"E020": {
		Category: CategoryData,
		Message:  "Reserved dataset namespace",
		Detail:   "The \"dom\" and \"internal\" dataset names belong to the runtime.",
	},
	"E021": {
		Category: CategoryData,
		Message:  "Owner does not accept data",
		Detail:   "Text and comment nodes cannot carry a data cache.",
	},

	// ============================================
	// Event Errors (E030-E039)
	// ============================================

	"E030": {
		Category: CategoryEvent,
		Message:  "Event handler panicked",
		Detail:   "A handler panicked during dispatch. Remaining handlers and hooks still ran.",
	},
	"E031": {
		Category: CategoryEvent,
		Message:  "Event hook panicked",
		Detail:   "A before/after hook panicked during dispatch. Remaining handlers and hooks still ran.",
	},
	"E032": {
		Category: CategoryEvent,
		Message:  "Empty event name",
		Detail:   "An event spec must name at least one event or namespace.",
	},
	"E033": {
		Category: CategoryEvent,
		Message:  "Invalid hook phase",
		Detail:   "Hook phase must be \"before\" or \"after\".",
	},

	// ============================================
	// Config Errors (E040-E049)
	// ============================================

	"E040": {
		Category: CategoryConfig,
		Message:  "Invalid document location",
		Detail:   "Config.Location must be an absolute URL.",
	},
	"E041": {
		Category: CategoryConfig,
		Message:  "Metrics registration failed",
		Detail:   "The dispatch collectors could not be registered with the Prometheus registerer.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
