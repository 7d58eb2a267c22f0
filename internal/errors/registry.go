package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Resource Load Errors (E101-E199)
	// ============================================

	"E101": {
		Category: CategoryLoad,
		Message:  "Data file could not be fetched",
		Detail:   "The data source returned an error. The page renders its empty state instead.",
	},
	"E102": {
		Category: CategoryLoad,
		Message:  "Data file is not valid JSON",
		Detail:   "The data file was fetched but could not be decoded. The page renders its empty state instead.",
	},
	"E103": {
		Category: CategoryLoad,
		Message:  "Candidate not found",
		Detail:   "No candidate in the directory matches the requested identifier.",
	},
	"E104": {
		Category: CategoryLoad,
		Message:  "Article not found",
		Detail:   "No article matches the requested identifier.",
	},

	// ============================================
	// Persistence Errors (E201-E299)
	// ============================================

	"E201": {
		Category: CategoryPersistence,
		Message:  "Stored value could not be read",
		Detail:   "The storage medium failed or held a malformed value. The default value is used instead.",
	},
	"E202": {
		Category: CategoryPersistence,
		Message:  "Stored value could not be written",
		Detail:   "The storage medium rejected the write. The change is not durable.",
	},
	"E203": {
		Category: CategoryPersistence,
		Message:  "Storage backend could not be opened",
	},

	// ============================================
	// Validation Errors (E301-E399)
	// ============================================

	"E301": {
		Category: CategoryValidation,
		Message:  "Required field is empty",
	},
	"E302": {
		Category: CategoryValidation,
		Message:  "Unknown action",
		Detail:   "The action marker does not match any known action and was ignored.",
	},

	// ============================================
	// Config Errors (E401-E499)
	// ============================================

	"E401": {
		Category: CategoryConfig,
		Message:  "Configuration file is invalid",
	},
	"E402": {
		Category: CategoryConfig,
		Message:  "Configuration value out of range",
	},
	"E403": {
		Category: CategoryConfig,
		Message:  "Unknown storage driver",
		Detail:   "Supported drivers are memory, bolt, sqlite and redis.",
	},
	"E404": {
		Category: CategoryConfig,
		Message:  "Unknown data source",
		Detail:   "Supported data sources are file, http and s3.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
