package ui

// DisplayConfig holds configuration for UI rendering
type DisplayConfig struct {
	// MaxTitleLength caps PR titles when the terminal width is unknown
	MaxTitleLength int
	// MinTitleLength is the narrowest a title column is squeezed to
	MinTitleLength       int
	DefaultTerminalWidth int
	// TimeFormat renders review times in the local time zone
	TimeFormat string
	TreeIndent string
}

// DefaultConfig returns the default display configuration
func DefaultConfig() DisplayConfig {
	return DisplayConfig{
		MaxTitleLength:       60,
		MinTitleLength:       20,
		DefaultTerminalWidth: 120,
		TimeFormat:           "2006-01-02 15:04",
		TreeIndent:           "  ",
	}
}

// Global display configuration (can be overridden)
var Display = DefaultConfig()
