package cmd

// CommandArgs contains parsed command arguments
type CommandArgs struct {
	// Positional arguments (command-specific)
	Args []string

	// Parsed flags
	Flags map[string]any

	// Raw unparsed arguments (for custom parsing)
	Raw []string
}

// CommandFlagSet defines the expected flags for a command
type CommandFlagSet struct {
	Flags map[string]*CommandFlag
}

// CommandFlag represents a single command-line flag
type CommandFlag struct {
	Name        string `json:"name"`              // e.g., "depth"
	Short       string `json:"short"`             // Single-char shorthand (e.g., "d")
	Type        string `json:"type"`              // "string", "bool", "int"
	Default     any    `json:"default,omitempty"` // Default value
	Required    bool   `json:"required"`          // Must be provided
	Description string `json:"description"`       // Help text
}

// String returns the flag value or an empty string.
func (ca *CommandArgs) String(name string) string {
	if v, ok := ca.Flags[name].(string); ok {
		return v
	}
	return ""
}

// Bool returns the flag value or false.
func (ca *CommandArgs) Bool(name string) bool {
	if v, ok := ca.Flags[name].(bool); ok {
		return v
	}
	return false
}

// Int returns the flag value or 0.
func (ca *CommandArgs) Int(name string) int64 {
	switch v := ca.Flags[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
