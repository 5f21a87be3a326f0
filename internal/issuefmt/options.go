package issuefmt

// PrettyOpts configures human-readable output.
type PrettyOpts struct {
	Color     bool
	Width     int // maximum line width, 0 for unlimited
	ShowFixes bool
	ByCat     bool // group under category headers instead of a flat list
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	Indent bool
	Max    int // output truncation, the result itself is untouched
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
