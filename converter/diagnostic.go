package converter

import "fmt"

type DiagnosticKind int

const (
	DiagnosticMissingTexture DiagnosticKind = iota
	DiagnosticUnsupportedWrapMode
	DiagnosticWrapModeMismatch
	DiagnosticHierarchyIgnored
	DiagnosticTextureExport
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticMissingTexture:
		return "missing texture"
	case DiagnosticUnsupportedWrapMode:
		return "unsupported wrap mode"
	case DiagnosticWrapModeMismatch:
		return "wrap mode mismatch"
	case DiagnosticHierarchyIgnored:
		return "hierarchy ignored"
	case DiagnosticTextureExport:
		return "texture export"
	}
	return "unknown"
}

// Diagnostic is a non-fatal conversion warning.
type Diagnostic struct {
	Kind    DiagnosticKind
	Node    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Node != "" {
		return fmt.Sprintf("%v: node %q: %s", d.Kind, d.Node, d.Message)
	}
	return fmt.Sprintf("%v: %s", d.Kind, d.Message)
}

type diagnostics struct {
	list   []Diagnostic
	seen   map[Diagnostic]bool
	notify func(Diagnostic)
}

func (d *diagnostics) report(node string, diags ...Diagnostic) {
	if d.seen == nil {
		d.seen = map[Diagnostic]bool{}
	}
	for _, diag := range diags {
		diag.Node = node
		if d.seen[diag] {
			continue
		}
		d.seen[diag] = true
		d.list = append(d.list, diag)
		if d.notify != nil {
			d.notify(diag)
		}
	}
}

func (d *diagnostics) Diagnostics() []Diagnostic {
	return d.list
}
