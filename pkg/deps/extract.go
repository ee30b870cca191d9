package deps

// Manifest filenames probed inside a package root.
const (
	PyprojectFile = "pyproject.toml"
	SetupCfgFile  = "setup.cfg"
	SetupPyFile   = "setup.py"
)

// Parser reads declared dependencies from one manifest format.
type Parser interface {
	// Extract reads this parser's manifest inside root and returns raw
	// requirement specifiers in declaration order. A missing manifest is
	// not an error; the result is simply empty.
	Extract(root string, opts Options) ([]string, error)
	// Path returns the manifest location relative to the package root.
	Path() string
	// Type returns the source identifier (e.g., "pyproject-pep621").
	Type() string
}

// Options configures dependency extraction.
type Options struct {
	Logger func(string, ...any) // Warning callback for unreadable manifests (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Parsers returns the manifest parsers in priority order: PEP 621, Poetry,
// setup.cfg, then setup.py.
func Parsers() []Parser {
	return []Parser{&PEP621{}, &Poetry{}, &SetupCfg{}, &SetupPy{}}
}

// ExtractDirect runs the parser chain against a package root and returns the
// first non-empty dependency list together with the type of the source that
// produced it.
//
// A parser failure (unreadable or malformed manifest) is reported through
// opts.Logger and treated as an empty result, so extraction falls through to
// the next format. When every source yields nothing the returned list is
// empty and the source type is "".
func ExtractDirect(root string, opts Options) ([]string, string) {
	opts = opts.WithDefaults()

	// Both pyproject strategies read the same file; report a failure once
	// per manifest, not once per strategy.
	failed := make(map[string]bool)

	for _, p := range Parsers() {
		specs, err := p.Extract(root, opts)
		if err != nil {
			if !failed[p.Path()] {
				failed[p.Path()] = true
				opts.Logger("failed to read %s: %v", p.Path(), err)
			}
			continue
		}
		if len(specs) > 0 {
			return specs, p.Type()
		}
	}
	return nil, ""
}
