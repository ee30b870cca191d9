package deps

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// PEP621 reads the standard [project] dependencies array from pyproject.toml.
type PEP621 struct{}

func (p *PEP621) Path() string { return PyprojectFile }
func (p *PEP621) Type() string { return "pyproject-pep621" }

func (p *PEP621) Extract(root string, _ Options) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(root, PyprojectFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc struct {
		Project struct {
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Project.Dependencies, nil
}

// Poetry reads the [tool.poetry.dependencies] table from pyproject.toml.
//
// Entries are rewritten as requirement-style specifiers: a plain string
// value becomes "{name}{version}", a table value becomes
// "{name}[{extras}]{version}" with the bracket segment omitted when the
// table declares no extras. The "python" entry is a language-version
// constraint, not a package, and is always skipped.
type Poetry struct{}

func (p *Poetry) Path() string { return PyprojectFile }
func (p *Poetry) Type() string { return "pyproject-poetry" }

func (p *Poetry) Extract(root string, _ Options) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(root, PyprojectFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc struct {
		Tool struct {
			Poetry struct {
				Dependencies map[string]toml.Primitive `toml:"dependencies"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}

	var specs []string
	for _, name := range dependencyOrder(md) {
		if strings.EqualFold(name, "python") {
			continue
		}
		prim, ok := doc.Tool.Poetry.Dependencies[name]
		if !ok {
			continue
		}

		var version string
		if err := md.PrimitiveDecode(prim, &version); err == nil {
			specs = append(specs, name+version)
			continue
		}

		var table struct {
			Version string   `toml:"version"`
			Extras  []string `toml:"extras"`
		}
		if err := md.PrimitiveDecode(prim, &table); err != nil {
			// Not a string and not a table (e.g. a multi-constraint
			// array); there is no single specifier to report.
			continue
		}
		spec := name
		if len(table.Extras) > 0 {
			spec += "[" + strings.Join(table.Extras, ",") + "]"
		}
		specs = append(specs, spec+table.Version)
	}
	return specs, nil
}

// dependencyOrder recovers the declaration order of the dependencies table
// from the decode metadata; a Go map would otherwise scramble it.
func dependencyOrder(md toml.MetaData) []string {
	var names []string
	for _, key := range md.Keys() {
		if len(key) == 4 && key[0] == "tool" && key[1] == "poetry" && key[2] == "dependencies" {
			names = append(names, key[3])
		}
	}
	return names
}
