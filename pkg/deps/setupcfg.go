package deps

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// SetupCfg reads install_requires from the [options] section of a legacy
// setup.cfg file. The value is an indented newline-separated block in the
// Python configparser style; every non-empty, non-comment line is one
// requirement specifier.
type SetupCfg struct{}

func (p *SetupCfg) Path() string { return SetupCfgFile }
func (p *SetupCfg) Type() string { return "setup-cfg" }

func (p *SetupCfg) Extract(root string, _ Options) ([]string, error) {
	path := filepath.Join(root, SetupCfgFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{AllowPythonMultilineValues: true}, path)
	if err != nil {
		return nil, err
	}

	section, err := cfg.GetSection("options")
	if err != nil || !section.HasKey("install_requires") {
		return nil, nil
	}

	var specs []string
	for _, line := range strings.Split(section.Key("install_requires").Value(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		specs = append(specs, line)
	}
	return specs, nil
}
