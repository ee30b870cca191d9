package deps

import (
	"reflect"
	"testing"
)

func TestSetupCfg_Extract(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, SetupCfgFile, `[metadata]
name = demo
version = 0.1.0

[options]
python_requires = >=3.8
install_requires =
    click>=7
    # comment
    pyyaml
    requests >=2.0, <3

[options.extras_require]
dev =
    pytest
`)

	got, err := (&SetupCfg{}).Extract(dir, Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []string{"click>=7", "pyyaml", "requests >=2.0, <3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSetupCfg_ExtractMissingFile(t *testing.T) {
	got, err := (&SetupCfg{}).Extract(t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty", got)
	}
}

func TestSetupCfg_ExtractNoOptionsSection(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, SetupCfgFile, `[metadata]
name = demo
`)

	got, err := (&SetupCfg{}).Extract(dir, Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty", got)
	}
}

func TestSetupCfg_ExtractNoInstallRequires(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, SetupCfgFile, `[options]
zip_safe = False
`)

	got, err := (&SetupCfg{}).Extract(dir, Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty", got)
	}
}

func TestSetupCfg_ExtractSingleLineValue(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, SetupCfgFile, `[options]
install_requires = six>=1.10
`)

	got, err := (&SetupCfg{}).Extract(dir, Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []string{"six>=1.10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}
