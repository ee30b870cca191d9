package deps

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestPEP621_Extract(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, PyprojectFile, `[project]
name = "demo"
version = "0.1.0"
dependencies = [
    "requests>=2.0",
    "click>=7,<9",
    "pydantic[email]~=1.10",
]

[project.optional-dependencies]
dev = ["pytest>=7"]
`)

	got, err := (&PEP621{}).Extract(dir, Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []string{"requests>=2.0", "click>=7,<9", "pydantic[email]~=1.10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestPEP621_ExtractMissingFile(t *testing.T) {
	got, err := (&PEP621{}).Extract(t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty", got)
	}
}

func TestPEP621_ExtractNoProjectTable(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, PyprojectFile, `[build-system]
requires = ["setuptools"]
`)

	got, err := (&PEP621{}).Extract(dir, Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty", got)
	}
}

func TestPEP621_ExtractMalformed(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, PyprojectFile, "[project\ndependencies = [")

	if _, err := (&PEP621{}).Extract(dir, Options{}); err == nil {
		t.Fatal("Extract() = nil error, want parse error")
	}
}

func TestPoetry_Extract(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, PyprojectFile, `[tool.poetry]
name = "demo"
version = "0.1.0"

[tool.poetry.dependencies]
python = "^3.10"
numpy = "^1.20"
requests = {version = ">=2", extras = ["security"]}
flask = {version = "^2.0"}
internal-tool = {git = "https://example.com/tool.git"}
`)

	got, err := (&Poetry{}).Extract(dir, Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []string{"numpy^1.20", "requests[security]>=2", "flask^2.0", "internal-tool"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestPoetry_ExtractPreservesDeclarationOrder(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, PyprojectFile, `[tool.poetry.dependencies]
zzz = "1"
aaa = "2"
mmm = "3"
`)

	got, err := (&Poetry{}).Extract(dir, Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []string{"zzz1", "aaa2", "mmm3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestPoetry_ExtractSkipsPython(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, PyprojectFile, `[tool.poetry.dependencies]
Python = ">=3.8"
requests = "^2.28"
`)

	got, err := (&Poetry{}).Extract(dir, Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []string{"requests^2.28"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestPoetry_ExtractSubtableSyntax(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, PyprojectFile, `[tool.poetry.dependencies]
numpy = "^1.20"

[tool.poetry.dependencies.uvicorn]
version = ">=0.15"
extras = ["standard", "watch"]
`)

	got, err := (&Poetry{}).Extract(dir, Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []string{"numpy^1.20", "uvicorn[standard,watch]>=0.15"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestPoetry_ExtractNoPoetryTable(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, PyprojectFile, `[project]
name = "demo"
`)

	got, err := (&Poetry{}).Extract(dir, Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty", got)
	}
}
