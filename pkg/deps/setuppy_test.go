package deps

import (
	"reflect"
	"testing"
)

func extractSetupPy(t *testing.T, source string) []string {
	t.Helper()
	dir := t.TempDir()
	writeManifest(t, dir, SetupPyFile, source)
	got, err := (&SetupPy{}).Extract(dir, Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	return got
}

func TestSetupPy_Extract(t *testing.T) {
	got := extractSetupPy(t, `from setuptools import setup

setup(
    name="demo",
    version="0.1.0",
    install_requires=[
        "requests>=2.0",
        'click>=7',
        "pydantic[email]~=1.10",
    ],
    extras_require={"dev": ["pytest"]},
)
`)
	want := []string{"requests>=2.0", "click>=7", "pydantic[email]~=1.10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSetupPy_ExtractAttributeCall(t *testing.T) {
	got := extractSetupPy(t, `import setuptools

setuptools.setup(
    name="demo",
    install_requires=["six", "attrs>=20"],
)
`)
	want := []string{"six", "attrs>=20"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSetupPy_ExtractNonLiteralIgnored(t *testing.T) {
	got := extractSetupPy(t, `from setuptools import setup

reqs = ["requests"]
setup(name="demo", install_requires=reqs)
`)
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty for non-literal list", got)
	}
}

func TestSetupPy_ExtractIgnoresCommentsAndStrings(t *testing.T) {
	got := extractSetupPy(t, `from setuptools import setup

# setup(install_requires=["commented-out"])
DOC = """
setup(install_requires=["inside-docstring"])
"""

setup(
    name="demo",
    install_requires=[
        "real-dep",  # trailing comment with install_requires=["fake"]
    ],
)
`)
	want := []string{"real-dep"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSetupPy_ExtractAdjacentStringsConcatenate(t *testing.T) {
	got := extractSetupPy(t, `setup(install_requires=["urllib3" ">=1.26", "certifi"])`)
	want := []string{"urllib3>=1.26", "certifi"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSetupPy_ExtractNestedBracketsSkipped(t *testing.T) {
	got := extractSetupPy(t, `setup(install_requires=["aiohttp", ("ignored",), "yarl"])`)
	want := []string{"aiohttp", "yarl"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSetupPy_ExtractDefSetupNotACall(t *testing.T) {
	got := extractSetupPy(t, `def setup(install_requires=["not-a-dep"]):
    return install_requires
`)
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty for function definition", got)
	}
}

func TestSetupPy_ExtractMultipleCalls(t *testing.T) {
	got := extractSetupPy(t, `if LEGACY:
    setup(install_requires=["legacy-dep"])
else:
    setup(install_requires=["modern-dep"])
`)
	want := []string{"legacy-dep", "modern-dep"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSetupPy_ExtractStringVariants(t *testing.T) {
	got := extractSetupPy(t, `setup(install_requires=[
    r"raw-dep>=1",
    u'unicode-dep',
    "escaped\"quote",
])
`)
	want := []string{"raw-dep>=1", "unicode-dep", `escaped"quote`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSetupPy_ExtractKeywordOnlyAtCallLevel(t *testing.T) {
	got := extractSetupPy(t, `setup(
    name="demo",
    cmdclass={"install_requires": ["not-really"]},
    install_requires=["actual"],
)
`)
	want := []string{"actual"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSetupPy_ExtractMissingFile(t *testing.T) {
	got, err := (&SetupPy{}).Extract(t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty", got)
	}
}

func TestSetupPy_ExtractUnterminatedString(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, SetupPyFile, `setup(install_requires=["broken)`)
	if _, err := (&SetupPy{}).Extract(dir, Options{}); err == nil {
		t.Fatal("Extract() = nil error, want tokenizer error")
	}
}

func TestSetupPy_ExtractNoSetupCall(t *testing.T) {
	got := extractSetupPy(t, `print("hello")
configure(install_requires=["nope"])
`)
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty without setup call", got)
	}
}

func TestScanPython(t *testing.T) {
	toks, err := scanPython(`setup(a == b, c="x\n", d=1.5)  # tail`)
	if err != nil {
		t.Fatalf("scanPython() error = %v", err)
	}

	want := []pyToken{
		{tokIdent, "setup"},
		{tokPunct, "("},
		{tokIdent, "a"},
		{tokPunct, "=="},
		{tokIdent, "b"},
		{tokPunct, ","},
		{tokIdent, "c"},
		{tokPunct, "="},
		{tokString, "x\n"},
		{tokPunct, ","},
		{tokIdent, "d"},
		{tokPunct, "="},
		{tokOther, "1.5"},
		{tokPunct, ")"},
	}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("scanPython() = %v, want %v", toks, want)
	}
}
