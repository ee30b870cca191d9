// Package deps extracts the declared direct dependencies of a Python package.
//
// # Overview
//
// A Python package can declare its install-time dependencies in several
// competing places. This package reads them straight from the files in a
// package root, without ever executing packaging code:
//
//   - pyproject.toml, [project] dependencies array (PEP 621)
//   - pyproject.toml, [tool.poetry.dependencies] table (Poetry)
//   - setup.cfg, install_requires under [options] (legacy setuptools)
//   - setup.py, install_requires keyword argument (structural scan)
//
// # Extraction
//
// Use [ExtractDirect] to run the parser chain against a package root:
//
//	specs, source := deps.ExtractDirect("/path/to/package", deps.Options{})
//
// Parsers run in the fixed priority order above. The first one producing a
// non-empty list wins; its entries are returned verbatim, in declaration
// order, and never merged with entries from another source. A parser that
// fails to read its manifest is reported through [Options.Logger] and
// skipped, so a broken pyproject.toml still falls through to setup.cfg.
// When no source yields anything the result is empty, which is a normal
// outcome rather than an error.
//
// # Specifiers
//
// Entries are raw requirement strings such as
// "requests[security]>=2.0; python_version>='3.8'". They stay opaque except
// for [BareName], which reduces a specifier to its package name:
//
//	deps.BareName("uvicorn[standard]>=0.15") // "uvicorn"
//
// [FilterSpecs] uses bare names for case-insensitive substring filtering.
package deps
