package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EgorK19/pydeps/pkg/cache"
	"github.com/EgorK19/pydeps/pkg/deps"
	"github.com/EgorK19/pydeps/pkg/errors"
	"github.com/EgorK19/pydeps/pkg/integrations/pypi"
	"github.com/EgorK19/pydeps/pkg/report"
	"github.com/EgorK19/pydeps/pkg/workspace"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	pkgName string // display label for the analyzed package
	repo    string // URL or filesystem path, interpreted per mode
	mode    string // remote | local-dir | local-file
	filter  string // substring match against bare dependency names
	enrich  bool   // annotate specifiers with PyPI metadata
	refresh bool   // bypass the metadata cache
	noCache bool   // disable the metadata cache entirely
	save    bool   // persist the result to the history store
}

// analyzeCommand creates the analyze command, the tool's main entry point.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report the direct dependencies a Python package declares",
		Long: `Report the direct dependencies declared in a Python package's build
manifests. The package is taken from a remote git repository, a local
directory, or a local source archive, and its manifests are tried in
fixed priority order: pyproject.toml ([project] then [tool.poetry]),
setup.cfg, setup.py. The first manifest declaring dependencies wins.

Examples:
  pydeps analyze -p requests -r https://github.com/psf/requests -m remote
  pydeps analyze -p mypkg -r ./mypkg -m local-dir -f yaml
  pydeps analyze -p flask -r flask-3.0.0.tar.gz -m local-file --enrich`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runAnalyze(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pkgName, "package-name", "p", "", "name of the package being analyzed")
	cmd.Flags().StringVarP(&opts.repo, "repo", "r", "", "repository URL or filesystem path")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "how to interpret --repo: remote, local-dir or local-file")
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "case-insensitive substring filter on dependency names")
	cmd.Flags().BoolVar(&opts.enrich, "enrich", false, "annotate dependencies with PyPI metadata")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the PyPI metadata cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the PyPI metadata cache")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the result to the analysis history")

	_ = cmd.MarkFlagRequired("package-name")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("mode")

	return cmd
}

// validate checks every flag and collects all failures instead of stopping
// at the first, so one run surfaces every input problem at once.
func (o *analyzeOpts) validate() []error {
	var errs []error

	if err := errors.ValidatePackageName(o.pkgName); err != nil {
		errs = append(errs, err)
	}

	mode, err := workspace.ParseMode(o.mode)
	if err != nil {
		errs = append(errs, err)
		return errs
	}

	switch mode {
	case workspace.ModeRemote:
		if err := errors.ValidateRemoteURL(o.repo); err != nil {
			errs = append(errs, err)
		}
	case workspace.ModeLocalDir:
		if err := errors.ValidateLocalDir(o.repo); err != nil {
			errs = append(errs, err)
		}
	case workspace.ModeLocalFile:
		if err := errors.ValidateLocalFile(o.repo); err != nil {
			errs = append(errs, err)
		}
		if err := errors.ValidateArchivePath(o.repo); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// runAnalyze drives one analysis: validate, resolve the package root,
// extract, filter, render, and optionally enrich and save.
func (c *CLI) runAnalyze(ctx context.Context, opts *analyzeOpts) error {
	logger := loggerFromContext(ctx)

	if errs := opts.validate(); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "  "+iconBullet+" "+errors.UserMessage(err))
		}
		return errors.New(errors.ErrCodeInvalidInput, "%d invalid argument(s)", len(errs))
	}
	mode, _ := workspace.ParseMode(opts.mode)

	printKeyValue("Package", opts.pkgName)
	printKeyValue("Repository", opts.repo)
	printKeyValue("Mode", opts.mode)
	if opts.filter != "" {
		printKeyValue("Filter", opts.filter)
	}
	printNewline()

	root, err := c.resolveRoot(ctx, mode, opts.repo)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := root.Close(); cerr != nil {
			logger.Warn("failed to clean up workspace", "err", cerr)
		}
	}()

	prog := newProgress(logger)
	specs, source := deps.ExtractDirect(root.Path, deps.Options{
		Logger: func(msg string, args ...any) { logger.Warnf(msg, args...) },
	})
	prog.done(fmt.Sprintf("Extracted %d declared dependencies", len(specs)))

	matched := deps.FilterSpecs(specs, opts.filter)
	c.renderResult(ctx, opts, source, len(specs), matched)

	if opts.save {
		c.saveReport(ctx, opts, source, matched)
	}
	return nil
}

// resolveRoot materializes the package root with a progress spinner on
// stderr. Resolution failures are fatal to the run.
func (c *CLI) resolveRoot(ctx context.Context, mode workspace.Mode, repo string) (*workspace.Root, error) {
	verb := "Resolving"
	switch mode {
	case workspace.ModeRemote:
		verb = "Cloning"
	case workspace.ModeLocalFile:
		verb = "Unpacking"
	}

	spin := newSpinner(ctx, fmt.Sprintf("%s %s...", verb, repo))
	spin.Start()
	root, err := workspace.Resolve(ctx, mode, repo, workspace.Options{
		Logger: loggerFromContext(ctx).Debugf,
	})
	spin.Stop()
	return root, err
}

// renderResult prints the dependency list or the labeled empty outcome.
// Zero dependencies and zero filter matches are normal results, not errors.
func (c *CLI) renderResult(ctx context.Context, opts *analyzeOpts, source string, total int, matched []string) {
	if total == 0 {
		printInfo("No declared dependencies found for %s", StyleHighlight.Render(opts.pkgName))
		return
	}
	if len(matched) == 0 {
		printInfo("No dependencies matching %q (%d declared)", opts.filter, total)
		return
	}

	title := fmt.Sprintf("Direct dependencies of %s", opts.pkgName)
	if opts.filter != "" {
		title += fmt.Sprintf(" matching %q", opts.filter)
	}
	fmt.Println(StyleTitle.Render(title))
	printDetail("source: %s", source)

	details := c.enrichDetails(ctx, opts, matched)
	for i, spec := range matched {
		printListItem(spec, details[i])
	}

	printNewline()
	printSuccess("%d of %d dependencies shown", len(matched), total)
}

// enrichDetails fetches PyPI metadata for each matched specifier when
// --enrich is set. The result always has one entry per specifier; lookup
// failures leave the entry empty and log a warning.
func (c *CLI) enrichDetails(ctx context.Context, opts *analyzeOpts, matched []string) []string {
	details := make([]string, len(matched))
	if !opts.enrich {
		return details
	}

	logger := loggerFromContext(ctx)
	backend := c.newCache(opts.noCache)
	defer backend.Close()
	client := pypi.NewClient(backend, cache.DefaultTTL)

	spin := newSpinner(ctx, "Fetching PyPI metadata...")
	spin.Start()
	defer spin.Stop()

	for i, spec := range matched {
		name := deps.BareName(spec)
		if name == "" {
			continue
		}
		info, err := client.FetchPackage(ctx, name, opts.refresh)
		if err != nil {
			logger.Warnf("pypi lookup for %s failed: %v", name, err)
			continue
		}
		detail := "latest " + info.Version
		if info.Summary != "" {
			detail += " · " + info.Summary
		}
		details[i] = detail
	}
	return details
}

// saveReport persists the analysis outcome to the history store. Store
// failures are warnings; they never change the exit code of a successful
// analysis.
func (c *CLI) saveReport(ctx context.Context, opts *analyzeOpts, source string, matched []string) {
	logger := loggerFromContext(ctx)

	store, err := c.newStore(ctx)
	if err != nil {
		logger.Warn("history store unavailable, result not saved", "err", err)
		return
	}
	defer store.Close()

	r := report.New(opts.pkgName, opts.repo, opts.mode, opts.filter, source, matched)
	if err := store.Save(ctx, r); err != nil {
		logger.Warn("failed to save report", "err", err)
		return
	}
	printDetail("saved report %s", shortID(r.ID))
}

// shortID abbreviates a report UUID for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
