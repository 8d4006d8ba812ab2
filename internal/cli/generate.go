package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/cache"
	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/osvconfig"
	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/pm"
	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/scanner"
	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/suggest"
)

// generateOptions holds the flags of the generate command.
type generateOptions struct {
	dir        string
	yes        bool
	noCache    bool
	model      string
	scannerBin string
	ignoreFor  time.Duration
}

// newGenerateCmd creates the generate command.
func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Scan the lockfile and build the osv-scanner ignore list",
		Long: `Generate runs osv-scanner against the project lockfile and walks through
the findings one by one. For each vulnerability it resolves the dependency
chain that pulls the affected package in, optionally asks a language model
for a suggested ignore reason, and prompts for a decision: ignore the
finding (written to osv-scanner.toml), update the package, or skip.

Suggestions require the ANTHROPIC_API_KEY environment variable; without it
the prompt simply starts with an empty reason.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "project directory")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "accept suggestions without prompting")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the suggestion cache")
	cmd.Flags().StringVar(&opts.model, "model", suggest.DefaultModel, "model used for suggestions")
	cmd.Flags().StringVar(&opts.scannerBin, "scanner", scanner.DefaultBinary, "osv-scanner executable")
	cmd.Flags().DurationVar(&opts.ignoreFor, "ignore-for", 0, "set ignoreUntil this far in the future (e.g. 2160h); 0 ignores indefinitely")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner := &pm.ExecRunner{Dir: opts.dir}
	mgr, err := pm.Detect(opts.dir, runner)
	if err != nil {
		return err
	}
	printInfo("Detected %s project (%s)", StyleHighlight.Render(mgr.Name()), mgr.Lockfile())

	lockfile := filepath.Join(opts.dir, mgr.Lockfile())
	sp := newSpinner(ctx, "Scanning "+mgr.Lockfile())
	sp.Start()
	scanStart := newProgress(logger)
	report, err := scanner.New(runner, opts.scannerBin).Scan(ctx, lockfile)
	if err != nil {
		sp.StopWithError("Scan failed")
		return err
	}
	findings := report.Flatten()
	sp.StopWithSuccess(fmt.Sprintf("%d findings in %s", len(findings), mgr.Lockfile()))
	scanStart.done("scan complete")

	cfgPath := filepath.Join(opts.dir, osvconfig.Filename)
	cfg, err := osvconfig.Load(cfgPath)
	if err != nil {
		return err
	}

	suggester := newSuggester(opts)
	if suggester == nil {
		logger.Debug("ANTHROPIC_API_KEY not set, suggestions disabled")
	}

	var ignored, updated, skipped, already int
	for _, f := range findings {
		if cfg.Ignored(f.ID) {
			logger.Debug("already ignored", "id", f.ID)
			already++
			continue
		}

		chain := mgr.DependencyChain(ctx, f.Package, f.Version)
		logger.Debug("resolved chain", "package", f.Package, "version", f.Version, "chain", chain)

		suggestion := ""
		if suggester != nil {
			csp := newSpinner(ctx, "Asking for a suggestion for "+f.ID)
			csp.Start()
			suggestion, err = suggester.Suggest(ctx, f, chain)
			csp.Stop()
			if err != nil {
				logger.Warn("suggestion failed", "id", f.ID, "err", err)
				suggestion = ""
			}
		}

		dec, err := decide(f, chain, suggestion, opts.yes)
		if stderrors.Is(err, errAborted) {
			printWarning("Aborted, keeping decisions made so far")
			break
		}
		if err != nil {
			return err
		}

		switch dec.Action {
		case actionIgnore:
			entry := osvconfig.IgnoredVuln{ID: f.ID, Reason: dec.Reason}
			if opts.ignoreFor > 0 {
				entry.IgnoreUntil = time.Now().UTC().Add(opts.ignoreFor).Truncate(time.Second)
			}
			if cfg.Add(entry) {
				ignored++
				printSuccess("Ignoring %s", f.ID)
				printDetail("%s", dec.Reason)
			}
		case actionUpdate:
			usp := newSpinner(ctx, "Updating "+f.Package)
			usp.Start()
			if err := mgr.Update(ctx, f.Package); err != nil {
				usp.StopWithError(fmt.Sprintf("Update of %s failed", f.Package))
				printDetail("%v", err)
				skipped++
				continue
			}
			usp.StopWithSuccess(fmt.Sprintf("Updated %s", f.Package))
			updated++
		case actionSkip:
			skipped++
		}
	}

	if ignored > 0 {
		if err := cfg.Write(cfgPath); err != nil {
			return err
		}
		printFile(cfgPath)
	}

	printNewline()
	printDetail("%d ignored, %d updated, %d skipped, %d already ignored", ignored, updated, skipped, already)
	return nil
}

// decide resolves the decision for one finding, interactively or not. With
// --yes every finding is ignored using the suggested reason (or a stock one
// when suggestions are unavailable).
func decide(f scanner.Finding, chain, suggestion string, yes bool) (Decision, error) {
	if !yes {
		return promptDecision(f, chain, suggestion)
	}
	reason := suggestion
	if reason == "" {
		reason = "triaged automatically, chain: " + chain
	}
	return Decision{Action: actionIgnore, Reason: reason}, nil
}

// newSuggester builds the suggestion service from the environment. It
// returns nil when no API key is configured.
func newSuggester(opts generateOptions) suggest.Suggester {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil
	}

	var c cache.Cache
	if !opts.noCache {
		if dir, err := cacheDir(); err == nil {
			if fc, err := cache.NewFileCache(dir); err == nil {
				c = fc
			}
		}
	}
	return suggest.NewLLMSuggester(suggest.NewClient(apiKey, opts.model), c)
}
