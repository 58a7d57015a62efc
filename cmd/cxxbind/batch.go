package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cxxbind/internal/driver"
	"cxxbind/internal/errs"
	"cxxbind/internal/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch <config>...",
	Short: "Bind several configs in parallel",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	addReportFlags(batchCmd)
	batchCmd.Flags().Int("jobs", 0, "max parallel runs (0=auto)")
	batchCmd.Flags().String("ui", "auto", "show live progress (auto|on|off)")
	batchCmd.Flags().Bool("no-stub", false, "do not write typing stubs")
}

// batchItem is the outcome of one config of a batch.
type batchItem struct {
	path    string
	dir     string
	result  *driver.Result
	written []string
	err     error
}

type batchRequest struct {
	globals globalOptions
	paths   []string
	jobs    int
	noStub  bool
	log     *zap.Logger
	// progress receives item events; nil disables them.
	progress chan<- ui.Event
}

func runBatch(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	ro, err := readReportFlags(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noStub, err := cmd.Flags().GetBool("no-stub")
	if err != nil {
		return fmt.Errorf("failed to get no-stub flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode("ui", uiFlag)
	if err != nil {
		return err
	}

	log := g.logger()
	defer func() { _ = log.Sync() }()
	req := batchRequest{globals: g, paths: args, jobs: jobs, noStub: noStub, log: log}

	var items []batchItem
	if shouldUseTUI(mode) {
		items, err = runBatchWithUI(cmd.Context(), req)
		if err != nil {
			return err
		}
	} else {
		items = runBatchItems(cmd.Context(), req)
	}

	failed := 0
	for _, it := range items {
		if it.result != nil {
			if err := printDiagnostics(cmd.OutOrStdout(), cmd.ErrOrStderr(), it.result.Warnings, ro, it.dir); err != nil {
				return fmt.Errorf("failed to format diagnostics: %w", err)
			}
			if g.timings {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s ", it.result.Module)
				fmt.Fprint(cmd.ErrOrStderr(), it.result.Timing.Summary())
			}
		}
		if it.err != nil {
			failed++
			printError(cmd.ErrOrStderr(), errs.Wrapf(it.err, "%s", it.path))
			continue
		}
		if ro.format == "pretty" {
			fmt.Fprintln(cmd.OutOrStdout(), summaryLine(it.result, it.written, it.dir))
		}
	}
	if failed > 0 {
		return errs.Newf("%d of %d configs failed", failed, len(items))
	}
	return nil
}

// runBatchItems binds every config; one failing config does not stop the
// others.
func runBatchItems(ctx context.Context, req batchRequest) []batchItem {
	items := make([]batchItem, len(req.paths))
	jobs := req.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	var cache *driver.DiskCache
	if req.globals.cache {
		c, err := driver.OpenDiskCache(cacheApp)
		if err != nil {
			req.log.Warn("cache disabled", zap.Error(err))
		} else {
			cache = c
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range req.paths {
		items[i].path = path
		g.Go(func() error {
			items[i] = bindOne(gctx, req, path, cache)
			req.send(ui.Event{Item: path, Status: items[i].status()})
			return nil
		})
	}
	_ = g.Wait()
	return items
}

func bindOne(ctx context.Context, req batchRequest, path string, cache *driver.DiskCache) batchItem {
	it := batchItem{path: path, dir: "."}
	req.send(ui.Event{Item: path, Status: ui.StatusWorking})
	cfg, err := loadConfig([]string{path})
	if err != nil {
		it.err = err
		return it
	}
	it.dir = cfg.Dir()
	opts := driver.Options{
		Config:         cfg,
		Logger:         req.log,
		MaxDiagnostics: req.globals.maxDiagnostics,
		Cache:          cache,
		OnPhase: func(ev driver.PhaseEvent) {
			if ev.Status == driver.PhaseStart {
				req.send(ui.PhaseEvent(path, ev))
			}
		},
	}
	it.result, it.err = driver.Run(ctx, opts)
	if it.err != nil {
		return it
	}
	it.written, it.err = it.result.Write(cfg.OutputDir(), cfg.WantStub() && !req.noStub)
	return it
}

func (req batchRequest) send(ev ui.Event) {
	if req.progress != nil {
		req.progress <- ev
	}
}

func (it batchItem) status() ui.Status {
	switch {
	case it.err != nil:
		return ui.StatusError
	case it.result != nil && it.result.Cached:
		return ui.StatusCached
	}
	return ui.StatusDone
}
