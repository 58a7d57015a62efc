// Package driver runs one binding: pre-flight, front end, symbol model,
// renames, inheritance, binding and emission. Every phase is timed and
// logged; warnings are returned with the result, fatal problems as errors.
package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"cxxbind/internal/binder"
	"cxxbind/internal/config"
	"cxxbind/internal/convert"
	"cxxbind/internal/cxxtypes"
	"cxxbind/internal/decl"
	"cxxbind/internal/diag"
	"cxxbind/internal/emit"
	"cxxbind/internal/errs"
	"cxxbind/internal/frontend"
	"cxxbind/internal/inherit"
	"cxxbind/internal/logging"
	"cxxbind/internal/observ"
	"cxxbind/internal/overload"
	"cxxbind/internal/symbols"
)

type Options struct {
	Config *config.Config
	// FrontEnd replaces the one described by Config.
	FrontEnd frontend.FrontEnd
	// Converters are tried before the configured ones and the built-in
	// catalog.
	Converters []convert.Converter
	Logger     *zap.Logger
	// MaxDiagnostics caps kept warnings; 0 keeps all.
	MaxDiagnostics int
	// Cache, when set, serves unchanged inputs without binding again.
	Cache   *DiskCache
	OnPhase PhaseObserver
}

type Result struct {
	Module string
	// Output is nil when the result came from the cache.
	Output   *binder.Output
	Docs     *emit.Documents
	Manifest *emit.Manifest
	Warnings []diag.Diagnostic
	// Dropped counts warnings past MaxDiagnostics.
	Dropped int
	Timing  *observ.Timer
	Cached  bool
}

type run struct {
	opts   Options
	cfg    *config.Config
	module string
	log    *zap.Logger
	timer  *observ.Timer
	bag    *diag.Bag
	rep    diag.Reporter
}

func newRun(opts Options) (*run, error) {
	if opts.Config == nil {
		return nil, new(errs.ConfigurationError).Add("no configuration")
	}
	module := opts.Config.ModuleName()
	if module == "" {
		return nil, new(errs.ConfigurationError).Add("module.name: cannot derive a module name")
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	return &run{
		opts:   opts,
		cfg:    opts.Config,
		module: module,
		log:    logging.OrNop(opts.Logger).With(zap.String("module", module)),
		timer:  observ.NewTimer(),
		bag:    bag,
		rep:    diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
	}, nil
}

func (r *run) phase(name string, fn func() (string, error)) error {
	if r.opts.OnPhase != nil {
		r.opts.OnPhase(PhaseEvent{Module: r.module, Name: name, Status: PhaseStart})
	}
	start := time.Now()
	idx := r.timer.Begin(name)
	note, err := fn()
	r.timer.End(idx, note)
	elapsed := time.Since(start)
	r.log.Debug("phase done", zap.String("phase", name), zap.Duration("elapsed", elapsed), zap.String("note", note))
	if r.opts.OnPhase != nil {
		r.opts.OnPhase(PhaseEvent{Module: r.module, Name: name, Status: PhaseEnd, Elapsed: elapsed, Note: note})
	}
	return err
}

func (r *run) result() *Result {
	return &Result{
		Module:   r.module,
		Warnings: r.bag.Items(),
		Dropped:  r.bag.Dropped(),
		Timing:   r.timer,
	}
}

func (r *run) fail(res *Result, err error) (*Result, error) {
	r.log.Error("run failed", zap.String("kind", errs.KindOf(err).String()), zap.Error(err))
	return res, err
}

// Run checks the configuration, obtains the declaration stream and binds
// it. On a fatal error the returned result still carries the warnings
// collected so far.
func Run(ctx context.Context, opts Options) (*Result, error) {
	r, err := newRun(opts)
	if err != nil {
		return nil, err
	}
	if err := config.Preflight(r.cfg); err != nil {
		return r.fail(r.result(), err)
	}
	fe := opts.FrontEnd
	if fe == nil {
		fe = r.cfg.NewFrontEnd()
	}
	if fe == nil {
		return r.fail(r.result(), new(errs.ConfigurationError).Add("frontend: one of dump or command is required"))
	}
	var stream *decl.Stream
	err = r.phase("frontend", func() (string, error) {
		s, err := fe.Parse(ctx, r.cfg.Request())
		if err != nil {
			return "", err
		}
		stream = s
		return fmt.Sprintf("%d declarations", len(s.Decls)), nil
	})
	if err != nil {
		return r.fail(r.result(), err)
	}
	return r.stream(ctx, stream)
}

// RunStream binds an already obtained stream. Pre-flight is skipped, so
// the configuration's paths need not exist.
func RunStream(ctx context.Context, s *decl.Stream, opts Options) (*Result, error) {
	r, err := newRun(opts)
	if err != nil {
		return nil, err
	}
	return r.stream(ctx, s)
}

func (r *run) stream(ctx context.Context, s *decl.Stream) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	configured, err := r.cfg.Converters()
	if err != nil {
		return r.fail(r.result(), errs.Wrap(err, "converters"))
	}
	convs := append(append([]convert.Converter(nil), r.opts.Converters...), configured...)

	var key Digest
	if r.opts.Cache != nil {
		if key, err = r.cacheKey(s, convs); err != nil {
			r.log.Warn("cache key", zap.Error(err))
		} else if res, ok := r.fromCache(key); ok {
			return res, nil
		}
	}

	err = r.phase("check", func() (string, error) {
		warnings, err := frontend.CheckDiagnostics(s, r.cfg.Threshold())
		for _, w := range warnings {
			r.rep.Report(w)
		}
		return fmt.Sprintf("%d front-end diagnostics", len(s.Diagnostics)), err
	})
	if err != nil {
		return r.fail(r.result(), err)
	}

	var table *symbols.Table
	_ = r.phase("symbols", func() (string, error) {
		table = symbols.Build(s, cxxtypes.NewArena(), r.rep)
		return fmt.Sprintf("%d classes, %d functions, %d types", table.Classes.Len(), table.Functions.Len(), table.Types.Len()), nil
	})
	_ = r.phase("rename", func() (string, error) {
		n := overload.ApplyRenames(table, overload.NewRenameTable(r.cfg.Renames), r.rep)
		return fmt.Sprintf("%d renamed", n), nil
	})
	_ = r.phase("inherit", func() (string, error) {
		res := inherit.Linearize(table, r.rep)
		return fmt.Sprintf("%d inherited", res.Inherited), nil
	})

	var out *binder.Output
	_ = r.phase("bind", func() (string, error) {
		out = binder.Bind(table, binder.Options{
			Selector: convert.NewSelector(convs...),
			Policy:   r.cfg.Policy(),
			Globals:  r.cfg.Module.Globals,
			HostName: r.cfg.HostName(),
			Reporter: r.rep,
		})
		return fmt.Sprintf("%d bindings", out.Count()), nil
	})

	res := r.result()
	res.Output = out
	err = r.phase("emit", func() (string, error) {
		res.Docs = emit.Emit(out, emit.Options{Module: r.module, Extra: r.cfg.Module.ExtraDeclarations})
		res.Manifest = emit.NewManifest(r.module, out)
		return fmt.Sprintf("%d identifiers", len(res.Docs.DeclarationIDs)), res.Docs.Agree()
	})
	if err != nil {
		return r.fail(res, errs.Wrap(err, "emit"))
	}
	res.Warnings = r.bag.Items()
	res.Dropped = r.bag.Dropped()

	if r.opts.Cache != nil && !key.IsZero() {
		if err := r.opts.Cache.Put(key, toCached(res)); err != nil {
			r.log.Warn("cache write failed", zap.Error(err))
		}
	}
	r.log.Info("module bound",
		append([]zap.Field{zap.Int("bindings", out.Count()), zap.Int("warnings", len(res.Warnings))}, r.timer.Fields()...)...)
	return res, nil
}

// Write stores the documents and the manifest in dir.
func (res *Result) Write(dir string, stub bool) ([]string, error) {
	paths, err := res.Docs.Write(dir, stub)
	if err != nil {
		return paths, err
	}
	p := filepath.Join(dir, res.Module+".manifest")
	if err := res.Manifest.Write(p); err != nil {
		return paths, err
	}
	return append(paths, p), nil
}
