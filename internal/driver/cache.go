package driver

import (
	"go.uber.org/zap"

	"cxxbind/internal/config"
	"cxxbind/internal/convert"
	"cxxbind/internal/decl"
	"cxxbind/internal/emit"
	"cxxbind/internal/overload"
	"cxxbind/internal/version"
)

// cacheSettings is every input besides the stream that changes output.
type cacheSettings struct {
	Version   string
	Module    string
	Globals   string
	HostNames string
	Policy    string
	Threshold string
	Renames   []overload.Rename
	// names omit void pointer match patterns
	VoidPointers []config.VoidPointer
	Converters   []string
	Extra        []string
}

func (r *run) cacheKey(s *decl.Stream, convs []convert.Converter) (Digest, error) {
	streamDigest, err := digestOf(s)
	if err != nil {
		return Digest{}, err
	}
	names := make([]string, 0, len(convs))
	for _, c := range convs {
		names = append(names, c.Name())
	}
	settings := cacheSettings{
		Version:      version.Version,
		Module:       r.module,
		Globals:      r.cfg.Module.Globals,
		HostNames:    r.cfg.Module.HostNames,
		Policy:       r.cfg.Policy().String(),
		Threshold:    r.cfg.Threshold().String(),
		Renames:      r.cfg.Renames,
		VoidPointers: r.cfg.VoidPointers,
		Converters:   names,
		Extra:        r.cfg.Module.ExtraDeclarations,
	}
	settingsDigest, err := digestOf(settings)
	if err != nil {
		return Digest{}, err
	}
	return combineDigest(streamDigest, settingsDigest), nil
}

func (r *run) fromCache(key Digest) (*Result, bool) {
	cached, ok, err := r.opts.Cache.Get(key)
	if err != nil {
		r.log.Warn("cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok || cached.Module != r.module {
		return nil, false
	}
	r.log.Info("served from cache", zap.Stringer("key", key))
	return &Result{
		Module: r.module,
		Docs: &emit.Documents{
			Module:             cached.Module,
			DeclarationsModule: cached.DeclarationsModule,
			Declarations:       cached.Declarations,
			Implementation:     cached.Implementation,
			Stub:               cached.Stub,
			DeclarationIDs:     cached.DeclarationIDs,
			ImplementationIDs:  cached.DeclarationIDs,
			StubIDs:            cached.DeclarationIDs,
		},
		Manifest: cached.Manifest,
		Warnings: cached.Warnings,
		Timing:   r.timer,
		Cached:   true,
	}, true
}

func toCached(res *Result) *CachedRun {
	return &CachedRun{
		Module:             res.Module,
		DeclarationsModule: res.Docs.DeclarationsModule,
		Declarations:       res.Docs.Declarations,
		Implementation:     res.Docs.Implementation,
		Stub:               res.Docs.Stub,
		DeclarationIDs:     res.Docs.DeclarationIDs,
		Manifest:           res.Manifest,
		Warnings:           res.Warnings,
	}
}
