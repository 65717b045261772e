// Package stage provides the execution support for pipeline stages.
//
// A Stage owns its typed input and output assets as explicit fields, bound
// at construction time: each Asset pairs a path template with a concrete
// handler resolved from the registry, so an unknown handler name fails
// before any stage logic runs. Stages resolve paths through a shared Namer
// and exchange data only through their assets; there is no module-level
// asset state.
package stage

import (
	"context"
	"fmt"

	"github.com/cmbkit/simfetch/internal/assets"
	"github.com/cmbkit/simfetch/internal/namer"
)

// Executor is implemented by runnable pipeline stages.
type Executor interface {
	Execute(ctx context.Context) error
}

// AssetSpec declares one asset binding: the path template it resolves
// through and the name of the handler that moves its bytes.
type AssetSpec struct {
	Template string
	Handler  string
}

// Asset is a typed data artifact bound to a stage.
type Asset struct {
	name     string
	template string
	handler  assets.Handler
	namer    *namer.Namer
}

// Name returns the asset's logical name within its stage.
func (a *Asset) Name() string { return a.name }

// Path resolves the asset's concrete location from the current namer
// context.
func (a *Asset) Path() (string, error) {
	return a.namer.Resolve(a.template)
}

// Read resolves the asset's path and reads it through the bound handler.
func (a *Asset) Read() (any, error) {
	path, err := a.Path()
	if err != nil {
		return nil, err
	}
	return a.handler.Read(path)
}

// Write resolves the asset's path and writes data through the bound handler.
func (a *Asset) Write(data any) error {
	path, err := a.Path()
	if err != nil {
		return err
	}
	return a.handler.Write(path, data)
}

// Stage holds the named input and output assets of one pipeline stage.
type Stage struct {
	Name      string
	AssetsIn  map[string]*Asset
	AssetsOut map[string]*Asset
}

// New constructs a Stage, resolving every asset's handler against the
// registry. Handler resolution failures surface here, at construction,
// wrapped with the stage and asset names.
func New(name string, n *namer.Namer, reg *assets.Registry, in, out map[string]AssetSpec) (*Stage, error) {
	s := &Stage{
		Name:      name,
		AssetsIn:  make(map[string]*Asset, len(in)),
		AssetsOut: make(map[string]*Asset, len(out)),
	}

	for assetName, spec := range in {
		asset, err := bind(assetName, spec, n, reg)
		if err != nil {
			return nil, fmt.Errorf("stage %q, input asset %q: %w", name, assetName, err)
		}
		s.AssetsIn[assetName] = asset
	}
	for assetName, spec := range out {
		asset, err := bind(assetName, spec, n, reg)
		if err != nil {
			return nil, fmt.Errorf("stage %q, output asset %q: %w", name, assetName, err)
		}
		s.AssetsOut[assetName] = asset
	}

	return s, nil
}

func bind(name string, spec AssetSpec, n *namer.Namer, reg *assets.Registry) (*Asset, error) {
	handler, err := reg.Handler(spec.Handler)
	if err != nil {
		return nil, err
	}
	return &Asset{
		name:     name,
		template: spec.Template,
		handler:  handler,
		namer:    n,
	}, nil
}
