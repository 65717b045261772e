package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cmbkit/simfetch/internal/ctxlog"
	"github.com/cmbkit/simfetch/internal/fsutil"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Load reads the configuration at path, which may be a single .hcl file or
// a directory searched recursively. Multiple files are merged in path order
// before decoding.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config path %q is not accessible: %w", path, err)
	}

	paths := []string{path}
	if info.IsDir() {
		paths, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to scan config directory %q: %w", path, err)
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("no .hcl files found under %q", path)
		}
	}

	parser := hclparse.NewParser()
	files := make([]*hcl.File, 0, len(paths))
	for _, p := range paths {
		file, diags := parser.ParseHCLFile(p)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %q: %w", p, diags)
		}
		files = append(files, file)
	}
	logger.Debug("Configuration files parsed.", "count", len(paths))

	var cfg Config
	if diags := gohcl.DecodeBody(hcl.MergeFiles(files), evalContext(), &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode configuration: %w", diags)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	logger.Debug("Configuration loaded.", "dataset", cfg.Dataset.Name, "root", cfg.FileSystem.Root)
	return &cfg, nil
}

// evalContext exposes process environment variables to HCL expressions
// under the `env` object.
func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		pair := strings.SplitN(kv, "=", 2)
		if len(pair) == 2 && pair[0] != "" {
			env[pair[0]] = cty.StringVal(pair[1])
		}
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.FileSystem == nil {
		return
	}
	if cfg.FileSystem.DatasetTemplate == "" {
		cfg.FileSystem.DatasetTemplate = DefaultDatasetTemplate
	}
	if cfg.FileSystem.InstanceTemplate == "" {
		cfg.FileSystem.InstanceTemplate = DefaultInstanceTemplate
	}
}

func validate(cfg *Config) error {
	var errs []string
	if cfg.LocalSystem == nil {
		errs = append(errs, "local_system block is required")
	} else if cfg.LocalSystem.AssetsDir == "" {
		errs = append(errs, "local_system.assets_dir must not be empty")
	}
	if cfg.FileSystem == nil {
		errs = append(errs, "file_system block is required")
	} else if cfg.FileSystem.Root == "" {
		errs = append(errs, "file_system.root must not be empty")
	}
	if cfg.Dataset == nil {
		errs = append(errs, "dataset block is required")
	} else {
		if cfg.Dataset.Name == "" {
			errs = append(errs, "dataset.name must not be empty")
		}
		if cfg.Dataset.LinkTable == "" {
			errs = append(errs, "dataset.link_table must not be empty")
		}
	}

	if len(errs) > 0 {
		return errors.New("invalid configuration:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
