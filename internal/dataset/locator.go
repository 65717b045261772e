// Package dataset resolves logical dataset instances to concrete paths,
// fetching the backing archive on first use.
package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/cmbkit/simfetch/internal/config"
	"github.com/cmbkit/simfetch/internal/ctxlog"
	"github.com/cmbkit/simfetch/internal/fetch"
	"github.com/cmbkit/simfetch/internal/linktable"
	"github.com/cmbkit/simfetch/internal/namer"
)

// simulationStage is the pipeline stage name under which simulation
// instances are stored inside a dataset.
const simulationStage = "Simulation"

// Locator composes the namer, link table and retriever into the
// split/sim-number lookup the pipeline stages consume. It owns no mutable
// state of its own and is safe to call repeatedly for the same instance;
// the retriever's presence check makes redundant calls cheap.
type Locator struct {
	cfg       *config.Config
	namer     *namer.Namer
	table     linktable.Table
	retriever *fetch.Retriever
}

// NewLocator wires a Locator from its collaborators.
func NewLocator(cfg *config.Config, n *namer.Namer, table linktable.Table, retriever *fetch.Retriever) *Locator {
	return &Locator{
		cfg:       cfg,
		namer:     n,
		table:     table,
		retriever: retriever,
	}
}

// LocateInstance returns the concrete path of one simulation instance,
// downloading and unpacking the dataset archive first if it is not already
// present. It never opens the instance file itself.
func (l *Locator) LocateInstance(ctx context.Context, split string, simNum int) (string, error) {
	logger := ctxlog.FromContext(ctx).With("split", split, "sim_num", simNum)

	link, err := l.table.Lookup(split, simNum)
	if err != nil {
		return "", err
	}

	root, err := l.datasetRoot()
	if err != nil {
		return "", err
	}
	logger.Debug("Dataset root resolved.", "root", root)

	tempDir, err := os.MkdirTemp("", "simfetch-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			logger.Error("Failed to remove temp directory.", "path", tempDir, "error", err)
		}
	}()

	if err := l.retriever.DownloadAndExtract(ctx, link, tempDir, root); err != nil {
		return "", err
	}

	restore := l.namer.PushContext(map[string]any{
		"dataset": l.cfg.Dataset.Name,
		"stage":   simulationStage,
		"split":   split,
		"sim_num": simNum,
	})
	defer restore()

	path, err := l.namer.Resolve(l.cfg.FileSystem.InstanceTemplate)
	if err != nil {
		return "", err
	}
	logger.Debug("Instance located.", "path", path)
	return path, nil
}

// datasetRoot resolves the dataset's root directory, the destination the
// archive unpacks into.
func (l *Locator) datasetRoot() (string, error) {
	restore := l.namer.PushContext(map[string]any{"dataset": l.cfg.Dataset.Name})
	defer restore()
	return l.namer.Resolve(l.cfg.FileSystem.DatasetTemplate)
}
