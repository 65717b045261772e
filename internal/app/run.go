package app

import (
	"context"
	"fmt"

	"github.com/cmbkit/simfetch/internal/ctxlog"
)

// Run executes the main application logic based on the provided configuration:
// it locates the requested dataset instance (fetching the backing archive on
// first use) and prints the resolved path.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	path, err := a.locator.LocateInstance(ctx, appConfig.Split, appConfig.SimNum)
	if err != nil {
		return fmt.Errorf("failed to locate instance %s_sim%04d: %w", appConfig.Split, appConfig.SimNum, err)
	}

	a.logger.Info("Instance located.", "split", appConfig.Split, "sim_num", appConfig.SimNum, "path", path)
	fmt.Fprintln(a.outW, path)

	a.logger.Debug("App.Run method finished.")
	return nil
}
