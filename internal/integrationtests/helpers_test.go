package integrationtests

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmbkit/simfetch/internal/app"
	"github.com/cmbkit/simfetch/internal/testutil"
	"github.com/stretchr/testify/require"
)

// harnessResult holds the outcomes of an integration test run. Output holds
// both log lines and the printed instance path, matching what a user sees.
type harnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// workspace is the on-disk layout one integration test operates in.
type workspace struct {
	ConfigDir string
	AssetsDir string
	DataRoot  string
}

// setupWorkspace lays out a config directory, an assets directory holding
// the link-table document, and a data root, then returns their locations.
// links maps composite simulation keys to descriptor values (string URL or
// object).
func setupWorkspace(t *testing.T, links map[string]any) *workspace {
	t.Helper()

	base := t.TempDir()
	ws := &workspace{
		ConfigDir: filepath.Join(base, "cfg"),
		AssetsDir: filepath.Join(base, "assets"),
		DataRoot:  filepath.Join(base, "data", "CMB-ML"),
	}
	require.NoError(t, os.MkdirAll(ws.ConfigDir, 0o755))
	require.NoError(t, os.MkdirAll(ws.AssetsDir, 0o755))

	linkDoc, err := json.Marshal(links)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(ws.AssetsDir, "shared_links.json"), linkDoc, 0o644))

	rewriteConfig(t, ws)
	return ws
}

// rewriteConfig regenerates the workspace's main.hcl after a test mutated
// the workspace fields, e.g. to point two workspaces at one data root.
func rewriteConfig(t *testing.T, ws *workspace) {
	t.Helper()

	configHCL := fmt.Sprintf(`
local_system {
  assets_dir = %q
}

file_system {
  root = %q
}

dataset {
  name       = "MyDataset"
  link_table = "shared_links.json"
}
`, ws.AssetsDir, ws.DataRoot)
	require.NoError(t, os.WriteFile(filepath.Join(ws.ConfigDir, "main.hcl"), []byte(configHCL), 0o644))
}

// runApp builds and runs a full application against the workspace,
// recovering startup panics into errors the way the entrypoint does.
func runApp(t *testing.T, ws *workspace, split string, simNum int) *harnessResult {
	t.Helper()

	appConfig, err := app.NewConfig(app.Config{
		ConfigPath: ws.ConfigDir,
		Split:      split,
		SimNum:     simNum,
		LogFormat:  "text",
		LogLevel:   "debug",
	})
	require.NoError(t, err)

	out := &testutil.SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, appConfig)
	}()

	if panicErr != nil {
		return &harnessResult{
			Output: out.String(),
			Err:    fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}
	t.Cleanup(func() { _ = testApp.Close() })

	runErr := testApp.Run(context.Background(), appConfig)
	return &harnessResult{Output: out.String(), Err: runErr, App: testApp}
}
