package config

import "path/filepath"

// Default path templates, used when the file_system block omits them. The
// placeholder vocabulary is root, dataset, stage, split and sim_num.
const (
	DefaultDatasetTemplate  = "{root}/{dataset}"
	DefaultInstanceTemplate = "{root}/{dataset}/{stage}/{split}/sim{sim_num:04d}"
)

// Config is the unified representation of the pipeline configuration.
type Config struct {
	LocalSystem *LocalSystem `hcl:"local_system,block"`
	FileSystem  *FileSystem  `hcl:"file_system,block"`
	Dataset     *Dataset     `hcl:"dataset,block"`
}

// LocalSystem describes where configuration assets live on this machine.
type LocalSystem struct {
	AssetsDir string `hcl:"assets_dir"`
}

// FileSystem carries the dataset root and the path templates used by the
// resolver.
type FileSystem struct {
	Root             string `hcl:"root"`
	DatasetTemplate  string `hcl:"dataset_template,optional"`
	InstanceTemplate string `hcl:"instance_template,optional"`
}

// Dataset names the dataset to operate on and its link-table document.
type Dataset struct {
	Name      string `hcl:"name"`
	LinkTable string `hcl:"link_table"`
}

// LinkTablePath resolves the link-table document location: absolute paths
// are used as-is, relative ones are anchored at the assets directory.
func (c *Config) LinkTablePath() string {
	if filepath.IsAbs(c.Dataset.LinkTable) {
		return c.Dataset.LinkTable
	}
	return filepath.Join(c.LocalSystem.AssetsDir, c.Dataset.LinkTable)
}
