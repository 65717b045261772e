package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		cfg         Config
		errContains string
	}{
		{
			name: "valid config",
			cfg:  Config{ConfigPath: "cfg", Split: "train", SimNum: 7},
		},
		{
			name:        "missing config path",
			cfg:         Config{Split: "train"},
			errContains: "ConfigPath is a required",
		},
		{
			name:        "missing split",
			cfg:         Config{ConfigPath: "cfg"},
			errContains: "Split is a required",
		},
		{
			name:        "negative sim number",
			cfg:         Config{ConfigPath: "cfg", Split: "train", SimNum: -1},
			errContains: "SimNum must not be negative",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewConfig(tc.cfg)
			if tc.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cfg, *got)
		})
	}
}
