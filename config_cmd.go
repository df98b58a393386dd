package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# GitHub account hosting the sample pack
username: ""
# Repository holding the samples
repo: ""
# Optional release tag pinned in CDN URLs (gh/user/repo@tag)
release_tag: ""

# Probe the public CDN before local paths
use_jsdelivr: true
cdn_host: "cdn.jsdelivr.net"

# Prefix for locally hosted samples (must end with a slash)
local_base_path: "./"

# Ordered format trial list; earlier entries win
format_preference:
  - opus
  - mp3
  - flac

# Defer fetch and decode until a handle's first play
use_progressive_loading: true
# Decode on the background worker instead of the caller
use_worker_decoding: true

# In-memory cache for fetched audio bytes
fetch_cache_bytes: 67108864
`

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Edit the samplecask config file",
	Long:    "Edit the samplecask config file. We'll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.",
	Example: "samplecask config\nsamplecask config --config path/to/samplecask.yml",
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("Samplecask", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
