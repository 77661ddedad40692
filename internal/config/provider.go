// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"

	"github.com/spf13/afero"
)

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath string
		// ConfigDirPath overrides the config directory lookup when set.
		ConfigDirPath string
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	// Loaded is a configuration together with the file it came from.
	Loaded struct {
		Config *Config
		// Path is "" when no file was found and only defaults apply.
		Path string
	}

	fileProvider struct {
		fs afero.Fs
	}
)

// NewProvider creates a configuration provider reading from the host
// filesystem.
func NewProvider() Provider {
	return NewProviderFs(afero.NewOsFs())
}

// NewProviderFs creates a configuration provider reading from fsys.
func NewProviderFs(fsys afero.Fs) Provider {
	return &fileProvider{fs: fsys}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	loaded, err := p.LoadWithPath(ctx, opts)
	if err != nil {
		return nil, err
	}
	return loaded.Config, nil
}

// LoadWithPath is Load that also reports which file was read.
func (p *fileProvider) LoadWithPath(ctx context.Context, opts LoadOptions) (Loaded, error) {
	cfg, path, err := loadWithOptions(ctx, p.fs, opts)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Config: cfg, Path: path}, nil
}

// LoadWithPath loads through provider and reports the file used when the
// provider can tell; otherwise Path is "".
func LoadWithPath(ctx context.Context, provider Provider, opts LoadOptions) (Loaded, error) {
	if fp, ok := provider.(interface {
		LoadWithPath(context.Context, LoadOptions) (Loaded, error)
	}); ok {
		return fp.LoadWithPath(ctx, opts)
	}

	cfg, err := provider.Load(ctx, opts)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Config: cfg}, nil
}
