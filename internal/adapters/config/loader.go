// Package config provides the configuration loader for ripple.
package config

import (
	"os"
	"path/filepath"

	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/ripplebuild/ripple/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers ripple.yaml walking up from cwd and returns the resolved
// configuration with all paths made absolute against the project root.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- configPath is discovered from the working directory
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var dto fileDTO
	if parseErr := yaml.Unmarshal(raw, &dto); parseErr != nil {
		return nil, zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return l.resolve(configPath, &dto), nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd

	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) resolve(configPath string, dto *fileDTO) *domain.Config {
	root := resolveRoot(configPath, dto.Root)

	cfg := &domain.Config{
		Root: root,
		Styles: domain.StylesConfig{
			SourceDirs:   resolveAll(root, dto.Styles.Source),
			OutputDir:    resolvePath(root, dto.Styles.Output),
			IncludePaths: resolveAll(root, dto.Styles.Include),
			Extensions:   dto.Styles.Ext,
			CompilerCmd:  dto.Styles.Compiler,
		},
		Scripts: domain.ScriptsConfig{
			Entries:    resolveAll(root, dto.Scripts.Entries),
			OutputDir:  resolvePath(root, dto.Scripts.Output),
			Extensions: dto.Scripts.Ext,
			BundlerCmd: dto.Scripts.Bundler,
		},
		Watch: domain.WatchConfig{
			DebounceMs:        dto.Watch.DebounceMs,
			ExcludeExtensions: dto.Watch.Exclude,
			SkipDirs:          dto.Watch.SkipDirs,
		},
		Serve: domain.ServeConfig{
			Addr: dto.Serve.Addr,
		},
	}

	if len(cfg.Styles.SourceDirs) == 0 {
		cfg.Styles.SourceDirs = []string{root}
	}
	if cfg.Styles.OutputDir == "" {
		cfg.Styles.OutputDir = filepath.Join(root, "dist")
	}
	if len(cfg.Styles.CompilerCmd) == 0 {
		cfg.Styles.CompilerCmd = []string{"sass"}
	}
	if cfg.Scripts.OutputDir == "" {
		cfg.Scripts.OutputDir = cfg.Styles.OutputDir
	}
	if len(cfg.Scripts.BundlerCmd) == 0 {
		cfg.Scripts.BundlerCmd = []string{"esbuild", "--bundle"}
	}
	if len(cfg.Watch.SkipDirs) == 0 {
		cfg.Watch.SkipDirs = domain.DefaultSkipDirectories
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = domain.DefaultServeAddr
	}

	return cfg
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

func resolvePath(root, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(root, p))
}

func resolveAll(root string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	resolved := make([]string, len(paths))
	for i, p := range paths {
		resolved[i] = resolvePath(root, p)
	}
	return resolved
}
