// Package config loads deck.yml (or deck.toml) from the project tree and the
// user's global config directory, layering the files into one Config.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/deck/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are searched in order in every directory.
var configNames = []string{
	"deck.yml",
	"deck.yaml",
	".deck.yml",
	".deck.yaml",
	"deck.toml",
}

// overrideNames are applied in order after the project file.
var overrideNames = []string{
	"deck.override.yml",
	"deck.override.yaml",
	".deck.override.yml",
	".deck.override.yaml",
}

// knownKeys are the top-level keys decoded into Config fields; the rest are extensions.
var knownKeys = map[string]bool{
	"version": true,
	"catalog": true,
	"launch":  true,
	"screen":  true,
	"ticker":  true,
	"server":  true,
}

// Load reads and parses a single deck configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, perr := parse(data, filepath.Ext(path))
	if perr != nil {
		return nil, perr.WithDetail("path", path)
	}
	if err := finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads the configuration visible from the current directory:
// 1. Global config (~/.config/deck/deck.yml) - base layer
// 2. Project config (deck.yml found walking up) - overrides global
// 3. Local override (deck.override.yml) - overrides all
//
// No file at all is not an error; defaults apply.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the given directory
func LoadFrom(startDir string) (*Config, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return LoadFromWithLogger(startDir, logger)
}

// LoadFromWithLogger loads configuration with hierarchical merging and logging
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	layered, err := loadLayers(startDir, logger)
	if err != nil {
		return nil, err
	}

	final := layered.merged()
	if err := finalize(final); err != nil {
		return nil, err
	}

	logger.Debug("Configuration loaded and validated successfully")
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		configData, err := yaml.Marshal(final)
		if err == nil {
			logger.Debugf("Merged configuration:\n%s", string(configData))
		}
	}
	return final, nil
}

// LoadFromBytes parses YAML configuration from byte array
func LoadFromBytes(data []byte) (*Config, error) {
	cfg, perr := parse(data, ".yml")
	if perr != nil {
		return nil, perr
	}
	if err := finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadLayered finds and loads all configuration layers (global, project, overrides)
// without merging them, for analysis purposes. It also computes the final merged config.
func LoadLayered(startDir string) (*LayeredConfig, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	layered, err := loadLayers(startDir, logger)
	if err != nil {
		return nil, err
	}
	final := layered.merged()
	if err := finalize(final); err != nil {
		return nil, err
	}
	layered.Final = final
	return layered, nil
}

// Paths returns every file that contributed to the layered config.
func (l *LayeredConfig) Paths() []string {
	var paths []string
	for _, src := range []ConfigSource{SourceGlobal, SourceProject} {
		if p, ok := l.FilePaths[src]; ok {
			paths = append(paths, p)
		}
	}
	for _, o := range l.Overrides {
		paths = append(paths, o.Path)
	}
	return paths
}

func loadLayers(startDir string, logger *logrus.Logger) (*LayeredConfig, error) {
	layered := &LayeredConfig{
		FilePaths: make(map[ConfigSource]string),
	}

	defaultCfg := &Config{}
	defaultCfg.SetDefaults()
	layered.Default = defaultCfg

	// 1. Global layer (optional). A broken global file is skipped.
	if globalPath := GlobalConfigPath(); globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			logger.WithField("path", globalPath).Debug("Loading global configuration")
			if cfg, err := readRaw(globalPath); err == nil {
				layered.Global = cfg
				layered.FilePaths[SourceGlobal] = globalPath
			} else {
				logger.WithError(err).Warn("Failed to load global configuration, continuing without it")
			}
		}
	}

	// 2. Project layer (optional, but must parse when present).
	overrideDir := startDir
	if projectPath, err := FindConfigFile(startDir); err == nil {
		logger.WithField("path", projectPath).Debug("Loading project configuration")
		cfg, err := readRaw(projectPath)
		if err != nil {
			return nil, err
		}
		layered.Project = cfg
		layered.FilePaths[SourceProject] = projectPath
		overrideDir = filepath.Dir(projectPath)
	}

	// 3. Override layers (optional).
	for _, name := range overrideNames {
		overridePath := filepath.Join(overrideDir, name)
		if _, err := os.Stat(overridePath); err != nil {
			continue
		}
		logger.WithField("path", overridePath).Debug("Loading local override configuration")
		cfg, err := readRaw(overridePath)
		if err != nil {
			logger.WithError(err).Warn("Failed to parse override file, skipping")
			continue
		}
		layered.Overrides = append(layered.Overrides, OverrideSource{Path: overridePath, Config: cfg})
	}

	return layered, nil
}

func (l *LayeredConfig) merged() *Config {
	final := &Config{}
	if l.Global != nil {
		final = mergeConfigs(final, l.Global)
	}
	if l.Project != nil {
		final = mergeConfigs(final, l.Project)
	}
	for _, o := range l.Overrides {
		final = mergeConfigs(final, o.Config)
	}
	return final
}

func readRaw(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}
	cfg, perr := parse(data, filepath.Ext(path))
	if perr != nil {
		return nil, perr.WithDetail("path", path)
	}
	return cfg, nil
}

// parse decodes data without defaults or validation.
func parse(data []byte, ext string) (*Config, *errors.Error) {
	expanded := []byte(expandEnvVars(string(data)))

	var cfg Config
	if strings.EqualFold(ext, ".toml") {
		if err := toml.Unmarshal(expanded, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
		var raw map[string]interface{}
		if err := toml.Unmarshal(expanded, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
		for key, value := range raw {
			if knownKeys[key] {
				continue
			}
			if cfg.Extensions == nil {
				cfg.Extensions = make(map[string]interface{})
			}
			cfg.Extensions[key] = value
		}
		return &cfg, nil
	}

	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
	}
	return &cfg, nil
}

// finalize validates against the schema, applies defaults and checks semantics.
func finalize(cfg *Config) error {
	if err := validateSchema(cfg); err != nil {
		return err
	}

	cfg.SetDefaults()
	return cfg.Validate()
}

// FindConfigFile searches for a deck configuration file from startDir up to
// the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// GlobalConfigPath returns the XDG config path for deck
func GlobalConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "deck", "deck.yml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "deck", "deck.yml")
	}

	return ""
}
