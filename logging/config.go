package logging

// Config defines the structure for the logging section of deck.yml.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info", "warn", "error").
	// Can be overridden by the DECK_LOG_LEVEL environment variable.
	Level string `yaml:"level" jsonschema:"description=Minimum log level,enum=trace,enum=debug,enum=info,enum=warn,enum=error"`

	// ReportCaller, if true, includes the file, line, and function name in the log output.
	// Can be enabled with DECK_LOG_CALLER=true.
	ReportCaller bool `yaml:"report_caller" jsonschema:"description=Include caller file and line in log output"`

	File FileSinkConfig `yaml:"file" jsonschema:"description=File sink settings"`

	Format FormatConfig `yaml:"format" jsonschema:"description=Output format settings"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	Enabled bool `yaml:"enabled" jsonschema:"description=Write logs to Path instead of the default state directory"`
	// Path is the full path to the log file.
	Path   string `yaml:"path" jsonschema:"description=Log file path"`
	Format string `yaml:"format,omitempty" jsonschema:"description=File format,enum=text,enum=json"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset           string `yaml:"preset" jsonschema:"enum=default,enum=simple,enum=json"`
	DisableTimestamp bool   `yaml:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component"`
	// StructuredToStderr is "auto" (default), "always", or "never".
	StructuredToStderr string `yaml:"structured_to_stderr" jsonschema:"enum=auto,enum=always,enum=never"`
}
