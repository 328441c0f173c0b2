package examplegen

import (
	"fmt"
	"io"
	"log/slog"
)

// Config captures engine setup
type Config struct {
	English            Snapshot
	Supplemental       *SupplementalData
	Exclusions         *ExclusionCatalog
	Help               *HelpCatalog
	Registry           *Registry
	Logger             *slog.Logger
	Metrics            MetricsRecorder
	Hooks              []RenderHook
	CacheDisabled      bool
	MaxBackgroundDepth int

	store             *DataStore
	englishLocale     string
	supplementalFiles []string
	extraStrategies   []Strategy
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options and fills in the embedded
// defaults for anything left unset.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{englishLocale: defaultEnglishLocale}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Supplemental == nil {
		loader := NewSupplementalLoader("")
		for _, file := range cfg.supplementalFiles {
			loader.AddOverride(file)
		}
		supp, err := loader.Load()
		if err != nil {
			return nil, fmt.Errorf("config: supplemental data: %w", err)
		}
		cfg.Supplemental = supp
	}

	if cfg.Exclusions == nil {
		exclusions, err := DefaultExclusions()
		if err != nil {
			return nil, fmt.Errorf("config: exclusions: %w", err)
		}
		cfg.Exclusions = exclusions
	}

	if cfg.Help == nil {
		help, err := DefaultHelp()
		if err != nil {
			return nil, fmt.Errorf("config: help: %w", err)
		}
		cfg.Help = help
	}

	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}
	for _, s := range cfg.extraStrategies {
		if err := cfg.Registry.Register(s); err != nil {
			return nil, err
		}
	}

	if cfg.English == nil && cfg.store != nil && cfg.store.Has(cfg.englishLocale) {
		english, err := cfg.store.Resolve(cfg.englishLocale)
		if err != nil {
			return nil, err
		}
		english.Freeze()
		cfg.English = english
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NoopMetrics{}
	}
	if cfg.MaxBackgroundDepth <= 0 {
		cfg.MaxBackgroundDepth = DefaultMaxBackgroundDepth
	}

	return cfg, nil
}

// WithEnglish sets the reference snapshot used for the ENGLISH target.
func WithEnglish(english Snapshot) Option {
	return func(c *Config) error {
		c.English = english
		return nil
	}
}

// WithStore resolves the English reference snapshot from store unless
// WithEnglish is given.
func WithStore(store *DataStore) Option {
	return func(c *Config) error {
		c.store = store
		return nil
	}
}

// WithEnglishLocale changes the locale resolved by WithStore.
func WithEnglishLocale(locale string) Option {
	return func(c *Config) error {
		if locale == "" {
			return fmt.Errorf("config: empty english locale")
		}
		c.englishLocale = normalizeLocale(locale)
		return nil
	}
}

func WithSupplemental(supp *SupplementalData) Option {
	return func(c *Config) error {
		c.Supplemental = supp
		return nil
	}
}

// WithSupplementalFile layers a supplemental file over the embedded data.
func WithSupplementalFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		c.supplementalFiles = append(c.supplementalFiles, path)
		return nil
	}
}

func WithExclusions(catalog *ExclusionCatalog) Option {
	return func(c *Config) error {
		c.Exclusions = catalog
		return nil
	}
}

// WithExclusionsFile replaces the embedded exclusion lists.
func WithExclusionsFile(path string) Option {
	return func(c *Config) error {
		catalog, err := LoadExclusionsFile(path)
		if err != nil {
			return err
		}
		c.Exclusions = catalog
		return nil
	}
}

func WithHelp(help *HelpCatalog) Option {
	return func(c *Config) error {
		c.Help = help
		return nil
	}
}

func WithRegistry(registry *Registry) Option {
	return func(c *Config) error {
		c.Registry = registry
		return nil
	}
}

// WithStrategy appends a strategy after the built in ones.
func WithStrategy(s Strategy) Option {
	return func(c *Config) error {
		c.extraStrategies = append(c.extraStrategies, s)
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithMetrics records render metrics through recorder.
func WithMetrics(recorder MetricsRecorder) Option {
	return func(c *Config) error {
		c.Metrics = recorder
		return nil
	}
}

func WithHooks(hooks ...RenderHook) Option {
	return func(c *Config) error {
		c.Hooks = append(c.Hooks, hooks...)
		return nil
	}
}

// WithCacheDisabled starts the engine with its cache bypassed.
func WithCacheDisabled() Option {
	return func(c *Config) error {
		c.CacheDisabled = true
		return nil
	}
}

func WithMaxBackgroundDepth(depth int) Option {
	return func(c *Config) error {
		if depth < 1 {
			return fmt.Errorf("config: background depth must be positive, got %d", depth)
		}
		c.MaxBackgroundDepth = depth
		return nil
	}
}
