package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/recordwise/crm-bridge/pkg/backend"
	"github.com/recordwise/crm-bridge/pkg/catalog"
	"github.com/recordwise/crm-bridge/pkg/config"
	"github.com/recordwise/crm-bridge/pkg/dispatch"
	"github.com/recordwise/crm-bridge/pkg/tools"
)

// Filled at build time with the -X linker flag.
var Version = "dev"

type options struct {
	Config   string `short:"c" long:"config" description:"config YAML path"`
	LogLevel string `long:"log-level" description:"override the configured log level"`
	Memory   bool   `long:"memory" description:"use the in-process backend instead of the HTTP API"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return err
	}
	if opts.Memory {
		cfg.Backend.Mode = config.BackendModeMemory
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Server.Version == "dev" {
		cfg.Server.Version = Version
	}

	log, err := newLogger(cfg.Logging, opts.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cache, err := openCatalog(ctx, cfg.Catalog, log)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	var backends dispatch.Backends
	switch cfg.Backend.Mode {
	case config.BackendModeMemory:
		backends = newMemoryBackends()
		log.Info().Msg("Using in-process backend")
	default:
		client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Token,
			time.Duration(cfg.Backend.TimeoutSecs)*time.Second, log)
		backends = client

		refresher := catalog.NewRefresher(store, client, cache, log)
		if err := refresher.Start(ctx, cfg.Catalog.RefreshSchedule); err != nil {
			return fmt.Errorf("failed to start catalog refresh: %w", err)
		}
		defer refresher.Stop()
	}

	policy, err := mappingPolicy(cfg.Mapping)
	if err != nil {
		return err
	}
	dispatcher := dispatch.NewWithPolicy(store, backends, policy, log)

	registry := tools.NewRegistry()
	tools.NewProvider(dispatcher, store).RegisterAll(registry)

	server := tools.NewServer(cfg.Server.Name, cfg.Server.Version,
		registry, tools.NewTranslator(), dispatcher, log)
	return server.Run(ctx, &mcp.StdioTransport{})
}

// mappingPolicy converts the configured tunables into a dispatch policy,
// parsing the immutable-field resource keys.
func mappingPolicy(cfg config.MappingConfig) (dispatch.Policy, error) {
	policy := dispatch.Policy{MaxSuggestions: cfg.MaxSuggestions}
	if len(cfg.ImmutableFields) > 0 {
		policy.ImmutableFields = make(map[catalog.ResourceType][]string, len(cfg.ImmutableFields))
		for name, slugs := range cfg.ImmutableFields {
			rt, err := catalog.ParseResourceType(name)
			if err != nil {
				return dispatch.Policy{}, fmt.Errorf("mapping.immutable_fields: %w", err)
			}
			policy.ImmutableFields[rt] = slugs
		}
	}
	return policy, nil
}

// newLogger writes to stderr: stdout belongs to the MCP transport.
func newLogger(cfg config.LoggingConfig, override string) (zerolog.Logger, error) {
	level := cfg.Level
	if override != "" {
		level = override
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	var out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if !cfg.Pretty {
		return zerolog.New(os.Stderr).Level(parsed).With().Timestamp().Logger(), nil
	}
	return zerolog.New(out).Level(parsed).With().Timestamp().Logger(), nil
}

// openCatalog seeds the catalog store from the on-disk cache when one is
// configured, falling back to the built-in defaults.
func openCatalog(ctx context.Context, cfg config.CatalogConfig, log zerolog.Logger) (*catalog.Store, *catalog.Cache, error) {
	if cfg.CachePath == "" {
		return catalog.NewStore(catalog.Defaults()), nil, nil
	}
	cache, err := catalog.OpenCache(cfg.CachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog cache: %w", err)
	}
	cached, err := cache.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load cached catalog, using defaults")
	}
	if cached == nil {
		cached = catalog.Defaults()
	} else {
		log.Info().Msg("Seeded catalog from cache")
	}
	return catalog.NewStore(cached), cache, nil
}

// memoryBackends keeps one isolated in-process store per resource type.
type memoryBackends struct {
	stores map[catalog.ResourceType]*backend.Memory
}

func newMemoryBackends() *memoryBackends {
	stores := make(map[catalog.ResourceType]*backend.Memory, len(catalog.ResourceTypes))
	for _, rt := range catalog.ResourceTypes {
		stores[rt] = backend.NewMemory()
	}
	return &memoryBackends{stores: stores}
}

func (m *memoryBackends) ForResource(rt catalog.ResourceType) backend.Adapter {
	return m.stores[rt]
}
