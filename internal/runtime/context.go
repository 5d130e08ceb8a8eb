// Package runtime wires configuration, storage and the prompt generator
// into the context shared by every command.
package runtime

import (
	"context"

	"github.com/manav03panchal/muse/internal/chat"
	"github.com/manav03panchal/muse/internal/config"
	"github.com/manav03panchal/muse/internal/errors"
	"github.com/manav03panchal/muse/internal/favorites"
	"github.com/manav03panchal/muse/internal/generator"
	"github.com/manav03panchal/muse/internal/logging"
	"github.com/manav03panchal/muse/internal/model"
	"github.com/manav03panchal/muse/internal/output"
	"github.com/manav03panchal/muse/internal/storage"
)

// MemorySession selects an in-memory session database when used as the
// session directory.
const MemorySession = ":memory:"

// Context holds the application runtime context.
type Context struct {
	Config    *config.Config
	DB        *storage.DB
	Formatter *output.Formatter
	Generator *generator.Generator
	Favorites *favorites.Store

	// Repositories
	Session       *storage.SessionRepo
	History       *storage.HistoryRepo
	Conversations *storage.ConversationRepo

	// Ctx carries the logging scope of this invocation.
	Ctx context.Context

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	// Config is the loaded configuration. Nil uses config.DefaultConfig.
	Config *config.Config
	// InMemory keeps the session database in memory.
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
	// Command names the invocation in log records.
	Command string
	// GeneratorOptions are appended to those derived from Config.
	GeneratorOptions []generator.Option
	// FavoritesOptions are appended to those derived from Config.
	FavoritesOptions []favorites.Option
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Config:    config.DefaultConfig(),
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	pools, err := loadPools(cfg)
	if err != nil {
		return nil, err
	}

	genOpts := []generator.Option{}
	if cfg.Seed != 0 {
		genOpts = append(genOpts, generator.WithSeed(cfg.Seed))
	}
	genOpts = append(genOpts, opts.GeneratorOptions...)
	gen, err := generator.New(pools, genOpts...)
	if err != nil {
		return nil, err
	}

	// Open database
	inMemory := opts.InMemory || cfg.SessionDir == MemorySession
	path := ""
	if !inMemory {
		path = cfg.SessionPath()
	}
	db, err := storage.Open(storage.Options{
		Path:     path,
		InMemory: inMemory,
	})
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("open session", "failed to open session database at "+path, err)
	}

	favOpts := append([]favorites.Option{favorites.WithMinFreeSpace(cfg.MinFreeSpace)}, opts.FavoritesOptions...)
	store := favorites.New(cfg.FavoritesPath(), favOpts...)

	// Create formatter
	formatter := output.NewFormatter()
	if opts.Format != "" {
		formatter.Format = opts.Format
	}
	if opts.ColorMode != "" {
		formatter.ColorMode = opts.ColorMode
	}

	ctx := logging.NewCommandContext(opts.Command)
	logging.FromContext(ctx).Debug("runtime ready",
		logging.KeyPath, cfg.FavoritesPath(),
		"pool_variant", cfg.PoolVariant,
	)

	return &Context{
		Config:        cfg,
		DB:            db,
		Formatter:     formatter,
		Generator:     gen,
		Favorites:     store,
		Session:       storage.NewSessionRepo(db),
		History:       storage.NewHistoryRepo(db),
		Conversations: storage.NewConversationRepo(db),
		Ctx:           ctx,
		Debug:         opts.Debug,
	}, nil
}

func loadPools(cfg *config.Config) (generator.Pools, error) {
	base := generator.PoolsFor(cfg.PoolVariant)
	if cfg.PoolsFile == "" {
		return base, nil
	}
	return generator.LoadPools(cfg.PoolsFile, base)
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// PlainFormatter returns a plain text formatter.
func (c *Context) PlainFormatter() *output.PlainFormatter {
	return output.NewPlainFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsPlain returns true if output format is plain.
func (c *Context) IsPlain() bool {
	return c.Formatter.Format == output.FormatPlain
}

// Logger returns the request-scoped logger.
func (c *Context) Logger() *logging.ContextLogger {
	return logging.FromContext(c.Ctx)
}

// Engine returns a chat engine over this context's generator and favorites.
func (c *Context) Engine() *chat.Engine {
	return chat.NewEngine(c.Generator, c.Favorites)
}

// Generate creates a prompt, records it in the history and makes it current.
func (c *Context) Generate(genre model.Genre) (*model.Prompt, error) {
	p := c.Generator.Generate(string(genre))

	if err := c.History.Record(p); err != nil {
		c.Logger().Warn("failed to record history", logging.KeyPromptID, p.ID, logging.KeyError, err)
	}
	if err := c.Session.SetCurrent(p); err != nil {
		return p, errors.NewSystemErrorWithOp("set current", "failed to remember the prompt", err)
	}

	c.Logger().Debug("generated prompt", logging.KeyPromptID, p.ID, logging.KeyGenre, string(p.Genre))
	return p, nil
}

// Current returns the current prompt.
func (c *Context) Current() (*model.Prompt, error) {
	p, err := c.Session.Current()
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("get current", "failed to read the session", err)
	}
	return p, nil
}

// RequireCurrent returns the current prompt or a user error when there is
// none.
func (c *Context) RequireCurrent() (*model.Prompt, error) {
	p, err := c.Current()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.Wrap(errors.ErrNoCurrentPrompt, "nothing to work with")
	}
	return p, nil
}

// Resolve finds a prompt by id in the favorites, then the history.
func (c *Context) Resolve(id string) (*model.Prompt, error) {
	if p, ok := c.Favorites.Find(id); ok {
		return p, nil
	}
	p, err := c.History.Get(id)
	if err == nil && p != nil {
		return p, nil
	}
	if err != nil && !storage.IsErrKeyNotFound(err) {
		return nil, errors.NewSystemErrorWithOp("get history", "failed to read the history", err)
	}
	return nil, errors.Wrapf(errors.ErrPromptNotFound, "no prompt with id %s", id)
}
