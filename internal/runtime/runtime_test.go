package runtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/muse/internal/config"
	"github.com/manav03panchal/muse/internal/errors"
	"github.com/manav03panchal/muse/internal/generator"
	"github.com/manav03panchal/muse/internal/model"
	"github.com/manav03panchal/muse/internal/output"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.SessionDir = MemorySession
	cfg.MinFreeSpace = 0
	return cfg
}

func setupContext(t *testing.T) *Context {
	ctx, err := New(Options{Config: testConfig(t), GeneratorOptions: []generator.Option{generator.WithSeed(3)}})
	require.NoError(t, err)
	t.Cleanup(func() { ctx.Close() })
	return ctx
}

// =============================================================================
// Context Tests
// =============================================================================

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	require.NotNil(t, opts.Config)
	assert.False(t, opts.InMemory)
	assert.Equal(t, output.FormatCLI, opts.Format)
	assert.Equal(t, output.ColorAuto, opts.ColorMode)
	assert.False(t, opts.Debug)
}

func TestNew(t *testing.T) {
	ctx := setupContext(t)

	assert.NotNil(t, ctx.DB)
	assert.NotNil(t, ctx.Formatter)
	assert.NotNil(t, ctx.Generator)
	assert.NotNil(t, ctx.Favorites)
	assert.NotNil(t, ctx.Session)
	assert.NotNil(t, ctx.History)
	assert.NotNil(t, ctx.Conversations)
	assert.NotEmpty(t, ctx.Logger().RequestID())
	assert.Equal(t, "", ctx.DB.Path())
	assert.FileExists(t, ctx.Config.FavoritesPath())
}

func TestNewWithOptions(t *testing.T) {
	ctx, err := New(Options{
		Config:    testConfig(t),
		Format:    output.FormatJSON,
		ColorMode: output.ColorNever,
		Debug:     true,
	})
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, output.FormatJSON, ctx.Formatter.Format)
	assert.Equal(t, output.ColorNever, ctx.Formatter.ColorMode)
	assert.True(t, ctx.Debug)
	assert.True(t, ctx.IsJSON())
	assert.False(t, ctx.IsPlain())
}

func TestNewOnDiskSession(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionDir = ""

	ctx, err := New(Options{Config: cfg})
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, filepath.Join(cfg.DataDir, "session"), ctx.DB.Path())
}

func TestNewMinimalVariant(t *testing.T) {
	cfg := testConfig(t)
	cfg.PoolVariant = config.VariantMinimal

	ctx, err := New(Options{Config: cfg})
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, generator.MinimalPools(), ctx.Generator.Pools())
}

func TestNewPoolsFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.PoolsFile = filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(cfg.PoolsFile, []byte("characters:\n  - a lone cartographer\n"), 0o644))

	ctx, err := New(Options{Config: cfg})
	require.NoError(t, err)
	defer ctx.Close()
	assert.Equal(t, []string{"a lone cartographer"}, ctx.Generator.Pools().Characters)

	cfg.PoolsFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(Options{Config: cfg})
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestContextClose(t *testing.T) {
	ctx, err := New(Options{Config: testConfig(t)})
	require.NoError(t, err)
	assert.NoError(t, ctx.Close())

	empty := &Context{}
	assert.NoError(t, empty.Close())
}

// =============================================================================
// Prompt Flow Tests
// =============================================================================

func TestGenerateSetsCurrentAndHistory(t *testing.T) {
	ctx := setupContext(t)

	current, err := ctx.Current()
	require.NoError(t, err)
	assert.Nil(t, current)

	_, err = ctx.RequireCurrent()
	assert.ErrorIs(t, err, errors.ErrNoCurrentPrompt)

	p, err := ctx.Generate(model.GenreHorror)
	require.NoError(t, err)
	assert.Equal(t, model.GenreHorror, p.Genre)

	current, err = ctx.RequireCurrent()
	require.NoError(t, err)
	assert.Equal(t, p.ID, current.ID)

	history, err := ctx.History.List(0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, p.ID, history[0].ID)
}

func TestResolve(t *testing.T) {
	ctx := setupContext(t)

	p, err := ctx.Generate(model.GenreAny)
	require.NoError(t, err)

	found, err := ctx.Resolve(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Text, found.Text)
	assert.False(t, found.IsSaved())

	require.True(t, ctx.Favorites.Add(p.Clone()))
	found, err = ctx.Resolve(p.ID)
	require.NoError(t, err)
	assert.True(t, found.IsSaved())

	_, err = ctx.Resolve("nope")
	assert.ErrorIs(t, err, errors.ErrPromptNotFound)
}

func TestEngineUsesContextStore(t *testing.T) {
	ctx := setupContext(t)
	engine := ctx.Engine()

	conv, _ := engine.Handle(model.NewConversation(), "prompt")
	_, reply := engine.Handle(conv, "save")
	assert.True(t, reply.Saved)
	assert.Len(t, ctx.Favorites.LoadAll(), 1)
}
