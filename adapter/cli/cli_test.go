package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	internalApp "github.com/felixgeelhaar/todolist/internal/app"
	"github.com/felixgeelhaar/todolist/pkg/config"
	"github.com/felixgeelhaar/todolist/pkg/observability"
)

func setupTestApp(t *testing.T) *App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:         "test",
		DatabaseDriver: "sqlite",
		SQLitePath:     filepath.Join(t.TempDir(), "cli.db"),
		SessionTTL:     time.Hour,
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
		BcryptCost:     bcrypt.MinCost,
		CLIUsername:    "alice",
	}
	container, err := internalApp.NewContainer(context.Background(), cfg, observability.Discard())
	require.NoError(t, err)
	t.Cleanup(container.Close)

	a := NewApp(container)
	SetApp(a)
	t.Cleanup(func() { SetApp(nil) })
	return a
}

func TestApp_Principal(t *testing.T) {
	a := &App{DefaultUser: "alice"}

	assert.Equal(t, "alice", a.Principal("").Username)
	assert.Equal(t, "bob", a.Principal("bob").Username)

	a.DefaultUser = ""
	assert.True(t, a.Principal("").IsAnonymous())
}

func TestNewApp_WiresServices(t *testing.T) {
	a := setupTestApp(t)

	assert.NotNil(t, a.Tasks)
	assert.NotNil(t, a.Users)
	assert.Equal(t, "alice", a.DefaultUser)
	assert.Same(t, a, GetApp())
}

func TestMigrateCmd_UpToDate(t *testing.T) {
	setupTestApp(t)

	var out bytes.Buffer
	migrateCmd.SetOut(&out)
	migrateCmd.SetContext(context.Background())
	require.NoError(t, migrateCmd.RunE(migrateCmd, nil))
	assert.Contains(t, out.String(), "Schema is up to date.")
}

func TestHealthCmd(t *testing.T) {
	setupTestApp(t)

	var out bytes.Buffer
	healthCmd.SetOut(&out)
	healthCmd.SetContext(context.Background())
	require.NoError(t, healthCmd.RunE(healthCmd, nil))
	assert.Equal(t, "ok\n", out.String())
}

func TestCommands_RequireApp(t *testing.T) {
	SetApp(nil)

	migrateCmd.SetContext(context.Background())
	assert.ErrorIs(t, migrateCmd.RunE(migrateCmd, nil), ErrNotInitialized)
	assert.ErrorIs(t, serveCmd.RunE(serveCmd, nil), ErrNotInitialized)
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, out.String(), "todolist dev")
}
