package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanos-ai/cleanos/internal/app"
	"github.com/cleanos-ai/cleanos/internal/config"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/providers"
	"github.com/cleanos-ai/cleanos/internal/testutil"
)

// useFakeEnv points every command at fake for the rest of the test.
func useFakeEnv(t *testing.T, fake *testutil.FakeGateway) {
	t.Helper()
	prevOpen, prevInteractive := openEnv, interactive
	openEnv = func(ctx context.Context) (*env, error) {
		cfg := config.DefaultConfig()
		a := app.New(fake, cfg)
		_ = a.Bootstrap(ctx)
		return &env{cfg: cfg, app: a, close: func() {}}, nil
	}
	interactive = func() bool { return false }
	t.Cleanup(func() {
		openEnv, interactive = prevOpen, prevInteractive
	})
}

// run executes args against the root command and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	scanTop, scanDuplicates, scanHistory = 10, false, false
	modelsRefresh = false
	keyYes = false
	updateVerbose = false
	chatProvider, chatModel, chatWidth, chatStream = "", "", 100, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSysinfo(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.System = &models.SystemSnapshot{
		Hostname: "workstation", OS: "linux",
		DiskTotal: 100 << 30, DiskUsed: 80 << 30,
		MemoryTotal: 16 << 30, MemoryUsed: 4 << 30,
	}
	fake.Storage = &models.StorageBreakdown{
		Categories: []models.StorageCategory{
			{Name: "Downloads", Size: 3 << 30},
			{Name: "Music", Size: 0},
		},
		TotalUsed: 80 << 30, TotalAvailable: 20 << 30,
	}
	useFakeEnv(t, fake)

	out, err := run(t, "sysinfo")
	require.NoError(t, err)
	assert.Contains(t, out, "workstation")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "Downloads")
	assert.NotContains(t, out, "Music")
	assert.Contains(t, out, "System Logs")
}

func TestSysinfo_Error(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.SystemErr = assert.AnError
	useFakeEnv(t, fake)

	_, err := run(t, "sysinfo")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDocker(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Docker = &models.ContainerInventory{
		Images: []models.DockerImage{
			{ID: "a", Repository: "postgres", Tag: "16", Size: 400 << 20, InUse: true},
			{ID: "b", Repository: "node", Tag: "18", Size: 1 << 30},
		},
		Containers:     []models.DockerContainer{{ID: "c", Name: "db", Image: "postgres:16", Status: "running"}},
		BuildCacheSize: 2 << 30,
	}
	useFakeEnv(t, fake)

	out, err := run(t, "docker")
	require.NoError(t, err)
	assert.Contains(t, out, "postgres:16")
	assert.Contains(t, out, "node:18")
	assert.Contains(t, out, "IMAGES (2)")
	assert.Contains(t, out, "CONTAINERS (1)")
	assert.Contains(t, out, "Reclaimable")
}

func TestDocker_Unavailable(t *testing.T) {
	useFakeEnv(t, testutil.NewFakeGateway())

	out, err := run(t, "docker")
	require.NoError(t, err)
	assert.Contains(t, out, "Docker is not available")
}

func TestDockerPrune(t *testing.T) {
	fake := testutil.NewFakeGateway()
	useFakeEnv(t, fake)

	t.Run("unsupported is reported, not failed", func(t *testing.T) {
		out, err := run(t, "docker", "prune", "images")
		require.NoError(t, err)
		assert.Contains(t, out, "operation not supported")
		assert.Equal(t, 1, fake.Calls("CleanDocker"))
	})

	t.Run("invalid target", func(t *testing.T) {
		_, err := run(t, "docker", "prune", "everything")
		assert.ErrorContains(t, err, "invalid docker target")
	})
}

func TestCaches(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Packages = []models.PackageCacheEntry{
		{Manager: "npm", Path: "/home/u/.npm", Size: 500 << 20, Exists: true},
		{Manager: "cargo", Path: "/home/u/.cargo/registry", Exists: false},
	}
	fake.Recs = []models.CleanupRecommendation{{
		ID: "package-caches", Category: models.RecommendPackageCache,
		Title: "Package caches", SpaceReclaimable: 500 << 20, RiskLevel: models.RiskLow,
	}}
	useFakeEnv(t, fake)

	out, err := run(t, "caches")
	require.NoError(t, err)
	assert.Contains(t, out, "npm")
	assert.NotContains(t, out, "cargo")
	assert.Contains(t, out, "package-caches")
	assert.Contains(t, out, "low risk")
	assert.Contains(t, out, "none found")
}

func TestCachesClean(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Recs = []models.CleanupRecommendation{{
		ID: "logs", Category: models.RecommendLogs, Title: "System logs",
	}}
	useFakeEnv(t, fake)

	out, err := run(t, "caches", "clean", "logs")
	require.NoError(t, err)
	assert.Contains(t, out, "operation not supported")
	assert.Equal(t, 1, fake.Calls("CleanLogs"))

	_, err = run(t, "caches", "clean", "nope")
	assert.ErrorContains(t, err, `no recommendation with id "nope"`)
}

func TestModels(t *testing.T) {
	useFakeEnv(t, testutil.NewFakeGateway())

	out, err := run(t, "models", providers.Claude)
	require.NoError(t, err)
	def, ok := providers.Lookup(providers.Claude)
	require.True(t, ok)
	assert.Contains(t, out, def.Name)
	assert.Contains(t, out, "catalog: ")

	_, err = run(t, "models", "nope")
	assert.ErrorContains(t, err, "unknown provider")
}

func TestModels_RefreshFailureFallsBack(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.CatalogErr = assert.AnError
	useFakeEnv(t, fake)

	out, err := run(t, "models", "--refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog refresh failed")
	assert.GreaterOrEqual(t, fake.Calls("FetchModelCatalog"), 1)
}

func TestProviders(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Keys[providers.Claude] = "sk-ant"
	useFakeEnv(t, fake)

	out, err := run(t, "providers")
	require.NoError(t, err)
	assert.Contains(t, out, "connected")
	assert.Contains(t, out, "★")
	assert.NotContains(t, out, "No active provider")
}

func TestProviders_NoneActive(t *testing.T) {
	useFakeEnv(t, testutil.NewFakeGateway())

	out, err := run(t, "providers")
	require.NoError(t, err)
	assert.Contains(t, out, "No active provider")
}

func TestDirs(t *testing.T) {
	fake := testutil.NewFakeGateway()
	useFakeEnv(t, fake)

	out, err := run(t, "dirs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "~/Downloads")

	_, err = run(t, "dirs", "add", "~/Projects")
	require.NoError(t, err)
	var stored []string
	require.NoError(t, json.Unmarshal([]byte(fake.Settings[models.SettingScanDirectories]), &stored))
	assert.Contains(t, stored, "~/Projects")

	out, err = run(t, "dirs", "remove", "~/Downloads")
	require.NoError(t, err)
	assert.NotContains(t, out, "~/Downloads")
	assert.Contains(t, out, "~/Projects")
}

func TestKeySet(t *testing.T) {
	fake := testutil.NewFakeGateway()
	useFakeEnv(t, fake)

	out, err := run(t, "key", "set", providers.Claude, "sk-ant-123")
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-123", fake.Keys[providers.Claude])
	assert.Contains(t, out, "Connected")
	assert.Equal(t, 1, fake.Calls("TestConnection"))
}

func TestKeySet_FailedTestStillStores(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.TestErr = assert.AnError
	useFakeEnv(t, fake)

	out, err := run(t, "key", "set", providers.Claude, "sk-ant-123")
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-123", fake.Keys[providers.Claude])
	assert.Contains(t, out, "Connection test failed")
}

func TestKeySet_MissingArgsNonInteractive(t *testing.T) {
	useFakeEnv(t, testutil.NewFakeGateway())

	_, err := run(t, "key", "set")
	assert.ErrorContains(t, err, "provider is required")

	_, err = run(t, "key", "set", providers.Claude)
	assert.ErrorContains(t, err, "key is required")

	_, err = run(t, "key", "set", "nope", "k")
	assert.ErrorContains(t, err, "unknown provider")
}

func TestKeyDelete(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Keys[providers.Claude] = "sk-ant"
	useFakeEnv(t, fake)

	out, err := run(t, "key", "delete", "--yes", providers.Claude)
	require.NoError(t, err)
	assert.Empty(t, fake.Keys[providers.Claude])
	assert.Contains(t, out, "Deleted")
}

func TestKeyStatus(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Keys[providers.OpenAI] = "sk-1"
	useFakeEnv(t, fake)

	out, err := run(t, "key", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "openai")
	assert.Contains(t, out, "not set")
}

func TestChat(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Keys[providers.Claude] = "sk-ant"
	fake.Reply = "Clear **node_modules** folders you no longer use."
	useFakeEnv(t, fake)

	out, err := run(t, "chat", "what", "is", "big?")
	require.NoError(t, err)
	assert.Equal(t, providers.Claude, fake.LastChat.Provider)
	assert.Equal(t, "what is big?", fake.LastChat.Message)
	assert.Contains(t, out, "node_modules")
}

func TestChat_NoProvider(t *testing.T) {
	fake := testutil.NewFakeGateway()
	useFakeEnv(t, fake)

	_, err := run(t, "chat", "hello")
	assert.ErrorContains(t, err, "no active provider")
	assert.Zero(t, fake.Calls("Chat"))
}

func TestChat_ProviderFlag(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Reply = "ok"
	useFakeEnv(t, fake)

	_, err := run(t, "chat", "--provider", providers.OpenAI, "--model", "gpt-4o-mini", "hello")
	require.NoError(t, err)
	assert.Equal(t, providers.OpenAI, fake.LastChat.Provider)
	assert.Equal(t, "gpt-4o-mini", fake.LastChat.Model)
}

func TestChat_StreamWithoutLocalBackend(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Keys[providers.Claude] = "sk-ant"
	fake.Reply = "plain reply"
	useFakeEnv(t, fake)

	out, err := run(t, "chat", "--stream", "hi")
	require.NoError(t, err)
	assert.Contains(t, out, "plain reply")
	assert.Equal(t, 1, fake.Calls("Chat"))
}

func TestUpdate(t *testing.T) {
	fake := testutil.NewFakeGateway()
	useFakeEnv(t, fake)

	out, err := run(t, "update")
	require.NoError(t, err)
	assert.Contains(t, out, "1.0.0 is up to date")

	fake.Update = &models.UpdateInfo{Version: "1.2.0", Date: "2026-10-01", Body: "Faster scans."}
	out, err = run(t, "update")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.0 is available")
	assert.Contains(t, out, "Faster scans.")

	out, err = run(t, "update", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Go Version:")
}

func TestScan(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Files["/data"] = []models.FileRecord{
		{ID: "1", Path: "/data/movie.mkv", Name: "movie.mkv", Size: 4 << 30, Category: models.CategoryMedia},
		{ID: "2", Path: "/data/notes.txt", Name: "notes.txt", Size: 2 << 10, Category: models.CategoryDocument},
		{ID: "3", Path: "/data/sub", Name: "sub", IsDirectory: true},
	}
	useFakeEnv(t, fake)

	out, err := run(t, "scan", "--top", "1", "/data")
	require.NoError(t, err)
	assert.Contains(t, out, "/data (3 entries")
	assert.Contains(t, out, "media")
	assert.Contains(t, out, "/data/movie.mkv")
	assert.NotContains(t, out, "/data/notes.txt")
}

func TestScan_History_NeedsDatabase(t *testing.T) {
	useFakeEnv(t, testutil.NewFakeGateway())

	_, err := run(t, "scan", "--history")
	assert.ErrorContains(t, err, "local database")
}
