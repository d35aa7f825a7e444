package testutil

import (
	"context"
	"sync"

	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/models"
)

var _ gateway.Gateway = (*FakeGateway)(nil)

// FakeGateway is an in-memory gateway.Gateway. Canned values are returned
// as-is; a non-nil *Err field makes the matching call fail. Hooks, when
// set, replace the canned behaviour entirely.
type FakeGateway struct {
	mu    sync.Mutex
	calls map[string]int

	System   *models.SystemSnapshot
	Storage  *models.StorageBreakdown
	Logs     *models.LogInfo
	Docker   *models.ContainerInventory
	Packages []models.PackageCacheEntry
	Browsers []models.PackageCacheEntry
	Recs     []models.CleanupRecommendation
	Files    map[string][]models.FileRecord
	Catalog  string
	Reply    string
	Update   *models.UpdateInfo
	Version  string

	SystemErr   error
	StorageErr  error
	DockerErr   error
	CachesErr   error
	RecsErr     error
	ScanErr     error
	CatalogErr  error
	ChatErr     error
	TestErr     error
	SettingsErr error

	// Keys and Settings back the credential and settings calls.
	Keys     map[string]string
	Settings map[string]string

	SystemHook  func(ctx context.Context) (*models.SystemSnapshot, error)
	ScanHook    func(ctx context.Context, path string) ([]models.FileRecord, error)
	CatalogHook func(ctx context.Context) (string, error)

	LastChat gateway.ChatRequest
}

// NewFakeGateway returns a gateway with empty stores.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		calls:    map[string]int{},
		Keys:     map[string]string{},
		Settings: map[string]string{},
		Files:    map[string][]models.FileRecord{},
		Version:  "1.0.0",
	}
}

func (f *FakeGateway) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[op]++
}

// Calls returns how many times op was invoked.
func (f *FakeGateway) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FakeGateway) ScanDirectory(ctx context.Context, path string) ([]models.FileRecord, error) {
	f.record("ScanDirectory")
	if f.ScanHook != nil {
		return f.ScanHook(ctx, path)
	}
	if f.ScanErr != nil {
		return nil, f.ScanErr
	}
	return f.Files[path], nil
}

func (f *FakeGateway) FileInfo(ctx context.Context, path string) (*models.FileRecord, error) {
	f.record("FileInfo")
	for _, recs := range f.Files {
		for _, r := range recs {
			if r.Path == path {
				return &r, nil
			}
		}
	}
	return nil, gateway.Errorf("get_file_info", "Path does not exist: %s", path)
}

func (f *FakeGateway) FindDuplicates(ctx context.Context, files []models.FileRecord) ([][]models.FileRecord, error) {
	f.record("FindDuplicates")
	byHash := map[string][]models.FileRecord{}
	var order []string
	for _, r := range files {
		if r.Hash == "" {
			continue
		}
		if _, ok := byHash[r.Hash]; !ok {
			order = append(order, r.Hash)
		}
		byHash[r.Hash] = append(byHash[r.Hash], r)
	}
	var out [][]models.FileRecord
	for _, h := range order {
		if len(byHash[h]) > 1 {
			out = append(out, byHash[h])
		}
	}
	return out, nil
}

func (f *FakeGateway) SystemInfo(ctx context.Context) (*models.SystemSnapshot, error) {
	f.record("SystemInfo")
	if f.SystemHook != nil {
		return f.SystemHook(ctx)
	}
	return f.System, f.SystemErr
}

func (f *FakeGateway) StorageBreakdown(ctx context.Context) (*models.StorageBreakdown, error) {
	f.record("StorageBreakdown")
	return f.Storage, f.StorageErr
}

func (f *FakeGateway) LogInfo(ctx context.Context) (*models.LogInfo, error) {
	f.record("LogInfo")
	if f.Logs == nil {
		return &models.LogInfo{Name: "System Logs", Path: "/var/log"}, nil
	}
	return f.Logs, nil
}

func (f *FakeGateway) DockerInfo(ctx context.Context) (*models.ContainerInventory, error) {
	f.record("DockerInfo")
	return f.Docker, f.DockerErr
}

func (f *FakeGateway) CleanDocker(ctx context.Context, target gateway.DockerTarget) (*models.CleanupResult, error) {
	f.record("CleanDocker")
	return nil, gateway.Unsupported("clean_docker")
}

func (f *FakeGateway) PackageCaches(ctx context.Context) ([]models.PackageCacheEntry, error) {
	f.record("PackageCaches")
	return f.Packages, f.CachesErr
}

func (f *FakeGateway) CleanPackageCache(ctx context.Context, manager string) (*models.CleanupResult, error) {
	f.record("CleanPackageCache")
	return nil, gateway.Unsupported("clean_package_cache")
}

func (f *FakeGateway) BrowserCaches(ctx context.Context) ([]models.PackageCacheEntry, error) {
	f.record("BrowserCaches")
	return f.Browsers, f.CachesErr
}

func (f *FakeGateway) CleanBrowserCache(ctx context.Context, browser string) (*models.CleanupResult, error) {
	f.record("CleanBrowserCache")
	return nil, gateway.Unsupported("clean_browser_cache")
}

func (f *FakeGateway) CleanLogs(ctx context.Context) (*models.CleanupResult, error) {
	f.record("CleanLogs")
	return nil, gateway.Unsupported("clean_logs")
}

func (f *FakeGateway) CleanupRecommendations(ctx context.Context) ([]models.CleanupRecommendation, error) {
	f.record("CleanupRecommendations")
	return f.Recs, f.RecsErr
}

func (f *FakeGateway) FetchModelCatalog(ctx context.Context) (string, error) {
	f.record("FetchModelCatalog")
	if f.CatalogHook != nil {
		return f.CatalogHook(ctx)
	}
	return f.Catalog, f.CatalogErr
}

func (f *FakeGateway) Chat(ctx context.Context, req gateway.ChatRequest) (string, error) {
	f.record("Chat")
	f.mu.Lock()
	f.LastChat = req
	f.mu.Unlock()
	return f.Reply, f.ChatErr
}

func (f *FakeGateway) TestConnection(ctx context.Context, provider, apiKey, model string) error {
	f.record("TestConnection")
	return f.TestErr
}

func (f *FakeGateway) AnalyzeFiles(ctx context.Context, provider string, paths []string) ([]models.FileRecord, error) {
	f.record("AnalyzeFiles")
	out := make([]models.FileRecord, 0, len(paths))
	for _, p := range paths {
		out = append(out, models.FileRecord{Path: p})
	}
	return out, nil
}

func (f *FakeGateway) StoreAPIKey(ctx context.Context, provider, key string) error {
	f.record("StoreAPIKey")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Keys[provider] = key
	return nil
}

func (f *FakeGateway) APIKey(ctx context.Context, provider string) (string, error) {
	f.record("APIKey")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Keys[provider], nil
}

func (f *FakeGateway) DeleteAPIKey(ctx context.Context, provider string) error {
	f.record("DeleteAPIKey")
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Keys, provider)
	return nil
}

func (f *FakeGateway) HasAPIKey(ctx context.Context, provider string) (bool, error) {
	f.record("HasAPIKey")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Keys[provider] != "", nil
}

func (f *FakeGateway) Setting(ctx context.Context, key string) (string, bool, error) {
	f.record("Setting")
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.Settings[key]
	return v, ok, nil
}

func (f *FakeGateway) SetSetting(ctx context.Context, key, value string) error {
	f.record("SetSetting")
	if f.SettingsErr != nil {
		return f.SettingsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Settings[key] = value
	return nil
}

func (f *FakeGateway) CheckForUpdates(ctx context.Context) (*models.UpdateInfo, error) {
	f.record("CheckForUpdates")
	return f.Update, nil
}

func (f *FakeGateway) CurrentVersion() string {
	return f.Version
}
