package eibi2kiwi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kiwisked/eibi2kiwi/config"
	"github.com/kiwisked/eibi2kiwi/eibi"
	"github.com/kiwisked/eibi2kiwi/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const sourceHeader = "kHz:75;Time(UTC):93;Days:59;ITU:49;Station:201;Lng:49;Target:62;Remarks:135;P:35;Start:60;Stop:60;"

const sourceRows = "15070;0000-2400;Sa-Mo;G;BBC World;E;Af;;1;;\n" +
	"9400;0600-1800;1345;BUL;Radio Example;E;;;1;;\n" +
	"9400.5;1200-1300;;D;DW;-TS;;;1;;\n" +
	"7000;0100-0200;Mo-Xx;D;Broken;E;;;1;;\n" +
	"6000;0100-0200;;D;Special;E;;;1;2506;2506\n"

const expectedCSV = `9400.0;"QAM";"Radio Example";"BUL. Lang: E";;"T3";;;;"M_WTF__";0600;1800` + "\n" +
	`9400.5;"QAM";"DW";"D. Lang: -TS";;"T4";;;;;1200;1300` + "\n" +
	`15070.0;"QAM";"BBC World";"G. Target: Af. Lang: E";;"T3";;;;"M____SS";0001;2359` + "\n"

const expectedJSON = "{\"EiBi A25\":[\n" +
	`[9400.0,"QAM","Radio Example","BUL. Lang: E",{"T3":1,"b0":600,"e0":1800,"d0":92}]` + ",\n" +
	`[9400.5,"QAM","DW","D. Lang: -TS",{"T3":1,"b0":1200,"e0":1300}]` + ",\n" +
	`[15070.0,"QAM","BBC World","G. Target: Af. Lang: E",{"T3":1,"b0":1,"e0":2359,"d0":67}]` +
	"\n]}\n"

func testConfig(dir string) *config.AppConfig {
	return &config.AppConfig{
		Source: config.SourceConfig{Encoding: "auto"},
		Fetch:  config.FetchConfig{Attempts: 1, TimeoutMS: 1000, RetryDelayMS: 1},
		Output: config.OutputConfig{
			Dir:         dir,
			CSVFile:     "kiwi.csv",
			JSONFile:    "kiwi.json",
			Mode:        "QAM",
			UnknownDays: "keep",
		},
	}
}

func testPipeline(cfg *config.AppConfig, logger *zap.Logger, pub *fakePublisher) *Pipeline {
	var publisher publish.Publisher
	if pub != nil {
		publisher = pub
	}
	p := NewPipeline(cfg, logger, publisher)
	p.now = func() time.Time { return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC) }
	return p
}

func writeSource(t *testing.T, dir string) {
	t.Helper()
	path := filepath.Join(dir, "sked-a25.csv")
	require.NoError(t, os.WriteFile(path, []byte(sourceHeader+"\n"+sourceRows), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakePublisher) Put(_ context.Context, key string, _ []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return nil
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{input: "csv", expected: ModeCSV},
		{input: " JSON ", expected: ModeJSON},
		{input: "online", expected: ModeOnline},
		{input: "all", expected: ModeAll},
		{input: "xml", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}
}

func TestPipelinePaths(t *testing.T) {
	p := testPipeline(testConfig("/data"), nil, nil)
	assert.Equal(t, "/data/sked-a25.csv", p.SourcePath())
	assert.Equal(t, "/data/kiwi.csv", p.CSVPath())
	assert.Equal(t, "/data/kiwi.json", p.JSONPath())
	assert.Equal(t, "EiBi A25", p.Label())

	cfg := testConfig("")
	cfg.Source.File = "/srv/sked-b24.csv"
	cfg.Output.JSONLabel = "EiBi B24 OH6BG"
	p = testPipeline(cfg, nil, nil)
	assert.Equal(t, "/srv/sked-b24.csv", p.SourcePath())
	assert.Equal(t, "kiwi.csv", p.CSVPath())
	assert.Equal(t, "EiBi B24 OH6BG", p.Label())
}

func TestRunCSVAndJSON(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir)
	core, logs := observer.New(zap.WarnLevel)
	p := testPipeline(testConfig(dir), zap.New(core), nil)

	res, err := p.RunCSV(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Records, 3)
	assert.Len(t, res.Skipped, 1)
	assert.Equal(t, 1, res.OneDay)
	assert.Equal(t, 1, logs.FilterMessage("skipping schedule row").Len())
	assert.Equal(t, expectedCSV, readFile(t, p.CSVPath()))

	report, err := p.RunJSON(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Entries)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, expectedJSON, readFile(t, p.JSONPath()))
}

func TestRunCSVKeepsOneDayEntries(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir)
	cfg := testConfig(dir)
	keep := false
	cfg.Source.SkipOneDay = &keep

	res, err := testPipeline(cfg, nil, nil).RunCSV(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Records, 4)
	assert.Equal(t, 0, res.OneDay)
}

func TestRunCSVResolvesSites(t *testing.T) {
	dir := t.TempDir()
	src := sourceHeader + "\n9400;0600-1800;;BUL;Radio;E;;pl;1;;\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sked-a25.csv"), []byte(src), 0o644))
	sitesPath := filepath.Join(dir, "sites.csv")
	require.NoError(t, os.WriteFile(sitesPath, []byte("BUL;pl;Plovdiv\n"), 0o644))

	cfg := testConfig(dir)
	cfg.Source.SitesFile = sitesPath
	_, err := testPipeline(cfg, nil, nil).RunCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `9400.0;"QAM";"Radio";"BUL Plovdiv. Lang: E";;"T3";;;;;0600;1800`+"\n", readFile(t, filepath.Join(dir, "kiwi.csv")))
}

func TestRunCSVMissingSource(t *testing.T) {
	_, err := testPipeline(testConfig(t.TempDir()), nil, nil).RunCSV(context.Background())
	assert.ErrorIs(t, err, eibi.ErrMissingLocalFile)
}

func TestRunJSONMissingCSV(t *testing.T) {
	_, err := testPipeline(testConfig(t.TempDir()), nil, nil).RunJSON(context.Background())
	assert.Error(t, err)
}

func TestRunOnlineDownloads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sked-a25.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(sourceHeader+"\n"+sourceRows, "\n", "\r\n")))
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Fetch.BaseURL = srv.URL
	pub := &fakePublisher{}
	p := testPipeline(cfg, nil, pub)

	require.NoError(t, p.Run(context.Background(), ModeAll))
	assert.NotContains(t, readFile(t, p.SourcePath()), "\n")
	assert.Equal(t, expectedCSV, readFile(t, p.CSVPath()))
	assert.Equal(t, expectedJSON, readFile(t, p.JSONPath()))
	assert.Equal(t, []string{"kiwi.csv", "kiwi.json"}, pub.keys)
}

func TestRunOnlineUsesDefaultSitesFile(t *testing.T) {
	src := sourceHeader + "\n9400;0600-1800;;BUL;Radio;E;;/USA-gr;1;;\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(src))
	}))
	defer srv.Close()

	dir := t.TempDir()
	sites := "USA;gr;Greenville NC\nbroken-row\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "eibisites.csv"), []byte(sites), 0o644))
	cfg := testConfig(dir)
	cfg.Fetch.BaseURL = srv.URL
	core, logs := observer.New(zap.WarnLevel)
	p := testPipeline(cfg, zap.New(core), nil)

	assert.Equal(t, filepath.Join(dir, "eibisites.csv"), p.SitesPath(true))
	assert.Equal(t, "", p.SitesPath(false))

	_, err := p.RunOnline(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `9400.0;"QAM";"Radio";"USA Greenville NC. Lang: E";;"T3";;;;;0600;1800`+"\n", readFile(t, p.CSVPath()))
	assert.Equal(t, 1, logs.FilterMessage("skipping malformed sites row").Len())
}

func TestRunOnlineWithoutSitesFile(t *testing.T) {
	src := sourceHeader + "\n9400;0600-1800;;BUL;Radio;E;;/USA-gr;1;;\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(src))
	}))
	defer srv.Close()

	cfg := testConfig(t.TempDir())
	cfg.Fetch.BaseURL = srv.URL
	core, logs := observer.New(zap.WarnLevel)
	p := testPipeline(cfg, zap.New(core), nil)

	_, err := p.RunOnline(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `9400.0;"QAM";"Radio";"USA via gr. Lang: E";;"T3";;;;;0600;1800`+"\n", readFile(t, p.CSVPath()))
	assert.Equal(t, 1, logs.FilterMessage("sites file not found, locations not resolved").Len())
}

func TestRunCSVConfiguredSitesFileMustExist(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir)
	cfg := testConfig(dir)
	cfg.Source.SitesFile = filepath.Join(dir, "absent.csv")

	_, err := testPipeline(cfg, nil, nil).RunCSV(context.Background())
	assert.Error(t, err)
}

func TestRunOnlineFallsBackToLocalCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	writeSource(t, dir)
	cfg := testConfig(dir)
	cfg.Fetch.BaseURL = srv.URL
	core, logs := observer.New(zap.WarnLevel)

	res, err := testPipeline(cfg, zap.New(core), nil).RunOnline(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Records, 3)
	assert.Equal(t, 1, logs.FilterMessage("download failed, using local copy").Len())
}

func TestRunOnlineNotFoundWithoutLocalCopy(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	cfg := testConfig(t.TempDir())
	cfg.Fetch.BaseURL = srv.URL

	_, err := testPipeline(cfg, nil, nil).RunOnline(context.Background())
	assert.ErrorIs(t, err, eibi.ErrNotFound)
	assert.ErrorIs(t, err, eibi.ErrMissingLocalFile)
}

func TestRunPublishesOnlyProducedFiles(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir)
	cfg := testConfig(dir)
	cfg.Publish.Prefix = "eibi/"
	pub := &fakePublisher{}

	require.NoError(t, testPipeline(cfg, nil, pub).Run(context.Background(), ModeCSV))
	assert.Equal(t, []string{"eibi/kiwi.csv"}, pub.keys)
}

func TestRunUnknownMode(t *testing.T) {
	err := testPipeline(testConfig(t.TempDir()), nil, nil).Run(context.Background(), Mode("xml"))
	assert.Error(t, err)
}
