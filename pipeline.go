package eibi2kiwi

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kiwisked/eibi2kiwi/config"
	"github.com/kiwisked/eibi2kiwi/converter"
	"github.com/kiwisked/eibi2kiwi/eibi"
	"github.com/kiwisked/eibi2kiwi/formatter"
	"github.com/kiwisked/eibi2kiwi/publish"
	"go.uber.org/zap"
)

// Mode selects which stages a run executes.
type Mode string

const (
	// ModeCSV converts a local EiBi file into the label CSV.
	ModeCSV Mode = "csv"
	// ModeJSON converts the label CSV into JSON.
	ModeJSON Mode = "json"
	// ModeOnline downloads the current season's file, then runs the CSV stage.
	ModeOnline Mode = "online"
	// ModeAll is ModeOnline followed by ModeJSON.
	ModeAll Mode = "all"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeCSV, ModeJSON, ModeOnline, ModeAll:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (want csv|json|online|all)", s)
}

// Pipeline runs the conversion stages with one configuration.
type Pipeline struct {
	cfg       *config.AppConfig
	logger    *zap.Logger
	client    *eibi.Client
	publisher publish.Publisher
	now       func() time.Time
}

// NewPipeline creates a pipeline. The publisher may be nil.
func NewPipeline(cfg *config.AppConfig, logger *zap.Logger, publisher publish.Publisher) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := eibi.NewClient(eibi.ClientOptions{
		BaseURL:    cfg.Fetch.BaseURL,
		Attempts:   cfg.Fetch.Attempts,
		Timeout:    cfg.Fetch.Timeout(),
		RetryDelay: cfg.Fetch.RetryDelay(),
		Logger:     logger.Named("fetch"),
	})
	return &Pipeline{
		cfg:       cfg,
		logger:    logger,
		client:    client,
		publisher: publisher,
		now:       time.Now,
	}
}

// Season returns the broadcast season the pipeline works on.
func (p *Pipeline) Season() eibi.Season {
	return eibi.SeasonFor(p.now().UTC())
}

// SourcePath is the EiBi file read by the CSV stage.
func (p *Pipeline) SourcePath() string {
	name := p.cfg.Source.File
	if name == "" {
		name = p.Season().Filename()
	}
	return p.inWorkdir(name)
}

// CSVPath is the label CSV written by the CSV stage and read by the JSON stage.
func (p *Pipeline) CSVPath() string {
	return p.inWorkdir(p.cfg.Output.CSVFile)
}

// JSONPath is the file written by the JSON stage.
func (p *Pipeline) JSONPath() string {
	return p.inWorkdir(p.cfg.Output.JSONFile)
}

// Label is the top-level key of the JSON output.
func (p *Pipeline) Label() string {
	if p.cfg.Output.JSONLabel != "" {
		return p.cfg.Output.JSONLabel
	}
	return "EiBi " + p.Season().Label()
}

func (p *Pipeline) inWorkdir(name string) string {
	if p.cfg.Output.Dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.cfg.Output.Dir, name)
}

// Run executes the stages selected by mode and publishes what was produced.
func (p *Pipeline) Run(ctx context.Context, mode Mode) error {
	var produced []string
	switch mode {
	case ModeCSV:
		if _, err := p.RunCSV(ctx); err != nil {
			return err
		}
		produced = append(produced, p.CSVPath())
	case ModeJSON:
		if _, err := p.RunJSON(ctx); err != nil {
			return err
		}
		produced = append(produced, p.JSONPath())
	case ModeOnline, ModeAll:
		if _, err := p.RunOnline(ctx); err != nil {
			return err
		}
		produced = append(produced, p.CSVPath())
		if mode == ModeAll {
			if _, err := p.RunJSON(ctx); err != nil {
				return err
			}
			produced = append(produced, p.JSONPath())
		}
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	if p.publisher == nil {
		return nil
	}
	return publish.Files(ctx, p.publisher, p.cfg.Publish.Prefix, p.logger.Named("publish"), produced...)
}

// RunCSV converts the local EiBi file into the label CSV.
func (p *Pipeline) RunCSV(ctx context.Context) (converter.Result, error) {
	return p.runCSV(ctx, false)
}

// SitesPath is the sites table used by the CSV stage. Online runs fall back
// to eibisites.csv in the work dir.
func (p *Pipeline) SitesPath(online bool) string {
	if p.cfg.Source.SitesFile != "" {
		return p.cfg.Source.SitesFile
	}
	if online {
		return p.inWorkdir(eibi.DefaultSitesFile)
	}
	return ""
}

func (p *Pipeline) loadSites(online bool, enc eibi.Encoding) (eibi.Sites, error) {
	path := p.SitesPath(online)
	if path == "" {
		return nil, nil
	}
	if p.cfg.Source.SitesFile == "" {
		if err := eibi.EnsureLocal(path); err != nil {
			p.logger.Warn("sites file not found, locations not resolved", zap.String("path", path))
			return nil, nil
		}
	}
	sites, err := eibi.LoadSitesFile(path, enc, p.logger.Named("sites"))
	if err != nil {
		return nil, err
	}
	p.logger.Info("sites loaded", zap.String("path", path), zap.Int("sites", sites.Len()))
	return sites, nil
}

func (p *Pipeline) runCSV(ctx context.Context, online bool) (converter.Result, error) {
	if err := ctx.Err(); err != nil {
		return converter.Result{}, err
	}
	src := p.SourcePath()
	if err := eibi.EnsureLocal(src); err != nil {
		return converter.Result{}, err
	}
	enc := eibi.Encoding(p.cfg.Source.Encoding)
	recs, err := eibi.LoadFile(src, enc)
	if err != nil {
		return converter.Result{}, err
	}

	sites, err := p.loadSites(online, enc)
	if err != nil {
		return converter.Result{}, err
	}

	conv := converter.NewConverter(converter.Options{
		Mode:        p.cfg.Output.Mode,
		Sites:       sites,
		SkipOneDay:  p.cfg.Source.SkipsOneDay(),
		UnknownDays: converter.UnknownDaysPolicy(p.cfg.Output.UnknownDays),
		Logger:      p.logger.Named("convert"),
	})
	res := conv.Convert(recs)

	if err := writeFile(p.CSVPath(), func(f *os.File) error {
		return formatter.WriteKiwiCSV(f, res.Records)
	}); err != nil {
		return res, err
	}
	p.logger.Info("label CSV written",
		zap.String("source", src),
		zap.String("path", p.CSVPath()),
		zap.Int("records", len(res.Records)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("oneDay", res.OneDay),
	)
	return res, nil
}

// JSONReport summarizes a JSON stage run.
type JSONReport struct {
	Entries int
	Skipped []*converter.RecordError
}

// RunJSON converts the label CSV into the JSON output.
func (p *Pipeline) RunJSON(ctx context.Context) (JSONReport, error) {
	if err := ctx.Err(); err != nil {
		return JSONReport{}, err
	}
	f, err := os.Open(p.CSVPath())
	if err != nil {
		return JSONReport{}, fmt.Errorf("opening label CSV: %w", err)
	}
	rows, err := formatter.ReadKiwiCSV(f)
	f.Close()
	if err != nil {
		return JSONReport{}, fmt.Errorf("reading %s: %w", p.CSVPath(), err)
	}

	entries, skipped := formatter.BuildEntries(rows, p.logger.Named("json"))
	label := p.Label()
	if err := writeFile(p.JSONPath(), func(f *os.File) error {
		return formatter.WriteJSON(f, label, entries)
	}); err != nil {
		return JSONReport{}, err
	}
	p.logger.Info("label JSON written",
		zap.String("path", p.JSONPath()),
		zap.String("label", label),
		zap.Int("entries", len(entries)),
		zap.Int("skipped", len(skipped)),
	)
	return JSONReport{Entries: len(entries), Skipped: skipped}, nil
}

// RunOnline downloads the source file and runs the CSV stage. A failed
// download is tolerated when a local copy already exists.
func (p *Pipeline) RunOnline(ctx context.Context) (converter.Result, error) {
	src := p.SourcePath()
	name := filepath.Base(src)
	enc := eibi.Encoding(p.cfg.Source.Encoding)
	if err := p.client.Download(ctx, name, src, enc); err != nil {
		if localErr := eibi.EnsureLocal(src); localErr != nil {
			return converter.Result{}, errors.Join(err, localErr)
		}
		p.logger.Warn("download failed, using local copy", zap.String("path", src), zap.Error(err))
	}
	return p.runCSV(ctx, true)
}

func writeFile(path string, write func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
