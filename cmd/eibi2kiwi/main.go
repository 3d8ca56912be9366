package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	lib "github.com/kiwisked/eibi2kiwi"
	"github.com/kiwisked/eibi2kiwi/config"
	"github.com/kiwisked/eibi2kiwi/internal"
	"github.com/kiwisked/eibi2kiwi/publish"
	"go.uber.org/zap"
)

func main() {
	mode := flag.String("mode", "all", "csv|json|online|all")
	configPath := flag.String("config", "", "config file (default: config.yml or ./config/config.yml)")
	in := flag.String("in", "", "EiBi source file (overrides config; default: current season)")
	sites := flag.String("sites", "", "transmitter sites file (overrides config)")
	workdir := flag.String("workdir", "", "directory for downloaded and produced files (overrides config)")
	csvOut := flag.String("csv", "", "label CSV file (overrides config)")
	jsonOut := flag.String("json", "", "label JSON file (overrides config)")
	label := flag.String("label", "", "JSON label (overrides config)")
	unknownDays := flag.String("unknownDays", "", "keep|skip rows with unrecognized day fields (overrides config)")
	keepOneDay := flag.Bool("keepOneDay", false, "keep entries that run on a single date")
	logLevel := flag.String("logLevel", "", "debug|info|warn|error (overrides config)")
	noPublish := flag.Bool("noPublish", false, "do not upload results even if publishing is configured")
	flag.Parse()

	if err := run(*mode, *configPath, func(cfg *config.AppConfig) {
		setIf(&cfg.Source.File, *in)
		setIf(&cfg.Source.SitesFile, *sites)
		setIf(&cfg.Output.Dir, *workdir)
		setIf(&cfg.Output.CSVFile, *csvOut)
		setIf(&cfg.Output.JSONFile, *jsonOut)
		setIf(&cfg.Output.JSONLabel, *label)
		setIf(&cfg.Output.UnknownDays, *unknownDays)
		setIf(&cfg.Log.Level, *logLevel)
		if *keepOneDay {
			skip := false
			cfg.Source.SkipOneDay = &skip
		}
		if *noPublish {
			cfg.Publish.Bucket = ""
		}
	}); err != nil {
		fmt.Fprintln(os.Stderr, "eibi2kiwi:", err)
		os.Exit(1)
	}
}

func run(modeName, configPath string, override func(*config.AppConfig)) error {
	m, err := lib.ParseMode(modeName)
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	override(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger, err := internal.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run", uuid.NewString()), zap.String("mode", string(m)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pub publish.Publisher
	if cfg.Publish.Enabled() {
		s3pub, err := publish.NewS3Publisher(ctx, cfg.Publish.Bucket, cfg.Publish.Region, cfg.Publish.Profile)
		if err != nil {
			logger.Error("publisher setup failed", zap.Error(err))
			return err
		}
		pub = s3pub
	}

	p := lib.NewPipeline(cfg, logger, pub)
	if err := p.Run(ctx, m); err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}
	logger.Info("done", zap.String("season", p.Season().String()))
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
