package main

import (
	"net/http"
	"os"
	"time"

	"github.com/surveykit/sp1conv/internal/config"
	"github.com/surveykit/sp1conv/internal/logger"
	"github.com/surveykit/sp1conv/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string   `short:"c" long:"config"  env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	OutDir     string   `short:"o" long:"out-dir" env:"OUT_DIR"     description:"Output directory"           default:"out"`
	Limit      []string `short:"l" long:"limit"   env:"LIMIT_NAMES" description:"Limit processing to specific dataset names"`
	CSV        bool     `long:"csv"    description:"Also write CSV output for each dataset"`
	Strict     bool     `short:"s" long:"strict"  description:"Fail datasets with unparseable coordinates"`
	Force      bool     `short:"f" long:"force"   description:"Force overwrite of existing files"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if len(cfg.Datasets) == 0 {
		log.Fatal().Str("config", opts.ConfigFile).Msg("No datasets configured")
	}

	client := &http.Client{
		Timeout: 15 * time.Second,
	}

	// Filter datasets if limit is set
	datasets := cfg.Datasets
	if len(opts.Limit) > 0 {
		datasets = make([]config.Dataset, 0)
		available := make(map[string]config.Dataset)
		for _, ds := range cfg.Datasets {
			available[ds.Name] = ds
		}

		seen := make(map[string]bool)

		for _, limitName := range opts.Limit {
			if seen[limitName] {
				continue
			}
			seen[limitName] = true

			if ds, ok := available[limitName]; ok {
				datasets = append(datasets, ds)
			} else {
				log.Error().
					Str("name", limitName).
					Msg("Dataset specified in --limit not found in configuration")
			}
		}
	}

	procOpts := processor.Options{
		OutDir:   opts.OutDir,
		WriteCSV: opts.CSV,
		Strict:   opts.Strict || cfg.Strict,
		Force:    opts.Force,
	}

	log.Info().
		Int("datasets_total", len(cfg.Datasets)).
		Int("datasets_queued", len(datasets)).
		Str("out_dir", opts.OutDir).
		Bool("strict", procOpts.Strict).
		Msg("Starting batch conversion")

	failed := 0
	for _, ds := range datasets {
		if err := processor.ProcessDataset(client, ds.WithDefaults(cfg.Meta), procOpts); err != nil {
			log.Error().Err(err).Str("dataset", ds.Name).Msg("Failed to process dataset")
			failed++
		}
	}

	if failed > 0 {
		log.Fatal().Int("failed", failed).Msg("Batch conversion finished with errors")
	}

	log.Info().Msg("Batch conversion finished successfully")
}
