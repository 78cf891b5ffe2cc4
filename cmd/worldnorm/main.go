package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cjmaher/worldnorm/internal/config"
	"github.com/cjmaher/worldnorm/internal/converter"
	"github.com/cjmaher/worldnorm/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "optional path to config file")
	input := flag.String("input", "", "world document path (overrides config)")
	output := flag.String("output", "", "canonical output path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *input != "" {
		cfg.Paths.Input = *input
	}
	if *output != "" {
		cfg.Paths.Output = *output
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	conv := converter.New(logger)
	report, err := conv.Run(cfg.Paths.Input, cfg.Paths.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Paths.Report != "" {
		if err := report.Write(cfg.Paths.Report); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("wrote   %s  (%d rooms, %d items)  in %s\n",
		cfg.Paths.Output, report.Rooms, report.Items, report.Elapsed)
}
