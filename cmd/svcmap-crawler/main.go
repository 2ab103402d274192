package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"svcmap-crawler/pkg/config"
	"svcmap-crawler/pkg/crawler"
	"svcmap-crawler/pkg/extract"
	"svcmap-crawler/pkg/fetch"
	"svcmap-crawler/pkg/lookup"
	"svcmap-crawler/pkg/output"
)

type options struct {
	ConfigFile string `long:"config" description:"Path to YAML config file overriding built-in defaults"`
	Output     string `short:"o" long:"output" description:"Output CSV file (default services.csv)"`
	LogLevel   string `long:"loglevel" description:"Log level (debug, info, warn, error)" default:"info"`

	Args struct {
		StartingURL string `positional-arg-name:"startingUrl" required:"yes" description:"Seed URL to crawl (http or https)"`
		MaxDepth    string `positional-arg-name:"maxDepth" description:"Maximum crawl depth (non-negative integer, default 3)"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run())
}

func run() int {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel)

	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "<startingUrl> [maxDepth] [OPTIONS]"
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	level, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", opts.LogLevel, err)
	} else {
		log.SetLevel(level)
	}

	// --- Load Configuration (defaults <- file <- CLI) ---
	cfg := config.Default()
	if opts.ConfigFile != "" {
		log.Infof("Loading configuration from %s", opts.ConfigFile)
		cfg, err = config.Load(opts.ConfigFile)
		if err != nil {
			log.Errorf("Configuration error: %v", err)
			return 1
		}
	}
	cfg.StartURL = opts.Args.StartingURL
	if opts.Output != "" {
		cfg.OutputFile = opts.Output
	}
	if opts.Args.MaxDepth != "" {
		depth, convErr := strconv.Atoi(opts.Args.MaxDepth)
		if convErr != nil || depth < 0 {
			log.Errorf("Invalid maxDepth '%s': must be a non-negative integer", opts.Args.MaxDepth)
			return 1
		}
		cfg.MaxDepth = depth
	}

	warnings, err := cfg.Validate()
	if err != nil {
		log.Errorf("Configuration error: %v", err)
		return 1
	}
	for _, warning := range warnings {
		log.Warn(warning)
	}

	// --- Dependency Preflight: the renderer must be present before any
	// output file is touched ---
	renderer, err := fetch.NewRenderer(cfg.Fetch, log)
	if err != nil {
		log.Errorf("Cannot start crawl: %v", err)
		return 1
	}
	defer renderer.Close()

	sink := output.NewCSVSink(cfg.OutputFile, log)
	defer func() {
		if err := sink.Close(); err != nil {
			log.Warnf("Failed to close output file: %v", err)
		}
	}()

	c, err := crawler.New(cfg, renderer, extract.NewAnchorExtractor(), lookup.NewHTTPClient(cfg.Lookup, log), sink, log)
	if err != nil {
		log.Errorf("Cannot start crawl: %v", err)
		return 1
	}

	// --- Signal Handling: first signal cancels the crawl between URLs ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Warnf("Received signal: %v. Stopping crawl...", sig)
		cancel()
	}()

	if _, err := c.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		log.Errorf("Crawl failed: %v", err)
		return 1
	}
	return 0
}
