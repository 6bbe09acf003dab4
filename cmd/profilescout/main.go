package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/profilescout/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		keywords   string
		company    string
		location   string
		num        int
		outputPath string
		csvPath    string
		serpKey    string
		searchFile string
		userAgent  string
		timeout    time.Duration
		attempts   int
		debugDir   string
		dumpHTML   string
		postFilter bool
		verbose    bool
		configPath string
	)

	flag.StringVar(&keywords, "keywords", "", "Comma-separated keywords to search for (quote multi-word phrases as one item)")
	flag.StringVar(&company, "company", "", "Company name to include in the query")
	flag.StringVar(&location, "location", "", "Location hint to bias ranking")
	flag.IntVar(&num, "num", 10, "Number of profiles to fetch")
	flag.StringVar(&outputPath, "output", "results.json", "Output JSON file path")
	flag.StringVar(&csvPath, "csv", "", "Optional CSV output path")
	flag.StringVar(&serpKey, "serpapi.key", os.Getenv("SERPAPI_API_KEY"), "SerpAPI key; absence selects the DuckDuckGo fallback")
	flag.StringVar(&searchFile, "search.file", os.Getenv("SEARCH_FILE"), "Path to JSON file for the offline file-based search provider")
	flag.StringVar(&userAgent, "ua", "", "Override the browser-like User-Agent for HTML fetches")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "Per-attempt fetch timeout")
	flag.IntVar(&attempts, "max.attempts", 3, "Fetch attempts per request, including the first")
	flag.StringVar(&debugDir, "debug.dir", ".profilescout-debug", "Directory for raw-page artifacts captured on empty outcomes")
	flag.StringVar(&dumpHTML, "dump-html", "", "If provided, save every fetched result page to this file for inspection")
	flag.BoolVar(&postFilter, "post-filter", false, "Require a keyword in candidate name or snippet")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.StringVar(&configPath, "config", "", "Optional YAML/JSON config file; flags win over file values")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		Keywords:       splitList(keywords),
		Company:        company,
		Location:       location,
		MaxResults:     num,
		OutputPath:     outputPath,
		CSVPath:        csvPath,
		SerpAPIKey:     serpKey,
		FileSearchPath: searchFile,
		UserAgent:      userAgent,
		Timeout:        timeout,
		MaxAttempts:    attempts,
		DebugDir:       debugDir,
		DumpHTMLPath:   dumpHTML,
		PostFilter:     postFilter,
		Verbose:        verbose,
	}

	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file unreadable")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	return list
}

func run(cfg app.Config) error {
	a, err := app.New(cfg, log.Logger)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(context.Background())
}
