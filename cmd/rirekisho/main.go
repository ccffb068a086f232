// Package main is the Rirekisho CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/rirekisho/internal/cli"
	"github.com/hyperjump/rirekisho/internal/config"
	"github.com/hyperjump/rirekisho/internal/extract"
	"github.com/hyperjump/rirekisho/internal/fileid"
	"github.com/hyperjump/rirekisho/internal/indexer"
	"github.com/hyperjump/rirekisho/internal/models"
	"github.com/hyperjump/rirekisho/internal/search"
	"github.com/hyperjump/rirekisho/internal/server"
	"github.com/hyperjump/rirekisho/internal/storage"
	"github.com/hyperjump/rirekisho/internal/watcher"
	"github.com/hyperjump/rirekisho/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/rirekisho/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "rirekisho server" from the project dir uses the project's config.
// Returns the config and the path that was actually loaded (for saving, etc.).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "index":
		runIndex()
	case "delete":
		runDelete()
	case "inbox":
		runInbox()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("rirekisho version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (inbox changes, CV indexing, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	idx := components.Indexer
	exts := cfg.Watch.Extensions
	watchOpts := []watcher.Option{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	watchSvc := watcher.NewWatcher(
		cfg.Watch.Directories,
		exts,
		cfg.Watch.RecursiveOrDefault(),
		func(path string) {
			if _, err := idx.IndexFile(context.Background(), path, exts); err != nil {
				logger.Warn("inbox index file failed", zap.String("path", path), zap.Error(err))
			}
		},
		func(path string) {
			if err := idx.DeleteByPath(context.Background(), path); err != nil {
				logger.Warn("inbox delete by path failed", zap.String("path", path), zap.Error(err))
			}
		},
		watchOpts...,
	)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := watchSvc.Start(watchCtx); err != nil {
		logger.Fatal("Failed to start inbox watcher", zap.Error(err))
	}
	watchSvc.SyncExistingFiles()

	srv := server.NewServer(
		components.Engine,
		components.Indexer,
		components.Storage,
		&cfg.Server,
		logger,
		server.WithWatch(watchSvc, cfg, resolvedConfigPath),
	)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchSvc.Stop()
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printSearchUsage prints search subcommand usage and matching hints.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: rirekisho search [flags] <keyword> [keyword ...]\n\n")
	fmt.Fprintf(fs.Output(), "Each positional argument is one keyword. Applicants matching more distinct keywords rank higher.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Algorithms:
  auto          Aho-Corasick for multi-keyword requests, KMP otherwise (default)
  kmp           Knuth-Morris-Pratt, one pass per keyword
  bm            Boyer-Moore, one pass per keyword
  ac            Aho-Corasick, one pass for all keywords
  fuzzy         Typo-tolerant token matching

Examples:
  rirekisho search java kubernetes
  rirekisho search -algorithm ac java go python
  rirekisho search -algorithm fuzzy -fuzzy-threshold 0.7 pythonn
  rirekisho search -output json -limit 20 devops
`)
}

// searchConfigPathFromArgs returns the value of -config/--config from args if present, else defaultPath.
func searchConfigPathFromArgs(args []string, defaultPath string) string {
	for i, a := range args {
		if (a == "-config" || a == "--config") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return defaultPath
}

// searchArgsReorder moves any flags (and their values) that appear after the
// keywords to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument, so "rirekisho search java -limit 5"
// would otherwise leave -limit unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])
	configPath := searchConfigPathFromArgs(searchArgs, defaultConfigPath)

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPathFlag := fs.String("config", configPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage when server is not running)")
	algorithmName := fs.String("algorithm", "auto", "matching algorithm: auto, kmp, bm, ac, or fuzzy")
	limit := fs.Int("limit", 0, "number of results (0 = config default)")
	fuzzyThreshold := fs.Float64("fuzzy-threshold", -1, "minimum similarity for fuzzy matches in [0,1] (unset = config default, 0 accepts every candidate)")
	dynamicThreshold := fs.Bool("dynamic-threshold", false, "derive fuzzy threshold from keyword length")
	outputFormat := fs.String("output", "text", "output format: text (human-readable), compact (one result per line), or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}

	algorithm, err := models.ParseAlgorithm(*algorithmName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v; use auto, kmp, bm, ac, or fuzzy\n", err)
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	case "compact":
		format = cli.OutputCompact
	default:
		fmt.Printf("Unknown output format %q; use text, compact, or json\n", *outputFormat)
		os.Exit(1)
	}

	request := &models.SearchRequest{
		Keywords:         fs.Args(),
		Algorithm:        algorithm,
		MaxResults:       *limit,
		DynamicThreshold: *dynamicThreshold,
	}
	if *fuzzyThreshold >= 0 {
		request.FuzzyThreshold = fuzzyThreshold
	}

	if *serverURL != "" {
		// Use HTTP API when server is running (avoids a SQLite lock conflict).
		response, err := searchViaHTTP(*serverURL, request)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct storage access (when server is not running).
	cfg, _, err := loadConfig(*configPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	response, err := components.Engine.Search(ctx, request, components.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}

	// Direct mode has the corpus at hand, so text output can show context
	// snippets around the first match.
	writeOpts := []cli.WriteOption{}
	if format == cli.OutputText {
		texts := make(map[string]string, len(response.Results))
		for _, result := range response.Results {
			if a, getErr := components.Storage.GetApplicant(ctx, result.DocumentID); getErr == nil {
				texts[result.DocumentID] = a.ExtractedText
			}
		}
		writeOpts = append(writeOpts, cli.WithTexts(texts))
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format, writeOpts...); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL string, request *models.SearchRequest) (*models.SearchResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

// statusConfigResponse holds configuration info returned by status.
type statusConfigResponse struct {
	DatabasePath      string `json:"database_path,omitempty"`
	Workers           int    `json:"workers,omitempty"`
	DefaultMaxResults int    `json:"default_max_results,omitempty"`
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Applicants       int64                 `json:"applicants"`
	CachedAutomatons int                   `json:"cached_automatons"`
	Config           *statusConfigResponse `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger, cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		count, err := components.Storage.CountApplicants(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count applicants failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Applicants:       count,
			CachedAutomatons: components.Engine.CachedAutomatons(),
			Config: &statusConfigResponse{
				DatabasePath:      cfg.Storage.DatabasePath,
				Workers:           cfg.Search.Workers,
				DefaultMaxResults: cfg.Search.DefaultMaxResults,
			},
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("applicants:         %d   # count of indexed applicants\n", status.Applicants)
		fmt.Printf("cached_automatons:  %d   # keyword-set automatons kept in memory\n", status.CachedAutomatons)
		if status.Config != nil {
			fmt.Println()
			fmt.Println("# configuration")
			if status.Config.DatabasePath != "" {
				fmt.Printf("database_path:       %s\n", status.Config.DatabasePath)
			}
			fmt.Printf("workers:             %d\n", status.Config.Workers)
			fmt.Printf("default_max_results: %d\n", status.Config.DefaultMaxResults)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func runIndex() {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	name := fs.String("name", "", "applicant name (default: derived from filename)")
	role := fs.String("role", "", "applicant role")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: rirekisho index [flags] <cv-file-or-directory>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("Failed to stat path: %v\n", err)
		os.Exit(1)
	}
	if info.IsDir() {
		exts := cfg.Watch.Extensions
		n, err := components.Indexer.IndexDirectory(ctx, path, exts)
		if err != nil {
			fmt.Printf("Indexing directory failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Indexed %d CV(s) from %s\n", n, path)
		return
	}

	if *name != "" || *role != "" {
		absPath, _ := filepath.Abs(path)
		a, err := components.Indexer.IndexApplicant(ctx, &models.ApplicantInput{
			ID:     fileid.ApplicantID(absPath),
			Name:   *name,
			Role:   *role,
			CVPath: absPath,
		})
		if err != nil {
			fmt.Printf("Indexing failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Applicant indexed: %s (%s)\n", a.ID, a.Name)
		return
	}

	// Single file: no extension filter
	a, err := components.Indexer.IndexFile(ctx, path, nil)
	if err != nil {
		fmt.Printf("Indexing failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Applicant indexed: %s (%s)\n", a.ID, a.Name)
}

func runInbox() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: rirekisho inbox <add|remove|list> [path]")
		fmt.Println("  rirekisho inbox add <path>     Add a CV inbox directory")
		fmt.Println("  rirekisho inbox remove <path>  Remove a CV inbox directory")
		fmt.Println("  rirekisho inbox list           List CV inbox directories")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("inbox", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[3:])
	switch sub {
	case "add":
		if fs.NArg() < 1 {
			fmt.Println("Usage: rirekisho inbox add <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(fs.Arg(0))
		body, _ := json.Marshal(map[string]interface{}{"path": path, "sync": true})
		resp, err := http.Post(*serverURL+"/api/v1/inboxes", "application/json", bytes.NewReader(body))
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Add failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Added: %s\n", path)
	case "remove":
		if fs.NArg() < 1 {
			fmt.Println("Usage: rirekisho inbox remove <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(fs.Arg(0))
		req, _ := http.NewRequest(http.MethodDelete, *serverURL+"/api/v1/inboxes?path="+url.QueryEscape(path), nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Remove failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Removed: %s\n", path)
	case "list":
		resp, err := http.Get(*serverURL + "/api/v1/inboxes")
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("List failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			Inboxes []string `json:"inboxes"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Printf("Parse failed: %v\n", err)
			os.Exit(1)
		}
		for _, d := range out.Inboxes {
			fmt.Println(d)
		}
	default:
		fmt.Printf("Unknown inbox subcommand: %s\n", sub)
		os.Exit(1)
	}
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: rirekisho delete [flags] <applicant-id>")
		os.Exit(1)
	}
	id := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	if err := components.Indexer.DeleteApplicant(context.Background(), id); err != nil {
		fmt.Printf("Deletion failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Applicant deleted: %s\n", id)
}

// Components holds initialized services.
type Components struct {
	Storage *storage.SQLiteStorage
	Engine  *search.Engine
	Indexer *indexer.Indexer
}

func (c *Components) Close() {
	if c.Engine != nil {
		c.Engine.Close()
	}
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	engine, err := search.NewEngine(&cfg.Search, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize search engine: %w", err)
	}

	idxOpts := []indexer.Option{}
	if debug && logger != nil {
		idxOpts = append(idxOpts, indexer.WithLogger(logger))
	}
	idx := indexer.NewIndexer(store, extract.NewExtractor(), idxOpts...)

	return &Components{
		Storage: store,
		Engine:  engine,
		Indexer: idx,
	}, nil
}

func printUsage() {
	fmt.Println(`rirekisho - Keyword search over applicant CVs

Usage:
  rirekisho server [flags]             Start the HTTP server
  rirekisho search [flags] <keywords>  Search applicants by keyword
  rirekisho index [flags] <file>       Index a CV file or directory
  rirekisho delete [flags] <id>        Delete an applicant
  rirekisho status [flags]             Show engine/storage status
  rirekisho inbox <add|remove|list>    Manage CV inbox directories
  rirekisho version                    Show version
  rirekisho help                       Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/rirekisho/config.yaml)
  --debug            Enable debug logging (inbox changes, CV indexing, etc.)

Search Flags:
  --config string           Config file path (for direct storage mode)
  --server string           Server URL (default: http://localhost:8080). Use empty (--server "") to use direct storage when server is not running.
  --algorithm string        Matching algorithm: auto, kmp, bm, ac, or fuzzy (default: auto)
  --limit int               Number of results (default: config default_max_results)
  --fuzzy-threshold float   Minimum similarity for fuzzy matches in [0,1]
  --dynamic-threshold       Derive fuzzy threshold from keyword length
  --output string           Output format: text, compact, or json (default: text)

Index Flags:
  --config string    Config file path
  --name string      Applicant name (default: derived from filename)
  --role string      Applicant role

Status Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct storage.
  --output string    Output format: text or json (default: text)

Inbox Flags:
  --server string    Server URL (default: http://localhost:8080)

Examples:
  rirekisho server
  rirekisho search java kubernetes
  rirekisho search -algorithm fuzzy pythonn
  rirekisho search -output json -limit 20 devops
  rirekisho index cv/taro_yamada.pdf
  rirekisho index -name "Taro Yamada" -role "Backend Engineer" cv/taro.pdf
  rirekisho delete cv:4f2d...
  rirekisho status
  rirekisho inbox add /srv/cv-inbox
  rirekisho inbox list`)
}
