// Package main is the pantry CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/b4ubuy/pantry/internal/cart"
	"github.com/b4ubuy/pantry/internal/config"
	"github.com/b4ubuy/pantry/internal/insights"
	"github.com/b4ubuy/pantry/internal/products"
	"github.com/b4ubuy/pantry/internal/recipes"
	"github.com/b4ubuy/pantry/internal/server"
	"github.com/b4ubuy/pantry/internal/suggest"
	"github.com/b4ubuy/pantry/internal/watcher"
	"github.com/b4ubuy/pantry/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/pantry/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
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
	case "suggest":
		runSuggest()
	case "version", "--version", "-v":
		fmt.Printf("pantry version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: pantry <command> [flags]

Commands:
  server    Start the HTTP API server
  suggest   Suggest a recipe and its shopping list for a dish name
  version   Print version
  help      Show this help`)
}

// components holds everything the server needs, so that setup and teardown
// stay in one place.
type components struct {
	Suggest  *suggest.Service
	Products *products.Store
	Index    *products.Index
	Cart     *cart.Store
	Insights *insights.Client
}

func (c *components) Close() {
	if c.Index != nil {
		_ = c.Index.Close()
	}
	if c.Products != nil {
		_ = c.Products.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	if cfg.Datasets.RecipesPath == "" {
		return nil, fmt.Errorf("datasets.recipes_path is not configured")
	}
	catalog := recipes.NewCatalog(recipes.NewFileSource(cfg.Datasets.RecipesPath), logger)
	svc := suggest.NewService(catalog, logger)

	ps, err := products.NewStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open product store: %w", err)
	}
	index, err := products.NewIndex(cfg.Storage.ProductIndexPath)
	if err != nil {
		ps.Close()
		return nil, fmt.Errorf("open product index: %w", err)
	}

	c := &components{
		Suggest:  svc,
		Products: ps,
		Index:    index,
		Cart:     cart.NewStore(ps, logger),
	}

	if cfg.Datasets.ProductsPath != "" {
		if err := loadProducts(context.Background(), cfg.Datasets.ProductsPath, c, logger); err != nil {
			c.Close()
			return nil, err
		}
	}

	if cfg.Insights.BaseURL != "" {
		timeout := time.Duration(cfg.Insights.TimeoutSeconds) * time.Second
		c.Insights = insights.NewClient(cfg.Insights.BaseURL, timeout, logger)
	}

	return c, nil
}

// loadProducts reads the product dataset, merges it into the store, and
// indexes it for search.
func loadProducts(ctx context.Context, path string, c *components, logger *zap.Logger) error {
	list, err := products.LoadCatalog(path, logger)
	if err != nil {
		return fmt.Errorf("load product dataset: %w", err)
	}
	merged := 0
	for _, p := range list {
		inserted, err := c.Products.Merge(ctx, p)
		if err != nil {
			return fmt.Errorf("merge product %q: %w", p.Name, err)
		}
		if inserted {
			merged++
		}
	}
	if err := c.Index.IndexProducts(ctx, list); err != nil {
		return fmt.Errorf("index products: %w", err)
	}
	logger.Info("product dataset loaded",
		zap.String("path", path),
		zap.Int("products", len(list)),
		zap.Int("new", merged))
	return nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
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

	c, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer c.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Datasets.WatchOrDefault() {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		w := watcher.New(watchOpts...)
		if err := w.Watch(cfg.Datasets.RecipesPath, c.Suggest.Catalog().Invalidate); err != nil {
			logger.Fatal("Failed to watch recipe dataset", zap.Error(err))
		}
		productsPath := cfg.Datasets.ProductsPath
		if err := w.Watch(productsPath, func() {
			if err := loadProducts(context.Background(), productsPath, c, logger); err != nil {
				logger.Warn("product dataset reload failed", zap.Error(err))
			}
		}); err != nil {
			logger.Fatal("Failed to watch product dataset", zap.Error(err))
		}
		if err := w.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start dataset watcher", zap.Error(err))
		}
		defer w.Stop()
	}

	srv := server.NewServer(
		c.Suggest,
		c.Products,
		c.Index,
		c.Cart,
		c.Insights,
		cfg.Insights.Persona,
		&cfg.Server,
		logger,
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
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildDishQuery joins all positional args with spaces so multi-word dish
// names work the same with or without shell quoting.
func buildDishQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func runSuggest() {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputJSON := fs.Bool("json", false, "print the full result as JSON")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: pantry suggest [flags] <dish name>")
		os.Exit(1)
	}
	dish := buildDishQuery(fs.Args())

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Datasets.RecipesPath == "" {
		fmt.Println("datasets.recipes_path is not configured")
		os.Exit(1)
	}

	catalog := recipes.NewCatalog(recipes.NewFileSource(cfg.Datasets.RecipesPath), nil)
	svc := suggest.NewService(catalog, nil)
	result := svc.Suggest(context.Background(), dish)

	if *outputJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	if !result.Success {
		fmt.Println(result.Message)
		os.Exit(1)
	}
	fmt.Printf("%s (%s)\n", result.RecipeName, result.Cuisine)
	if result.Description != "" {
		fmt.Println(result.Description)
	}
	if result.PrepTime != "" || result.CookTime != "" {
		fmt.Printf("Prep: %s min  Cook: %s min\n", result.PrepTime, result.CookTime)
	}
	fmt.Printf("\nIngredients (%d):\n", result.TotalCount)
	for _, ing := range result.Ingredients {
		qty := ing.QuantityText
		if qty == "" {
			qty = "-"
		}
		fmt.Printf("  %-30s %s\n", ing.DisplayName, qty)
	}
}
