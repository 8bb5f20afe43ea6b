package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hsbacot/shelfkit/client"
	"github.com/hsbacot/shelfkit/cmd"
	"github.com/hsbacot/shelfkit/config"
	"github.com/hsbacot/shelfkit/shelf"
	"github.com/hsbacot/shelfkit/tui"
	"github.com/hsbacot/shelfkit/ui"
)

func main() {
	// Parse command-line flags
	interactive := flag.Bool("i", false, "interactive mode - show selection menu for multiple matches")
	flag.BoolVar(interactive, "interactive", false, "interactive mode - show selection menu for multiple matches")
	verbose := flag.Bool("v", false, "verbose mode - show detailed logs")
	flag.BoolVar(verbose, "verbose", false, "verbose mode - show detailed logs")
	preview := flag.Bool("p", false, "preview mode - browse results and covers in the terminal UI")
	flag.BoolVar(preview, "preview", false, "preview mode - browse results and covers in the terminal UI")
	list := flag.Bool("l", false, "list mode - print every result instead of one cover URL")
	flag.BoolVar(list, "list", false, "list mode - print every result instead of one cover URL")
	jsonOutput := flag.Bool("json", false, "output results as JSON (with -l)")
	configPath := flag.String("config", "", "path to config file (default ~/.config/shelfkit/config.toml)")
	size := flag.String("size", "", "cover size: S, M or L (overrides config)")
	flag.Parse()

	// Initialize logger
	logger := ui.InitLogger(*verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *size != "" {
		cfg.CoverSize, err = client.ParseCoverSize(*size)
		if err != nil {
			logger.Error("Invalid cover size", "error", err)
			os.Exit(1)
		}
	}
	store := shelf.NewStore(cfg.Styling)

	args := flag.Args()
	if len(args) > 0 && cmd.IsSubcommand(args[0]) {
		cmd.RunCommand(args[0], args[1:], cmd.Env{Config: cfg, Logger: logger, Store: store})
		return
	}

	// Get query from arguments
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	query := strings.Join(args, " ")
	logger.Debug("Starting search", "query", query, "interactive", *interactive, "preview", *preview)

	ctx := context.Background()

	// Create API client
	apiClient := client.NewClient(
		client.WithBaseURL(cfg.CatalogURL),
		client.WithUserAgent(cfg.UserAgent),
		client.WithLogger(logger),
	)

	if *preview {
		model := tui.NewModel(query, tui.Options{
			Context:   ctx,
			Logger:    logger,
			Client:    apiClient,
			Store:     store,
			CoversURL: cfg.CoversURL,
			CoverSize: cfg.CoverSize,
		})
		final, err := tea.NewProgram(model, tea.WithMouseCellMotion()).Run()
		if err != nil {
			logger.Error("Preview failed", "error", err)
			os.Exit(1)
		}
		if m, ok := final.(tui.Model); ok {
			if m.Err() != nil {
				logger.Error("Preview ended", "error", m.Err())
				os.Exit(1)
			}
			if sel := m.Selected(); sel != nil {
				fmt.Println(client.CoverURLAt(cfg.CoversURL, sel.CoverID, cfg.CoverSize))
			}
		}
		return
	}

	// Search for books
	logger.Info("Searching openlibrary.org", "query", query)
	result := apiClient.SearchResult(ctx, query)
	logger.Debug("Search completed", "results", len(result.Records), "total", result.TotalFound)

	if *list {
		if err := cmd.PrintResults(os.Stdout, result, cfg.CoversURL, cfg.CoverSize, *jsonOutput); err != nil {
			logger.Error("Failed to print results", "error", err)
			os.Exit(1)
		}
		return
	}

	// Handle no results
	if len(result.Records) == 0 {
		logger.Warn("No books found", "query", query)
		os.Exit(1)
	}

	// Select book
	var selected *client.BookRecord
	if len(result.Records) == 1 {
		// Only one result - use it automatically
		selected = &result.Records[0]
		logger.Info("Found book", "title", selected.Title, "id", selected.ID)
	} else if *interactive {
		// Interactive mode - show selection menu
		logger.Info("Found multiple books", "count", len(result.Records))
		selected, err = ui.SelectBook(result.Records)
		if err != nil {
			logger.Error("Selection failed", "error", err)
			os.Exit(1)
		}
		logger.Info("Selected book", "title", selected.Title, "id", selected.ID)
	} else {
		// Non-interactive mode - use first result
		selected = &result.Records[0]
		logger.Info("Found multiple books, using first match", "title", selected.Title, "id", selected.ID)
		logger.Info("Use -i flag to select interactively")
	}

	if selected.CoverID == nil {
		logger.Warn("Book has no cover", "id", selected.ID)
	}

	// Output the cover URL to stdout
	fmt.Println(client.CoverURLAt(cfg.CoversURL, selected.CoverID, cfg.CoverSize))
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: shelfkit [OPTIONS] <query>")
	fmt.Fprintln(os.Stderr, "       shelfkit [OPTIONS] <command> [ARGS]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  -i, --interactive    Show selection menu for multiple matches")
	fmt.Fprintln(os.Stderr, "  -p, --preview        Browse results and covers in the terminal UI")
	fmt.Fprintln(os.Stderr, "  -l, --list           Print every result")
	fmt.Fprintln(os.Stderr, "      --json           Print results as JSON (with -l)")
	fmt.Fprintln(os.Stderr, "      --size <S|M|L>   Cover size")
	fmt.Fprintln(os.Stderr, "      --config <path>  Config file")
	fmt.Fprintln(os.Stderr, "  -v, --verbose        Show detailed logs")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  cover <cover-id>     Print a cover URL")
	fmt.Fprintln(os.Stderr, "  sticker <file|url>   Preview an image or Lottie sticker")
	fmt.Fprintln(os.Stderr, "  dividers             Edit shelf divider settings")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Example:")
	fmt.Fprintln(os.Stderr, "  shelfkit dune")
	fmt.Fprintln(os.Stderr, "  shelfkit -i the left hand of darkness")
	fmt.Fprintln(os.Stderr, "  shelfkit cover 12345 --size L")
}
