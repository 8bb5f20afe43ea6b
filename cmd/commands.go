package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/hsbacot/shelfkit/client"
	"github.com/hsbacot/shelfkit/config"
	"github.com/hsbacot/shelfkit/shelf"
	"github.com/hsbacot/shelfkit/sticker"
	"github.com/hsbacot/shelfkit/tui"
)

// Env is what every subcommand gets from main
type Env struct {
	Config config.Config
	Logger *log.Logger
	Store  *shelf.Store
}

// Subcommands lists the names RunCommand dispatches
var Subcommands = []string{"cover", "sticker", "dividers"}

// IsSubcommand reports whether name is handled by RunCommand
func IsSubcommand(name string) bool {
	for _, s := range Subcommands {
		if s == name {
			return true
		}
	}
	return false
}

// RunCommand handles all subcommands and exits on failure
func RunCommand(name string, args []string, env Env) {
	var err error
	switch name {
	case "cover":
		err = runCover(os.Stdout, args, env)
	case "sticker":
		err = runSticker(args, env)
	case "dividers":
		err = runDividers(os.Stdout, args, env)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage(os.Stdout)
		os.Exit(1)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  shelfkit cover <cover-id>        Print the cover image URL")
	fmt.Fprintln(w, "  shelfkit sticker <file|url>      Preview an image or Lottie sticker")
	fmt.Fprintln(w, "  shelfkit dividers                Edit shelf divider settings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --size <S|M|L>    Cover size (cover)")
	fmt.Fprintln(w, "  --json            Output in JSON format (cover, dividers)")
	fmt.Fprintln(w, "  --title <text>    Preview header (sticker)")
	fmt.Fprintln(w, "  --set key=value   Change one divider setting without the form (dividers)")
	fmt.Fprintln(w, "                    Changes apply to this run only; edit [dividers] in the config to keep them")
	fmt.Fprintln(w, "  --show            Print the current settings and exit (dividers)")
}

// parseInterspersed lets flags follow positional arguments.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// runCover prints the URL of a cover image
func runCover(w io.Writer, args []string, env Env) error {
	fs := flag.NewFlagSet("cover", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	size := fs.String("size", env.Config.CoverSize.String(), "Cover size: S, M or L")
	jsonOutput := fs.Bool("json", false, "Output in JSON format")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}

	if len(positional) != 1 {
		return errors.New("cover id required\nUsage: shelfkit cover <cover-id> [--size L]")
	}

	coverSize, err := client.ParseCoverSize(*size)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(strings.TrimSpace(positional[0]))
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid cover id: %q", positional[0])
	}

	url := client.CoverURLAt(env.Config.CoversURL, &id, coverSize)
	env.logger().Debug("Derived cover URL", "cover", id, "size", coverSize, "url", url)

	if *jsonOutput {
		return printJSON(w, coverOutput{CoverID: id, Size: coverSize.String(), URL: url})
	}
	fmt.Fprintln(w, url)
	return nil
}

type coverOutput struct {
	CoverID int    `json:"coverId"`
	Size    string `json:"size"`
	URL     string `json:"url"`
}

// runSticker opens the preview TUI for a local or remote sticker
func runSticker(args []string, env Env) error {
	fs := flag.NewFlagSet("sticker", flag.ContinueOnError)
	title := fs.String("title", "", "Preview header")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return errors.New("sticker path required\nUsage: shelfkit sticker <file|url> [--title text]")
	}

	desc, err := stickerDescriptor(context.Background(), nil, positional[0])
	if err != nil {
		return err
	}
	if *title == "" {
		*title = path.Base(stripQuery(positional[0]))
	}
	env.logger().Debug("Previewing sticker", "source", positional[0], "kind", desc.Kind())

	model := tui.NewModel("", tui.Options{
		Logger:       env.Logger,
		Store:        env.Store,
		Sticker:      desc,
		StickerTitle: *title,
	})
	final, err := tea.NewProgram(model, tea.WithMouseCellMotion()).Run()
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// stickerDescriptor classifies a source by extension. Lottie files are read
// eagerly, from disk or over http(s); images are handed to the loader by path
// or URL.
func stickerDescriptor(ctx context.Context, hc *http.Client, source string) (sticker.Descriptor, error) {
	if !strings.EqualFold(path.Ext(stripQuery(source)), ".json") {
		return sticker.ImageAsset{URL: source}, nil
	}

	var (
		data []byte
		err  error
	)
	if isRemote(source) {
		data, err = fetchSticker(ctx, hc, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("read sticker: %w", err)
	}
	return sticker.AnimationAsset{Data: data}, nil
}

func fetchSticker(ctx context.Context, hc *http.Client, url string) ([]byte, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d", client.ErrUnexpectedStatus, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func stripQuery(source string) string {
	if i := strings.IndexAny(source, "?#"); i >= 0 {
		return source[:i]
	}
	return source
}

// runDividers edits the shelf divider settings through the store's mutator
func runDividers(w io.Writer, args []string, env Env) error {
	fs := flag.NewFlagSet("dividers", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	jsonOutput := fs.Bool("json", false, "Output in JSON format")
	show := fs.Bool("show", false, "Print the current settings and exit")
	var sets setFlags
	fs.Var(&sets, "set", "key=value, may repeat; not saved, edit [dividers] in the config to keep it")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}

	store := env.Store
	if store == nil {
		store = shelf.NewStore(env.Config.Styling)
	}

	switch {
	case *show:
	case len(sets) > 0:
		for _, kv := range sets {
			if err := store.UpdateDividersSetting(kv.key, kv.value); err != nil {
				return err
			}
			env.logger().Debug("Divider setting updated", "key", kv.key, "value", kv.value)
		}
	default:
		form := shelf.NewDividersForm(store)
		if err := form.Form.Run(); err != nil {
			return fmt.Errorf("dividers form: %w", err)
		}
		if err := form.Apply(store); err != nil {
			return err
		}
	}

	return printDividers(w, store.Dividers(), *jsonOutput)
}

type setting struct {
	key   string
	value string
}

type setFlags []setting

func (s *setFlags) String() string {
	parts := make([]string, len(*s))
	for i, kv := range *s {
		parts[i] = kv.key + "=" + kv.value
	}
	return strings.Join(parts, ",")
}

func (s *setFlags) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	*s = append(*s, setting{key: strings.TrimSpace(key), value: strings.TrimSpace(value)})
	return nil
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}
