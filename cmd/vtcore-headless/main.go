// Command vtcore-headless feeds a captured byte stream through a
// vtcore Terminal and prints the resulting screen: it accepts an input
// byte file and (cols, rows) and writes the snapshot to stdout as
// plain text (default) or JSON (-j/--json).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/coreterm/vtcore"
)

type fileConfig struct {
	Cols       int `toml:"cols"`
	Rows       int `toml:"rows"`
	Scrollback int `toml:"scrollback"`
	MaxMemory  int64 `toml:"max_memory"`
}

func main() {
	var (
		cols       = flag.Int("cols", vtcore.DefaultCols, "terminal width in columns")
		rows       = flag.Int("rows", vtcore.DefaultRows, "terminal height in rows")
		inputPath  = flag.String("file", "", "input byte file to feed (default: stdin)")
		asJSON     = flag.Bool("json", false, "write JSON instead of plain text")
		asText     = flag.Bool("text", false, "write plain text (default)")
		scrollback = flag.Int("scrollback", 0, "scrollback capacity in lines (0 disables)")
		configPath = flag.String("config", "", "optional TOML config file for cols/rows/scrollback/max-memory")
		maxMemory  = flag.Int64("max-memory", 0, "image store memory budget in bytes (0 keeps the default)")
	)
	flag.IntVar(cols, "c", vtcore.DefaultCols, "terminal width in columns (shorthand)")
	flag.IntVar(rows, "r", vtcore.DefaultRows, "terminal height in rows (shorthand)")
	flag.StringVar(inputPath, "f", "", "input byte file to feed (shorthand)")
	flag.BoolVar(asJSON, "j", false, "write JSON instead of plain text (shorthand)")
	flag.BoolVar(asText, "t", false, "write plain text (shorthand)")
	flag.IntVar(scrollback, "s", 0, "scrollback capacity in lines (shorthand)")
	help := flag.Bool("help", false, "show usage")
	flag.BoolVar(help, "h", false, "show usage (shorthand)")
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	cfg := fileConfig{Cols: *cols, Rows: *rows, Scrollback: *scrollback, MaxMemory: *maxMemory}
	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "vtcore-headless: reading config: %v\n", err)
			os.Exit(1)
		}
	}

	if err := run(cfg, *inputPath, !*asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "vtcore-headless: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg fileConfig, inputPath string, asText bool) error {
	opts := []vtcore.Option{vtcore.WithSize(cfg.Rows, cfg.Cols)}
	if cfg.Scrollback > 0 {
		opts = append(opts, vtcore.WithScrollback(vtcore.NewMemoryScrollback(cfg.Scrollback)))
	}

	term := vtcore.New(opts...)
	if cfg.MaxMemory > 0 {
		term.SetImageMaxMemory(cfg.MaxMemory)
	}

	var in io.Reader = os.Stdin
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	if _, err := io.Copy(term, bufio.NewReader(in)); err != nil {
		return fmt.Errorf("feeding input: %w", err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if asText {
		return writeText(out, term)
	}
	return writeJSON(out, term)
}

func writeText(w io.Writer, term *vtcore.Terminal) error {
	snap := term.Snapshot(vtcore.SnapshotCompact)
	for _, line := range snap.Lines {
		if _, err := fmt.Fprintln(w, line.Text); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, term *vtcore.Terminal) error {
	snap := term.Snapshot(vtcore.SnapshotFull)
	data, err := snap.Encode()
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
