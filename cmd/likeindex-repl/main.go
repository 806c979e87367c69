// Command likeindex-repl loads a corpus once and then repeatedly reads a
// LIKE pattern from an interactive prompt, echoing the match count and
// first few ids. History and line editing are provided by liner, the same
// library the pack's ticket-cache REPL uses.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/peterh/liner"

	"likeindex"
	"likeindex/internal/config"
	"likeindex/internal/corpus"
	"likeindex/internal/logging"
)

const maxEchoedIDs = 20

func main() {
	corpusPath := flag.String("corpus", "", "path or URL to a newline-delimited or JSON-array corpus")
	configPath := flag.String("config", "", "path to a JSONC config file")
	flag.Parse()

	if *corpusPath == "" {
		fmt.Fprintln(os.Stderr, "likeindex-repl: --corpus is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "likeindex-repl: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	records, err := corpus.Load(*corpusPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to load corpus")
	}

	handle, err := likeindex.Build(
		likeindex.NewSliceSource(records),
		likeindex.WithCappedLength(cfg.CappedLength),
		likeindex.WithLogger(logger),
	)
	if err != nil {
		logger.WithError(err).Fatal("failed to build index")
	}

	repl := &REPL{handle: handle}
	if err := repl.Run(); err != nil {
		logger.WithError(err).Fatal("repl exited with error")
	}
}

// REPL is an interactive console for trying LIKE patterns against an
// already-built index.
type REPL struct {
	handle *likeindex.Handle
	liner  *liner.State
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".likeindex_history")
}

// Run starts the read-pattern-print loop.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)

	if f, err := os.Open(historyFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	stats := r.handle.Stats()
	fmt.Printf("likeindex repl (%d records, capped length %d)\n", stats.NumRecords, stats.CappedLength)
	fmt.Println("Type a LIKE pattern ('_' any byte, '%' any run), or 'quit'.")

	for {
		line, err := r.liner.Prompt("likeindex> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")
				break
			}
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.liner.AppendHistory(line)

		if line == "quit" || line == "exit" {
			r.saveHistory()
			fmt.Println("Bye!")
			return nil
		}

		r.evalPattern(line)
	}

	r.saveHistory()
	return nil
}

func (r *REPL) evalPattern(pattern string) {
	ids := r.handle.QueryIDs(pattern)
	fmt.Printf("%d match(es)", len(ids))
	if len(ids) > maxEchoedIDs {
		fmt.Printf(": %v ... (%d more)\n", ids[:maxEchoedIDs], len(ids)-maxEchoedIDs)
	} else if len(ids) > 0 {
		fmt.Printf(": %v\n", ids)
	} else {
		fmt.Println()
	}
}

func (r *REPL) saveHistory() {
	path := historyFile()
	if path == "" {
		return
	}
	if f, err := os.Create(path); err == nil {
		r.liner.WriteHistory(f)
		f.Close()
	}
}
