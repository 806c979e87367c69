// Command likeindex-query builds an in-memory index from a corpus file and
// runs a single LIKE pattern against it, printing matching (id, bytes)
// rows. Since index persistence is out of scope, build and query happen in
// one process invocation rather than across separate binaries.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"likeindex"
	"likeindex/internal/config"
	"likeindex/internal/corpus"
	"likeindex/internal/logging"
)

func main() {
	corpusPath := flag.String("corpus", "", "path or URL to a newline-delimited or JSON-array corpus")
	pattern := flag.String("pattern", "%", "LIKE pattern to evaluate")
	configPath := flag.String("config", "", "path to a JSONC config file")
	limit := flag.Int("limit", 0, "maximum rows to print (0 = unlimited)")
	statsOnly := flag.Bool("stats", false, "print index stats instead of query results")
	flag.Parse()

	if *corpusPath == "" {
		fmt.Fprintln(os.Stderr, "likeindex-query: --corpus is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "likeindex-query: %v\n", err)
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

	if *statsOnly {
		printStats(handle)
		return
	}

	rows := handle.QueryRows(*pattern)
	ids := handle.QueryIDs(*pattern)
	for i, id := range ids {
		if *limit > 0 && i >= *limit {
			fmt.Printf("... (%d more)\n", len(ids)-*limit)
			break
		}
		fmt.Printf("%d\t%s\n", id, rows[i])
	}
	fmt.Fprintf(os.Stderr, "%d match(es)\n", len(ids))
}

func printStats(h *likeindex.Handle) {
	s := h.Stats()
	fmt.Printf("records:            %d\n", s.NumRecords)
	fmt.Printf("capped length:      %d\n", s.CappedLength)
	fmt.Printf("distinct bytes:     %d\n", s.DistinctBytes)
	fmt.Printf("approx pos. bytes:  %d\n", s.ApproxPositionalBytes)
}
