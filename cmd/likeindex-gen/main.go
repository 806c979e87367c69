// Command likeindex-gen emits a synthetic newline-delimited corpus for
// benchmarking and fixture generation: one to three random vocabulary words
// joined directly, with an occasional numeric suffix, to exercise prefix,
// suffix, contains and multi-slice query shapes at scale.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"

	flag "github.com/spf13/pflag"
)

const defaultOutputFile = "corpus.txt"

var vocabulary = []string{
	"jedi", "force", "skywalker", "sith", "lightsaber", "empire", "rebellion", "droid",
	"blaster", "starship", "yoda", "clone", "trooper", "battle", "padawan", "hologram",
	"bounty", "hunter", "coruscant", "tatooine", "deathstar", "vader", "han", "chewbacca",
	"leia", "luke", "anakin", "grievous", "obiwan", "quigon", "naboo", "geonosis",
	"kamino", "mustafar", "dagobah", "endor", "hoth", "alderaan", "kashyyyk", "lando",
}

func main() {
	path := flag.String("path", defaultOutputFile, "output corpus file path")
	count := flag.Int("count", 100_000, "number of records to generate")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	fmt.Printf("writing %d records to %s\n", *count, *path)
	if err := generate(*path, *count, rand.New(rand.NewSource(*seed))); err != nil {
		fmt.Fprintf(os.Stderr, "likeindex-gen: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("done")
}

func generate(path string, count int, rng *rand.Rand) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	defer w.Flush()

	for i := 0; i < count; i++ {
		if _, err := w.WriteString(generateRecord(rng)); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// generateRecord builds a record from one to three vocabulary words joined
// directly (exercising CONTAINS_ONE/MULTI shapes) with an occasional
// random numeric suffix (exercising PREFIX shapes against a shared stem).
func generateRecord(rng *rand.Rand) string {
	parts := 1 + rng.Intn(3)
	record := ""
	for i := 0; i < parts; i++ {
		record += vocabulary[rng.Intn(len(vocabulary))]
	}
	if rng.Intn(4) == 0 {
		record += fmt.Sprintf("%d", rng.Intn(1000))
	}
	return record
}
