// Package corpus loads the string column the likeindex-* hosts build an
// index over, from either a newline-delimited text file or a JSON array of
// strings. It supersedes the term-postings JSON format the teacher module
// fetched, since this engine's corpus entity is a raw string per record,
// not per-term posting lists.
package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Fetch reads raw bytes from either a URL or a local file path, the same
// dual-source convention the rest of the pack's fetchers use.
func Fetch(path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := http.Get(path)
		if err != nil {
			return nil, fmt.Errorf("corpus: fetching %s: %w", path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("corpus: non-ok response fetching %s: %s", path, resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("corpus: reading response from %s: %w", path, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: reading %s: %w", path, err)
	}
	return data, nil
}

// Parse interprets data as a corpus. A payload that trims to a leading '['
// is parsed as a JSON array of strings (a null element decodes to the Go
// zero value "", per this engine's null-as-empty-string convention);
// anything else is treated as newline-delimited text, one record per line,
// with a single trailing newline not producing a spurious empty record.
func Parse(data []byte) ([][]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return parseJSONArray(trimmed)
	}
	return parseLines(data), nil
}

// Load fetches and parses path in one step.
func Load(path string) ([][]byte, error) {
	data, err := Fetch(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func parseJSONArray(data []byte) ([][]byte, error) {
	var entries []*string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("corpus: parsing json array: %w", err)
	}
	records := make([][]byte, len(entries))
	for i, e := range entries {
		if e == nil {
			records[i] = []byte{}
			continue
		}
		records[i] = []byte(*e)
	}
	return records, nil
}

func parseLines(data []byte) [][]byte {
	var records [][]byte
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, cp)
	}
	return records
}
