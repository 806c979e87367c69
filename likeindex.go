// Package likeindex accelerates SQL LIKE-style wildcard matching over a
// large in-memory column of byte strings. A pattern drawn from the
// alphabet {literal byte, '_', '%'} — '_' matches exactly one byte, '%'
// matches any byte run including empty — is classified by a pattern
// planner and answered by a query executor built on a positional bitmap
// index, verifying per-record only where bitmap algebra alone cannot
// decide containment.
package likeindex

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"likeindex/internal/executor"
	"likeindex/internal/index"
	"likeindex/internal/logging"
)

// Source yields raw record payloads in assigned-id order, the same
// contract internal/index.Source exposes to the builder.
type Source = index.Source

// NewSliceSource wraps an in-memory slice of records for Build.
func NewSliceSource(records [][]byte) *index.SliceSource {
	return index.NewSliceSource(records)
}

// Handle is an immutable, built index ready to answer queries. The zero
// Handle answers every query as NotBuilt: an empty result plus a logged
// warning, never a panic.
type Handle struct {
	idx    *index.Index
	exec   *executor.Executor
	logger *log.Logger
}

type buildConfig struct {
	cappedLength int
	logger       *log.Logger
}

// Option configures Build.
type Option func(*buildConfig)

// WithCappedLength overrides the positional cap L (default
// index.DefaultCappedLength).
func WithCappedLength(n int) Option {
	return func(c *buildConfig) { c.cappedLength = n }
}

// WithLogger supplies the logger used for build progress and NotBuilt
// warnings. Defaults to a discarding logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *buildConfig) { c.logger = logger }
}

// Build consumes source in order, assigning ids 0..N-1, and returns a
// ready-to-query Handle. A source error aborts the build, discarding any
// partial index; the returned error wraps ErrIngestFailure and is
// classifiable with errors.Is.
func Build(source Source, opts ...Option) (*Handle, error) {
	cfg := buildConfig{cappedLength: index.DefaultCappedLength, logger: logging.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.logger.WithField("capped_length", cfg.cappedLength).Info("building likeindex")

	idx, err := index.Build(source, cfg.cappedLength)
	if err != nil {
		cfg.logger.WithError(err).Error("likeindex build failed")
		return nil, fmt.Errorf("%w: %v", ErrIngestFailure, err)
	}

	cfg.logger.WithFields(log.Fields{
		"records": idx.NumRecords(),
	}).Info("likeindex build complete")

	return &Handle{idx: idx, exec: executor.New(idx), logger: cfg.logger}, nil
}

// QueryCount returns the number of records matching pattern.
func (h *Handle) QueryCount(pattern string) int {
	if h == nil || h.exec == nil {
		h.warnNotBuilt()
		return 0
	}
	return h.exec.QueryCount(pattern)
}

// QueryIDs returns the ascending ids of records matching pattern.
func (h *Handle) QueryIDs(pattern string) []uint32 {
	if h == nil || h.exec == nil {
		h.warnNotBuilt()
		return nil
	}
	return h.exec.QueryIDs(pattern)
}

// QueryRows returns the record bytes of every match, in ascending id
// order.
func (h *Handle) QueryRows(pattern string) [][]byte {
	if h == nil || h.exec == nil {
		h.warnNotBuilt()
		return nil
	}
	return h.exec.QueryRows(pattern)
}

// Stats reports index size and memory-footprint estimates for
// introspection; the zero value if the handle was never built.
func (h *Handle) Stats() index.Stats {
	if h == nil || h.idx == nil {
		return index.Stats{}
	}
	return h.idx.Stats()
}

func (h *Handle) warnNotBuilt() {
	logger := logging.Discard()
	if h != nil && h.logger != nil {
		logger = h.logger
	}
	logger.Warn(ErrNotBuilt)
}
