// Package id generates identifiers for simulation events.
package id

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator produces unique string IDs.
type IDGenerator interface {
	Generate() string
}

// NewIDGenerator returns a generator that counts up from 1. IDs are
// reproducible between runs.
func NewIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

// NewParallelIDGenerator returns a generator based on xid. IDs are globally
// unique but differ between runs.
func NewParallelIDGenerator() IDGenerator {
	return parallelIDGenerator{}
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)

	return strconv.FormatUint(idNumber, 10)
}

type parallelIDGenerator struct{}

func (g parallelIDGenerator) Generate() string {
	return xid.New().String()
}

var defaultGenerator = NewIDGenerator()

// Generate returns an ID from the default, sequential generator.
func Generate() string {
	return defaultGenerator.Generate()
}
