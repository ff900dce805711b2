package parser

import (
	"github.com/gnana997/designc/pkg/util"
)

// getDefaultPoolSize returns the default pool size based on CPU count.
// Delegates to util.GetOptimalPoolSize() so the parser pool and the
// batch compile worker pool stay in sync and workers never block
// waiting for a parser.
func getDefaultPoolSize() int {
	return util.GetOptimalPoolSize()
}

// getPoolSize returns the pool size to use, allowing for an override.
// An override of 0 falls back to the CPU-based default.
func getPoolSize(override int) int {
	return util.GetOptimalPoolSizeWithOverride(override)
}
