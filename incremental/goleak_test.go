package incremental

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures no per-file worker goroutine outlives its Coordinator,
// since this package is the only one that owns real goroutines (§5's
// per-file worker thread model).
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}
