package cli

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayProgress(t *testing.T) {
	var buf bytes.Buffer
	progress := NewDayProgress(&buf, 3, "Fetching")

	var wg sync.WaitGroup
	for _, key := range []string{"2025-03-10", "2025-03-11", "2025-03-12"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			progress.Done(key)
		}()
	}
	wg.Wait()
	progress.Finish()

	assert.Contains(t, buf.String(), "3/3")
	assert.True(t, progress.bar.IsFinished())
}

func TestDayProgress_FinishEarly(t *testing.T) {
	var buf bytes.Buffer
	progress := NewDayProgress(&buf, 5, "Fetching")
	progress.Done("2025-03-10")
	progress.Finish()

	assert.True(t, progress.bar.IsFinished())
}
