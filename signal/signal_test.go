package signal

import (
	"testing"

	"github.com/evdnx/gostrat/feed"
)

// snapSeq materializes one snapshot per bar of the supplied series.
func snapSeq(t *testing.T, series map[string][]float64) []*feed.Snapshot {
	t.Helper()
	frame, err := feed.NewFrame(series)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	var out []*feed.Snapshot
	for frame.Next() {
		out = append(out, frame.Snapshot())
	}
	return out
}
