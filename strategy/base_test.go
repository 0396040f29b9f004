package strategy

import (
	"testing"

	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/feed"
	"github.com/evdnx/gostrat/signal"
	"github.com/evdnx/gostrat/testutils"
	"github.com/evdnx/gostrat/types"
)

// scriptEval replays a fixed verdict sequence and records the position
// context it was handed each bar.
type scriptEval struct {
	verdicts []signal.Verdict
	seen     []signal.Context
}

func (e *scriptEval) Name() string { return "scripted" }

func (e *scriptEval) Evaluate(_ *feed.Snapshot, pc signal.Context) signal.Verdict {
	e.seen = append(e.seen, pc)
	if len(e.verdicts) == 0 {
		return signal.Verdict{}
	}
	v := e.verdicts[0]
	e.verdicts = e.verdicts[1:]
	return v
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.RiskFraction = 0
	_, err := New("TEST", cfg, testutils.NewMockGateway(100_000), &scriptEval{}, testutils.NewMockLogger())
	if err == nil {
		t.Fatalf("expected invalid config to be rejected")
	}
}

func TestOnBarReconcilesBeforeEvaluating(t *testing.T) {
	gw := testutils.NewMockGateway(100_000)
	eval := &scriptEval{verdicts: []signal.Verdict{{Enter: true}, {}, {}}}
	st, err := New("TEST", config.Default(), gw, eval, testutils.NewMockLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	snaps := snapshots(t, map[string][]float64{
		feed.High:   {51, 51, 51},
		feed.Low:    {49, 49, 49},
		feed.Close:  {50, 50, 50},
		feed.Volume: {100, 100, 100},
		feed.ATR:    {2, 2, 2},
	})

	st.OnBar(snaps[0])
	entry := gw.LastOrder()
	if entry.Type != types.Market || entry.Side != types.Buy {
		t.Fatalf("entry verdict did not submit a market buy, got %+v", entry)
	}

	gw.Fill(entry.ID, 50, entry.Qty)
	st.OnBar(snaps[1])

	// The evaluator on bar 1 must already see the reconciled position.
	if len(eval.seen) < 2 || !eval.seen[1].InPosition {
		t.Fatalf("evaluator did not see the fill reconciled before evaluation")
	}
	if eval.seen[1].EntryPrice != 50 {
		t.Fatalf("evaluator saw entry price %v, want 50", eval.seen[1].EntryPrice)
	}
	if st.Controller().Size() != entry.Qty {
		t.Fatalf("controller size %d, want %d", st.Controller().Size(), entry.Qty)
	}

	st.OnBar(snaps[2])
	if eval.seen[2].HoldBars == 0 {
		t.Fatalf("hold bars not advancing through the context")
	}
}

func TestStrategyAccessors(t *testing.T) {
	gw := testutils.NewMockGateway(100_000)
	st, err := New("TEST", config.Default(), gw, &scriptEval{}, testutils.NewMockLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if st.Name() != "scripted" {
		t.Fatalf("Name = %q, want the evaluator's name", st.Name())
	}
	if st.Ledger() == nil || st.Controller() == nil {
		t.Fatalf("accessors returned nil components")
	}
}
