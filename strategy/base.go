package strategy

import (
	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/feed"
	"github.com/evdnx/gostrat/gateway"
	"github.com/evdnx/gostrat/ledger"
	"github.com/evdnx/gostrat/logger"
	"github.com/evdnx/gostrat/signal"
)

// Strategy binds one signal evaluator to the shared lifecycle controller.
// All five variants are instances of this type; they differ only in the
// evaluator and threshold configuration they are built with.
type Strategy struct {
	name    string
	symbol  string
	cfg     config.StrategyConfig
	log     logger.Logger
	eval    signal.Evaluator
	confirm *signal.Confirmer
	ctrl    *Controller
	led     *ledger.Ledger
}

// New validates the config and assembles a strategy around the supplied
// evaluator. The oscillator confirmation suite is optional equipment: a
// construction failure there disables confirmation rather than the
// strategy.
func New(symbol string, cfg config.StrategyConfig, gw gateway.Gateway,
	eval signal.Evaluator, log logger.Logger) (*Strategy, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	led := ledger.New()
	st := &Strategy{
		name:   eval.Name(),
		symbol: symbol,
		cfg:    cfg,
		log:    log,
		eval:   eval,
		ctrl:   NewController(eval.Name(), symbol, cfg, gw, led, log),
		led:    led,
	}
	confirm, err := signal.NewConfirmer(cfg)
	if err != nil {
		log.Warn("confirmer_disabled", logger.Err(err))
	} else {
		st.confirm = confirm
	}
	return st, nil
}

// OnBar processes one finalized bar: reconcile fills first, evaluate the
// signal against the reconciled position, then run the lifecycle
// decisions.
func (st *Strategy) OnBar(s *feed.Snapshot) {
	st.observeBar(s)
	st.ctrl.Reconcile(s)

	pc := signal.Context{
		InPosition: st.ctrl.Size() > 0,
		EntryPrice: st.ctrl.EntryPrice(),
		HoldBars:   st.ctrl.HoldBars(),
	}
	v := st.eval.Evaluate(s, pc)
	if v.Enter && st.confirm != nil && st.confirm.VetoLong() {
		st.log.Info("entry_vetoed",
			logger.String("symbol", st.symbol),
			logger.String("strategy", st.name),
		)
		v.Enter = false
	}
	st.ctrl.Decide(s, v)
}

func (st *Strategy) observeBar(s *feed.Snapshot) {
	if st.confirm == nil {
		return
	}
	high, ok1 := s.At(feed.High, 0)
	low, ok2 := s.At(feed.Low, 0)
	close, ok3 := s.At(feed.Close, 0)
	if !ok1 || !ok2 || !ok3 {
		return
	}
	volume, ok := s.At(feed.Volume, 0)
	if !ok {
		volume = 0
	}
	if err := st.confirm.Observe(high, low, close, volume); err != nil {
		st.log.Warn("suite_add_error", logger.Err(err))
	}
}

// Name returns the variant label used in logs and metrics.
func (st *Strategy) Name() string { return st.name }

// Ledger exposes the strategy's trade ledger for reporting.
func (st *Strategy) Ledger() *ledger.Ledger { return st.led }

// Controller exposes the lifecycle controller, mainly for inspection in
// tests and reporting.
func (st *Strategy) Controller() *Controller { return st.ctrl }
