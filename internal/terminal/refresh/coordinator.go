package refresh

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/gemterm/internal/terminal/analysis"
	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/internal/terminal/market"
	"github.com/aussiebroadwan/gemterm/internal/terminal/telemetry"
	"github.com/aussiebroadwan/gemterm/pkg/slogx"
)

var (
	ErrClosed           = errors.New("refresh: coordinator closed")
	ErrUnsupportedChain = errors.New("refresh: unsupported chain")
	ErrInvalidView      = errors.New("refresh: invalid view")
	ErrInvalidToken     = errors.New("refresh: invalid token")
	ErrTokenNotListed   = errors.New("refresh: token not in displayed list")
)

const (
	DefaultPollInterval   = 60 * time.Second
	DefaultSearchDebounce = 1200 * time.Millisecond
	DefaultRequestTimeout = 15 * time.Second

	// MinQueryLength is the trimmed query length at which a search is active.
	MinQueryLength = 2
)

// Category identifies a stream of provider requests. Completions are only
// applied if they belong to the latest request of their category.
type Category string

const (
	CategoryPoll     Category = "poll"
	CategorySearch   Category = "search"
	CategoryAnalysis Category = "analysis"
)

type Outcome string

const (
	Applied    Outcome = "applied"
	Superseded Outcome = "superseded"
)

type Config struct {
	InitialChain   domain.Chain
	PollInterval   time.Duration
	SearchDebounce time.Duration
	RequestTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if !c.InitialChain.Supported() {
		c.InitialChain = domain.ChainSolana
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.SearchDebounce <= 0 {
		c.SearchDebounce = DefaultSearchDebounce
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	return c
}

// Deps are the collaborators shared by every coordinator.
type Deps struct {
	Tokens   market.Provider
	Analyzer analysis.Provider
	Clock    Clock
	Logger   *slog.Logger
	Metrics  *telemetry.Metrics

	// OnOutcome observes every provider completion. It runs without the
	// coordinator lock held.
	OnOutcome func(sessionID string, cat Category, out Outcome)
}

// Snapshot is the terminal state as seen by a client. Slices and pointers in
// a snapshot are never mutated after publication.
type Snapshot struct {
	Version         uint64             `json:"version"`
	Chain           domain.Chain       `json:"activeChain"`
	Query           string             `json:"searchQuery"`
	View            domain.View        `json:"view"`
	Tokens          []domain.Token     `json:"displayedTokens"`
	Alerts          []domain.Alert     `json:"alerts"`
	Selected        *domain.Token      `json:"selectedToken,omitempty"`
	ChartSymbol     string             `json:"chartSymbol,omitempty"`
	Analysis        *domain.AIAnalysis `json:"analysis,omitempty"`
	Prediction      *domain.Prediction `json:"prediction,omitempty"`
	AnalysisLoading bool               `json:"analysisLoading"`
	Busy            bool               `json:"isBusy"`
}

// Coordinator owns one session's terminal state and decides which provider
// result is authoritative.
type Coordinator struct {
	SessionID string

	cfg  Config
	deps Deps
	log  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	state       Snapshot
	seq         map[Category]uint64
	inflight    map[Category]uint64
	debounce    Timer
	debounceGen uint64
	poll        Timer
	pollGen     uint64
	subs        map[uint64]chan Snapshot
	nextSub     uint64
	rng         *rand.Rand
	started     bool
	closed      bool
}

func New(sessionID string, cfg Config, deps Deps) *Coordinator {
	cfg = cfg.withDefaults()
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("session_id", sessionID))

	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		SessionID: sessionID,
		cfg:       cfg,
		deps:      deps,
		log:       logger,
		ctx:       ctx,
		cancel:    cancel,
		state: Snapshot{
			Chain:  cfg.InitialChain,
			View:   domain.ViewTerminal,
			Tokens: []domain.Token{},
			Alerts: []domain.Alert{},
		},
		seq:      map[Category]uint64{},
		inflight: map[Category]uint64{},
		subs:     map[uint64]chan Snapshot{},
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Start fetches the active chain and arms the poll interval. Calling it
// again is a no-op.
func (c *Coordinator) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.closed {
		return
	}
	c.started = true
	c.pollNowLocked()
	c.schedulePollLocked()
	c.publishLocked()
}

// Close stops both timers, abandons in-flight requests and closes every
// subscription. It waits for request goroutines to return.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopDebounceLocked()
	if c.poll != nil {
		c.poll.Stop()
		c.poll = nil
	}
	c.cancel()
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe returns a channel that always holds the most recent snapshot;
// slow readers skip intermediate versions. The current state is delivered
// immediately. The channel is closed by cancel or by Close.
func (c *Coordinator) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	ch <- c.state

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				close(sub)
				delete(c.subs, id)
			}
		})
	}
}

// SetChain switches the active chain, fetching it immediately unless a
// search is active, and restarts the poll interval.
func (c *Coordinator) SetChain(chain domain.Chain) error {
	if !chain.Supported() {
		return ErrUnsupportedChain
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if chain == c.state.Chain {
		return nil
	}

	c.state.Chain = chain
	c.supersedeLocked(CategoryPoll)
	c.pollNowLocked()
	c.schedulePollLocked()
	c.publishLocked()
	return nil
}

// SetQuery records the search text. Every change supersedes any in-flight
// search; an active query is fetched once it has been stable for the
// debounce window.
func (c *Coordinator) SetQuery(q string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if q == c.state.Query {
		return nil
	}

	c.state.Query = q
	c.stopDebounceLocked()
	c.supersedeLocked(CategorySearch)

	if c.searchActiveLocked() {
		c.debounceGen++
		gen := c.debounceGen
		query := strings.TrimSpace(q)
		c.debounce = c.deps.Clock.AfterFunc(c.cfg.SearchDebounce, func() {
			c.fireSearch(gen, query)
		})
	}
	c.publishLocked()
	return nil
}

// Select makes t the selected token and starts its analysis.
func (c *Coordinator) Select(t domain.Token) error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrInvalidToken
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.selectLocked(t)
	c.publishLocked()
	return nil
}

// SelectByID selects a token from the displayed list.
func (c *Coordinator) SelectByID(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	for _, t := range c.state.Tokens {
		if t.ID == id {
			c.selectLocked(t)
			c.publishLocked()
			return nil
		}
	}
	return ErrTokenNotListed
}

func (c *Coordinator) SetView(v domain.View) error {
	if !v.Valid() {
		return ErrInvalidView
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if v != c.state.View {
		c.state.View = v
		c.publishLocked()
	}
	return nil
}

func (c *Coordinator) searchActiveLocked() bool {
	return utf8.RuneCountInString(strings.TrimSpace(c.state.Query)) >= MinQueryLength
}

func (c *Coordinator) issueLocked(cat Category) uint64 {
	c.seq[cat]++
	c.inflight[cat] = c.seq[cat]
	c.updateBusyLocked()
	return c.seq[cat]
}

// supersedeLocked invalidates any outstanding request of cat without
// issuing a new one.
func (c *Coordinator) supersedeLocked(cat Category) {
	c.seq[cat]++
	c.inflight[cat] = 0
	c.updateBusyLocked()
}

// completeLocked reports whether seq is still the latest request of cat and,
// if so, marks it no longer outstanding.
func (c *Coordinator) completeLocked(cat Category, seq uint64) bool {
	if c.closed || seq != c.seq[cat] {
		return false
	}
	c.inflight[cat] = 0
	c.updateBusyLocked()
	return true
}

func (c *Coordinator) updateBusyLocked() {
	c.state.Busy = c.inflight[CategoryPoll] != 0 || c.inflight[CategorySearch] != 0
}

func (c *Coordinator) stopDebounceLocked() {
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	c.debounceGen++
}

func (c *Coordinator) schedulePollLocked() {
	if c.poll != nil {
		c.poll.Stop()
	}
	c.pollGen++
	gen := c.pollGen
	c.poll = c.deps.Clock.AfterFunc(c.cfg.PollInterval, func() {
		c.pollTick(gen)
	})
}

func (c *Coordinator) pollTick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.pollGen {
		return
	}
	issued := c.pollNowLocked()
	c.schedulePollLocked()
	if issued {
		c.publishLocked()
	}
}

// pollNowLocked fetches the active chain unless a search is active.
func (c *Coordinator) pollNowLocked() bool {
	if c.searchActiveLocked() {
		return false
	}
	chain := c.state.Chain
	seq := c.issueLocked(CategoryPoll)
	c.spawn(func(ctx context.Context) {
		tokens, err := c.deps.Tokens.FetchLatestGems(ctx, chain)
		c.completePoll(seq, chain, tokens, err)
	})
	return true
}

func (c *Coordinator) completePoll(seq uint64, chain domain.Chain, tokens []domain.Token, err error) {
	c.mu.Lock()
	outcome := Superseded
	if c.completeLocked(CategoryPoll, seq) {
		if !c.searchActiveLocked() {
			outcome = Applied
			c.applyPollLocked(chain, tokens, err)
		}
		c.publishLocked()
	}
	c.mu.Unlock()

	c.report(CategoryPoll, outcome)
}

func (c *Coordinator) applyPollLocked(chain domain.Chain, tokens []domain.Token, err error) {
	if err != nil {
		c.log.Warn("chain poll failed",
			slog.String("chain", string(chain)),
			slog.Any("error", err),
		)
		return
	}
	// An empty listing keeps the last good one.
	if len(tokens) == 0 {
		return
	}
	c.state.Tokens = tokens
	c.state.Alerts = market.GenerateAlerts(tokens, c.deps.Clock.Now(), c.rng)
	if sel := c.state.Selected; sel == nil || sel.Chain != c.state.Chain {
		c.selectLocked(tokens[0])
	}
}

func (c *Coordinator) fireSearch(gen uint64, query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.debounceGen {
		return
	}
	c.debounce = nil

	seq := c.issueLocked(CategorySearch)
	c.spawn(func(ctx context.Context) {
		tokens, err := c.deps.Tokens.SearchTokens(ctx, query)
		c.completeSearch(seq, query, tokens, err)
	})
	c.publishLocked()
}

func (c *Coordinator) completeSearch(seq uint64, query string, tokens []domain.Token, err error) {
	c.mu.Lock()
	outcome := Superseded
	if c.completeLocked(CategorySearch, seq) {
		outcome = Applied
		c.applySearchLocked(query, tokens, err)
		c.publishLocked()
	}
	c.mu.Unlock()

	c.report(CategorySearch, outcome)
}

func (c *Coordinator) applySearchLocked(query string, tokens []domain.Token, err error) {
	if err != nil {
		c.log.Warn("token search failed",
			slog.String("query", query),
			slog.Any("error", err),
		)
		return
	}
	if tokens == nil {
		tokens = []domain.Token{}
	}
	c.state.Tokens = tokens
	c.state.Alerts = market.GenerateAlerts(tokens, c.deps.Clock.Now(), c.rng)
	if len(tokens) == 0 {
		return
	}

	first := tokens[0]
	if first.Chain != c.state.Chain && first.Chain.Supported() {
		// The search already produced this chain's listing, so only the
		// interval restarts.
		c.state.Chain = first.Chain
		c.supersedeLocked(CategoryPoll)
		c.schedulePollLocked()
	}
	c.selectLocked(first)
	c.state.View = domain.ViewTerminal
}

func (c *Coordinator) selectLocked(t domain.Token) {
	sel := t
	c.state.Selected = &sel
	c.state.ChartSymbol = market.ChartSymbol(t)
	c.state.Analysis = nil
	c.state.Prediction = nil
	c.state.AnalysisLoading = true

	seq := c.issueLocked(CategoryAnalysis)
	c.spawn(func(ctx context.Context) {
		a, err := c.deps.Analyzer.AnalyzeToken(ctx, t)
		c.completeAnalysis(seq, t, a, err)
	})
}

func (c *Coordinator) completeAnalysis(seq uint64, t domain.Token, a domain.AIAnalysis, err error) {
	c.mu.Lock()
	outcome := Superseded
	if c.completeLocked(CategoryAnalysis, seq) {
		outcome = Applied
		c.state.AnalysisLoading = false
		if err != nil {
			c.log.Warn("token analysis failed",
				slog.String("symbol", t.Symbol),
				slog.Any("error", err),
			)
		} else {
			p := analysis.Predict(t, c.rng)
			c.state.Analysis = &a
			c.state.Prediction = &p
		}
		c.publishLocked()
	}
	c.mu.Unlock()

	c.report(CategoryAnalysis, outcome)
}

// spawn runs a provider call with the per-request timeout. Callers hold
// c.mu and have checked that the coordinator is open.
func (c *Coordinator) spawn(fn func(ctx context.Context)) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(c.ctx, c.cfg.RequestTimeout)
		defer cancel()
		fn(slogx.WithContext(ctx, c.log))
	}()
}

func (c *Coordinator) publishLocked() {
	c.state.Version++
	snap := c.state
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (c *Coordinator) report(cat Category, out Outcome) {
	c.deps.Metrics.RefreshCompletion(string(cat), string(out))
	if c.deps.OnOutcome != nil {
		c.deps.OnOutcome(c.SessionID, cat, out)
	}
}
