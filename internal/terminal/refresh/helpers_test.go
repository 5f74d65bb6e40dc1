package refresh

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/pkg/slogx"
)

const waitTimeout = 2 * time.Second

// manualClock only moves when Advance is called. Due timers fire in order on
// the caller's goroutine.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	c       *manualClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{c: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var due []*manualTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && !t.at.After(target) {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			c.now = target
			c.mu.Unlock()
			return
		}
		sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
		next := due[0]
		next.fired = true
		c.now = next.at
		c.mu.Unlock()

		next.f()
	}
}

type providerCall struct {
	kind  string
	arg   string
	reply chan providerReply
}

type providerReply struct {
	tokens []domain.Token
	err    error
}

func (c providerCall) respond(tokens []domain.Token, err error) {
	c.reply <- providerReply{tokens: tokens, err: err}
}

// fakeTokens hands every call to the test, which answers it explicitly.
type fakeTokens struct {
	calls chan providerCall
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{calls: make(chan providerCall, 16)}
}

func (f *fakeTokens) do(ctx context.Context, kind, arg string) ([]domain.Token, error) {
	call := providerCall{kind: kind, arg: arg, reply: make(chan providerReply, 1)}
	f.calls <- call
	select {
	case r := <-call.reply:
		return r.tokens, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeTokens) SearchTokens(ctx context.Context, q string) ([]domain.Token, error) {
	return f.do(ctx, "search", q)
}

func (f *fakeTokens) FetchLatestGems(ctx context.Context, chain domain.Chain) ([]domain.Token, error) {
	return f.do(ctx, "gems", string(chain))
}

func (f *fakeTokens) FetchMainstreamCoins(context.Context) ([]domain.Token, error) {
	return nil, errors.New("not used")
}

func (f *fakeTokens) expect(t *testing.T, kind, arg string) providerCall {
	t.Helper()
	select {
	case c := <-f.calls:
		require.Equal(t, kind, c.kind, "call kind")
		require.Equal(t, arg, c.arg, "call argument")
		return c
	case <-time.After(waitTimeout):
		t.Fatalf("no %s(%q) call", kind, arg)
		return providerCall{}
	}
}

func (f *fakeTokens) expectNone(t *testing.T) {
	t.Helper()
	select {
	case c := <-f.calls:
		t.Fatalf("unexpected %s(%q) call", c.kind, c.arg)
	case <-time.After(50 * time.Millisecond):
	}
}

// fakeAnalyzer answers immediately unless gate is set, in which case each
// call waits for a value on gate.
type fakeAnalyzer struct {
	gate chan error
	fail error

	mu    sync.Mutex
	calls []string
}

func (a *fakeAnalyzer) AnalyzeToken(ctx context.Context, t domain.Token) (domain.AIAnalysis, error) {
	a.mu.Lock()
	a.calls = append(a.calls, t.ID)
	a.mu.Unlock()

	err := a.fail
	if a.gate != nil {
		select {
		case err = <-a.gate:
		case <-ctx.Done():
			return domain.AIAnalysis{}, ctx.Err()
		}
	}
	if err != nil {
		return domain.AIAnalysis{}, err
	}
	return domain.AIAnalysis{
		Summary:        "analysis of " + t.Symbol,
		RiskLevel:      domain.RiskMedium,
		BullishFactors: []string{},
		BearishFactors: []string{},
	}, nil
}

func (a *fakeAnalyzer) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...)
}

// outcomes collects completion outcomes per category.
type outcomes struct {
	byCat map[Category]chan Outcome
}

func newOutcomes() *outcomes {
	return &outcomes{byCat: map[Category]chan Outcome{
		CategoryPoll:     make(chan Outcome, 64),
		CategorySearch:   make(chan Outcome, 64),
		CategoryAnalysis: make(chan Outcome, 64),
	}}
}

func (o *outcomes) hook(_ string, cat Category, out Outcome) {
	o.byCat[cat] <- out
}

func (o *outcomes) wait(t *testing.T, cat Category) Outcome {
	t.Helper()
	select {
	case out := <-o.byCat[cat]:
		return out
	case <-time.After(waitTimeout):
		t.Fatalf("no %s completion", cat)
		return ""
	}
}

type harness struct {
	clock    *manualClock
	tokens   *fakeTokens
	analyzer *fakeAnalyzer
	outcomes *outcomes
	coord    *Coordinator
}

func newHarness(t *testing.T, analyzer *fakeAnalyzer) *harness {
	t.Helper()
	if analyzer == nil {
		analyzer = &fakeAnalyzer{}
	}
	h := &harness{
		clock:    newManualClock(),
		tokens:   newFakeTokens(),
		analyzer: analyzer,
		outcomes: newOutcomes(),
	}
	h.coord = New("sess-1", Config{}, Deps{
		Tokens:    h.tokens,
		Analyzer:  analyzer,
		Clock:     h.clock,
		Logger:    slogx.Discard(),
		OnOutcome: h.outcomes.hook,
	})
	t.Cleanup(h.coord.Close)
	return h
}

// started runs Start and answers the initial solana poll with tokens.
func (h *harness) started(t *testing.T, tokens ...domain.Token) {
	t.Helper()
	h.coord.Start()
	h.tokens.expect(t, "gems", "solana").respond(tokens, nil)
	require.Equal(t, Applied, h.outcomes.wait(t, CategoryPoll))
	if len(tokens) > 0 {
		require.Equal(t, Applied, h.outcomes.wait(t, CategoryAnalysis))
	}
}

func tok(id string, chain domain.Chain) domain.Token {
	return domain.Token{ID: id, Address: "addr-" + id, Symbol: id, Name: id, Chain: chain, Price: 1}
}

func ids(tokens []domain.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.ID
	}
	return out
}
