package symkernel

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/golang/groupcache/lru"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/njchilds90/symkernel/number"
)

// Observer is notified of every rule firing.
type Observer func(rule, head string)

// Engine canonicalizes and simplifies expressions under one immutable
// Config. It is safe for concurrent use.
type Engine struct {
	cfg      Config
	num      *number.Context
	log      *zap.Logger
	builtin  map[Head][]Rule
	custom   map[string][]Rule
	observer Observer

	mu    sync.Mutex
	cache *lru.Cache
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Rule firings are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithObserver registers a callback invoked for every rule firing.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithRule registers r for applications named head. Custom rules run after
// the built-in rules of the same head.
func WithRule(head string, r Rule) Option {
	return func(e *Engine) { e.custom[head] = append(e.custom[head], r) }
}

// New returns an engine for cfg.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("symkernel: invalid config: %w", err)
	}
	e := &Engine{
		cfg:     cfg,
		num:     number.NewContext(cfg.Precision, cfg.MaxExactDigits),
		log:     zap.NewNop(),
		builtin: builtinRules(),
		custom:  map[string][]Rule{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if cfg.CacheSize > 0 {
		e.cache = lru.New(cfg.CacheSize)
	}
	return e, nil
}

var defaultEngine = sync.OnceValue(func() *Engine {
	e, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return e
})

// Default returns the shared engine built from DefaultConfig.
func Default() *Engine { return defaultEngine() }

// Simplify simplifies x with the default engine.
func Simplify(x Expr) Expr { return defaultEngine().Simplify(x) }

// Canonicalize canonicalizes x with the default engine.
func Canonicalize(x Expr) Expr { return defaultEngine().Canonicalize(x) }

func (e *Engine) Config() Config { return e.cfg }
func (e *Engine) Numbers() *number.Context { return e.num }

// Simplify rewrites x to a fixed point: canonicalize, then apply the first
// matching rule at every node bottom-up, until nothing changes or
// MaxIterations cycles have run. Reaching the cap is not an error; the last
// form is returned.
func (e *Engine) Simplify(x Expr) Expr {
	cur := e.Canonicalize(x)
	key := Key(cur)
	if out, ok := e.lookup(key); ok {
		return out
	}
	out := e.fixpoint(cur)
	e.remember(key, out)
	return out
}

// SimplifyAll simplifies xs concurrently with at most workers goroutines.
// Results keep the input order. It fails only when ctx is done.
func (e *Engine) SimplifyAll(ctx context.Context, xs []Expr, workers int) ([]Expr, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]Expr, len(xs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, x := range xs {
		i, x := i, x
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = e.Simplify(x)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simplify batch: %w", err)
	}
	return out, nil
}

func (e *Engine) lookup(key string) (Expr, bool) {
	if e.cache == nil {
		return nil, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.cache.Get(key)
	if !ok {
		return nil, false
	}
	return v.(Expr), true
}

func (e *Engine) remember(key string, x Expr) {
	if e.cache == nil {
		return
	}
	e.mu.Lock()
	e.cache.Add(key, x)
	e.mu.Unlock()
}

// fixpoint runs rewrite cycles on a canonical expression.
func (e *Engine) fixpoint(cur Expr) Expr {
	for i := 0; i < e.cfg.MaxIterations; i++ {
		next, changed := e.rewrite(cur)
		if !changed {
			return cur
		}
		next = e.Canonicalize(next)
		if next.Equal(cur) {
			return cur
		}
		cur = next
	}
	e.log.Debug("iteration cap reached",
		zap.Int("max_iterations", e.cfg.MaxIterations),
		zap.Stringer("expr", cur))
	return cur
}

// simplifyTerm is Simplify without the cache, used by rules that need the
// simplified form of a fragment before deciding.
func (e *Engine) simplifyTerm(x Expr) Expr { return e.fixpoint(e.Canonicalize(x)) }

// rewrite performs one bottom-up pass. At each node the rules of its head are
// tried in order and the first one that changes the node wins.
func (e *Engine) rewrite(x Expr) (Expr, bool) {
	f, ok := x.(*Fn)
	if !ok || f.head.IsOpaque() {
		return x, false
	}
	var args []Expr
	for i, a := range f.args {
		na, changed := e.rewrite(a)
		if !changed {
			continue
		}
		if args == nil {
			args = f.Args()
		}
		args[i] = na
	}
	changed := args != nil
	cur := Expr(f)
	if changed {
		cur = e.build(f.head, f.name, args)
	}
	g, ok := cur.(*Fn)
	if !ok || g.head.IsOpaque() {
		return cur, changed
	}
	for _, r := range e.rulesFor(g) {
		out, ok := e.try(r, g)
		if !ok || out == nil || out.Equal(g) {
			continue
		}
		e.fired(r, g)
		return out, true
	}
	return cur, changed
}

func (e *Engine) rulesFor(f *Fn) []Rule {
	var rules []Rule
	if f.head != HeadUnknown && arityOK(f) {
		rules = e.builtin[f.head]
	}
	if custom := e.custom[f.name]; len(custom) > 0 {
		rules = append(append([]Rule(nil), rules...), custom...)
	}
	return rules
}

// try runs a rule, treating a panic as a non-match so that one faulty rule
// leaves its subexpression unchanged.
func (e *Engine) try(r Rule, f *Fn) (out Expr, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.Warn("rule panicked",
				zap.String("rule", r.Name),
				zap.String("head", f.name),
				zap.Any("panic", rec))
			out, ok = nil, false
		}
	}()
	return r.Apply(e, f)
}

func (e *Engine) fired(r Rule, f *Fn) {
	if ce := e.log.Check(zap.DebugLevel, "rule fired"); ce != nil {
		ce.Write(zap.String("rule", r.Name), zap.String("head", f.name), zap.Stringer("expr", f))
	}
	if e.observer != nil {
		e.observer(r.Name, f.name)
	}
}
