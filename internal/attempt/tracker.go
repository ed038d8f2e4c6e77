package attempt

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Info summarizes what the last attempt says about fetching again.
type Info uint8

const (
	NeverAttempted Info = iota
	FetchedRecently
	FetchedBeforeButMightNotWork
	FailedBeforeButMightWork
	FailedRecently
)

func (i Info) String() string {
	switch i {
	case NeverAttempted:
		return "never attempted"
	case FetchedRecently:
		return "fetched recently"
	case FetchedBeforeButMightNotWork:
		return "fetched before but might not work"
	case FailedBeforeButMightWork:
		return "failed before but might work"
	case FailedRecently:
		return "failed recently"
	default:
		return fmt.Sprintf("Info(%d)", uint8(i))
	}
}

// Record is the last attempt for a key.
type Record struct {
	Key  string
	Code Code
	At   time.Time
}

// Store persists records. Implementations must be safe for concurrent use.
type Store interface {
	Put(ctx context.Context, r Record) error
	All(ctx context.Context) ([]Record, error)
	// Prune deletes records older than cutoff and reports how many went.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// DefaultSuccessCooldown is how long a success counts as recent.
const DefaultSuccessCooldown = 24 * time.Hour

type Options struct {
	// SuccessCooldown defaults to DefaultSuccessCooldown.
	SuccessCooldown time.Duration

	// Online reports network availability. When it returns false every
	// failure is recorded as InternetUnreachable. Nil means always online.
	Online func() bool

	Now    func() time.Time
	Logger *slog.Logger
}

// Tracker holds the last attempt per key. It is safe for concurrent use.
type Tracker struct {
	store Store
	opt   Options
	log   *slog.Logger

	mu      sync.Mutex
	records map[string]Record
}

// New returns a tracker writing through to store. store may be nil.
func New(store Store, opt Options) *Tracker {
	if opt.SuccessCooldown <= 0 {
		opt.SuccessCooldown = DefaultSuccessCooldown
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Tracker{
		store:   store,
		opt:     opt,
		log:     log.With("component", "attempt"),
		records: make(map[string]Record),
	}
}

// Load restores persisted records. Newer in-memory records win.
func (t *Tracker) Load(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	recs, err := t.store.All(ctx)
	if err != nil {
		return fmt.Errorf("load attempts: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range recs {
		if cur, ok := t.records[r.Key]; ok && cur.At.After(r.At) {
			continue
		}
		t.records[r.Key] = r
	}
	t.log.Debug("attempts loaded", "count", len(recs))
	return nil
}

// Last returns the last recorded attempt for key.
func (t *Tracker) Last(key string) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.records[key]
	return r, ok
}

func (t *Tracker) Info(key string) Info {
	r, ok := t.Last(key)
	if !ok {
		return NeverAttempted
	}

	elapsed := t.opt.Now().Sub(r.At)
	if r.Code == Success {
		if t.opt.SuccessCooldown > elapsed {
			return FetchedRecently
		}
		return FetchedBeforeButMightNotWork
	}
	if Cooldown(r.Code) > elapsed {
		return FailedRecently
	}
	return FailedBeforeButMightWork
}

// Record stores code as the latest attempt for key. The in-memory record
// is updated even when persisting fails.
func (t *Tracker) Record(ctx context.Context, key string, code Code) error {
	r := Record{Key: key, Code: code, At: t.opt.Now()}

	t.mu.Lock()
	t.records[key] = r
	t.mu.Unlock()

	t.log.Debug("attempt", "key", key, "code", int(code), "result", code.String())
	if t.store == nil {
		return nil
	}
	if err := t.store.Put(ctx, r); err != nil {
		return fmt.Errorf("persist attempt %q: %w", key, err)
	}
	return nil
}

// RecordResult records Success for a nil err and the classified code
// otherwise. It returns the code recorded.
func (t *Tracker) RecordResult(ctx context.Context, key string, err error) (Code, error) {
	code := Success
	if err != nil {
		code = CodeFor(err)
		if t.opt.Online != nil && !t.opt.Online() {
			code = InternetUnreachable
		}
	}
	return code, t.Record(ctx, key, code)
}

// Prune forgets records older than maxAge, in memory and in the store. It
// returns how many records the store deleted.
func (t *Tracker) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := t.opt.Now().Add(-maxAge)

	t.mu.Lock()
	for k, r := range t.records {
		if r.At.Before(cutoff) {
			delete(t.records, k)
		}
	}
	t.mu.Unlock()

	if t.store == nil {
		return 0, nil
	}
	n, err := t.store.Prune(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune attempts: %w", err)
	}
	t.log.Debug("attempts pruned", "count", n)
	return n, nil
}
