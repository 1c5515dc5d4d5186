// Package reconciler keeps one open form page in sync with the
// pending-update queue: a one-time catch-up over unprocessed records, then a
// live subscription, both funneled through a conditional claim so every
// record is consumed exactly once.
package reconciler

import (
	"context"
	"log"
	"sync"

	"FIC_Backend/formstate"
	"FIC_Backend/metrics"
	"FIC_Backend/models"
	"FIC_Backend/store"
)

type State int32

const (
	Inactive State = iota
	CatchingUp
	Subscribed
	TornDown
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case CatchingUp:
		return "catching_up"
	case Subscribed:
		return "subscribed"
	case TornDown:
		return "torn_down"
	}
	return "unknown"
}

// ApplyFunc merges one claimed record into form state. The session that owns
// the state provides it (and serializes it against user edits).
type ApplyFunc func(rec models.PendingUpdate) (formstate.ApplyResult, error)

// NotifyFunc surfaces an advisory "form updated" notice to the user.
type NotifyFunc func(res formstate.ApplyResult)

type Reconciler struct {
	store    store.PendingStore
	formType string
	apply    ApplyFunc
	notify   NotifyFunc

	mu     sync.Mutex
	state  State
	cancel func()
	done   chan struct{}
}

// New wires a reconciler to its store and apply target. notify may be nil.
func New(st store.PendingStore, formType string, apply ApplyFunc, notify NotifyFunc) *Reconciler {
	return &Reconciler{
		store:    st,
		formType: formType,
		apply:    apply,
		notify:   notify,
		state:    Inactive,
		done:     make(chan struct{}),
	}
}

func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Reconciler) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// Activate runs the catch-up fetch and then subscribes for inserts. The
// catch-up is best-effort: a failed query is logged and subscription
// proceeds anyway, since unprocessed records stay visible to the next
// activation. A failed subscription is fatal to the activation.
func (r *Reconciler) Activate(ctx context.Context) error {
	r.mu.Lock()
	if r.state != Inactive {
		r.mu.Unlock()
		return ErrAlreadyActivated
	}
	r.state = CatchingUp
	r.mu.Unlock()

	recs, err := r.store.FetchUnprocessed(ctx, r.formType)
	if err != nil {
		log.Printf("reconciler %s: catch-up fetch failed: %v", r.formType, err)
		metrics.StoreErrors.Inc()
	}
	for _, rec := range recs {
		r.consume(ctx, rec)
	}

	ch, cancel, err := r.store.Subscribe(r.formType)
	if err != nil {
		r.setState(TornDown)
		close(r.done)
		return err
	}
	r.mu.Lock()
	if r.state == TornDown {
		// Torn down mid catch-up.
		r.mu.Unlock()
		cancel()
		close(r.done)
		return nil
	}
	r.cancel = cancel
	r.state = Subscribed
	r.mu.Unlock()

	go r.loop(ch)
	return nil
}

func (r *Reconciler) loop(ch <-chan models.PendingUpdate) {
	defer close(r.done)
	for rec := range ch {
		if r.State() == TornDown {
			return
		}
		r.consume(context.Background(), rec)
	}
}

// consume claims then applies. The claim is the only gate: whichever path
// flips processed first wins, the other observes false and skips without
// touching form state.
func (r *Reconciler) consume(ctx context.Context, rec models.PendingUpdate) {
	if rec.Processed {
		metrics.UpdatesSkipped.WithLabelValues(r.formType).Inc()
		return
	}
	won, err := r.store.Claim(ctx, rec.ID)
	if err != nil {
		log.Printf("reconciler %s: claim %s failed: %v", r.formType, rec.ID, err)
		metrics.StoreErrors.Inc()
		return
	}
	if !won {
		metrics.UpdatesSkipped.WithLabelValues(r.formType).Inc()
		return
	}
	res, err := r.apply(rec)
	if err != nil {
		// Malformed data payload: log and move on, never fatal.
		log.Printf("reconciler %s: apply %s failed: %v", r.formType, rec.ID, err)
		return
	}
	metrics.UpdatesApplied.WithLabelValues(r.formType).Inc()
	if r.notify != nil && !res.Empty() {
		r.notify(res)
	}
}

// Teardown unregisters the subscription and stops the loop. In-flight
// notifications are not guaranteed delivered; unclaimed records wait for the
// next activation.
func (r *Reconciler) Teardown() {
	r.mu.Lock()
	if r.state == TornDown {
		r.mu.Unlock()
		return
	}
	prev := r.state
	r.state = TornDown
	cancel := r.cancel
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		<-r.done
	} else if prev == Inactive {
		close(r.done)
	}
}
