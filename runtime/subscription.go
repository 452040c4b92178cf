package runtime

import "github.com/google/uuid"

// activeSubscription pairs a SubscriptionSpec with the cancel token the
// runtime created for it (spec §3 Subscription: "a registry keyed by
// identifier").
type activeSubscription struct {
	spec   SubscriptionSpec
	cancel *CancelToken
}

// subscriptionRegistry tracks every live subscription and task, keyed by
// identifier (spec §4.8). google/uuid mints identifiers when a caller
// doesn't supply one.
type subscriptionRegistry struct {
	subs  map[string]*activeSubscription
	tasks map[string]*CancelToken
}

func newSubscriptionRegistry() *subscriptionRegistry {
	return &subscriptionRegistry{
		subs:  make(map[string]*activeSubscription),
		tasks: make(map[string]*CancelToken),
	}
}

func newID() string { return uuid.NewString() }

func (r *subscriptionRegistry) start(spec SubscriptionSpec, emit func(Msg)) string {
	id := spec.ID
	if id == "" {
		id = newID()
		spec.ID = id
	}
	cancel := NewCancelToken()
	r.subs[id] = &activeSubscription{spec: spec, cancel: cancel}
	if spec.Produce != nil {
		go spec.Produce(emit)
	}
	return id
}

func (r *subscriptionRegistry) startTask(id string, cancel *CancelToken) {
	if id == "" {
		id = newID()
	}
	r.tasks[id] = cancel
}

// cancelByID signals the subscription or task registered under id, per
// spec §4.8 Cancel(identifier). Returns false if no such registration
// exists (cancelling an unknown ID is a no-op, not an error).
func (r *subscriptionRegistry) cancelByID(id string) bool {
	if s, ok := r.subs[id]; ok {
		s.cancel.Cancel()
		if s.spec.Stop != nil {
			s.spec.Stop()
		}
		delete(r.subs, id)
		return true
	}
	if c, ok := r.tasks[id]; ok {
		c.Cancel()
		delete(r.tasks, id)
		return true
	}
	return false
}

// shutdown cancels every live subscription and task, for Quit (spec §4.8:
// "Quit — terminate the loop after the current frame presents").
func (r *subscriptionRegistry) shutdown() {
	for id, s := range r.subs {
		s.cancel.Cancel()
		if s.spec.Stop != nil {
			s.spec.Stop()
		}
		delete(r.subs, id)
	}
	for id, c := range r.tasks {
		c.Cancel()
		delete(r.tasks, id)
	}
}
