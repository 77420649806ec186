// Package observe provides a minimal synchronous publish/subscribe value.
// Setting the value notifies subscribers in registration order before the
// call returns; setting the same value again is a no-op, so subscribers
// never see redundant notifications.
package observe

// Callback receives the new value and the details attached to the change.
type Callback[T comparable, D any] func(val T, details D)

// Value holds a current value of type T with change details of type D.
// It is not safe for concurrent use; the focus engine runs it on a single
// event-dispatch goroutine.
type Value[T comparable, D any] struct {
	val     T
	details D
	subs    []*subscription[T, D]
}

type subscription[T comparable, D any] struct {
	cb Callback[T, D]
}

// NewValue creates a Value holding the zero value of T.
func NewValue[T comparable, D any]() *Value[T, D] {
	return &Value[T, D]{}
}

// Get returns the current value.
func (v *Value[T, D]) Get() T { return v.val }

// Details returns the details recorded with the current value.
func (v *Value[T, D]) Details() D { return v.details }

// Set stores a new value and synchronously notifies subscribers.
// When val equals the current value the details are still recorded but no
// notification fires.
func (v *Value[T, D]) Set(val T, details D) {
	if val == v.val {
		v.details = details
		return
	}
	v.val = val
	v.details = details
	for _, s := range append([]*subscription[T, D](nil), v.subs...) {
		s.cb(val, details)
	}
}

// Publish stores val and notifies subscribers even when val equals the
// current value. Used when the underlying state made a round trip and the
// transition itself must be surfaced.
func (v *Value[T, D]) Publish(val T, details D) {
	v.val = val
	v.details = details
	for _, s := range append([]*subscription[T, D](nil), v.subs...) {
		s.cb(val, details)
	}
}

// Replace records a new value and details without notifying subscribers.
// Used when a change must be visible to Get but hidden from observers.
func (v *Value[T, D]) Replace(val T, details D) {
	v.val = val
	v.details = details
}

// Subscribe registers a callback invoked on every value change.
// The returned function unsubscribes it; calling it twice is safe.
func (v *Value[T, D]) Subscribe(cb Callback[T, D]) func() {
	s := &subscription[T, D]{cb: cb}
	v.subs = append(v.subs, s)
	return func() {
		for i, cur := range v.subs {
			if cur == s {
				v.subs = append(v.subs[:i], v.subs[i+1:]...)
				return
			}
		}
	}
}

// SubscriberCount returns the number of active subscriptions.
func (v *Value[T, D]) SubscriberCount() int { return len(v.subs) }

// Reset drops all subscriptions and returns the value to T's zero value
// without notifying anyone. Used on disposal.
func (v *Value[T, D]) Reset() {
	var zeroT T
	var zeroD D
	v.val = zeroT
	v.details = zeroD
	v.subs = nil
}
