package galaxy

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ref is a per-instance memoized slot for a deferred reference. The first get
// resolves through fetch; concurrent callers share a single in-flight fetch
// and observe the identical resolved value. A failed fetch leaves the slot
// empty so the next access can retry. There is no TTL: the slot holds its
// value until invalidate. An invalidate while a fetch is in flight discards
// that fetch's result instead of repopulating the slot with stale data.
type ref[T any] struct {
	group singleflight.Group
	mu    sync.RWMutex
	val   T
	set   bool
	gen   uint64
}

func (r *ref[T]) get(ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	r.mu.RLock()
	if r.set {
		v := r.val
		r.mu.RUnlock()
		return v, nil
	}
	r.mu.RUnlock()

	ch := r.group.DoChan("resolve", func() (any, error) {
		// An earlier flight may have populated the slot between the caller's
		// check above and this call. Re-check under the lock: a second fetch
		// here would overwrite the instance earlier callers already hold.
		r.mu.RLock()
		if r.set {
			v := r.val
			r.mu.RUnlock()
			return v, nil
		}
		gen := r.gen
		r.mu.RUnlock()

		// The winning fetch keeps running even if the caller that started it
		// gives up; abandoning must not leave the slot half-populated.
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.set {
			return r.val, nil
		}
		// Invalidated while the fetch was in flight: hand the result to the
		// waiting callers but leave the slot empty for the next access.
		if r.gen == gen {
			r.val = v
			r.set = true
		}
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (r *ref[T]) invalidate() {
	r.mu.Lock()
	var zero T
	r.val = zero
	r.set = false
	r.gen++
	r.mu.Unlock()
}
