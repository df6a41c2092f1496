// Package tween keeps at most one running interpolation per target property.
//
// Every request is keyed by (target, property). Animating a key that already
// has a running tween cancels the old one and replaces it, so stale values
// never fight newer ones.
package tween

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// Property names an animatable channel of a target.
type Property string

const (
	RotationX Property = "rotation.x"
	RotationY Property = "rotation.y"
	RotationZ Property = "rotation.z"
	PositionX Property = "position.x"
	PositionY Property = "position.y"
	PositionZ Property = "position.z"
	Scale     Property = "scale"
	Opacity   Property = "opacity"
	OffsetX   Property = "offset.x"
	OffsetY   Property = "offset.y"
)

// Key identifies one target property.
type Key struct {
	Target   donburi.Entity
	Property Property
}

// Request describes an interpolation from From to To over Duration seconds.
type Request struct {
	Key
	From, To   float32
	Duration   float32
	Easing     ease.TweenFunc
	Apply      func(v float32)
	OnComplete func()
}

// Handle refers to one specific request. A handle goes stale once its
// tween completes or is superseded.
type Handle struct {
	key Key
	id  uint64
}

// Key returns the target property the handle animates.
func (h Handle) Key() Key { return h.key }

type entry struct {
	id         uint64
	key        Key
	tw         *gween.Tween
	apply      func(float32)
	onComplete func()
	done       bool
}

// Registry owns all running tweens.
type Registry struct {
	nextID  uint64
	active  map[Key]*entry
	order   []*entry
	updates int
	carry   float32 // leftover time of the tween whose callback is running
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{active: make(map[Key]*entry)}
}

// Animate starts a tween, cancelling whatever was running on the same key.
// The first value is applied immediately. A non-positive duration jumps to To
// and completes right away.
func (r *Registry) Animate(req Request) Handle {
	r.cancelKey(req.Key)

	r.nextID++
	h := Handle{key: req.Key, id: r.nextID}
	easing := req.Easing
	if easing == nil {
		easing = ease.Linear
	}

	if req.Duration <= 0 {
		if req.Apply != nil {
			req.Apply(req.To)
		}
		if req.OnComplete != nil {
			req.OnComplete()
		}
		return h
	}

	e := &entry{
		id:         h.id,
		key:        req.Key,
		tw:         gween.New(req.From, req.To, req.Duration, easing),
		apply:      req.Apply,
		onComplete: req.OnComplete,
	}
	r.active[req.Key] = e
	r.order = append(r.order, e)
	v := req.From
	if r.carry > 0 {
		// chained from a completion: start where the previous leg overshot
		v, _ = e.tw.Set(min(r.carry, req.Duration))
	}
	if e.apply != nil {
		e.apply(v)
	}
	return h
}

// Cancel stops the tween behind h if it is still the active one for its key.
// Cancelled tweens do not run their completion callback.
func (r *Registry) Cancel(h Handle) bool {
	e, ok := r.active[h.key]
	if !ok || e.id != h.id {
		return false
	}
	r.remove(e)
	return true
}

// CancelKey stops whatever is running on key.
func (r *Registry) CancelKey(key Key) bool {
	return r.cancelKey(key)
}

// CancelTarget stops every property tween of target and returns how many were stopped.
func (r *Registry) CancelTarget(target donburi.Entity) int {
	n := 0
	for _, e := range r.order {
		if !e.done && e.key.Target == target {
			r.remove(e)
			n++
		}
	}
	return n
}

// Active returns the handle running on key, if any.
func (r *Registry) Active(key Key) (Handle, bool) {
	e, ok := r.active[key]
	if !ok {
		return Handle{}, false
	}
	return Handle{key: key, id: e.id}, true
}

// Running reports whether h is still the active tween for its key.
func (r *Registry) Running(h Handle) bool {
	e, ok := r.active[h.key]
	return ok && e.id == h.id
}

// Len returns the number of running tweens.
func (r *Registry) Len() int {
	return len(r.active)
}

// Update advances every tween by dt seconds in creation order. Completion
// callbacks run after the value is applied and may start new tweens; those
// start advanced by the time the finished tween overshot its end.
func (r *Registry) Update(dt float32) {
	snapshot := r.order
	for _, e := range snapshot {
		if e.done {
			continue
		}
		v, finished := e.tw.Update(dt)
		if e.apply != nil {
			e.apply(v)
		}
		if finished {
			r.remove(e)
			if e.onComplete != nil {
				r.carry = e.tw.Overflow
				e.onComplete()
				r.carry = 0
			}
		}
	}
	r.updates++
	if r.updates%64 == 0 || len(r.order) > 4*len(r.active)+16 {
		r.compact()
	}
}

// Clear cancels every tween without running callbacks.
func (r *Registry) Clear() {
	for _, e := range r.order {
		e.done = true
	}
	r.order = nil
	r.active = make(map[Key]*entry)
}

func (r *Registry) cancelKey(key Key) bool {
	e, ok := r.active[key]
	if !ok {
		return false
	}
	r.remove(e)
	return true
}

func (r *Registry) remove(e *entry) {
	e.done = true
	if cur, ok := r.active[e.key]; ok && cur == e {
		delete(r.active, e.key)
	}
}

func (r *Registry) compact() {
	live := r.order[:0]
	for _, e := range r.order {
		if !e.done {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(r.order); i++ {
		r.order[i] = nil
	}
	r.order = live
}
