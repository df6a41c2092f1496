// Package effects spawns, animates and retires short-lived visual entities.
//
// A Population owns every instance of one effect type. Its recurrence policy
// decides when the next instance appears:
//
//   - FixedInterval: a population timer spawns every Interval seconds no
//     matter how many instances are still in flight.
//   - SelfChaining: the natural retirement of an instance schedules the next
//     spawn after Gap, so at most one instance is ever alive.
//
// A population moves Idle -> Running -> TornDown and never leaves TornDown.
package effects

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/components"
	"github.com/automoto/flyby/scenegraph"
	"github.com/automoto/flyby/timer"
	"github.com/automoto/flyby/tween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

var (
	// ErrTornDown is returned by spawns that happen after teardown or after
	// the parent group was disposed. Callers treat it as a no-op.
	ErrTornDown = errors.New("effect population torn down")
	// ErrBusy is returned when a self-chaining population already has its one instance.
	ErrBusy = errors.New("self-chaining population already has a live instance")
)

// Policy is the recurrence strategy of a population.
type Policy int

const (
	FixedInterval Policy = iota
	SelfChaining
)

func (p Policy) String() string {
	switch p {
	case FixedInterval:
		return "fixed-interval"
	case SelfChaining:
		return "self-chaining"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps a config name to a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "fixed-interval":
		return FixedInterval, nil
	case "self-chaining":
		return SelfChaining, nil
	}
	return 0, fmt.Errorf("unknown recurrence policy %q", name)
}

// State is the lifecycle state of a population.
type State int

const (
	Idle State = iota
	Running
	TornDown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case TornDown:
		return "torn-down"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Profile describes one effect type. Times are in seconds.
type Profile struct {
	Name   string
	Policy Policy

	Interval float64 // FixedInterval period
	Gap      float64 // SelfChaining delay between retirement and the next spawn

	StartDelay       float64
	StartDelayJitter float64 // added as rand*jitter to the first delay
	Duration         float64
	DurationJitter   float64 // added as rand*jitter to every lifetime

	// Placement in the parent group's space. Each spawn is offset by
	// (rand-0.5)*Spread on every axis and moves by Travel over its lifetime.
	Base     math32.Vector3
	Spread   math32.Vector3
	Rotation math32.Vector3
	Travel   math32.Vector3

	ScaleFrom, ScaleTo float32

	// Opacity runs OpacityFrom -> OpacityPeak over FadeIn. With a FadeOut it
	// then holds and runs to OpacityTo over the last FadeOut seconds; without
	// one it runs on to OpacityTo over the rest of the lifetime. With neither
	// it runs straight from OpacityFrom to OpacityTo.
	OpacityFrom, OpacityPeak, OpacityTo float32
	FadeIn, FadeOut                     float64

	Easing       ease.TweenFunc // scale and the long opacity leg
	FadeEasing   ease.TweenFunc // FadeIn and FadeOut legs
	TravelEasing ease.TweenFunc

	AccentChance float64 // probability an instance is flagged Large

	// Extra component types attached to every instance, and an initializer
	// that fills them in.
	Components []donburi.IComponentType
	Init       func(entry *donburi.Entry, large bool)
}

func (p Profile) validate() error {
	switch p.Policy {
	case FixedInterval:
		if p.Interval <= 0 {
			return fmt.Errorf("%s: interval must be positive", p.Name)
		}
	case SelfChaining:
		if p.Gap < 0 {
			return fmt.Errorf("%s: gap is negative", p.Name)
		}
	default:
		return fmt.Errorf("%s: %v", p.Name, p.Policy)
	}
	if p.Duration <= 0 {
		return fmt.Errorf("%s: duration must be positive", p.Name)
	}
	if p.FadeIn < 0 || p.FadeOut < 0 || p.FadeIn+p.FadeOut > p.Duration {
		return fmt.Errorf("%s: fades of %v+%v exceed the lifetime", p.Name, p.FadeIn, p.FadeOut)
	}
	return nil
}

// Env carries the shared collaborators a population drives.
type Env struct {
	World  donburi.World
	Tweens *tween.Registry
	Clock  *timer.Scheduler
	Rand   *rand.Rand
}

type instance struct {
	entity  donburi.Entity
	retire  *timer.Timer
	fadeOut *timer.Timer
	retired bool
}

// Population is the state machine for one effect type under one parent group.
type Population struct {
	env     Env
	parent  donburi.Entity
	profile Profile

	state    State
	live     []*instance
	next     *timer.Timer
	spawned  int
	retired  int
	maxAlive int

	// OnSpawn and OnRetire observe the lifecycle; both are optional.
	OnSpawn  func(e donburi.Entity)
	OnRetire func(e donburi.Entity)
}

// NewPopulation validates the profile and returns an idle population.
func NewPopulation(env Env, parent donburi.Entity, profile Profile) (*Population, error) {
	if env.World == nil || env.Tweens == nil || env.Clock == nil {
		return nil, errors.New("effects: incomplete environment")
	}
	if err := profile.validate(); err != nil {
		return nil, err
	}
	if env.Rand == nil {
		env.Rand = rand.New(rand.NewPCG(1, 2))
	}
	if profile.Easing == nil {
		profile.Easing = ease.Linear
	}
	if profile.FadeEasing == nil {
		profile.FadeEasing = profile.Easing
	}
	if profile.TravelEasing == nil {
		profile.TravelEasing = ease.Linear
	}
	return &Population{env: env, parent: parent, profile: profile}, nil
}

// Name returns the profile name.
func (p *Population) Name() string { return p.profile.Name }

// Policy returns the declared recurrence policy.
func (p *Population) Policy() Policy { return p.profile.Policy }

// State returns the lifecycle state.
func (p *Population) State() State { return p.state }

// Live returns the number of instances currently alive.
func (p *Population) Live() int { return len(p.live) }

// Spawned returns how many instances have been created so far.
func (p *Population) Spawned() int { return p.spawned }

// Retired returns how many instances have been retired so far.
func (p *Population) Retired() int { return p.retired }

// MaxAlive returns the highest number of instances that were alive at once.
func (p *Population) MaxAlive() int { return p.maxAlive }

// Instances returns the live instance entities in spawn order.
func (p *Population) Instances() []donburi.Entity {
	out := make([]donburi.Entity, len(p.live))
	for i, in := range p.live {
		out[i] = in.entity
	}
	return out
}

// Start moves an idle population to Running and schedules its first spawn.
// Starting a running population does nothing.
func (p *Population) Start() error {
	switch p.state {
	case TornDown:
		return ErrTornDown
	case Running:
		return nil
	}
	if !scenegraph.Alive(p.env.World, p.parent) {
		p.Teardown()
		return ErrTornDown
	}
	p.state = Running

	delay := p.profile.StartDelay + p.env.Rand.Float64()*p.profile.StartDelayJitter
	switch p.profile.Policy {
	case FixedInterval:
		p.next = p.env.Clock.Every(delay, p.profile.Interval, p.fire)
	case SelfChaining:
		p.next = p.env.Clock.After(delay, p.fire)
	}
	return nil
}

func (p *Population) fire() {
	// a failed scheduled spawn tears the population down itself
	_, _ = p.Spawn()
}

// Spawn creates one instance now. It is a no-op returning ErrTornDown once the
// population or its parent group is gone.
func (p *Population) Spawn() (donburi.Entity, error) {
	if p.state == TornDown {
		return donburi.Null, ErrTornDown
	}
	if p.profile.Policy == SelfChaining && len(p.live) > 0 {
		return donburi.Null, ErrBusy
	}
	w := p.env.World
	if !scenegraph.Alive(w, p.parent) {
		p.Teardown()
		return donburi.Null, ErrTornDown
	}

	prof := p.profile
	rng := p.env.Rand
	now := p.env.Clock.Now()
	life := prof.Duration + rng.Float64()*prof.DurationJitter
	large := prof.AccentChance > 0 && rng.Float64() < prof.AccentChance

	cs := append([]donburi.IComponentType{components.Effect}, prof.Components...)
	e := scenegraph.NewNode(w, prof.Name, p.parent, cs...)
	entry := w.Entry(e)

	start := math32.Vec3(
		prof.Base.X+(rng.Float32()-0.5)*prof.Spread.X,
		prof.Base.Y+(rng.Float32()-0.5)*prof.Spread.Y,
		prof.Base.Z+(rng.Float32()-0.5)*prof.Spread.Z,
	)
	tr := components.Transform.Get(entry)
	tr.Position = start
	tr.Rotation = prof.Rotation
	tr.Scale = math32.Vec3(prof.ScaleFrom, prof.ScaleFrom, prof.ScaleFrom)

	components.Effect.SetValue(entry, components.EffectData{
		Population: prof.Name,
		BirthTime:  now,
		Duration:   life,
		Scale:      prof.ScaleFrom,
		Opacity:    prof.OpacityFrom,
		Large:      large,
	})
	if prof.Init != nil {
		prof.Init(entry, large)
	}

	in := &instance{entity: e}
	p.live = append(p.live, in)
	p.spawned++
	if len(p.live) > p.maxAlive {
		p.maxAlive = len(p.live)
	}

	p.animate(in, start, life)
	in.retire = p.env.Clock.After(life, func() { p.retire(in, true) })

	if p.OnSpawn != nil {
		p.OnSpawn(e)
	}
	return e, nil
}

func (p *Population) animate(in *instance, start math32.Vector3, lifetime float64) {
	prof := p.profile
	reg := p.env.Tweens
	e := in.entity
	life := float32(lifetime)

	if prof.ScaleFrom != prof.ScaleTo {
		reg.Animate(tween.Request{
			Key:  tween.Key{Target: e, Property: tween.Scale},
			From: prof.ScaleFrom, To: prof.ScaleTo, Duration: life, Easing: prof.Easing,
			Apply: p.setter(e, func(tr *components.TransformData, fx *components.EffectData, v float32) {
				tr.Scale = math32.Vec3(v, v, v)
				fx.Scale = v
			}),
		})
	}

	setOpacity := p.setter(e, func(_ *components.TransformData, fx *components.EffectData, v float32) {
		fx.Opacity = v
	})
	opacityKey := tween.Key{Target: e, Property: tween.Opacity}
	fadeIn, fadeOut := float32(prof.FadeIn), float32(prof.FadeOut)
	var afterFadeIn func()
	if fadeOut > 0 {
		from := prof.OpacityFrom
		if fadeIn > 0 {
			from = prof.OpacityPeak
		}
		in.fadeOut = p.env.Clock.After(lifetime-prof.FadeOut, func() {
			reg.Animate(tween.Request{
				Key: opacityKey, From: from, To: prof.OpacityTo, Duration: fadeOut,
				Easing: prof.FadeEasing, Apply: setOpacity,
			})
		})
	} else if fadeIn > 0 && prof.OpacityTo != prof.OpacityPeak {
		afterFadeIn = func() {
			reg.Animate(tween.Request{
				Key: opacityKey, From: prof.OpacityPeak, To: prof.OpacityTo, Duration: life - fadeIn,
				Easing: prof.Easing, Apply: setOpacity,
			})
		}
	}
	switch {
	case fadeIn > 0:
		reg.Animate(tween.Request{
			Key: opacityKey, From: prof.OpacityFrom, To: prof.OpacityPeak, Duration: fadeIn,
			Easing: prof.FadeEasing, Apply: setOpacity, OnComplete: afterFadeIn,
		})
	case fadeOut == 0 && prof.OpacityFrom != prof.OpacityTo:
		reg.Animate(tween.Request{
			Key: opacityKey, From: prof.OpacityFrom, To: prof.OpacityTo, Duration: life,
			Easing: prof.Easing, Apply: setOpacity,
		})
	}

	axes := []struct {
		prop  tween.Property
		from  float32
		delta float32
		set   func(tr *components.TransformData, v float32)
	}{
		{tween.PositionX, start.X, prof.Travel.X, func(tr *components.TransformData, v float32) { tr.Position.X = v }},
		{tween.PositionY, start.Y, prof.Travel.Y, func(tr *components.TransformData, v float32) { tr.Position.Y = v }},
		{tween.PositionZ, start.Z, prof.Travel.Z, func(tr *components.TransformData, v float32) { tr.Position.Z = v }},
	}
	for _, ax := range axes {
		if ax.delta == 0 {
			continue
		}
		set := ax.set
		reg.Animate(tween.Request{
			Key:  tween.Key{Target: e, Property: ax.prop},
			From: ax.from, To: ax.from + ax.delta, Duration: life, Easing: prof.TravelEasing,
			Apply: p.setter(e, func(tr *components.TransformData, _ *components.EffectData, v float32) {
				set(tr, v)
			}),
		})
	}
}

// setter resolves the entity on every write, since component storage moves
// as other entities are created and removed.
func (p *Population) setter(e donburi.Entity, fn func(*components.TransformData, *components.EffectData, float32)) func(float32) {
	return func(v float32) {
		w := p.env.World
		if !w.Valid(e) {
			return
		}
		entry := w.Entry(e)
		fx := components.Effect.Get(entry)
		if fx.Disposed {
			return
		}
		fn(components.Transform.Get(entry), fx, v)
	}
}

// Retire disposes the instance e ahead of its natural end. Retiring an
// unknown or already retired instance is a no-op. An early retirement never
// chains a new spawn.
func (p *Population) Retire(e donburi.Entity) bool {
	for _, in := range p.live {
		if in.entity == e {
			return p.retire(in, false)
		}
	}
	return false
}

func (p *Population) retire(in *instance, natural bool) bool {
	if in.retired {
		return false
	}
	in.retired = true
	in.retire.Stop()
	in.fadeOut.Stop()

	w := p.env.World
	p.env.Tweens.CancelTarget(in.entity)
	if w.Valid(in.entity) {
		entry := w.Entry(in.entity)
		if entry.HasComponent(components.Effect) {
			components.Effect.Get(entry).Disposed = true
		}
	}
	scenegraph.Dispose(w, in.entity)

	for i, l := range p.live {
		if l == in {
			p.live = append(p.live[:i], p.live[i+1:]...)
			break
		}
	}
	p.retired++
	if p.OnRetire != nil {
		p.OnRetire(in.entity)
	}

	if natural && p.state == Running && p.profile.Policy == SelfChaining {
		p.next = p.env.Clock.After(p.profile.Gap, p.fire)
	}
	return true
}

// Teardown stops scheduling and retires every live instance. It is idempotent.
func (p *Population) Teardown() {
	if p.state == TornDown {
		return
	}
	p.state = TornDown
	p.next.Stop()
	p.next = nil
	for len(p.live) > 0 {
		p.retire(p.live[0], false)
	}
}

// Group is a set of populations started and torn down together.
type Group []*Population

// NewLanes builds n self-chaining populations sharing one profile. Each lane
// decides once whether it is an accent lane, so a lane keeps its look across
// respawns while its position is rerolled.
func NewLanes(env Env, parent donburi.Entity, profile Profile, n int) (Group, error) {
	if profile.Policy != SelfChaining {
		return nil, fmt.Errorf("%s: lanes need the self-chaining policy", profile.Name)
	}
	if env.Rand == nil {
		env.Rand = rand.New(rand.NewPCG(1, 2))
	}
	chance := profile.AccentChance
	g := make(Group, 0, n)
	for i := 0; i < n; i++ {
		lane := profile
		lane.AccentChance = 0
		if env.Rand.Float64() < chance {
			lane.AccentChance = 1
		}
		p, err := NewPopulation(env, parent, lane)
		if err != nil {
			return nil, err
		}
		g = append(g, p)
	}
	return g, nil
}

// Start starts every population. It returns ErrTornDown if any was torn down.
func (g Group) Start() error {
	var err error
	for _, p := range g {
		if e := p.Start(); e != nil {
			err = e
		}
	}
	return err
}

// Teardown tears down every population.
func (g Group) Teardown() {
	for _, p := range g {
		p.Teardown()
	}
}

// Live returns the total number of live instances.
func (g Group) Live() int {
	n := 0
	for _, p := range g {
		n += p.Live()
	}
	return n
}
