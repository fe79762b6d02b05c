// Package observe holds the shared mutable data model: row collections and
// watched properties whose setters synchronously notify subscribers.
// Subscriptions are keyed by an owner handle so a component can drop all of
// its callbacks at once on teardown.
package observe

import "parcoords/internal/frame"

type subscription[T any] struct {
	owner any
	fn    func(T)
	dead  bool
}

// Registry dispatches values to callbacks in registration order.
type Registry[T any] struct {
	subs []*subscription[T]
}

// On registers fn under owner.
func (r *Registry[T]) On(fn func(T), owner any) {
	r.subs = append(r.subs, &subscription[T]{owner: owner, fn: fn})
}

// Off removes every callback registered by owner. Callbacks removed while a
// notification is in flight are not called for the rest of it.
func (r *Registry[T]) Off(owner any) {
	kept := r.subs[:0]
	for _, s := range r.subs {
		if s.owner == owner {
			s.dead = true
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(r.subs); i++ {
		r.subs[i] = nil
	}
	r.subs = kept
}

// Len is the number of live subscriptions.
func (r *Registry[T]) Len() int { return len(r.subs) }

// Notify calls every live callback with v before returning.
func (r *Registry[T]) Notify(v T) {
	snapshot := make([]*subscription[T], len(r.subs))
	copy(snapshot, r.subs)
	for _, s := range snapshot {
		if s.dead {
			continue
		}
		s.fn(v)
	}
}

// Collection is a named set of rows.
type Collection struct {
	name    string
	rows    []frame.Row
	changed Registry[[]frame.Row]
}

func NewCollection(name string) *Collection {
	return &Collection{name: name}
}

func (c *Collection) Name() string { return c.name }

// Get returns the current rows. Callers must not modify the slice.
func (c *Collection) Get() []frame.Row { return c.rows }

// Set replaces the rows and notifies.
func (c *Collection) Set(rows []frame.Row) {
	c.rows = rows
	c.changed.Notify(c.rows)
}

// Append adds rows and notifies with the full collection. Appending nothing
// still notifies, which is how dependents are asked to recompute.
func (c *Collection) Append(rows []frame.Row) {
	if len(rows) > 0 {
		next := make([]frame.Row, 0, len(c.rows)+len(rows))
		next = append(next, c.rows...)
		c.rows = append(next, rows...)
	}
	c.changed.Notify(c.rows)
}

func (c *Collection) OnChange(fn func([]frame.Row), owner any) { c.changed.On(fn, owner) }
func (c *Collection) Off(owner any)                            { c.changed.Off(owner) }

// Names of the standard sub-collections.
const (
	ExperimentAll = "experiment_all"
	All           = "all"
	Selected      = "selected"
	Highlighted   = "highlighted"
	Rendered      = "rendered"
)

// Datasets groups the named collections shared by every view.
type Datasets struct {
	byName map[string]*Collection
}

func NewDatasets() *Datasets {
	d := &Datasets{byName: map[string]*Collection{}}
	for _, n := range []string{ExperimentAll, All, Selected, Highlighted, Rendered} {
		d.byName[n] = NewCollection(n)
	}
	return d
}

// Get returns the named collection, creating it on first use.
func (d *Datasets) Get(name string) *Collection {
	c, ok := d.byName[name]
	if !ok {
		c = NewCollection(name)
		d.byName[name] = c
	}
	return c
}

func (d *Datasets) All() *Collection         { return d.byName[All] }
func (d *Datasets) Selected() *Collection    { return d.byName[Selected] }
func (d *Datasets) Highlighted() *Collection { return d.byName[Highlighted] }
func (d *Datasets) Rendered() *Collection    { return d.byName[Rendered] }

// Off removes owner from every collection.
func (d *Datasets) Off(owner any) {
	for _, c := range d.byName {
		c.Off(owner)
	}
}

// Property is a single watched value such as the color-by dimension.
type Property[T any] struct {
	name    string
	value   T
	changed Registry[T]
}

func NewProperty[T any](name string) *Property[T] {
	return &Property[T]{name: name}
}

func (p *Property[T]) Get() T { return p.value }

// Set stores v and notifies, even when v equals the current value.
func (p *Property[T]) Set(v T) {
	p.value = v
	p.changed.Notify(v)
}

func (p *Property[T]) OnChange(fn func(T), owner any) { p.changed.On(fn, owner) }
func (p *Property[T]) Off(owner any)                  { p.changed.Off(owner) }
