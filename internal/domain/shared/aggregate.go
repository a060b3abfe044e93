package shared

// Aggregate is embedded by records that change as a unit. Version guards
// concurrent writers; events recorded by mutations wait in the aggregate
// until the service has committed and drains them.
type Aggregate struct {
	Entity
	Version int
	pending []DomainEvent
}

// NewAggregate starts a new aggregate at version 1
func NewAggregate() Aggregate {
	return Aggregate{Entity: NewEntity(), Version: 1}
}

// BumpVersion advances the version and the update timestamp
func (a *Aggregate) BumpVersion() {
	a.Version++
	a.Touch()
}

// Record queues an event for publication after commit
func (a *Aggregate) Record(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// PendingEvents returns the events recorded since the last ClearEvents
func (a *Aggregate) PendingEvents() []DomainEvent {
	return a.pending
}

// ClearEvents drops the queued events
func (a *Aggregate) ClearEvents() {
	a.pending = nil
}
