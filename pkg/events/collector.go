package events

// EventCollector is embedded in aggregates to collect domain events during state transitions.
type EventCollector struct {
	events []DomainEvent
}

// Record appends a domain event to the collector.
func (c *EventCollector) Record(event DomainEvent) {
	c.events = append(c.events, event)
}

// PendingEvents returns how many events are waiting to be drained.
func (c *EventCollector) PendingEvents() int {
	return len(c.events)
}

// DrainEvents returns the collected domain events and clears the internal slice.
func (c *EventCollector) DrainEvents() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}
