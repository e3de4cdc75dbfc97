package core

import "pkt.systems/tabpad/schema"

// EventSink receives tab, search and status events from the core service.
type EventSink interface {
	OnTabEvent(event schema.TabEvent)
	OnSearchEvent(event schema.SearchEvent)
	OnStatusEvent(event schema.StatusEvent)
}

// EventFanout forwards events to every non-nil sink in order.
type EventFanout []EventSink

// OnTabEvent implements EventSink.
func (f EventFanout) OnTabEvent(event schema.TabEvent) {
	for _, sink := range f {
		if sink == nil {
			continue
		}
		sink.OnTabEvent(event)
	}
}

// OnSearchEvent implements EventSink.
func (f EventFanout) OnSearchEvent(event schema.SearchEvent) {
	for _, sink := range f {
		if sink == nil {
			continue
		}
		sink.OnSearchEvent(event)
	}
}

// OnStatusEvent implements EventSink.
func (f EventFanout) OnStatusEvent(event schema.StatusEvent) {
	for _, sink := range f {
		if sink == nil {
			continue
		}
		sink.OnStatusEvent(event)
	}
}
