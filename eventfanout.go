package termtab

import (
	"pkt.systems/termtab/core"
	"pkt.systems/termtab/schema"
)

type eventFanout struct {
	sinks []core.EventSink
}

func (f eventFanout) OnSessionDisposed(event schema.SessionEvent) {
	for _, sink := range f.sinks {
		if sink == nil {
			continue
		}
		sink.OnSessionDisposed(event)
	}
}

func (f eventFanout) OnSessionFocused(event schema.SessionEvent) {
	for _, sink := range f.sinks {
		if sink == nil {
			continue
		}
		sink.OnSessionFocused(event)
	}
}

func (f eventFanout) OnActiveChanged(event schema.ActiveChangedEvent) {
	for _, sink := range f.sinks {
		if sink == nil {
			continue
		}
		sink.OnActiveChanged(event)
	}
}

func (f eventFanout) OnSessionListChanged(event schema.ListChangedEvent) {
	for _, sink := range f.sinks {
		if sink == nil {
			continue
		}
		sink.OnSessionListChanged(event)
	}
}
