package daemon

import "sync"

// feed is the bounded event history plus the live SSE subscribers.
type feed struct {
	mu      sync.Mutex
	limit   int
	nextID  int64
	events  []Event
	nextSub int
	subs    map[int]chan Event
}

func newFeed(limit int) *feed {
	return &feed{limit: limit, subs: make(map[int]chan Event)}
}

// publish numbers ev, appends it to the history and fans it out. Slow
// subscribers miss events rather than block the poll loop.
func (f *feed) publish(ev Event) Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	ev.ID = f.nextID
	f.events = append(f.events, ev)
	if len(f.events) > f.limit {
		f.events = f.events[len(f.events)-f.limit:]
	}
	for _, ch := range f.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

// since returns retained events with an ID greater than id, oldest first.
func (f *feed) since(id int64) []Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Event, 0, len(f.events))
	for _, ev := range f.events {
		if ev.ID > id {
			out = append(out, ev)
		}
	}
	return out
}

func (f *feed) subscribe(buf int) (<-chan Event, func()) {
	ch := make(chan Event, buf)
	f.mu.Lock()
	f.nextSub++
	id := f.nextSub
	f.subs[id] = ch
	f.mu.Unlock()

	return ch, func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

func (f *feed) counts() (events, subscribers int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events), len(f.subs)
}
