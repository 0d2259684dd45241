package dt

import "sync"

// AtomicFlashMap is a single-slot mailbox per session. A mutation stores its
// outcome with Set, and the next read drains it with TakeOnce. Setting twice
// before a read overwrites the earlier message (last-write-wins, no queue).
type AtomicFlashMap struct {
	msgs  map[string]string
	mutex *sync.Mutex
}

// NewAtomicFlashMap prepares an empty flash map for use.
func NewAtomicFlashMap() AtomicFlashMap {
	return AtomicFlashMap{
		msgs:  map[string]string{},
		mutex: &sync.Mutex{},
	}
}

// Set stores msg for the session, replacing any pending message.
func (am AtomicFlashMap) Set(sid, msg string) {
	am.mutex.Lock()
	am.msgs[sid] = msg
	am.mutex.Unlock()
}

// TakeOnce returns the pending message for the session and clears the slot,
// so a second TakeOnce reports nothing. The bool reports whether a message
// was pending.
func (am AtomicFlashMap) TakeOnce(sid string) (string, bool) {
	am.mutex.Lock()
	msg, ok := am.msgs[sid]
	delete(am.msgs, sid)
	am.mutex.Unlock()
	return msg, ok
}
