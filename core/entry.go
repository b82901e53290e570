package core

// entry tracks the state of a single registered terminal tab, keyed by the
// session's virtual-document identity.
type entry struct {
	handle TabHandle
	// cleanups are the focus/dispose subscription cancel funcs; all of them
	// are released when the entry is removed.
	cleanups []func()
}

func (e *entry) release() {
	for _, cancel := range e.cleanups {
		if cancel != nil {
			cancel()
		}
	}
	e.cleanups = nil
}
