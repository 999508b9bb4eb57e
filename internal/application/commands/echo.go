package commands

import "mdvault/internal/ports"

// Echo announces the watcher events a mutation is about to cause
type Echo struct {
	Recorder ports.EchoRecorder
	Count    int
}

// guard registers the expected events before fn runs and withdraws them
// when fn fails, since no event will arrive to consume them.
func (e Echo) guard(fn func() error) error {
	if e.Recorder == nil || e.Count <= 0 {
		return fn()
	}
	e.Recorder.Expect(e.Count)
	if err := fn(); err != nil {
		e.Recorder.Cancel(e.Count)
		return err
	}
	return nil
}
