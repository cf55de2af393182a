package schedule

import "context"

// Run is a generation started with Start.
type Run struct {
	progress chan int
	done     chan struct{}
	result   *Result
	err      error
}

// Start runs Generate on its own goroutine. Progress() delivers the latest
// attempt count; a slow reader only misses intermediate counts and never
// blocks the search. The goroutine exits when Generate returns, which a
// canceled ctx forces at the next progress point.
func (g *Generator) Start(ctx context.Context, req Request) *Run {
	r := &Run{
		progress: make(chan int, 1),
		done:     make(chan struct{}),
	}

	report := req.OnProgress
	req.OnProgress = func(attempts int) {
		if report != nil {
			report(attempts)
		}
		r.publish(attempts)
	}

	go func() {
		defer close(r.done)
		defer close(r.progress)
		r.result, r.err = g.Generate(ctx, req)
	}()
	return r
}

// publish replaces any unread count with the newest one.
func (r *Run) publish(attempts int) {
	select {
	case r.progress <- attempts:
		return
	default:
	}
	select {
	case <-r.progress:
	default:
	}
	select {
	case r.progress <- attempts:
	default:
	}
}

// Progress is closed once the run finishes.
func (r *Run) Progress() <-chan int { return r.progress }

// Done is closed once the result is available.
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait blocks until the run finishes.
func (r *Run) Wait() (*Result, error) {
	<-r.done
	return r.result, r.err
}
