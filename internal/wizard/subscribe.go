package wizard

import "context"

// Subscribe emits the current state, then every change, until ctx is
// canceled. Slow readers only ever miss intermediate states; the newest
// one is always delivered.
func (c *Controller) Subscribe(ctx context.Context) <-chan State {
	out := make(chan State, 4)

	go func() {
		defer close(out)
		for {
			c.mu.Lock()
			st := c.st.clone()
			ch := c.changed
			c.mu.Unlock()

			pushState(out, st)

			select {
			case <-ctx.Done():
				return
			case <-ch:
			}
		}
	}()

	return out
}

// pushState sends st, dropping the oldest buffered state when full.
func pushState(out chan State, st State) {
	select {
	case out <- st:
		return
	default:
	}
	select {
	case <-out:
	default:
	}
	select {
	case out <- st:
	default:
	}
}
