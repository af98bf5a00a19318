package resilience

import "golang.org/x/sync/singleflight"

// SingleFlight collapses concurrent calls sharing a key into one execution.
type SingleFlight[T any] struct {
	group singleflight.Group
}

func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (T, bool, error) {
	value, err, shared := g.group.Do(key, func() (any, error) {
		return fn()
	})
	out, _ := value.(T)
	return out, shared, err
}
