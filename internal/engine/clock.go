package engine

import "time"

// Clock supplies timestamps, for example to seed the random source.
type Clock interface {
	Now() time.Time
}

type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now() }
