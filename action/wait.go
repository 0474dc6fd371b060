package action

import (
	"context"
	"fmt"
	"math"
	"time"

	"renkon/boxed"
	"renkon/endpoint"
	"renkon/ident"
	"renkon/wire"
)

// WaitID identifies the built-in wait action.
const WaitID ident.Action = "wait"

const (
	keyDurationSeconds     = "duration.seconds"
	keyDurationAttoseconds = "duration.attoseconds"
)

const attosecondsPerNanosecond = 1_000_000_000

// Wait sleeps for the composed duration, then defers to the next action.
// Cancellation of the sleep is request cancellation.
type Wait struct {
	Seconds     int64
	Attoseconds int64
}

// NewWait builds a wait action for a Go duration.
func NewWait(d time.Duration) *Wait {
	if d < 0 {
		d = 0
	}
	return &Wait{
		Seconds:     int64(d / time.Second),
		Attoseconds: int64(d%time.Second) * attosecondsPerNanosecond,
	}
}

// WaitType is the type-table entry for wait. A missing attoseconds key
// defaults to zero; a missing seconds key is a configuration error.
func WaitType() Type {
	return Type{
		ID: WaitID,
		Make: func(cfg Configuration) (Action, error) {
			secondsValue, err := requireValue(cfg, keyDurationSeconds)
			if err != nil {
				return nil, err
			}
			seconds, ok := secondsValue.AsInt()
			if !ok {
				return nil, wire.ErrConfigTypeMismatch(
					fmt.Sprintf("configuration key '%s' of action '%s' must be an integer, got %s",
						keyDurationSeconds, cfg.ID, secondsValue.Kind()))
			}
			var attoseconds int64
			if attosValue, exists := cfg.Configuration[keyDurationAttoseconds]; exists {
				attoseconds, ok = attosValue.AsInt()
				if !ok {
					return nil, wire.ErrConfigTypeMismatch(
						fmt.Sprintf("configuration key '%s' of action '%s' must be an integer, got %s",
							keyDurationAttoseconds, cfg.ID, attosValue.Kind()))
				}
			}
			return &Wait{Seconds: seconds, Attoseconds: attoseconds}, nil
		},
	}
}

// Duration converts the (seconds, attoseconds) pair to a sleep duration,
// clamping to [0, math.MaxInt64] nanoseconds on overflow.
func (a *Wait) Duration() time.Duration {
	if a.Seconds < 0 {
		return 0
	}
	if a.Seconds > math.MaxInt64/int64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	d := time.Duration(a.Seconds) * time.Second
	nanos := a.Attoseconds / attosecondsPerNanosecond
	if nanos > 0 {
		if d > time.Duration(math.MaxInt64)-time.Duration(nanos) {
			return time.Duration(math.MaxInt64)
		}
		d += time.Duration(nanos)
	}
	return d
}

// Perform sleeps, then returns absent so the pipeline tries the next
// action within the same call.
func (a *Wait) Perform(ctx context.Context, _ *wire.Request, _ *endpoint.Context) (*wire.Response, error) {
	d := a.Duration()
	if d <= 0 {
		return nil, nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, nil
	}
}

// MakeConfiguration re-serializes the action.
func (a *Wait) MakeConfiguration() Configuration {
	return NewConfiguration(WaitID, map[string]boxed.Value{
		keyDurationSeconds:     boxed.Int(a.Seconds),
		keyDurationAttoseconds: boxed.Int(a.Attoseconds),
	})
}
