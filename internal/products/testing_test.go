package products

import (
	"time"
)

// scriptedRand replays fixed values. Intn results are reduced modulo n so a
// script stays valid for any range; an exhausted script repeats its last value.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (s *scriptedRand) Intn(n int) int {
	v := 0
	if len(s.ints) > 0 {
		v = s.ints[0]
		if len(s.ints) > 1 {
			s.ints = s.ints[1:]
		}
	}
	return v % n
}

func (s *scriptedRand) Float64() float64 {
	v := 0.0
	if len(s.floats) > 0 {
		v = s.floats[0]
		if len(s.floats) > 1 {
			s.floats = s.floats[1:]
		}
	}
	return v
}

var testNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

// fixedEnv returns an Env with a stopped clock that advances one
// millisecond per call, so ids stay distinct.
func fixedEnv(r RandSource) Env {
	now := testNow
	return Env{
		Rand: r,
		Now: func() time.Time {
			now = now.Add(time.Millisecond)
			return now
		},
	}
}

const mouseURL = "https://www.flipkart.com/cool-wireless-mouse/p/itm123"
