package main

import (
	"time"

	"github.com/taigrr/scanline/pkg/engine"
)

type action int

const (
	actUp action = iota
	actDown
	actLeft
	actRight
	actForward
	actBack
	actTurnLeft
	actTurnRight
	numActions
)

var keyBindings = []struct {
	keys   []string
	action action
}{
	{[]string{"up"}, actUp},
	{[]string{"down"}, actDown},
	{[]string{"left"}, actLeft},
	{[]string{"right"}, actRight},
	{[]string{"w"}, actForward},
	{[]string{"s"}, actBack},
	{[]string{"a"}, actTurnLeft},
	{[]string{"d"}, actTurnRight},
}

// holdTime keeps a key held after its last press. Terminals report key
// repeats but often no release, so a key counts as held until it stops
// repeating.
const holdTime = 150 * time.Millisecond

// keyState turns key presses into held keys.
type keyState struct {
	until [numActions]time.Time
}

func newKeyState() *keyState {
	return &keyState{}
}

func (k *keyState) press(a action, now time.Time) {
	k.until[a] = now.Add(holdTime)
}

func (k *keyState) release(a action) {
	k.until[a] = time.Time{}
}

func (k *keyState) held(a action, now time.Time) bool {
	return now.Before(k.until[a])
}

// input snapshots the keys held at now.
func (k *keyState) input(now time.Time) engine.Input {
	return engine.Input{
		Up:        k.held(actUp, now),
		Down:      k.held(actDown, now),
		Left:      k.held(actLeft, now),
		Right:     k.held(actRight, now),
		Forward:   k.held(actForward, now),
		Back:      k.held(actBack, now),
		TurnLeft:  k.held(actTurnLeft, now),
		TurnRight: k.held(actTurnRight, now),
	}
}
