// Package lipsync maps visemes and lip-sync streams onto the face channels of a rig
// and moves face animation between its representations.
package lipsync

import (
	"errors"
	"log"

	"github.com/binzume/lipsync/viseme"
)

// DriverPrefix is the custom property prefix of face shape drivers.
const DriverPrefix = "Mhf"

type State int

const (
	Idle State = iota
	Loading
	Deleting
	Baking
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Loading:
		return "Loading"
	case Deleting:
		return "Deleting"
	case Baking:
		return "Baking"
	}
	return "Unknown"
}

var ErrBusy = errors.New("lipsync: another operation is in progress")

// Engine applies visemes and curve operations using one Registry.
// Operations are synchronous and must be called from a single goroutine.
type Engine struct {
	Registry *viseme.Registry
	Logger   *log.Logger

	state State
}

func NewEngine(reg *viseme.Registry) *Engine {
	return &Engine{Registry: reg, Logger: log.New(log.Writer(), "", log.LstdFlags)}
}

// NewDefaultEngine returns an engine over the built-in registry.
func NewDefaultEngine() (*Engine, error) {
	reg, err := viseme.Default()
	if err != nil {
		return nil, err
	}
	return NewEngine(reg), nil
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) enter(s State) error {
	if e.state != Idle {
		return ErrBusy
	}
	e.state = s
	return nil
}

func (e *Engine) leave() {
	e.state = Idle
}

func (e *Engine) logf(format string, v ...interface{}) {
	if e.Logger != nil {
		e.Logger.Printf(format, v...)
	}
}
