package cells

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Step is one explorer action: cross a face of the current cell, or delete it.
type Step struct {
	Face   int
	Delete bool
}

func (s Step) String() string {
	if s.Delete {
		return "d"
	}
	return strconv.Itoa(s.Face)
}

// ParseSteps parses a script such as "0,2 1 d 3": digits 0..3 cross that face of the
// current cell, "d" (or "del", "delete") removes the current cell.
func ParseSteps(script string) ([]Step, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	steps := make([]Step, 0, len(fields))
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "d", "del", "delete":
			steps = append(steps, Step{Delete: true})
			continue
		}
		face, err := strconv.Atoi(f)
		if err != nil || face < 0 || face >= len(Facets) {
			return nil, fmt.Errorf("bad step %q: want a face 0..%d or d", f, len(Facets)-1)
		}
		steps = append(steps, Step{Face: face})
	}
	return steps, nil
}

// Outcome records what a step did. Err holds a recoverable condition
// (ErrAlreadyVisible, ErrNotFound, ErrLastCell), nil on success.
type Outcome struct {
	Step    Step
	Current int
	Err     error
}

// Explorer is a navigation session: a navigator plus the currently selected cell.
type Explorer struct {
	Nav     *Navigator
	Current int
}

func NewExplorer(nav *Navigator) *Explorer {
	return &Explorer{Nav: nav, Current: nav.order[0]}
}

// Select makes a visible cell current.
func (e *Explorer) Select(index int) error {
	if !e.Nav.Visible(index) {
		return fmt.Errorf("%w: %d", ErrNotFound, index)
	}
	e.Current = index
	return nil
}

// Step crosses a face of the current cell; the revealed cell becomes current.
func (e *Explorer) Step(face int) (VisibleCell, error) {
	c, err := e.Nav.CrossFace(e.Current, face)
	if err != nil {
		return c, err
	}
	e.Current = c.Index
	return c, nil
}

// DeleteCurrent removes the current cell; the most recently revealed remaining cell
// becomes current.
func (e *Explorer) DeleteCurrent() error {
	if err := e.Nav.RemoveCell(e.Current); err != nil {
		return err
	}
	e.Current = e.Nav.order[len(e.Nav.order)-1]
	return nil
}

// Run executes steps in order. Recoverable conditions are recorded in the outcomes and
// the script continues; any other error (a consistency failure) stops it.
func (e *Explorer) Run(steps []Step) ([]Outcome, error) {
	out := make([]Outcome, 0, len(steps))
	for _, s := range steps {
		var err error
		if s.Delete {
			err = e.DeleteCurrent()
		} else {
			_, err = e.Step(s.Face)
		}
		if err != nil && !recoverable(err) {
			return out, fmt.Errorf("step %d (%s): %w", len(out), s, err)
		}
		out = append(out, Outcome{Step: s, Current: e.Current, Err: err})
	}
	return out, nil
}

func recoverable(err error) bool {
	return errors.Is(err, ErrAlreadyVisible) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrLastCell)
}
