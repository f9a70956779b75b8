package control

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrControlRead marks a button line that could not be read.
var ErrControlRead = errors.New("control line read failed")

// Line is one button input, already translated to active/inactive.
type Line interface {
	Active() (bool, error)
}

// ScriptedLine replays a fixed sequence of reads and then stays inactive.
// It drives pollers in simulation and tests. Safe for concurrent use.
type ScriptedLine struct {
	mu    sync.Mutex
	reads []ScriptedRead
	pos   int
}

// ScriptedRead is one scripted level or failure.
type ScriptedRead struct {
	Active bool
	Err    error
}

// NewScriptedLine returns a line that reads levels in order.
func NewScriptedLine(levels ...bool) *ScriptedLine {
	l := &ScriptedLine{}
	l.Push(levels...)
	return l
}

// Push appends levels to the script.
func (l *ScriptedLine) Push(levels ...bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, v := range levels {
		l.reads = append(l.reads, ScriptedRead{Active: v})
	}
}

// PushError appends a failed read.
func (l *ScriptedLine) PushError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reads = append(l.reads, ScriptedRead{Err: err})
}

// Remaining reports how many scripted reads are left.
func (l *ScriptedLine) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.reads) - l.pos
}

// Active returns the next scripted read, or inactive once the script ends.
func (l *ScriptedLine) Active() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pos >= len(l.reads) {
		return false, nil
	}
	r := l.reads[l.pos]
	l.pos++
	if r.Err != nil {
		return false, errors.Wrap(ErrControlRead, r.Err.Error())
	}
	return r.Active, nil
}
