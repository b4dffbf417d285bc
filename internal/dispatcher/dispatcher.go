package dispatcher

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/moca/internal/engine/buffer"
	"github.com/dshills/moca/internal/engine/cursor"
	"github.com/dshills/moca/internal/input/key"
)

// Buffer is the line store the dispatcher edits.
// *buffer.Buffer satisfies it.
type Buffer interface {
	cursor.Lines
	InsertChar(row, col int, ch rune) error
	DeleteChar(row, col int) error
	SplitLine(row, col int) error
	JoinLine(row int) error
}

// Logger receives contract violations in release mode.
type Logger interface {
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// Dispatcher applies key events to a buffer and cursor.
type Dispatcher struct {
	config  Config
	logger  Logger
	metrics *Metrics
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		config: config,
		logger: nopLogger{},
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetLogger sets the logger for swallowed contract errors.
func (d *Dispatcher) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	d.logger = l
}

// SetStrict switches strict mode on or off.
func (d *Dispatcher) SetStrict(strict bool) {
	d.config.Strict = strict
}

// Strict reports whether contract errors are returned.
func (d *Dispatcher) Strict() bool {
	return d.config.Strict
}

// SetPageSize sets how many rows PageUp and PageDown move.
func (d *Dispatcher) SetPageSize(rows int) {
	d.config.PageSize = rows
}

// Metrics returns the metrics collector, or nil if disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Dispatch applies ev to buf at cur and returns the new cursor.
//
// The returned error is ErrQuit or ErrSave for those keys, a wrapped
// buffer.ErrOutOfBounds in strict mode, and nil otherwise. The cursor is
// always valid for buf on return.
func (d *Dispatcher) Dispatch(buf Buffer, cur cursor.Cursor, ev key.Event) (cursor.Cursor, Result, error) {
	start := time.Now()
	cur = cur.ClampTo(buf)

	next, result, err := d.dispatch(buf, cur, ev)
	if err != nil && !errors.Is(err, ErrQuit) && !errors.Is(err, ErrSave) {
		next, result, err = d.contract(buf, cur, ev, err)
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(ev.Key.String(), time.Since(start), result.Status)
	}
	return next, result, err
}

func (d *Dispatcher) dispatch(buf Buffer, cur cursor.Cursor, ev key.Event) (cursor.Cursor, Result, error) {
	row, col := cur.Row(), cur.Col()

	switch ev.Key {
	case key.KeyQuit:
		return cur, applied(false), ErrQuit
	case key.KeySave:
		return cur, applied(false), ErrSave

	case key.KeyRune:
		if !ev.IsChar() {
			return cur, Result{Status: StatusIgnored}, nil
		}
		return d.insert(buf, cur, ev.Rune)
	case key.KeyTab:
		return d.insert(buf, cur, '\t')

	case key.KeyEnter:
		if err := buf.SplitLine(row, col); err != nil {
			return cur, Result{}, err
		}
		return cursor.New(row+1, 0).ClampTo(buf), applied(true), nil

	case key.KeyBackspace:
		return d.backspace(buf, cur)
	case key.KeyDelete:
		return d.delete(buf, cur)

	case key.KeyUp:
		return move(buf, cur, cur.Move(buf, cursor.Up, 1))
	case key.KeyDown:
		return move(buf, cur, cur.Move(buf, cursor.Down, 1))
	case key.KeyLeft:
		return move(buf, cur, cur.Move(buf, cursor.Left, 1))
	case key.KeyRight:
		return move(buf, cur, cur.Move(buf, cursor.Right, 1))
	case key.KeyHome:
		return move(buf, cur, cur.Home())
	case key.KeyEnd:
		return move(buf, cur, cur.End(buf))
	case key.KeyPageUp:
		return move(buf, cur, cur.Move(buf, cursor.Up, d.pageSize()))
	case key.KeyPageDown:
		return move(buf, cur, cur.Move(buf, cursor.Down, d.pageSize()))
	}

	return cur, Result{Status: StatusIgnored}, nil
}

func (d *Dispatcher) insert(buf Buffer, cur cursor.Cursor, r rune) (cursor.Cursor, Result, error) {
	if err := buf.InsertChar(cur.Row(), cur.Col(), r); err != nil {
		return cur, Result{}, err
	}
	return cursor.New(cur.Row(), cur.Col()+1).ClampTo(buf), applied(true), nil
}

func (d *Dispatcher) backspace(buf Buffer, cur cursor.Cursor) (cursor.Cursor, Result, error) {
	row, col := cur.Row(), cur.Col()

	switch {
	case col > 0:
		if err := buf.DeleteChar(row, col); err != nil {
			return cur, Result{}, err
		}
		return cursor.New(row, col-1).ClampTo(buf), applied(true), nil
	case row > 0:
		joinAt := buf.LineLength(row - 1)
		if err := buf.JoinLine(row - 1); err != nil {
			return cur, Result{}, err
		}
		return cursor.New(row-1, joinAt).ClampTo(buf), applied(true), nil
	default:
		return cur, noOp(), nil
	}
}

func (d *Dispatcher) delete(buf Buffer, cur cursor.Cursor) (cursor.Cursor, Result, error) {
	row, col := cur.Row(), cur.Col()

	switch {
	case col < buf.LineLength(row):
		if err := buf.DeleteChar(row, col+1); err != nil {
			return cur, Result{}, err
		}
	case row < buf.LineCount()-1:
		if err := buf.JoinLine(row); err != nil {
			return cur, Result{}, err
		}
	default:
		return cur, noOp(), nil
	}
	return cur.ClampTo(buf), applied(true), nil
}

func move(buf Buffer, from, to cursor.Cursor) (cursor.Cursor, Result, error) {
	to = to.ClampTo(buf)
	if to.Equals(from) {
		return to, noOp(), nil
	}
	return to, applied(false), nil
}

// contract handles an error reported by the buffer.
func (d *Dispatcher) contract(buf Buffer, cur cursor.Cursor, ev key.Event, err error) (cursor.Cursor, Result, error) {
	cur = cur.ClampTo(buf)
	if buffer.IsNoOp(err) {
		return cur, noOp(), nil
	}
	if d.config.Strict {
		return cur, Result{Status: StatusRejected}, fmt.Errorf("dispatch %s at %s: %w", ev, cur, err)
	}
	d.logger.Warn("dispatch %s at %s: %v", ev, cur, err)
	return cur, Result{Status: StatusRejected}, nil
}

func (d *Dispatcher) pageSize() int {
	return max(d.config.PageSize, 1)
}
