// Package trace reads simulation traces.
//
// A trace starts with the preemption flag on its own line, followed by one
// event per line:
//
//	time op [arg]
//
// where op 1 takes a priority, ops 2 and 3 take a device index and op 4 takes
// nothing. Blank lines and lines starting with # are skipped.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed marks a trace line that cannot be parsed.
var ErrMalformed = errors.New("malformed trace")

// Op is a trace operation code.
type Op int

const (
	OpUnknown   Op = 0
	OpArrive    Op = 1
	OpIORequest Op = 2
	OpIODone    Op = 3
	OpTerminate Op = 4
)

func (o Op) String() string {
	switch o {
	case OpArrive:
		return "arrive"
	case OpIORequest:
		return "io-request"
	case OpIODone:
		return "io-complete"
	case OpTerminate:
		return "terminate"
	default:
		return "unknown"
	}
}

// Event is one parsed trace line. Arg holds the priority for OpArrive and the
// device index for the I/O ops.
type Event struct {
	Line int
	Time int64
	Op   Op
	Code int // raw op code, kept for unknown ops
	Arg  int
}

// Reader parses a trace line by line.
type Reader struct {
	sc     *bufio.Scanner
	line   int
	header bool
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{sc: bufio.NewScanner(r)}
}

// Header returns the preemption flag. It must be called before Next.
func (r *Reader) Header() (int, error) {
	fields, err := r.nextFields()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("missing preemption flag: %w", ErrMalformed)
		}
		return 0, err
	}
	if len(fields) != 1 {
		return 0, r.malformed("header wants one field, got %d", len(fields))
	}
	flag, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, r.malformed("preemption flag %q", fields[0])
	}
	r.header = true
	return flag, nil
}

// Next returns the next event, or io.EOF at the end of the trace.
func (r *Reader) Next() (Event, error) {
	if !r.header {
		return Event{}, errors.New("trace header not read")
	}
	fields, err := r.nextFields()
	if err != nil {
		return Event{}, err
	}
	if len(fields) < 2 {
		return Event{}, r.malformed("want time and op, got %q", strings.Join(fields, " "))
	}

	ev := Event{Line: r.line}
	if ev.Time, err = strconv.ParseInt(fields[0], 10, 64); err != nil {
		return Event{}, r.malformed("time %q", fields[0])
	}
	if ev.Code, err = strconv.Atoi(fields[1]); err != nil {
		return Event{}, r.malformed("op %q", fields[1])
	}

	switch Op(ev.Code) {
	case OpArrive, OpIORequest, OpIODone:
		ev.Op = Op(ev.Code)
		if len(fields) < 3 {
			return Event{}, r.malformed("op %d needs an argument", ev.Code)
		}
		if ev.Arg, err = strconv.Atoi(fields[2]); err != nil {
			return Event{}, r.malformed("argument %q", fields[2])
		}
	case OpTerminate:
		ev.Op = OpTerminate
	default:
		ev.Op = OpUnknown
	}
	return ev, nil
}

// nextFields skips blank and comment lines.
func (r *Reader) nextFields() ([]string, error) {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return strings.Fields(text), nil
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return nil, io.EOF
}

func (r *Reader) malformed(format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", r.line, fmt.Sprintf(format, args...), ErrMalformed)
}
