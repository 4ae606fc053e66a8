// Package sim drives the scheduling engine from a trace.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/emirpasic/gods/lists/singlylinkedlist"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"procsim/internal/sched"
	"procsim/internal/trace"
	"procsim/internal/tracing"
)

// Result is everything a finished run reports.
type Result struct {
	RunID     string
	Policy    sched.PolicyKind
	FinalTime sched.Time // timestamp of the last trace event
	TotalIdle sched.Time
	Finished  []sched.Summary // in termination order
	Events    int             // trace events read
	Ignored   int             // events with an unknown op code
}

// starter is implemented by observers that print something once the policy
// is known.
type starter interface {
	Start(kind sched.PolicyKind)
}

type options struct {
	runID     string
	logger    *slog.Logger
	tracer    *tracing.Tracer
	observers []sched.Observer
}

// Option customises a run.
type Option func(*options)

func WithRunID(id string) Option          { return func(o *options) { o.runID = id } }
func WithLogger(l *slog.Logger) Option    { return func(o *options) { o.logger = l } }
func WithTracer(t *tracing.Tracer) Option { return func(o *options) { o.tracer = t } }

func WithObserver(obs sched.Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// Run replays the trace in r to completion. Any engine error aborts the run:
// the trace is a deterministic replay and an inconsistency cannot be
// recovered from.
func Run(ctx context.Context, cfg sched.Config, r io.Reader, opts ...Option) (*Result, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.tracer == nil {
		o.tracer = tracing.Noop()
	}
	log := o.logger.With("run_id", o.runID)

	tr := trace.NewReader(r)
	flag, err := tr.Header()
	if err != nil {
		return nil, err
	}
	kind, err := sched.ParsePolicy(flag)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, trace.ErrMalformed)
	}
	if cfg.Preemptive != nil {
		kind = sched.PolicyFCFS
		if *cfg.Preemptive {
			kind = sched.PolicyPriority
		}
	}

	engineOpts := []sched.Option{sched.WithLogger(log)}
	for _, obs := range o.observers {
		if s, ok := obs.(starter); ok {
			s.Start(kind)
		}
		engineOpts = append(engineOpts, sched.WithObserver(obs))
	}
	d := &driver{
		engine:   sched.New(kind, cfg.Devices, engineOpts...),
		finished: singlylinkedlist.New(),
		tracer:   o.tracer,
		log:      log,
		res:      &Result{RunID: o.runID, Policy: kind},
	}
	log.Info("simulation starting", "policy", kind, "devices", d.engine.Devices())

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ev, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		d.res.Events++
		d.res.FinalTime = sched.Time(ev.Time)
		if err := d.apply(ctx, ev); err != nil {
			return nil, fmt.Errorf("line %d: %s at %d: %w", ev.Line, ev.Op, ev.Time, err)
		}
		if cfg.CheckInvariants {
			if err := d.engine.Validate(); err != nil {
				return nil, fmt.Errorf("line %d: %w", ev.Line, err)
			}
		}
	}

	d.res.TotalIdle = d.engine.TotalIdle()
	d.res.Finished = make([]sched.Summary, 0, d.finished.Size())
	it := d.finished.Iterator()
	for it.Next() {
		d.res.Finished = append(d.res.Finished, it.Value().(sched.Summary))
	}
	log.Info("simulation ended", "time", d.res.FinalTime, "idle", d.res.TotalIdle,
		"finished", len(d.res.Finished), "live", d.engine.Live())
	return d.res, nil
}

type driver struct {
	engine   *sched.Engine
	finished *singlylinkedlist.List
	tracer   *tracing.Tracer
	log      *slog.Logger
	res      *Result
}

// apply hands one event to the engine inside its own span.
func (d *driver) apply(ctx context.Context, ev trace.Event) (err error) {
	_, span := d.tracer.Start(ctx, "sched."+ev.Op.String(),
		attribute.Int64("sim.time", ev.Time),
		attribute.Int("trace.line", ev.Line),
	)
	defer func() {
		span.SetStatus(err)
		span.End()
	}()

	now := sched.Time(ev.Time)
	switch ev.Op {
	case trace.OpArrive:
		pid, err := d.engine.Arrive(ev.Arg, now)
		if err != nil {
			return err
		}
		span.SetAttributes(attribute.Int("process.pid", int(pid)), attribute.Int("process.priority", ev.Arg))
	case trace.OpIORequest:
		if err := d.checkDevice(ev.Arg); err != nil {
			return err
		}
		span.SetAttributes(attribute.Int("io.device", ev.Arg))
		return d.engine.RequestIO(ev.Arg, now)
	case trace.OpIODone:
		if err := d.checkDevice(ev.Arg); err != nil {
			return err
		}
		span.SetAttributes(attribute.Int("io.device", ev.Arg))
		return d.engine.CompleteIO(ev.Arg, now)
	case trace.OpTerminate:
		s, err := d.engine.Terminate(now)
		if err != nil {
			return err
		}
		d.finished.Add(s)
		span.SetAttributes(attribute.Int("process.pid", int(s.PID)))
	default:
		d.res.Ignored++
		d.log.Debug("ignoring unknown op", "line", ev.Line, "code", ev.Code)
	}
	return nil
}

// checkDevice rejects device indices outside the bank before they reach the
// engine.
func (d *driver) checkDevice(i int) error {
	if i < 0 || i >= d.engine.Devices() {
		return fmt.Errorf("device index %d outside 0..%d: %w", i, d.engine.Devices()-1, sched.ErrNoSuchDevice)
	}
	return nil
}
