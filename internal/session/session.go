// Package session runs one interactive ordering session over a pair of
// streams: pick a coffee, pick condiments, print the order.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/xenking/starbuzz/internal/domain/beverage"
	"github.com/xenking/starbuzz/internal/domain/order"
)

// State is a step of the ordering session.
type State uint8

const (
	StateAwaitingBase State = iota
	StateAwaitingCondiments
	StateFinalized
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateAwaitingBase:
		return "awaiting_base"
	case StateAwaitingCondiments:
		return "awaiting_condiments"
	case StateFinalized:
		return "finalized"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Options configures a Session.
type Options struct {
	// LegacyFloatTotals prints the total as the float64 sum of the prices,
	// rounding artifacts included, instead of the exact decimal sum.
	LegacyFloatTotals bool

	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

func (o *Options) setDefaults() {
	if o.MeterProvider == nil {
		o.MeterProvider = metricnoop.NewMeterProvider()
	}
	if o.TracerProvider == nil {
		o.TracerProvider = tracenoop.NewTracerProvider()
	}
}

const instrumentationName = "github.com/xenking/starbuzz/internal/session"

// Session reads selections from in and writes the transcript to out. A
// Session is single use.
type Session struct {
	in   *bufio.Reader
	out  io.Writer
	opts Options

	tracer            trace.Tracer
	orders            metric.Int64Counter
	invalidCondiments metric.Int64Counter

	state State
	order *order.Order
	werr  error
}

// New creates a Session in StateAwaitingBase.
func New(in io.Reader, out io.Writer, opts Options) (*Session, error) {
	opts.setDefaults()

	meter := opts.MeterProvider.Meter(instrumentationName)
	orders, err := meter.Int64Counter("starbuzz.orders",
		metric.WithDescription("Ordering sessions by outcome"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "orders counter")
	}
	invalid, err := meter.Int64Counter("starbuzz.condiments.invalid",
		metric.WithDescription("Condiment tokens that were not on the menu"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid condiments counter")
	}

	return &Session{
		in:                bufio.NewReader(in),
		out:               out,
		opts:              opts,
		tracer:            opts.TracerProvider.Tracer(instrumentationName),
		orders:            orders,
		invalidCondiments: invalid,
		state:             StateAwaitingBase,
	}, nil
}

// State returns the current step of the session.
func (s *Session) State() State { return s.state }

// Order returns the finished order, or nil if the session has not been
// finalized.
func (s *Session) Order() *order.Order {
	if s.state != StateFinalized {
		return nil
	}
	return s.order
}

// Run drives the session to StateFinalized or StateAborted. Invalid input is
// reported on the transcript and is not an error; Run fails only when the
// transcript cannot be written.
func (s *Session) Run(ctx context.Context) error {
	if s.state != StateAwaitingBase {
		return errors.Errorf("session already %s", s.state)
	}

	ctx, span := s.tracer.Start(ctx, "session.Run")
	defer span.End()

	s.println(welcomeLine)
	s.printCoffeeMenu()

	line, ok := s.readLine()
	kind, err := beverage.ParseKind(line)
	if !ok || err != nil {
		zctx.From(ctx).Debug("Invalid coffee choice",
			zap.String("input", line),
			zap.Bool("eof", !ok),
		)
		s.abort(ctx, span, msgInvalidCoffee)
		return s.result()
	}

	o, err := order.New(kind)
	if err != nil {
		return errors.Wrap(err, "start order")
	}
	s.order = o
	s.state = StateAwaitingCondiments

	ctx = zctx.With(ctx, zap.Stringer("order_id", o.ID))
	span.SetAttributes(
		attribute.String("order.id", o.ID.String()),
		attribute.String("order.beverage", kind.String()),
	)
	zctx.From(ctx).Debug("Coffee selected", zap.Stringer("beverage", kind))

	s.printCondimentMenu()

	line, ok = s.readLine()
	if !ok {
		zctx.From(ctx).Debug("Condiment line missing")
		s.abort(ctx, span, msgInvalidCondiments)
		return s.result()
	}

	invalid, err := o.ApplyLine(line)
	if err != nil {
		return errors.Wrap(err, "apply condiments")
	}
	for _, e := range invalid {
		zctx.From(ctx).Debug("Invalid condiment choice", zap.String("token", e.Token))
		s.printf("Invalid condiment choice: %s\n", e.Token)
	}
	if len(invalid) > 0 {
		s.invalidCondiments.Add(ctx, int64(len(invalid)))
	}

	s.finalize(ctx, span)
	return s.result()
}

func (s *Session) finalize(ctx context.Context, span trace.Span) {
	s.state = StateFinalized

	s.printf("Your order: %s\n", s.order.Description())
	s.printf("Total cost: %s\n", s.formatTotal(s.order.Item))

	zctx.From(ctx).Debug("Order finalized", zap.Object("order", s.order.Summary()))
	s.record(ctx, span)
}

func (s *Session) abort(ctx context.Context, span trace.Span, msg string) {
	s.state = StateAborted
	s.println(msg)
	s.record(ctx, span)
}

func (s *Session) record(ctx context.Context, span trace.Span) {
	outcome := attribute.String("outcome", s.state.String())
	span.SetAttributes(outcome)
	s.orders.Add(ctx, 1, metric.WithAttributes(outcome))
}

func (s *Session) formatTotal(item beverage.Item) string {
	if s.opts.LegacyFloatTotals {
		return strconv.FormatFloat(beverage.LegacyCost(item), 'f', -1, 64)
	}
	return item.Cost().String()
}

// readLine returns the next input line without its terminator. ok is false
// when no line could be read at all.
func (s *Session) readLine() (string, bool) {
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true
}

func (s *Session) println(line string) {
	s.printf("%s\n", line)
}

func (s *Session) printf(format string, args ...any) {
	if s.werr != nil {
		return
	}
	if _, err := fmt.Fprintf(s.out, format, args...); err != nil {
		s.werr = errors.Wrap(err, "write transcript")
	}
}

func (s *Session) result() error {
	return s.werr
}
