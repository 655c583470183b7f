package store

import (
	"context"

	"MediFind/models"
	"MediFind/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Observer is told about every store call once it returns.
type Observer interface {
	ObserveStore(operation string, err error)
}

type instrumented struct {
	next     Store
	observer Observer
	tracer   trace.Tracer
	driver   string
}

// Instrument wraps next so that every call runs inside a span and is reported
// to observer. observer may be nil.
func Instrument(next Store, driver string, observer Observer) Store {
	return &instrumented{
		next:     next,
		observer: observer,
		tracer:   otel.Tracer("MediFind/store"),
		driver:   driver,
	}
}

func (s *instrumented) start(ctx context.Context, op string, filter *query.Filter) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", s.driver),
		attribute.String("db.operation", op),
	}
	if filter != nil {
		fields := make([]string, 0, len(filter.Conditions()))
		for _, c := range filter.Conditions() {
			fields = append(fields, c.Field)
		}
		attrs = append(attrs, attribute.StringSlice("medifind.filter.fields", fields))
	}
	return s.tracer.Start(ctx, "store."+op, trace.WithAttributes(attrs...))
}

func (s *instrumented) end(span trace.Span, op string, err error) {
	// A FindOne miss is a normal outcome, not a store failure.
	if err != nil && err != ErrNoDocument {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	if s.observer != nil {
		if err == ErrNoDocument {
			err = nil
		}
		s.observer.ObserveStore(op, err)
	}
}

func (s *instrumented) Find(ctx context.Context, filter query.Filter) ([]models.Medicine, error) {
	ctx, span := s.start(ctx, "find", &filter)
	out, err := s.next.Find(ctx, filter)
	if err == nil {
		span.SetAttributes(attribute.Int("medifind.result.count", len(out)))
	}
	s.end(span, "find", err)
	return out, err
}

func (s *instrumented) FindOne(ctx context.Context, filter query.Filter) (*models.Medicine, error) {
	ctx, span := s.start(ctx, "find_one", &filter)
	out, err := s.next.FindOne(ctx, filter)
	s.end(span, "find_one", err)
	return out, err
}

func (s *instrumented) Insert(ctx context.Context, med *models.Medicine) error {
	ctx, span := s.start(ctx, "insert", nil)
	err := s.next.Insert(ctx, med)
	s.end(span, "insert", err)
	return err
}

func (s *instrumented) FindRaw(ctx context.Context, filter query.Filter) ([]bson.M, error) {
	ctx, span := s.start(ctx, "find_raw", &filter)
	out, err := s.next.FindRaw(ctx, filter)
	s.end(span, "find_raw", err)
	return out, err
}

func (s *instrumented) Describe(ctx context.Context) (Stats, error) {
	ctx, span := s.start(ctx, "describe", nil)
	out, err := s.next.Describe(ctx)
	s.end(span, "describe", err)
	return out, err
}

func (s *instrumented) Ping(ctx context.Context) error {
	ctx, span := s.start(ctx, "ping", nil)
	err := s.next.Ping(ctx)
	s.end(span, "ping", err)
	return err
}

func (s *instrumented) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}

// Unwrap returns the wrapped store.
func (s *instrumented) Unwrap() Store {
	return s.next
}
