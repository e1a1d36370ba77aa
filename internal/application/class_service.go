package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Renanf68/nlw2-server/internal/domain/entity"
	repo "github.com/Renanf68/nlw2-server/internal/domain/repository"
)

const tracerName = "github.com/Renanf68/nlw2-server/internal/application"

// EnrollInput is a class registration as submitted by a tutor.
type EnrollInput struct {
	Name     string
	Avatar   string
	Whatsapp string
	Bio      string
	Subject  string
	Cost     float64
	Schedule []ScheduleInput
}

// ScheduleInput is one weekly slot with HH:MM bounds.
type ScheduleInput struct {
	WeekDay int
	From    string
	To      string
}

type ClassService struct {
	Repo      repo.ClassRepository
	Publisher EventPublisher
	Logger    *logrus.Logger

	tracer trace.Tracer
	now    func() time.Time
}

// NewClassService wires the class use cases. pub may be nil, in which case
// no events are emitted.
func NewClassService(r repo.ClassRepository, pub EventPublisher, logger *logrus.Logger) *ClassService {
	return &ClassService{
		Repo:      r,
		Publisher: pub,
		Logger:    logger,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
}

// Search returns the classes of subject with a slot covering the hour that
// starts at clock on weekDay. All three filters are required.
func (s *ClassService) Search(ctx context.Context, subject, weekDay, clock string) ([]entity.ClassListing, error) {
	if subject == "" || weekDay == "" || clock == "" {
		return nil, ErrMissingFilter
	}
	day, err := strconv.Atoi(weekDay)
	if err != nil || !entity.ValidWeekDay(day) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeekDay, weekDay)
	}
	start, err := entity.ParseMinutes(clock)
	if err != nil {
		return nil, fmt.Errorf("time: %w", err)
	}
	window := entity.NewSearchWindow(day, start)

	ctx, span := s.tracer.Start(ctx, "ClassService.Search", trace.WithAttributes(
		attribute.String("class.subject", subject),
		attribute.Int("class.week_day", window.WeekDay),
		attribute.Int("class.from", int(window.From)),
	))
	defer span.End()

	countEvent("searches")
	out, err := s.Repo.Search(ctx, subject, window)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"subject":  subject,
			"week_day": window.WeekDay,
			"time":     clock,
		}).Error("class search failed")
		return nil, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	if out == nil {
		out = []entity.ClassListing{}
	}
	span.SetAttributes(attribute.Int("class.results", len(out)))
	return out, nil
}

// Enroll creates the tutor, the class and its schedule atomically. Nothing is
// written when any slot is malformed. The class id is returned for the seeder
// and logs; HTTP clients only get an acknowledgment.
func (s *ClassService) Enroll(ctx context.Context, in EnrollInput) (int64, error) {
	slots := make([]entity.ScheduleSlot, 0, len(in.Schedule))
	for i, item := range in.Schedule {
		from, err := entity.ParseMinutes(item.From)
		if err != nil {
			return 0, fmt.Errorf("%w: schedule[%d].from: %w", ErrTransactionAborted, i, err)
		}
		to, err := entity.ParseMinutes(item.To)
		if err != nil {
			return 0, fmt.Errorf("%w: schedule[%d].to: %w", ErrTransactionAborted, i, err)
		}
		slots = append(slots, entity.ScheduleSlot{WeekDay: item.WeekDay, From: from, To: to})
	}

	e := &repo.Enrollment{
		User:     entity.User{Name: in.Name, Avatar: in.Avatar, Whatsapp: in.Whatsapp, Bio: in.Bio},
		Class:    entity.Class{Subject: in.Subject, Cost: in.Cost},
		Schedule: slots,
	}

	ctx, span := s.tracer.Start(ctx, "ClassService.Enroll", trace.WithAttributes(
		attribute.String("class.subject", in.Subject),
		attribute.Int("class.slots", len(slots)),
	))
	defer span.End()

	if err := s.Repo.Enroll(ctx, e); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "enroll failed")
		s.Logger.WithError(err).WithField("subject", in.Subject).Error("class enrollment failed")
		countEvent("enrollments_failed")
		return 0, fmt.Errorf("%w: %w", ErrTransactionAborted, err)
	}
	countEvent("enrollments")
	span.SetAttributes(attribute.Int64("class.id", e.Class.ID))

	if len(slots) == 0 {
		s.Logger.WithField("class_id", e.Class.ID).Warn("class enrolled without schedule; it will not match any search")
	}

	s.publishCreated(ctx, e)
	return e.Class.ID, nil
}

func (s *ClassService) publishCreated(ctx context.Context, e *repo.Enrollment) {
	if s.Publisher == nil {
		return
	}
	ev := ClassCreated{
		ClassID:   e.Class.ID,
		UserID:    e.User.ID,
		UserName:  e.User.Name,
		Avatar:    e.User.Avatar,
		Whatsapp:  e.User.Whatsapp,
		Bio:       e.User.Bio,
		Subject:   e.Class.Subject,
		Cost:      e.Class.Cost,
		Schedule:  make([]ScheduleItem, 0, len(e.Schedule)),
		CreatedAt: s.now().UTC(),
	}
	for _, sl := range e.Schedule {
		ev.Schedule = append(ev.Schedule, ScheduleItem{WeekDay: sl.WeekDay, From: int(sl.From), To: int(sl.To)})
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Publisher.PublishJSON(c, RoutingKeyClassCreated, ev); err != nil {
		s.Logger.WithError(err).WithField("class_id", ev.ClassID).Warn("publish class.created failed")
		return
	}
	countEvent("events_published")
}
