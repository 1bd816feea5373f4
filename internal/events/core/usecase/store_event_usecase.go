package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"conveymed-analytics/internal/events/core/domain"
	"conveymed-analytics/internal/events/core/ports"
)

var (
	ErrInvalidEvent     = errors.New("invalid event")
	ErrFutureTime       = errors.New("timestamp cannot be in the future")
	ErrUnknownEventType = errors.New("unknown event type")
)

// MaxBulkEvents caps one bulk request.
const MaxBulkEvents = 500

type StoreEventUseCase struct {
	repo ports.EventRepositoryPort
	log  *zap.Logger
	now  func() time.Time
}

func NewStoreEventUseCase(repo ports.EventRepositoryPort, log *zap.Logger) *StoreEventUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &StoreEventUseCase{repo: repo, log: log, now: time.Now}
}

func (uc *StoreEventUseCase) WithClock(now func() time.Time) *StoreEventUseCase {
	uc.now = now
	return uc
}

type StoreEventInput struct {
	Type       string
	UserID     string
	ResourceID string
	Timestamp  int64 // unix seconds, 0 = now
	Attributes map[string]string
}

func (uc *StoreEventUseCase) Execute(ctx context.Context, in StoreEventInput) (bool, error) {
	if err := uc.validateInput(in); err != nil {
		return false, err
	}

	ts := in.Timestamp
	if ts == 0 {
		ts = uc.now().Unix()
	}
	eventTime := time.Unix(ts, 0).UTC()

	e := &domain.Event{
		Type:       domain.EventType(in.Type),
		UserID:     strings.TrimSpace(in.UserID),
		ResourceID: strings.TrimSpace(in.ResourceID),
		Attributes: in.Attributes,
		EventTime:  eventTime,
	}
	if e.Attributes == nil {
		e.Attributes = map[string]string{}
	}
	e.DedupeKey = buildDedupeKey(e)

	created, err := uc.repo.InsertEvent(ctx, e)
	if err != nil {
		uc.log.Error("event insert failed",
			zap.String("type", in.Type),
			zap.String("user_id", e.UserID),
			zap.Error(err),
		)
		return false, err
	}

	return created, nil
}

func buildDedupeKey(e *domain.Event) string {
	// type + user_id + resource_id + unix_timestamp
	return fmt.Sprintf("%s|%s|%s|%d",
		e.Type,
		e.UserID,
		e.ResourceID,
		e.EventTime.Unix(),
	)
}

type BulkCreateEventsInput struct {
	Events []StoreEventInput
}

type BulkCreateEventsResult struct {
	Created    int
	Duplicates int
}

// BulkCreateEvents validates the whole batch before writing anything.
func (uc *StoreEventUseCase) BulkCreateEvents(ctx context.Context, in BulkCreateEventsInput) (BulkCreateEventsResult, error) {
	var res BulkCreateEventsResult

	if len(in.Events) > MaxBulkEvents {
		return res, fmt.Errorf("%w: at most %d events per request", ErrInvalidEvent, MaxBulkEvents)
	}

	for i, ev := range in.Events {
		if err := uc.validateInput(ev); err != nil {
			return res, fmt.Errorf("events[%d]: %w", i, err)
		}
	}

	for _, ev := range in.Events {
		ok, err := uc.Execute(ctx, ev)
		if err != nil {
			return res, err
		}

		if ok {
			res.Created++
		} else {
			res.Duplicates++
		}
	}

	return res, nil
}

func (uc *StoreEventUseCase) validateInput(in StoreEventInput) error {
	if in.Type == "" || strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.ResourceID) == "" {
		return ErrInvalidEvent
	}
	if !domain.EventType(in.Type).Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownEventType, in.Type)
	}
	if in.Timestamp < 0 {
		return ErrInvalidEvent
	}

	if in.Timestamp > uc.now().Unix() {
		return ErrFutureTime
	}

	return nil
}
