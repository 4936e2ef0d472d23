package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"masterbook/config"
	"masterbook/internal/domain/entity"
	"masterbook/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrMasterNotFound = errors.New("master not found")

// SlotUsecase computes bookable start instants within the rolling horizon.
// Every call reads fresh state; availability is never cached.
type SlotUsecase interface {
	// AvailableSlots returns valid UTC start instants for the given calendar
	// date in the master's zone, in chronological order.
	AvailableSlots(ctx context.Context, masterID int, durationMin int, date time.Time) ([]time.Time, error)
	// AvailableDates returns the dates within the booking horizon that have
	// at least one available slot. Returned values are midnight in the
	// master's zone.
	AvailableDates(ctx context.Context, masterID int, durationMin int) ([]time.Time, error)
}

type slotUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	cfg          config.BookingConfig
	masterRepo   repository.MasterRepository
	aptRepo      repository.AppointmentRepository
	blackoutRepo repository.BlackoutRepository
	now          func() time.Time
}

func NewSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.BookingConfig,
	masterRepo repository.MasterRepository,
	aptRepo repository.AppointmentRepository,
	blackoutRepo repository.BlackoutRepository,
) SlotUsecase {
	return &slotUsecase{
		db:           db,
		log:          log,
		cfg:          cfg,
		masterRepo:   masterRepo,
		aptRepo:      aptRepo,
		blackoutRepo: blackoutRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (u *slotUsecase) AvailableSlots(ctx context.Context, masterID int, durationMin int, date time.Time) ([]time.Time, error) {
	db := u.db.WithContext(ctx)

	master, err := u.masterRepo.FindByID(db, masterID)
	if err != nil {
		return nil, err
	}
	if master == nil {
		return nil, ErrMasterNotFound
	}

	workStart, workEnd, err := workWindow(master, date)
	if err != nil {
		return nil, err
	}

	booked, err := u.aptRepo.FindActiveInWindow(db, master.ID, workStart, workEnd)
	if err != nil {
		u.log.Warnf("Failed to load appointments for slot query: %+v", err)
		return nil, err
	}

	blackouts, err := u.blackoutRepo.FindOverlapping(db, master.ID, workStart, workEnd)
	if err != nil {
		u.log.Warnf("Failed to load blackouts for slot query: %+v", err)
		return nil, err
	}

	minStart := u.now().Add(time.Duration(u.cfg.MinAheadHours) * time.Hour)
	return computeSlots(workStart, workEnd, durationMin, master.BufferMin, minStart, booked, blackouts), nil
}

func (u *slotUsecase) AvailableDates(ctx context.Context, masterID int, durationMin int) ([]time.Time, error) {
	db := u.db.WithContext(ctx)

	master, err := u.masterRepo.FindByID(db, masterID)
	if err != nil {
		return nil, err
	}
	if master == nil {
		return nil, ErrMasterNotFound
	}

	loc := master.Location()
	today := u.now().In(loc)
	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	var dates []time.Time
	for offset := 0; offset < u.cfg.HorizonDays; offset++ {
		day := todayMidnight.AddDate(0, 0, offset)
		slots, err := u.AvailableSlots(ctx, masterID, durationMin, day)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			dates = append(dates, day)
		}
	}
	return dates, nil
}

// workWindow resolves the master's daily work window for a calendar date.
// Both wall-clock endpoints are interpreted in the master's zone exactly
// once and converted to UTC; all later arithmetic stays in UTC so DST
// transitions cannot bend the candidate grid.
func workWindow(master *entity.Master, date time.Time) (time.Time, time.Time, error) {
	loc := master.Location()
	openH, openM, err := parseWallClock(master.WorkStartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad work_start_time %q: %w", master.WorkStartTime, err)
	}
	closeH, closeM, err := parseWallClock(master.WorkEndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad work_end_time %q: %w", master.WorkEndTime, err)
	}

	y, m, d := date.In(loc).Date()
	open := time.Date(y, m, d, openH, openM, 0, 0, loc).UTC()
	close := time.Date(y, m, d, closeH, closeM, 0, 0, loc).UTC()
	return open, close, nil
}

func parseWallClock(s string) (int, int, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, 0, err
		}
	}
	return t.Hour(), t.Minute(), nil
}

// computeSlots enumerates candidate starts stepped by duration+buffer and
// keeps those clearing all four admission rules: minimum lead time, no
// buffered overlap with active appointments, no blackout overlap, and the
// service finishing inside the work window.
func computeSlots(
	workStart, workEnd time.Time,
	durationMin, bufferMin int,
	minStart time.Time,
	booked []entity.Appointment,
	blackouts []entity.Blackout,
) []time.Time {
	duration := time.Duration(durationMin) * time.Minute
	buffer := time.Duration(bufferMin) * time.Minute
	step := duration + buffer

	var available []time.Time
	for t := workStart; !t.Add(duration).After(workEnd); t = t.Add(step) {
		slotEnd := t.Add(duration)

		if t.Before(minStart) {
			continue
		}

		conflict := false
		for _, apt := range booked {
			// The candidate must not touch [apt.start - buffer, apt.end + buffer).
			if t.Before(apt.EndTs.Add(buffer)) && slotEnd.After(apt.StartTs.Add(-buffer)) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		for _, bl := range blackouts {
			if t.Before(bl.EndTs) && slotEnd.After(bl.StartTs) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		available = append(available, t)
	}
	return available
}
