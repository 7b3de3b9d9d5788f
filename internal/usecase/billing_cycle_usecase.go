package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"ges_billing/internal/domain/apportionment"
	"ges_billing/internal/domain/entities"
	"ges_billing/internal/infrastructure/metrics"
	"ges_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var (
	ErrCycleNotFound           = errors.New("billing cycle not found")
	ErrCycleAlreadyExists      = errors.New("billing cycle already exists for this month")
	ErrInvalidCycleID          = errors.New("invalid billing cycle id")
	ErrInvalidPeriodLabel      = errors.New("invalid period label")
	ErrInvalidCycleDate        = errors.New("invalid cycle date")
	ErrInvalidInputTotals      = errors.New("invalid input totals")
	ErrInvalidReadings         = errors.New("invalid readings")
	ErrUnknownConsumer         = errors.New("unknown consumer")
	ErrDuplicateConsumer       = errors.New("duplicate consumer in readings")
	ErrCycleMonthMismatch      = errors.New("cycle date does not belong to the cycle month")
	ErrInvalidConsumerID       = errors.New("invalid consumer id")
	ErrPreviousReadingNotFound = errors.New("no previous reading for consumer")
)

const maxPeriodLabelLen = 50

// ReadingInput is one consumer's reading as captured by the operator.
// A nil PreviousReading is seeded from the latest earlier cycle (0 when none).
type ReadingInput struct {
	ConsumerID      string
	CurrentReading  decimal.Decimal
	PreviousReading *decimal.Decimal
}

// CycleInput is the validated command behind create, update and preview.
type CycleInput struct {
	PeriodLabel string
	CycleDate   time.Time
	InputTotals []decimal.Decimal
	Readings    []ReadingInput
}

// PreviousReading is the last recorded meter value of a consumer.
type PreviousReading struct {
	ConsumerID      string
	CycleID         string
	PreviousReading decimal.Decimal
}

// CycleReport is the presentation view of a stored cycle. Values come from the
// persisted shares and are never recomputed.
type CycleReport struct {
	Cycle         entities.BillingCycle
	Source        *entities.CycleReading
	Rows          []entities.CycleReading
	RoundedTotal  int64
	RoundingDelta decimal.Decimal
}

// IBillingCycleUseCase exposes billing cycle (water reading) operations.
//
//   - "Guardar lectura" => Create()
//   - "Actualizar lectura" => Update()
//   - report preview before saving => Preview()
//   - report / export data => Report()

type IBillingCycleUseCase interface {
	Create(ctx context.Context, in CycleInput) (entities.BillingCycle, error)
	Update(ctx context.Context, id string, in CycleInput) (entities.BillingCycle, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (entities.BillingCycle, error)
	GetByPeriodLabel(ctx context.Context, label string) (entities.BillingCycle, error)
	List(ctx context.Context) ([]entities.BillingCycle, error)
	Preview(ctx context.Context, in CycleInput) (entities.BillingCycle, error)
	Report(ctx context.Context, id string) (CycleReport, error)
	PreviousReading(ctx context.Context, consumerID string) (PreviousReading, error)
}

type BillingCycleUseCase struct {
	repo        interfaces.IBillingCycleRepository
	obligations interfaces.IPaymentObligationRepository
}

var _ IBillingCycleUseCase = (*BillingCycleUseCase)(nil)

func NewBillingCycleUseCase(repo interfaces.IBillingCycleRepository, obligations interfaces.IPaymentObligationRepository) *BillingCycleUseCase {
	return &BillingCycleUseCase{repo: repo, obligations: obligations}
}

func (u *BillingCycleUseCase) Create(ctx context.Context, in CycleInput) (entities.BillingCycle, error) {
	in, err := normalizeCycleInput(in)
	if err != nil {
		return entities.BillingCycle{}, err
	}
	id := entities.MonthKey(in.CycleDate)
	log.Printf("[cycle][usecase] create start month=%s readings=%d", id, len(in.Readings))

	// Enforce: 1 cycle per month.
	if existing, err := u.repo.GetByID(ctx, id); err != nil {
		return entities.BillingCycle{}, err
	} else if existing.ID != "" {
		log.Printf("[cycle][usecase] create rejected month=%s already exists", id)
		metrics.ObserveCycleWrite("create", metrics.ResultConflict)
		return entities.BillingCycle{}, ErrCycleAlreadyExists
	}

	cycle, err := u.compute(ctx, id, in)
	if err != nil {
		metrics.ObserveCycleWrite("create", metrics.ResultInvalid)
		return entities.BillingCycle{}, err
	}

	now := time.Now().UTC()
	cycle.CreatedAt = now
	cycle.UpdatedAt = now

	created, err := u.repo.Create(ctx, cycle)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			log.Printf("[cycle][usecase] create lost race month=%s", id)
			metrics.ObserveCycleWrite("create", metrics.ResultConflict)
			return entities.BillingCycle{}, ErrCycleAlreadyExists
		}
		log.Printf("[cycle][usecase] create failed month=%s err=%v", id, err)
		metrics.ObserveCycleWrite("create", metrics.ResultError)
		return entities.BillingCycle{}, err
	}
	log.Printf("[cycle][usecase] create success month=%s total=%s unit_price=%s rounded_total=%d",
		created.ID, created.TotalAmount, created.UnitPrice.StringFixed(4), created.RoundedTotal())
	metrics.ObserveCycleWrite("create", metrics.ResultSuccess)
	return created, nil
}

func (u *BillingCycleUseCase) Update(ctx context.Context, id string, in CycleInput) (entities.BillingCycle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingCycle{}, ErrInvalidCycleID
	}
	in, err := normalizeCycleInput(in)
	if err != nil {
		return entities.BillingCycle{}, err
	}
	if entities.MonthKey(in.CycleDate) != id {
		return entities.BillingCycle{}, ErrCycleMonthMismatch
	}
	log.Printf("[cycle][usecase] update start month=%s readings=%d", id, len(in.Readings))

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingCycle{}, err
	}
	if existing.ID == "" {
		return entities.BillingCycle{}, ErrCycleNotFound
	}

	cycle, err := u.compute(ctx, id, in)
	if err != nil {
		metrics.ObserveCycleWrite("update", metrics.ResultInvalid)
		return entities.BillingCycle{}, err
	}
	cycle.CreatedAt = existing.CreatedAt
	cycle.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Replace(ctx, cycle)
	if err != nil {
		log.Printf("[cycle][usecase] update failed month=%s err=%v", id, err)
		metrics.ObserveCycleWrite("update", metrics.ResultError)
		return entities.BillingCycle{}, err
	}
	if updated.ID == "" {
		return entities.BillingCycle{}, ErrCycleNotFound
	}
	log.Printf("[cycle][usecase] update success month=%s rounded_total=%d", id, updated.RoundedTotal())
	metrics.ObserveCycleWrite("update", metrics.ResultSuccess)
	return updated, nil
}

func (u *BillingCycleUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidCycleID
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.ID == "" {
		return ErrCycleNotFound
	}

	// Obligations are snapshots: they stay, but lose their link to the cycle.
	// The link is cleared in the same transaction that removes the cycle.
	var detach []string
	if u.obligations != nil {
		linked, err := u.obligations.ListByMonth(ctx, id)
		if err != nil {
			log.Printf("[cycle][usecase] list obligations failed month=%s err=%v", id, err)
			return err
		}
		for _, o := range linked {
			if o.CycleID == id {
				detach = append(detach, o.ID)
			}
		}
	}

	deleted, err := u.repo.Delete(ctx, id, detach)
	if err != nil {
		log.Printf("[cycle][usecase] delete failed month=%s err=%v", id, err)
		metrics.ObserveCycleWrite("delete", metrics.ResultError)
		return err
	}
	if !deleted {
		return ErrCycleNotFound
	}
	log.Printf("[cycle][usecase] delete success month=%s detached=%d", id, len(detach))
	metrics.ObserveCycleWrite("delete", metrics.ResultSuccess)
	return nil
}

func (u *BillingCycleUseCase) GetByID(ctx context.Context, id string) (entities.BillingCycle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingCycle{}, ErrInvalidCycleID
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingCycle{}, err
	}
	if c.ID == "" {
		return entities.BillingCycle{}, ErrCycleNotFound
	}
	return c, nil
}

func (u *BillingCycleUseCase) GetByPeriodLabel(ctx context.Context, label string) (entities.BillingCycle, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return entities.BillingCycle{}, ErrInvalidPeriodLabel
	}

	c, err := u.repo.GetByPeriodLabel(ctx, label)
	if err != nil {
		return entities.BillingCycle{}, err
	}
	if c.ID == "" {
		return entities.BillingCycle{}, ErrCycleNotFound
	}
	return c, nil
}

// List returns every cycle, newest month first.
func (u *BillingCycleUseCase) List(ctx context.Context) ([]entities.BillingCycle, error) {
	cycles, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cycles, func(i, j int) bool { return cycles[i].ID > cycles[j].ID })
	return cycles, nil
}

// Preview runs the apportionment without persisting anything.
func (u *BillingCycleUseCase) Preview(ctx context.Context, in CycleInput) (entities.BillingCycle, error) {
	in, err := normalizeCycleInput(in)
	if err != nil {
		return entities.BillingCycle{}, err
	}
	return u.compute(ctx, entities.MonthKey(in.CycleDate), in)
}

func (u *BillingCycleUseCase) Report(ctx context.Context, id string) (CycleReport, error) {
	c, err := u.GetByID(ctx, id)
	if err != nil {
		return CycleReport{}, err
	}

	report := CycleReport{
		Cycle:        c,
		Rows:         c.BilledReadings(),
		RoundedTotal: c.RoundedTotal(),
	}
	report.RoundingDelta = decimal.NewFromInt(report.RoundedTotal).Sub(c.TotalAmount)
	for i := range c.Readings {
		if c.Readings[i].Source {
			src := c.Readings[i]
			report.Source = &src
			break
		}
	}
	return report, nil
}

// PreviousReading returns the current reading recorded for consumerID in the
// most recent cycle that contains it.
func (u *BillingCycleUseCase) PreviousReading(ctx context.Context, consumerID string) (PreviousReading, error) {
	consumerID = strings.ToUpper(strings.TrimSpace(consumerID))
	if consumerID == "" {
		return PreviousReading{}, ErrInvalidConsumerID
	}
	if _, ok := entities.FindDepartment(consumerID); !ok {
		return PreviousReading{}, fmt.Errorf("%w: %s", ErrUnknownConsumer, consumerID)
	}

	cycles, err := u.List(ctx)
	if err != nil {
		return PreviousReading{}, err
	}
	for _, c := range cycles {
		if r, ok := c.ReadingFor(consumerID); ok {
			return PreviousReading{ConsumerID: consumerID, CycleID: c.ID, PreviousReading: r.CurrentReading}, nil
		}
	}
	return PreviousReading{}, ErrPreviousReadingNotFound
}

// compute seeds missing previous readings and runs the apportionment engine.
func (u *BillingCycleUseCase) compute(ctx context.Context, id string, in CycleInput) (entities.BillingCycle, error) {
	var previous entities.BillingCycle
	if needsSeed(in.Readings) {
		var err error
		previous, err = u.latestBefore(ctx, id)
		if err != nil {
			return entities.BillingCycle{}, err
		}
		if previous.ID != "" {
			log.Printf("[cycle][usecase] seeding previous readings month=%s from=%s", id, previous.ID)
		}
	}

	started := time.Now()
	cycle, err := buildCycle(id, in, previous)
	if err != nil {
		metrics.ObserveApportionment(metrics.ResultInvalid, time.Since(started))
		log.Printf("[cycle][usecase] apportionment rejected month=%s err=%v", id, err)
		return entities.BillingCycle{}, err
	}
	metrics.ObserveApportionment(metrics.ResultSuccess, time.Since(started))
	return cycle, nil
}

func (u *BillingCycleUseCase) latestBefore(ctx context.Context, id string) (entities.BillingCycle, error) {
	cycles, err := u.repo.List(ctx)
	if err != nil {
		return entities.BillingCycle{}, err
	}
	var latest entities.BillingCycle
	for _, c := range cycles {
		if c.ID < id && c.ID > latest.ID {
			latest = c
		}
	}
	return latest, nil
}

func needsSeed(readings []ReadingInput) bool {
	for _, r := range readings {
		if r.PreviousReading == nil {
			return true
		}
	}
	return false
}

func buildCycle(id string, in CycleInput, previous entities.BillingCycle) (entities.BillingCycle, error) {
	total, err := apportionment.SumTotals(in.InputTotals...)
	if err != nil {
		return entities.BillingCycle{}, fmt.Errorf("%w: %w", ErrInvalidInputTotals, err)
	}

	batch := make([]apportionment.Reading, len(in.Readings))
	for i, r := range in.Readings {
		prev := decimal.Zero
		if r.PreviousReading != nil {
			prev = *r.PreviousReading
		} else if pr, ok := previous.ReadingFor(r.ConsumerID); ok {
			prev = pr.CurrentReading
		}
		batch[i] = apportionment.Reading{
			ConsumerID: r.ConsumerID,
			Current:    r.CurrentReading,
			Previous:   prev,
			Source:     r.ConsumerID == entities.SourceDepartmentCode,
		}
	}

	alloc, err := apportionment.ComputeShares(total, batch)
	if err != nil {
		return entities.BillingCycle{}, fmt.Errorf("%w: %w", ErrInvalidReadings, err)
	}

	readings := make([]entities.CycleReading, 0, len(batch))
	next := 0
	for _, r := range batch {
		row := entities.CycleReading{
			ConsumerID:      r.ConsumerID,
			CurrentReading:  r.Current,
			PreviousReading: r.Previous,
			Source:          r.Source,
		}
		if r.Source {
			row.Consumption = apportionment.Consumption(r.Current, r.Previous)
		} else {
			share := alloc.Shares[next]
			next++
			row.Consumption = share.Consumption
			row.UnitPrice = share.UnitPrice
			row.ShareExact = share.ShareExact
			row.ShareRounded = share.ShareRounded
		}
		readings = append(readings, row)
	}

	return entities.BillingCycle{
		ID:               id,
		PeriodLabel:      in.PeriodLabel,
		CycleDate:        in.CycleDate,
		InputTotals:      in.InputTotals,
		TotalAmount:      alloc.TotalAmount,
		TotalConsumption: alloc.TotalConsumption,
		UnitPrice:        alloc.UnitPrice,
		Readings:         readings,
	}, nil
}

func normalizeCycleInput(in CycleInput) (CycleInput, error) {
	in.PeriodLabel = strings.TrimSpace(in.PeriodLabel)
	if in.PeriodLabel == "" || len(in.PeriodLabel) > maxPeriodLabelLen {
		return CycleInput{}, ErrInvalidPeriodLabel
	}
	if in.CycleDate.IsZero() {
		return CycleInput{}, ErrInvalidCycleDate
	}
	in.CycleDate = in.CycleDate.UTC()
	if len(in.InputTotals) == 0 {
		return CycleInput{}, ErrInvalidInputTotals
	}
	if len(in.Readings) == 0 {
		return CycleInput{}, fmt.Errorf("%w: %w", ErrInvalidReadings, apportionment.ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(in.Readings))
	readings := make([]ReadingInput, len(in.Readings))
	for i, r := range in.Readings {
		code := strings.ToUpper(strings.TrimSpace(r.ConsumerID))
		if code == "" {
			return CycleInput{}, ErrInvalidConsumerID
		}
		if _, ok := entities.FindDepartment(code); !ok {
			return CycleInput{}, fmt.Errorf("%w: %s", ErrUnknownConsumer, code)
		}
		if _, dup := seen[code]; dup {
			return CycleInput{}, fmt.Errorf("%w: %s", ErrDuplicateConsumer, code)
		}
		seen[code] = struct{}{}
		r.ConsumerID = code
		readings[i] = r
	}
	in.Readings = readings
	return in, nil
}
