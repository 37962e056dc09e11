package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/dstcrm/dstcrm/internal/app/billing"
	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
)

// Standard full-year membership tiers.
const (
	tierBase   = models.Cents(18000)
	tierDouble = models.Cents(36000)
)

// PaymentReader lists payments for aggregation
type PaymentReader interface {
	GetAllPayments(ctx context.Context) ([]*models.Payment, error)
}

// StatsService computes financial aggregates over students and payments.
// Its expected-amount rule follows the academic calendar and is deliberately
// distinct from the installment heuristic used by the reconciliation report.
type StatsService struct {
	students StudentReader
	payments PaymentReader
	logger   zerolog.Logger
	now      func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(students StudentReader, payments PaymentReader, logger zerolog.Logger) *StatsService {
	return &StatsService{
		students: students,
		payments: payments,
		logger:   logger,
		now:      time.Now,
	}
}

// Finance aggregates paid, expected and full-year totals for a subset of
// students. A nil region selects all students. With a region filter active,
// payments matched to a student outside the subset are excluded while
// unmatched payments still count toward paid.
func (s *StatsService) Finance(ctx context.Context, region *string) (*dto.FinanceReportResponse, error) {
	students, err := s.students.GetAllStudents(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("finance stats failed to load students: %w", err)
	}
	payments, err := s.payments.GetAllPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("finance stats failed to load payments: %w", err)
	}

	subset := "all"
	var inSubset map[string]bool
	if region != nil {
		subset = *region
		inSubset = make(map[string]bool, len(students))
		for _, student := range students {
			inSubset[student.ID] = true
		}
	}

	report := s.finance(students, payments, inSubset)
	report.Subset = subset
	return report, nil
}

func (s *StatsService) finance(students []*models.Student, payments []*models.Payment, inSubset map[string]bool) *dto.FinanceReportResponse {
	var paid models.Cents
	for _, payment := range payments {
		if inSubset != nil && payment.MatchedStudentID != nil && !inSubset[*payment.MatchedStudentID] {
			continue
		}
		paid += payment.Amount
	}

	academicMonth := billing.AcademicMonthIndex(s.now().Month())
	var expected, final models.Cents
	for _, student := range students {
		if billing.DueInMonth(student.Period, academicMonth) {
			expected += student.Amount
		}
		final += billing.FullYearLiability(student.Period, student.Amount)
	}

	return &dto.FinanceReportResponse{
		StudentCount: len(students),
		Paid:         paid.String(),
		Expected:     expected.String(),
		Final:        final.String(),
		Difference:   (paid - expected).String(),
	}
}

// Overview returns the unfiltered totals plus a per-region breakdown over
// the normalized region codes, including the unknown bucket.
func (s *StatsService) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	students, err := s.students.GetAllStudents(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("overview stats failed to load students: %w", err)
	}
	payments, err := s.payments.GetAllPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("overview stats failed to load payments: %w", err)
	}

	total := s.finance(students, payments, nil)
	total.Subset = "all"

	byRegion := make(map[string][]*models.Student)
	for _, student := range students {
		code := models.NormalizeRegion(student.Region)
		byRegion[code] = append(byRegion[code], student)
	}

	regionOrder := append(models.RegionCodes(), models.UnknownRegion)
	regions := []dto.RegionFinanceResponse{}
	for _, code := range regionOrder {
		regionStudents, ok := byRegion[code]
		if !ok {
			continue
		}

		inSubset := make(map[string]bool, len(regionStudents))
		for _, student := range regionStudents {
			inSubset[student.ID] = true
		}

		report := s.finance(regionStudents, payments, inSubset)
		regions = append(regions, dto.RegionFinanceResponse{
			Region:       code,
			StudentCount: report.StudentCount,
			Paid:         report.Paid,
			Expected:     report.Expected,
			Final:        report.Final,
			Difference:   report.Difference,
		})
	}

	return &dto.OverviewResponse{Total: *total, Regions: regions}, nil
}

// Tiers tabulates students by full-year liability. The two standard
// membership tiers get fixed labels; every other distinct liability amount
// becomes its own "other" bucket.
func (s *StatsService) Tiers(ctx context.Context) (*dto.TiersResponse, error) {
	students, err := s.students.GetAllStudents(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("tier stats failed to load students: %w", err)
	}

	counts := make(map[models.Cents]int)
	for _, student := range students {
		counts[billing.FullYearLiability(student.Period, student.Amount)]++
	}

	liabilities := make([]models.Cents, 0, len(counts))
	for liability := range counts {
		liabilities = append(liabilities, liability)
	}
	sort.Slice(liabilities, func(i, j int) bool { return liabilities[i] < liabilities[j] })

	tiers := make([]dto.TierResponse, 0, len(liabilities))
	for _, liability := range liabilities {
		label := "other"
		switch liability {
		case tierBase:
			label = "standard"
		case tierDouble:
			label = "double"
		}
		tiers = append(tiers, dto.TierResponse{
			Liability:    liability.String(),
			Label:        label,
			StudentCount: counts[liability],
		})
	}

	return &dto.TiersResponse{Tiers: tiers}, nil
}
