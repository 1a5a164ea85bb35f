package stats

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"pantry-planner/domain"
)

const (
	topCategoriesLimit = 5
	monthlySpendLimit  = 6
	monthLayout        = "2006-01"
)

type (
	StatsService interface {
		GetStatistics(ctx context.Context) (domain.StatisticsResponse, error)
	}

	statsService struct {
		statsRepository StatsRepository
	}
)

func NewStatsService(statsRepository StatsRepository) StatsService {
	return &statsService{statsRepository: statsRepository}
}

// GetStatistics derives every view fresh from current data. Spend sums
// use the current quantity, not the originally purchased one, so spend
// is understated once consumption has occurred; this mirrors how the
// figures have always been reported. Any repository failure fails the
// whole call.
func (s *statsService) GetStatistics(ctx context.Context) (domain.StatisticsResponse, error) {
	totalItems, err := s.statsRepository.CountItems(ctx)
	if err != nil {
		return domain.StatisticsResponse{}, fmt.Errorf("counting items: %w", err)
	}

	availableItems, err := s.statsRepository.CountAvailableItems(ctx)
	if err != nil {
		return domain.StatisticsResponse{}, fmt.Errorf("counting available items: %w", err)
	}

	rows, err := s.statsRepository.GetItemAggregates(ctx)
	if err != nil {
		return domain.StatisticsResponse{}, fmt.Errorf("loading item aggregates: %w", err)
	}

	receiptTotals, err := s.statsRepository.GetReceiptTotals(ctx)
	if err != nil {
		return domain.StatisticsResponse{}, fmt.Errorf("loading receipt totals: %w", err)
	}

	totalSpend := decimal.Zero
	categoryCounts := make(map[string]int)
	monthlyTotals := make(map[string]decimal.Decimal)

	for _, row := range rows {
		spend := row.Price.Mul(row.Quantity)
		totalSpend = totalSpend.Add(spend)

		if row.Category != "" {
			categoryCounts[row.Category]++
		}

		if row.PurchaseDate != nil {
			month := row.PurchaseDate.Format(monthLayout)
			monthlyTotals[month] = monthlyTotals[month].Add(spend)
		}
	}

	return domain.StatisticsResponse{
		TotalSpend:      totalSpend.Round(2).InexactFloat64(),
		TotalItems:      totalItems,
		AvailableItems:  availableItems,
		TopCategories:   topCategories(categoryCounts),
		MonthlySpend:    monthlySpend(monthlyTotals),
		AvgReceiptValue: avgReceiptValue(receiptTotals),
	}, nil
}

// topCategories orders by item count descending, name ascending on ties,
// capped at five entries.
func topCategories(counts map[string]int) []domain.CategoryCount {
	result := make([]domain.CategoryCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, domain.CategoryCount{Name: name, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})

	if len(result) > topCategoriesLimit {
		result = result[:topCategoriesLimit]
	}
	return result
}

// monthlySpend keeps the six most recent year-months present in the
// data, most recent first. Sparse data yields fewer entries, never
// padding for empty calendar months.
func monthlySpend(totals map[string]decimal.Decimal) []domain.MonthlySpend {
	months := make([]string, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	if len(months) > monthlySpendLimit {
		months = months[:monthlySpendLimit]
	}

	result := make([]domain.MonthlySpend, 0, len(months))
	for _, month := range months {
		result = append(result, domain.MonthlySpend{
			Month: month,
			Total: totals[month].Round(2).InexactFloat64(),
		})
	}
	return result
}

func avgReceiptValue(totals []decimal.Decimal) float64 {
	if len(totals) == 0 {
		return 0
	}

	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum.Div(decimal.NewFromInt(int64(len(totals)))).Round(2).InexactFloat64()
}
