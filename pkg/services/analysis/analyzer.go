package analysis

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// Analyze computes every aggregate over the record set. It fails with
// domain.ErrNoRecords on an empty set and never returns a partial result.
// Group breakdowns are deterministic: descending by value, ties in
// first-seen key order. Amounts are rounded to 2 decimal places once, after
// aggregation.
func Analyze(ctx context.Context, records domain.RecordSet) (*domain.Analysis, error) {
	if len(records) == 0 {
		return nil, domain.ErrNoRecords
	}

	zerolog.Ctx(ctx).Info().Int("records", len(records)).Msg("analyzing sales records")

	total := decimal.Zero
	maxSale := records[0].Total
	for _, r := range records {
		total = total.Add(r.Total)
		if r.Total.GreaterThan(maxSale) {
			maxSale = r.Total
		}
	}
	count := decimal.NewFromInt(int64(len(records)))

	return &domain.Analysis{
		TotalSales:      total.Round(2),
		AvgSale:         total.Div(count).Round(2),
		MaxSale:         maxSale.Round(2),
		ProductSales:    groupTotals(records, domain.DimensionProduct),
		RegionSales:     groupTotals(records, domain.DimensionRegion),
		ChannelSales:    groupTotals(records, domain.DimensionChannel),
		UnitsByProduct:  unitsByProduct(records),
		AvgSaleByRegion: groupMeans(records, domain.DimensionRegion),
		WeeklySales:     weeklyTotals(records),
	}, nil
}

// groupTotals sums record totals per dimension key, sorted descending.
func groupTotals(records domain.RecordSet, dim domain.Dimension) []domain.GroupTotal {
	keys, sums, _ := accumulate(records, dim)

	out := make([]domain.GroupTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.GroupTotal{Key: k, Total: sums[k].Round(2)})
	}
	sortDescending(out)
	return out
}

// groupMeans averages record totals per dimension key, sorted descending.
func groupMeans(records domain.RecordSet, dim domain.Dimension) []domain.GroupTotal {
	keys, sums, counts := accumulate(records, dim)

	out := make([]domain.GroupTotal, 0, len(keys))
	for _, k := range keys {
		mean := sums[k].Div(decimal.NewFromInt(counts[k]))
		out = append(out, domain.GroupTotal{Key: k, Total: mean.Round(2)})
	}
	sortDescending(out)
	return out
}

// accumulate walks the records once, tracking first-seen key order alongside
// per-key sums and counts. The order slice is what keeps tie-breaking stable.
func accumulate(records domain.RecordSet, dim domain.Dimension) ([]string, map[string]decimal.Decimal, map[string]int64) {
	var keys []string
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int64)
	for _, r := range records {
		k := dim.Key(r)
		if _, seen := sums[k]; !seen {
			keys = append(keys, k)
			sums[k] = decimal.Zero
		}
		sums[k] = sums[k].Add(r.Total)
		counts[k]++
	}
	return keys, sums, counts
}

func sortDescending(groups []domain.GroupTotal) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total.GreaterThan(groups[j].Total)
	})
}

func unitsByProduct(records domain.RecordSet) []domain.UnitCount {
	var keys []string
	units := make(map[string]int)
	for _, r := range records {
		if _, seen := units[r.Product]; !seen {
			keys = append(keys, r.Product)
		}
		units[r.Product] += r.Units
	}

	out := make([]domain.UnitCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.UnitCount{Key: k, Units: units[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Units > out[j].Units
	})
	return out
}

// weeklyTotals buckets totals by ISO week number, ascending by week.
func weeklyTotals(records domain.RecordSet) []domain.WeekTotal {
	sums := make(map[int]decimal.Decimal)
	for _, r := range records {
		w := r.ISOWeek()
		sums[w] = sums[w].Add(r.Total)
	}

	weeks := make([]int, 0, len(sums))
	for w := range sums {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	out := make([]domain.WeekTotal, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, domain.WeekTotal{Week: w, Total: sums[w].Round(2)})
	}
	return out
}
