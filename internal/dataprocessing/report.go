package dataprocessing

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"salespulse/pkg/contracts/domain"
)

// Report bundles every aggregate view of a normalized dataset
type Report struct {
	Summary               domain.DatasetSummary         `json:"summary"`
	ItemRevenue           []domain.ItemRevenue          `json:"item_revenue"`
	GroupRevenue          []domain.GroupRevenue         `json:"group_revenue"`
	MonthRevenue          []domain.MonthRevenue         `json:"month_revenue"`
	GroupOrderProbability []domain.GroupProbability     `json:"group_order_probability"`
	GroupMonthShare       []domain.GroupMonthShare      `json:"group_month_share"`
	GroupItemShare        []domain.GroupItemShares      `json:"group_item_share"`
	GroupMonthItemShare   []domain.GroupMonthItemShares `json:"group_month_item_share"`
	WeekdayAverage        []domain.WeekdayAverage       `json:"weekday_average"`
	DayOfMonthAverage     []domain.DayAverage           `json:"day_of_month_average"`
	HourAverage           []domain.HourAverage          `json:"hour_average"`
	PurchaseFrequency     []domain.PurchaseFrequency    `json:"purchase_frequency"`
}

// Aggregator computes a Report from normalized records
type Aggregator struct {
	locale Locale
	logger *slog.Logger
}

// NewAggregator creates an aggregator using locale for weekday labels
func NewAggregator(locale Locale, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		locale: locale,
		logger: logger.With(slog.String("component", "aggregator")),
	}
}

// Build derives every aggregate. Records with an invalid timestamp only feed
// the aggregates that do not depend on the date.
func (a *Aggregator) Build(records []domain.Record) *Report {
	start := time.Now()
	dated := Filter(records, domain.Record.HasTimestamp)

	report := &Report{
		Summary:               Summarize(records),
		ItemRevenue:           ItemRevenue(records),
		GroupRevenue:          GroupRevenue(records),
		MonthRevenue:          MonthRevenue(dated),
		GroupOrderProbability: GroupOrderProbability(records),
		GroupMonthShare:       GroupMonthShare(dated),
		GroupItemShare:        GroupItemShare(records),
		GroupMonthItemShare:   GroupMonthItemShare(dated),
		WeekdayAverage:        WeekdayAverage(dated, a.locale),
		DayOfMonthAverage:     DayOfMonthAverage(dated),
		HourAverage:           HourAverage(dated),
		PurchaseFrequency:     PurchaseFrequency(records),
	}

	a.logger.Info("aggregated dataset",
		slog.Int("records", len(records)),
		slog.Int("dated_records", len(dated)),
		slog.Int("groups", report.Summary.Groups),
		slog.Duration("duration", time.Since(start)))

	return report
}

// Groups returns the distinct group keys having item shares, in report order
func (r *Report) Groups() []string {
	groups := make([]string, 0, len(r.GroupItemShare))
	for _, g := range r.GroupItemShare {
		groups = append(groups, g.Group)
	}
	return groups
}

// Summarize counts the basic dimensions of the dataset
func Summarize(records []domain.Record) domain.DatasetSummary {
	s := domain.DatasetSummary{
		Records:        len(records),
		DistinctOrders: CountDistinct(records, OrderID),
	}

	customers := make(map[string]struct{})
	groups := make(map[string]struct{})
	items := make(map[string]struct{})
	for _, r := range records {
		if r.HasTimestamp() {
			s.ValidTimestamps++
		}
		if r.HasAmount() {
			s.TotalRevenue += r.Amount
		} else {
			s.InvalidAmounts++
		}
		if r.CustomerID != "" {
			customers[r.CustomerID] = struct{}{}
		}
		groups[r.GroupKey()] = struct{}{}
		items[r.ItemKey()] = struct{}{}
	}
	s.DistinctCustomers = len(customers)
	s.Groups = len(groups)
	s.Items = len(items)
	return s
}

// ItemRevenue sums revenue per item, highest first
func ItemRevenue(records []domain.Record) []domain.ItemRevenue {
	sums := SumBy(records, domain.Record.ItemKey)
	out := make([]domain.ItemRevenue, 0, len(sums))
	for item, revenue := range sums {
		out = append(out, domain.ItemRevenue{Item: item, Revenue: revenue})
	}
	slices.SortFunc(out, func(a, b domain.ItemRevenue) int {
		return byValueDesc(a.Revenue, b.Revenue, a.Item, b.Item)
	})
	return out
}

// GroupRevenue sums revenue per group, highest first
func GroupRevenue(records []domain.Record) []domain.GroupRevenue {
	sums := SumBy(records, domain.Record.GroupKey)
	out := make([]domain.GroupRevenue, 0, len(sums))
	for group, revenue := range sums {
		out = append(out, domain.GroupRevenue{Group: group, Revenue: revenue})
	}
	slices.SortFunc(out, func(a, b domain.GroupRevenue) int {
		return byValueDesc(a.Revenue, b.Revenue, a.Group, b.Group)
	})
	return out
}

// MonthRevenue sums revenue per calendar month in ascending month order.
// Callers pass records with a valid timestamp.
func MonthRevenue(records []domain.Record) []domain.MonthRevenue {
	sums := SumBy(records, func(r domain.Record) int { return r.Month })
	out := make([]domain.MonthRevenue, 0, len(sums))
	for month, revenue := range sums {
		out = append(out, domain.MonthRevenue{Month: month, Revenue: revenue})
	}
	slices.SortFunc(out, func(a, b domain.MonthRevenue) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return out
}

// GroupOrderProbability is the fraction of all distinct orders that contain
// at least one line of each group
func GroupOrderProbability(records []domain.Record) []domain.GroupProbability {
	total := float64(CountDistinct(records, OrderID))
	counts := CountDistinctBy(records, func(r domain.Record) string { return r.GroupLabel }, OrderID)

	out := make([]domain.GroupProbability, 0, len(counts))
	for group, n := range counts {
		out = append(out, domain.GroupProbability{
			Group:       group,
			Probability: SafeDivide(float64(n), total),
		})
	}
	slices.SortFunc(out, func(a, b domain.GroupProbability) int {
		return byValueDesc(a.Probability, b.Probability, a.Group, b.Group)
	})
	return out
}

// GroupMonthShare is, per month, the fraction of that month's distinct orders
// containing each group. The denominator is month-wide, so the shares of one
// month may sum above 1.
func GroupMonthShare(records []domain.Record) []domain.GroupMonthShare {
	probs := ConditionalProbability(records,
		func(r domain.Record) int { return r.Month },
		func(r domain.Record) string { return r.GroupLabel },
		OrderID)

	var out []domain.GroupMonthShare
	for month, groups := range probs {
		for group, p := range groups {
			out = append(out, domain.GroupMonthShare{
				Group:       group,
				Month:       month,
				MonthLabel:  MonthLabel(month),
				Probability: p,
			})
		}
	}
	slices.SortFunc(out, func(a, b domain.GroupMonthShare) int {
		if c := cmp.Compare(a.Month, b.Month); c != 0 {
			return c
		}
		return cmp.Compare(a.Group, b.Group)
	})
	return out
}

// GroupItemShare is, per group, the fraction of the group's distinct orders
// containing each item. Groups ascend by key; items descend by probability.
func GroupItemShare(records []domain.Record) []domain.GroupItemShares {
	probs := ConditionalProbability(records, domain.Record.GroupKey, domain.Record.ItemKey, OrderID)

	out := make([]domain.GroupItemShares, 0, len(probs))
	for group, items := range probs {
		shares := make([]domain.ItemShare, 0, len(items))
		for item, p := range items {
			shares = append(shares, domain.ItemShare{Item: item, Probability: p})
		}
		slices.SortFunc(shares, func(a, b domain.ItemShare) int {
			return byValueDesc(a.Probability, b.Probability, a.Item, b.Item)
		})
		out = append(out, domain.GroupItemShares{Group: group, Items: shares})
	}
	slices.SortFunc(out, func(a, b domain.GroupItemShares) int {
		return cmp.Compare(a.Group, b.Group)
	})
	return out
}

// GroupMonthItemShare is, per group and month, the fraction of that group's
// distinct orders in the month containing each item
func GroupMonthItemShare(records []domain.Record) []domain.GroupMonthItemShares {
	probs := NestedConditionalProbability(records,
		domain.Record.GroupKey,
		func(r domain.Record) int { return r.Month },
		domain.Record.ItemKey,
		OrderID)

	out := make([]domain.GroupMonthItemShares, 0, len(probs))
	for group, months := range probs {
		var shares []domain.MonthItemShare
		for month, items := range months {
			for item, p := range items {
				shares = append(shares, domain.MonthItemShare{
					Item:        item,
					Month:       month,
					MonthLabel:  MonthLabel(month),
					Probability: p,
				})
			}
		}
		slices.SortFunc(shares, func(a, b domain.MonthItemShare) int {
			if c := cmp.Compare(a.Month, b.Month); c != 0 {
				return c
			}
			return cmp.Compare(a.Item, b.Item)
		})
		out = append(out, domain.GroupMonthItemShares{Group: group, Shares: shares})
	}
	slices.SortFunc(out, func(a, b domain.GroupMonthItemShares) int {
		return cmp.Compare(a.Group, b.Group)
	})
	return out
}

// WeekdayAverage is revenue per distinct date for each weekday, Monday first.
// Weekdays without any record are omitted.
func WeekdayAverage(records []domain.Record, locale Locale) []domain.WeekdayAverage {
	avg := AveragePerDate(records, func(r domain.Record) time.Weekday { return r.Weekday })

	out := make([]domain.WeekdayAverage, 0, len(avg))
	for _, d := range WeekdayOrder {
		revenue, ok := avg[d]
		if !ok {
			continue
		}
		out = append(out, domain.WeekdayAverage{
			Weekday: d,
			Day:     locale.WeekdayLabel(d),
			Revenue: revenue,
		})
	}
	return out
}

// DayOfMonthAverage is revenue per distinct date for each day of month
func DayOfMonthAverage(records []domain.Record) []domain.DayAverage {
	avg := AveragePerDate(records, func(r domain.Record) int { return r.Day })

	out := make([]domain.DayAverage, 0, len(avg))
	for day, revenue := range avg {
		out = append(out, domain.DayAverage{Day: day, Revenue: revenue})
	}
	slices.SortFunc(out, func(a, b domain.DayAverage) int {
		return cmp.Compare(a.Day, b.Day)
	})
	return out
}

// HourAverage is revenue per distinct date for each hour of day. Labels are
// zero padded so lexicographic order equals numeric order.
func HourAverage(records []domain.Record) []domain.HourAverage {
	avg := AveragePerDate(records, func(r domain.Record) int { return r.Hour })

	out := make([]domain.HourAverage, 0, len(avg))
	for hour, revenue := range avg {
		out = append(out, domain.HourAverage{Hour: hour, Label: HourLabel(hour), Revenue: revenue})
	}
	slices.SortFunc(out, func(a, b domain.HourAverage) int {
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

// PurchaseFrequency is the histogram of distinct orders per customer.
// Lines without a customer id are not attributed to anyone.
func PurchaseFrequency(records []domain.Record) []domain.PurchaseFrequency {
	known := Filter(records, func(r domain.Record) bool { return r.CustomerID != "" })
	perCustomer := CountDistinctBy(known, func(r domain.Record) string { return r.CustomerID }, OrderID)

	histogram := make(map[int]int)
	for _, n := range perCustomer {
		histogram[n]++
	}

	out := make([]domain.PurchaseFrequency, 0, len(histogram))
	for purchases, customers := range histogram {
		out = append(out, domain.PurchaseFrequency{Purchases: purchases, Customers: customers})
	}
	slices.SortFunc(out, func(a, b domain.PurchaseFrequency) int {
		return cmp.Compare(a.Purchases, b.Purchases)
	})
	return out
}

// byValueDesc orders by value descending, then key ascending
func byValueDesc(va, vb float64, ka, kb string) int {
	if c := cmp.Compare(vb, va); c != 0 {
		return c
	}
	return cmp.Compare(ka, kb)
}
