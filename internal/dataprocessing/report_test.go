package dataprocessing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func sampleRecords(t *testing.T) []domain.Record {
	t.Helper()
	n := NewNormalizer(time.UTC, LocaleVietnamese, nil)

	rows := []domain.RawRow{
		rawRow("O1", "2024-01-01 09:10:00", "A", "Apple", "G1", "Fruit", "100"),
		rawRow("O1", "2024-01-01 09:10:00", "C", "Carrot", "G2", "Veg", "20"),
		rawRow("O2", "2024-01-08 14:00:00", "A", "Apple", "G1", "Fruit", "200"),
		rawRow("O3", "2024-02-03 14:30:00", "B", "Banana", "G1", "Fruit", "50"),
		rawRow("O4", "2024-02-03 20:00:00", "C", "Carrot", "G2", "Veg", "abc"),
		rawRow("O5", "broken", "B", "Banana", "G1", "Fruit", "30"),
	}
	customers := []string{"K1", "K1", "K1", "K2", "", "K3"}
	for i := range rows {
		rows[i][domain.ColumnCustomerID] = customers[i]
	}
	return n.Normalize(rows)
}

func TestScenarioThreeRecords(t *testing.T) {
	records := NewNormalizer(time.UTC, LocaleVietnamese, nil).Normalize([]domain.RawRow{
		rawRow("1", "2024-01-01", "A", "A", "G1", "G1", "100"),
		rawRow("2", "2024-01-02", "A", "A", "G1", "G1", "200"),
		rawRow("2", "2024-01-02", "B", "B", "G1", "G1", "50"),
	})

	report := NewAggregator(LocaleVietnamese, nil).Build(records)

	assert.Equal(t, []domain.ItemRevenue{
		{Item: "A - A", Revenue: 300},
		{Item: "B - B", Revenue: 50},
	}, report.ItemRevenue)
	assert.Equal(t, []domain.GroupRevenue{{Group: "G1 - G1", Revenue: 350}}, report.GroupRevenue)
	assert.Equal(t, []domain.GroupProbability{{Group: "[G1] G1", Probability: 1}}, report.GroupOrderProbability)
}

func TestInvalidTimestampExcludedFromMonthAggregates(t *testing.T) {
	report := NewAggregator(LocaleVietnamese, nil).Build(sampleRecords(t))

	var monthTotal float64
	for _, m := range report.MonthRevenue {
		assert.NotZero(t, m.Month)
		monthTotal += m.Revenue
	}
	assert.Equal(t, 370.0, monthTotal)

	var groupTotal float64
	for _, g := range report.GroupRevenue {
		groupTotal += g.Revenue
	}
	assert.Equal(t, 400.0, groupTotal, "undated line still counts toward group revenue")
}

func TestRevenueConservation(t *testing.T) {
	records := sampleRecords(t)
	report := NewAggregator(LocaleVietnamese, nil).Build(records)

	var items, groups float64
	for _, v := range report.ItemRevenue {
		items += v.Revenue
	}
	for _, v := range report.GroupRevenue {
		groups += v.Revenue
	}

	assert.InDelta(t, report.Summary.TotalRevenue, items, 1e-9)
	assert.InDelta(t, report.Summary.TotalRevenue, groups, 1e-9)
	assert.False(t, math.IsNaN(report.Summary.TotalRevenue))
}

func TestProbabilitiesBounded(t *testing.T) {
	report := NewAggregator(LocaleVietnamese, nil).Build(sampleRecords(t))

	for _, g := range report.GroupItemShare {
		for _, item := range g.Items {
			assert.GreaterOrEqual(t, item.Probability, 0.0)
			assert.LessOrEqual(t, item.Probability, 1.0)
		}
	}
	for _, g := range report.GroupMonthItemShare {
		for _, s := range g.Shares {
			assert.GreaterOrEqual(t, s.Probability, 0.0)
			assert.LessOrEqual(t, s.Probability, 1.0)
		}
	}
}

func TestOrderings(t *testing.T) {
	report := NewAggregator(LocaleVietnamese, nil).Build(sampleRecords(t))

	require.Len(t, report.ItemRevenue, 3)
	assert.Equal(t, "A - Apple", report.ItemRevenue[0].Item)
	assert.Equal(t, 300.0, report.ItemRevenue[0].Revenue)

	assert.Equal(t, []domain.MonthRevenue{{Month: 1, Revenue: 320}, {Month: 2, Revenue: 50}}, report.MonthRevenue)

	// O1 and O4 touch G2, O1 O2 O3 O5 touch G1
	assert.Equal(t, []domain.GroupProbability{
		{Group: "[G1] Fruit", Probability: 0.8},
		{Group: "[G2] Veg", Probability: 0.4},
	}, report.GroupOrderProbability)

	require.Len(t, report.GroupItemShare, 2)
	fruit := report.GroupItemShare[0]
	assert.Equal(t, "G1 - Fruit", fruit.Group)
	assert.Equal(t, []domain.ItemShare{
		{Item: "A - Apple", Probability: 0.5},
		{Item: "B - Banana", Probability: 0.5},
	}, fruit.Items)

	assert.Equal(t, []string{"G1 - Fruit", "G2 - Veg"}, report.Groups())
}

func TestGroupMonthShareUsesMonthDenominator(t *testing.T) {
	report := NewAggregator(LocaleVietnamese, nil).Build(sampleRecords(t))

	want := []domain.GroupMonthShare{
		{Group: "[G1] Fruit", Month: 1, MonthLabel: "T1", Probability: 1},
		{Group: "[G2] Veg", Month: 1, MonthLabel: "T1", Probability: 0.5},
		{Group: "[G1] Fruit", Month: 2, MonthLabel: "T2", Probability: 0.5},
		{Group: "[G2] Veg", Month: 2, MonthLabel: "T2", Probability: 0.5},
	}
	assert.Equal(t, want, report.GroupMonthShare)
}

func TestGroupMonthItemShare(t *testing.T) {
	report := NewAggregator(LocaleVietnamese, nil).Build(sampleRecords(t))

	require.Len(t, report.GroupMonthItemShare, 2)
	assert.Equal(t, []domain.MonthItemShare{
		{Item: "A - Apple", Month: 1, MonthLabel: "T1", Probability: 1},
		{Item: "B - Banana", Month: 2, MonthLabel: "T2", Probability: 1},
	}, report.GroupMonthItemShare[0].Shares)
}

func TestTimeAverages(t *testing.T) {
	report := NewAggregator(LocaleVietnamese, nil).Build(sampleRecords(t))

	// Both Monday dates: 2024-01-01 (120) and 2024-01-08 (200)
	require.NotEmpty(t, report.WeekdayAverage)
	assert.Equal(t, "Thứ 2", report.WeekdayAverage[0].Day)
	assert.Equal(t, 160.0, report.WeekdayAverage[0].Revenue)
	assert.Equal(t, "Thứ 7", report.WeekdayAverage[len(report.WeekdayAverage)-1].Day)

	days := make([]int, 0, len(report.DayOfMonthAverage))
	for _, d := range report.DayOfMonthAverage {
		days = append(days, d.Day)
	}
	assert.Equal(t, []int{1, 3, 8}, days)

	labels := make([]string, 0, len(report.HourAverage))
	for _, h := range report.HourAverage {
		labels = append(labels, h.Label)
	}
	assert.Equal(t, []string{"09:00-09:59", "14:00-14:59", "20:00-20:59"}, labels)
	assert.Equal(t, 125.0, report.HourAverage[1].Revenue)
}

func TestPurchaseFrequencyHistogram(t *testing.T) {
	records := sampleRecords(t)
	report := NewAggregator(LocaleVietnamese, nil).Build(records)

	assert.Equal(t, []domain.PurchaseFrequency{
		{Purchases: 1, Customers: 2},
		{Purchases: 2, Customers: 1},
	}, report.PurchaseFrequency)

	known := Filter(records, func(r domain.Record) bool { return r.CustomerID != "" })
	perCustomer := CountDistinctBy(known, func(r domain.Record) string { return r.CustomerID }, OrderID)
	var want int
	for _, n := range perCustomer {
		want += n
	}
	var got int
	for _, b := range report.PurchaseFrequency {
		got += b.Purchases * b.Customers
	}
	assert.Equal(t, want, got)
}

func TestEmptyDataset(t *testing.T) {
	report := NewAggregator(LocaleVietnamese, nil).Build(nil)

	assert.Empty(t, report.ItemRevenue)
	assert.Empty(t, report.GroupRevenue)
	assert.Empty(t, report.MonthRevenue)
	assert.Empty(t, report.GroupOrderProbability)
	assert.Empty(t, report.GroupMonthShare)
	assert.Empty(t, report.GroupItemShare)
	assert.Empty(t, report.GroupMonthItemShare)
	assert.Empty(t, report.WeekdayAverage)
	assert.Empty(t, report.DayOfMonthAverage)
	assert.Empty(t, report.HourAverage)
	assert.Empty(t, report.PurchaseFrequency)
	assert.Zero(t, report.Summary.Records)
}

func TestSummary(t *testing.T) {
	s := Summarize(sampleRecords(t))

	assert.Equal(t, domain.DatasetSummary{
		Records:           6,
		ValidTimestamps:   5,
		InvalidAmounts:    1,
		DistinctOrders:    5,
		DistinctCustomers: 3,
		Groups:            2,
		Items:             3,
		TotalRevenue:      400,
	}, s)
}
