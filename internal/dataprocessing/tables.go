package dataprocessing

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownTable is returned when a table name is not part of the report
var ErrUnknownTable = errors.New("unknown report table")

// Table names, stable across exporters and the HTTP API
const (
	TableItemRevenue           = "item_revenue"
	TableGroupRevenue          = "group_revenue"
	TableMonthRevenue          = "month_revenue"
	TableGroupOrderProbability = "group_order_probability"
	TableGroupMonthShare       = "group_month_share"
	TableGroupItemShare        = "group_item_share"
	TableGroupMonthItemShare   = "group_month_item_share"
	TableWeekdayAverage        = "weekday_average"
	TableDayOfMonthAverage     = "day_of_month_average"
	TableHourAverage           = "hour_average"
	TablePurchaseFrequency     = "purchase_frequency"
)

// TableNames lists every table in report order
var TableNames = []string{
	TableItemRevenue,
	TableGroupRevenue,
	TableMonthRevenue,
	TableGroupOrderProbability,
	TableGroupMonthShare,
	TableGroupItemShare,
	TableGroupMonthItemShare,
	TableWeekdayAverage,
	TableDayOfMonthAverage,
	TableHourAverage,
	TablePurchaseFrequency,
}

// Table is a flat, string-typed view of one aggregate
type Table struct {
	Name    string     `json:"name"`
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Tables returns every aggregate as a table, in report order
func (r *Report) Tables() []Table {
	tables := make([]Table, 0, len(TableNames))
	for _, name := range TableNames {
		t, _ := r.Table(name)
		tables = append(tables, t)
	}
	return tables
}

// Table returns a single aggregate by name
func (r *Report) Table(name string) (Table, error) {
	t := Table{Name: name}

	switch name {
	case TableItemRevenue:
		t.Title = "Revenue by item"
		t.Headers = []string{"item", "revenue"}
		for _, v := range r.ItemRevenue {
			t.Rows = append(t.Rows, []string{v.Item, number(v.Revenue)})
		}
	case TableGroupRevenue:
		t.Title = "Revenue by group"
		t.Headers = []string{"group", "revenue"}
		for _, v := range r.GroupRevenue {
			t.Rows = append(t.Rows, []string{v.Group, number(v.Revenue)})
		}
	case TableMonthRevenue:
		t.Title = "Revenue by month"
		t.Headers = []string{"month", "revenue"}
		for _, v := range r.MonthRevenue {
			t.Rows = append(t.Rows, []string{MonthLabel(v.Month), number(v.Revenue)})
		}
	case TableGroupOrderProbability:
		t.Title = "Order probability by group"
		t.Headers = []string{"group", "probability"}
		for _, v := range r.GroupOrderProbability {
			t.Rows = append(t.Rows, []string{v.Group, number(v.Probability)})
		}
	case TableGroupMonthShare:
		t.Title = "Monthly order share by group"
		t.Headers = []string{"month", "group", "probability"}
		for _, v := range r.GroupMonthShare {
			t.Rows = append(t.Rows, []string{v.MonthLabel, v.Group, number(v.Probability)})
		}
	case TableGroupItemShare:
		t.Title = "Item share within group"
		t.Headers = []string{"group", "item", "probability"}
		for _, g := range r.GroupItemShare {
			for _, v := range g.Items {
				t.Rows = append(t.Rows, []string{g.Group, v.Item, number(v.Probability)})
			}
		}
	case TableGroupMonthItemShare:
		t.Title = "Monthly item share within group"
		t.Headers = []string{"group", "month", "item", "probability"}
		for _, g := range r.GroupMonthItemShare {
			for _, v := range g.Shares {
				t.Rows = append(t.Rows, []string{g.Group, v.MonthLabel, v.Item, number(v.Probability)})
			}
		}
	case TableWeekdayAverage:
		t.Title = "Average revenue by weekday"
		t.Headers = []string{"weekday", "revenue"}
		for _, v := range r.WeekdayAverage {
			t.Rows = append(t.Rows, []string{v.Day, number(v.Revenue)})
		}
	case TableDayOfMonthAverage:
		t.Title = "Average revenue by day of month"
		t.Headers = []string{"day", "revenue"}
		for _, v := range r.DayOfMonthAverage {
			t.Rows = append(t.Rows, []string{strconv.Itoa(v.Day), number(v.Revenue)})
		}
	case TableHourAverage:
		t.Title = "Average revenue by hour"
		t.Headers = []string{"hour", "revenue"}
		for _, v := range r.HourAverage {
			t.Rows = append(t.Rows, []string{v.Label, number(v.Revenue)})
		}
	case TablePurchaseFrequency:
		t.Title = "Purchase frequency"
		t.Headers = []string{"purchases", "customers"}
		for _, v := range r.PurchaseFrequency {
			t.Rows = append(t.Rows, []string{strconv.Itoa(v.Purchases), strconv.Itoa(v.Customers)})
		}
	default:
		return Table{}, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}

	return t, nil
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
