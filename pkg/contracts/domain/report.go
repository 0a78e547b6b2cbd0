package domain

import (
	"time"
)

// ItemRevenue is total revenue of one item
type ItemRevenue struct {
	Item    string  `json:"item"`
	Revenue float64 `json:"revenue"`
}

// GroupRevenue is total revenue of one product group
type GroupRevenue struct {
	Group   string  `json:"group"`
	Revenue float64 `json:"revenue"`
}

// MonthRevenue is total revenue of one calendar month (1-12)
type MonthRevenue struct {
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}

// GroupProbability is the share of all distinct orders touching a group
type GroupProbability struct {
	Group       string  `json:"group"`
	Probability float64 `json:"probability"`
}

// GroupMonthShare is the share of a month's distinct orders touching a group
type GroupMonthShare struct {
	Group       string  `json:"group"`
	Month       int     `json:"month"`
	MonthLabel  string  `json:"month_label"`
	Probability float64 `json:"probability"`
}

// ItemShare is the share of a group's distinct orders containing an item
type ItemShare struct {
	Item        string  `json:"item"`
	Probability float64 `json:"probability"`
}

// GroupItemShares holds the item shares of one group
type GroupItemShares struct {
	Group string      `json:"group"`
	Items []ItemShare `json:"items"`
}

// MonthItemShare is the share of a (group, month) distinct orders containing an item
type MonthItemShare struct {
	Item        string  `json:"item"`
	Month       int     `json:"month"`
	MonthLabel  string  `json:"month_label"`
	Probability float64 `json:"probability"`
}

// GroupMonthItemShares holds the per-month item shares of one group
type GroupMonthItemShares struct {
	Group  string           `json:"group"`
	Shares []MonthItemShare `json:"shares"`
}

// WeekdayAverage is revenue per distinct calendar date falling on a weekday
type WeekdayAverage struct {
	Weekday time.Weekday `json:"-"`
	Day     string       `json:"day"`
	Revenue float64      `json:"revenue"`
}

// DayAverage is revenue per distinct calendar date for a day of month (1-31)
type DayAverage struct {
	Day     int     `json:"day"`
	Revenue float64 `json:"revenue"`
}

// HourAverage is revenue per distinct calendar date for an hour of day
type HourAverage struct {
	Hour    int     `json:"-"`
	Label   string  `json:"hour"`
	Revenue float64 `json:"revenue"`
}

// PurchaseFrequency counts customers having placed exactly Purchases orders
type PurchaseFrequency struct {
	Purchases int `json:"purchases"`
	Customers int `json:"customers"`
}

// DatasetSummary describes the normalized dataset a report was computed from
type DatasetSummary struct {
	Records           int     `json:"records"`
	ValidTimestamps   int     `json:"valid_timestamps"`
	InvalidAmounts    int     `json:"invalid_amounts"`
	DistinctOrders    int     `json:"distinct_orders"`
	DistinctCustomers int     `json:"distinct_customers"`
	Groups            int     `json:"groups"`
	Items             int     `json:"items"`
	TotalRevenue      float64 `json:"total_revenue"`
}
