package domain

import (
	"math"
	"time"
)

// Source column headers as exported by the sales spreadsheet
const (
	ColumnOrderID    = "Mã đơn hàng"
	ColumnCreatedAt  = "Thời gian tạo đơn"
	ColumnItemCode   = "Mã mặt hàng"
	ColumnItemName   = "Tên mặt hàng"
	ColumnGroupCode  = "Mã nhóm hàng"
	ColumnGroupName  = "Tên nhóm hàng"
	ColumnAmount     = "Thành tiền"
	ColumnCustomerID = "Mã khách hàng"
)

// RequiredColumns lists the headers a dataset must carry to be aggregated
var RequiredColumns = []string{
	ColumnOrderID,
	ColumnCreatedAt,
	ColumnItemCode,
	ColumnItemName,
	ColumnGroupCode,
	ColumnGroupName,
	ColumnAmount,
}

// RawRow is one untyped row of the tabular source, keyed by column header.
// Any field may be absent or malformed.
type RawRow map[string]string

// Record is a normalized sales line. A single order may span several records.
type Record struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ItemCode   string    `json:"item_code"`
	ItemName   string    `json:"item_name"`
	GroupCode  string    `json:"group_code"`
	GroupName  string    `json:"group_name"`

	// Amount is NaN when the source value could not be parsed
	Amount float64 `json:"-"`

	// Derived from CreatedAt; zero values when the timestamp is invalid
	Month        int          `json:"month"`
	Weekday      time.Weekday `json:"-"`
	WeekdayLabel string       `json:"weekday,omitempty"`
	Date         string       `json:"date,omitempty"`
	Day          int          `json:"day"`
	Hour         int          `json:"hour"`

	GroupLabel string `json:"group_label"`
}

// HasTimestamp reports whether CreatedAt was parsed. Every date-dependent
// aggregate filters on this predicate.
func (r Record) HasTimestamp() bool {
	return !r.CreatedAt.IsZero()
}

// HasAmount reports whether Amount holds a parsed number
func (r Record) HasAmount() bool {
	return !math.IsNaN(r.Amount)
}

// ItemKey identifies the item as "code - name"
func (r Record) ItemKey() string {
	return r.ItemCode + " - " + r.ItemName
}

// GroupKey identifies the group as "code - name"
func (r Record) GroupKey() string {
	return r.GroupCode + " - " + r.GroupName
}

// FormatGroupLabel composes the "[code] name" display label of a group
func FormatGroupLabel(code, name string) string {
	return "[" + code + "] " + name
}
