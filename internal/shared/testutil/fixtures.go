package testutil

import (
	"salespulse/pkg/contracts/domain"
)

// SalesCSV is a small export with two groups over two months. Line O5 has
// an unparseable timestamp, O4 an unparseable amount and no customer.
const SalesCSV = `Mã đơn hàng,Thời gian tạo đơn,Mã khách hàng,Mã mặt hàng,Tên mặt hàng,Mã nhóm hàng,Tên nhóm hàng,Thành tiền
O1,2024-01-01 09:10:00,K1,A,Apple,G1,Fruit,100
O1,2024-01-01 09:10:00,K1,C,Carrot,G2,Veg,20
O2,2024-01-08 14:00:00,K1,A,Apple,G1,Fruit,200
O3,2024-02-03 14:30:00,K2,B,Banana,G1,Fruit,50
O4,2024-02-03 20:00:00,,C,Carrot,G2,Veg,abc
O5,broken,K3,B,Banana,G1,Fruit,30
`

// SalesRows returns SalesCSV as raw rows
func SalesRows() []domain.RawRow {
	row := func(order, created, customer, itemCode, itemName, groupCode, groupName, amount string) domain.RawRow {
		return domain.RawRow{
			domain.ColumnOrderID:    order,
			domain.ColumnCreatedAt:  created,
			domain.ColumnCustomerID: customer,
			domain.ColumnItemCode:   itemCode,
			domain.ColumnItemName:   itemName,
			domain.ColumnGroupCode:  groupCode,
			domain.ColumnGroupName:  groupName,
			domain.ColumnAmount:     amount,
		}
	}
	return []domain.RawRow{
		row("O1", "2024-01-01 09:10:00", "K1", "A", "Apple", "G1", "Fruit", "100"),
		row("O1", "2024-01-01 09:10:00", "K1", "C", "Carrot", "G2", "Veg", "20"),
		row("O2", "2024-01-08 14:00:00", "K1", "A", "Apple", "G1", "Fruit", "200"),
		row("O3", "2024-02-03 14:30:00", "K2", "B", "Banana", "G1", "Fruit", "50"),
		row("O4", "2024-02-03 20:00:00", "", "C", "Carrot", "G2", "Veg", "abc"),
		row("O5", "broken", "K3", "B", "Banana", "G1", "Fruit", "30"),
	}
}
