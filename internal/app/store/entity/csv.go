package entity

import "github.com/shopspring/decimal"

// Строки CSV-выгрузок с фиксированными заголовками колонок

type ProductCSVRow struct {
	Name          string          `csv:"Name"`
	Category      string          `csv:"Category"`
	Size          string          `csv:"Size"`
	Color         string          `csv:"Color"`
	Price         decimal.Decimal `csv:"Price"`
	StockQuantity int             `csv:"Stock Quantity"`
}

type SaleCSVRow struct {
	Product  string          `csv:"Product"`
	Category string          `csv:"Category"`
	Employee string          `csv:"Employee"`
	Date     string          `csv:"Date"`
	Quantity int             `csv:"Quantity"`
	Price    decimal.Decimal `csv:"Price"`
	Total    decimal.Decimal `csv:"Total"`
}

type InventoryCSVRow struct {
	Product      string          `csv:"Product"`
	Category     string          `csv:"Category"`
	Supplier     string          `csv:"Supplier"`
	Quantity     int             `csv:"Quantity"`
	UnitPrice    decimal.Decimal `csv:"Unit Price"`
	TotalValue   decimal.Decimal `csv:"Total Value"`
	DateReceived string          `csv:"Date Received"`
}

type EmployeeCSVRow struct {
	Name         string          `csv:"Name"`
	Position     string          `csv:"Position"`
	Phone        string          `csv:"Phone"`
	Email        string          `csv:"Email"`
	DateJoined   string          `csv:"Date Joined"`
	SalesCount   int64           `csv:"Sales Count"`
	SalesRevenue decimal.Decimal `csv:"Sales Revenue"`
}
