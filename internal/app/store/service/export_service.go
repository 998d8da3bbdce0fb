package service

import (
	"context"
	"fmt"
	"time"

	"storetrack/internal/app/store/entity"

	"github.com/shopspring/decimal"
)

// Форматы дат в CSV выгрузках
const (
	csvDateTimeFormat = "2006-01-02 15:04"
	csvDateFormat     = "2006-01-02"
)

// ExportProducts собирает строки CSV выгрузки по всем товарам
func (s *ReportService) ExportProducts(ctx context.Context) ([]entity.ProductCSVRow, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	rows := make([]entity.ProductCSVRow, 0, len(products))
	for i := range products {
		p := &products[i]

		row := entity.ProductCSVRow{
			Name:          p.Name,
			Price:         p.Price,
			StockQuantity: p.StockQuantity,
		}
		if p.Category != nil {
			row.Category = p.Category.Name
		}
		if p.Size != nil {
			row.Size = *p.Size
		}
		if p.Color != nil {
			row.Color = *p.Color
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// ExportSales собирает строки CSV выгрузки по продажам под фильтром
// Выгружается вся выборка, без пагинации
func (s *ReportService) ExportSales(ctx context.Context, f entity.SaleFilter) ([]entity.SaleCSVRow, error) {
	sales, err := s.saleRepo.ListAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	rows := make([]entity.SaleCSVRow, 0, len(sales))
	for i := range sales {
		sale := &sales[i]

		row := entity.SaleCSVRow{
			Date:     sale.DateTime.Format(csvDateTimeFormat),
			Quantity: sale.Quantity,
			Price:    sale.Price,
			Total:    sale.Price.Mul(decimal.NewFromInt(int64(sale.Quantity))),
		}
		if sale.Product != nil {
			row.Product = sale.Product.Name
			if sale.Product.Category != nil {
				row.Category = sale.Product.Category.Name
			}
		}
		if sale.Employee != nil {
			row.Employee = sale.Employee.Name
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// ExportInventories собирает строки CSV выгрузки по поступлениям под фильтром
func (s *ReportService) ExportInventories(ctx context.Context, f entity.InventoryFilter) ([]entity.InventoryCSVRow, error) {
	inventories, err := s.inventoryRepo.ListAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventories: %w", err)
	}

	rows := make([]entity.InventoryCSVRow, 0, len(inventories))
	for i := range inventories {
		inv := &inventories[i]

		row := entity.InventoryCSVRow{
			Quantity:     inv.Quantity,
			UnitPrice:    inv.UnitPrice,
			TotalValue:   inv.UnitPrice.Mul(decimal.NewFromInt(int64(inv.Quantity))),
			DateReceived: inv.DateReceived.Format(csvDateFormat),
		}
		if inv.Product != nil {
			row.Product = inv.Product.Name
			if inv.Product.Category != nil {
				row.Category = inv.Product.Category.Name
			}
		}
		if inv.Supplier != nil {
			row.Supplier = inv.Supplier.Name
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// ExportEmployees собирает строки CSV выгрузки по сотрудникам
// с их показателями продаж за все время
func (s *ReportService) ExportEmployees(ctx context.Context, now time.Time) ([]entity.EmployeeCSVRow, error) {
	employees, err := s.employeeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}

	rows := make([]entity.EmployeeCSVRow, 0, len(employees))
	for i := range employees {
		emp := &employees[i]
		f := entity.SaleFilter{Now: now, EmployeeID: &emp.ID}

		count, err := s.saleRepo.Count(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("failed to count sales: %w", err)
		}

		revenue, err := s.saleRepo.SumPrice(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("failed to sum sales: %w", err)
		}

		rows = append(rows, entity.EmployeeCSVRow{
			Name:         emp.Name,
			Position:     emp.Position,
			Phone:        emp.Phone,
			Email:        emp.Email,
			DateJoined:   emp.DateJoined.Format(csvDateFormat),
			SalesCount:   count,
			SalesRevenue: revenue,
		})
	}

	return rows, nil
}
