package bags

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sirimeals/mealops-backend/internal/schedule"
	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/enums"
	pkgerrors "github.com/sirimeals/mealops-backend/pkg/errors"
)

const exportSheet = "Bags"

// Export renders the filtered bags as an xlsx workbook for the packing floor:
// one row per bag with per-meal-type counts, the shared scan code and the
// basket label.
func (s *service) Export(ctx context.Context, filters Filters) ([]byte, error) {
	bags, err := s.repo.ListBagsForExport(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bags for export")
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), exportSheet)

	header := []any{"Delivery Date", "Customer Code", "Customer", "Bag Code", "Basket"}
	for _, mealType := range enums.MealTypes() {
		header = append(header, mealType.Label())
	}
	header = append(header, "Address", "Remark")
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export header")
	}

	for i, bag := range bags {
		row := exportRow(bag)
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export row")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render export workbook")
	}
	return buf.Bytes(), nil
}

func exportRow(bag models.Bag) []any {
	counts := map[enums.MealType]int{}
	for _, item := range bag.Items {
		counts[item.MealType]++
	}

	customerCode, customerName := "", ""
	var remark string
	if bag.Subscription != nil {
		if bag.Subscription.Customer != nil {
			customerCode = bag.Subscription.Customer.CustomerCode
			customerName = bag.Subscription.Customer.Fullname
		}
		if bag.Subscription.Remark != nil {
			remark = *bag.Subscription.Remark
		}
	}

	basket := ""
	if bag.Basket != nil {
		basket = *bag.Basket
	}
	address := ""
	if bag.Address != nil {
		address = *bag.Address
	}

	row := []any{
		schedule.FormatDate(bag.DeliveryAt),
		customerCode,
		customerName,
		bag.QRCode,
		basket,
	}
	for _, mealType := range enums.MealTypes() {
		row = append(row, counts[mealType])
	}
	row = append(row, address, remark)
	return row
}
