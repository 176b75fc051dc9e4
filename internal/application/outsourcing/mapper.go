package outsourcing

import (
	"github.com/erp/outsourcing/internal/domain/outsourcing"
	"github.com/shopspring/decimal"
)

// toSummaryDTO maps a list row. Flags become booleans and the deep links are
// derived from the ids; every other column is renamed only.
func toSummaryDTO(row outsourcing.Row) WorkOrderSummaryDTO {
	workOrderID := deref(row.Get("id"))
	linkedPO := row.Get("linkedpo")

	dto := WorkOrderSummaryDTO{
		WorkOrderID:           workOrderID,
		WorkOrderNumber:       row.Get("tranid"),
		WorkOrderDate:         row.Get("trandate"),
		AssemblyItemID:        row.Get("assemblyitem"),
		AssemblyItemNumber:    row.Get("assembly_itemid"),
		AssemblyName:          row.Get("assembly_name"),
		Quantity:              row.Get("quantity"),
		QuantityBuilt:         row.Get("built"),
		IsFirmed:              row.Flag("firmed"),
		IsOutsourced:          row.Flag("outsourced"),
		VendorID:              row.Get("vendor"),
		VendorName:            row.Get("vendor_name"),
		LinkedPurchaseOrderID: linkedPO,
		LinkedPONumber:        row.Get("po_number"),
		LinkedPODate:          row.Get("po_date"),
		LinkedPOStatus:        row.Get("po_status"),
		StartDate:             row.Get("startdate"),
		EndDate:               row.Get("enddate"),
		LocationID:            row.Get("location"),
		Status:                row.Get("status"),
		Memo:                  row.Get("memo"),
		OutsourcingCharge:     row.Get("outsourcingcharge"),
		WorkOrderURL:          outsourcing.WorkOrderURL(workOrderID),
		PurchaseOrderURL:      outsourcing.PurchaseOrderURL(linkedPO),
	}

	// PO fields come from an outer join and must never outlive the link
	if linkedPO == nil {
		dto.LinkedPONumber = nil
		dto.LinkedPODate = nil
		dto.LinkedPOStatus = nil
	}
	return dto
}

// toDetailDTO maps a detail row with the same rules plus the detail-only columns
func toDetailDTO(row outsourcing.Row) WorkOrderDetailDTO {
	dto := WorkOrderDetailDTO{
		WorkOrderSummaryDTO: toSummaryDTO(row),
		CreatedDate:         row.Get("createddate"),
		LastModifiedDate:    row.Get("lastmodifieddate"),
		AssemblyDescription: row.Get("assembly_description"),
		VendorEmail:         row.Get("vendor_email"),
		LinkedPOTotal:       row.Get("po_total"),
		LocationName:        row.Get("location_name"),
	}
	if dto.LinkedPurchaseOrderID == nil {
		dto.LinkedPOTotal = nil
	}
	return dto
}

// toListResponse maps every row in engine order
func toListResponse(rows []outsourcing.Row) *WorkOrderListResponse {
	workOrders := make([]WorkOrderSummaryDTO, 0, len(rows))
	for _, row := range rows {
		workOrders = append(workOrders, toSummaryDTO(row))
	}
	return &WorkOrderListResponse{
		TotalCount:             len(workOrders),
		TotalOutsourcingCharge: sumOutsourcingCharges(workOrders).StringFixed(2),
		WorkOrders:             workOrders,
	}
}

// sumOutsourcingCharges adds up the charges that parse as decimals.
// NULL and unparseable values contribute nothing.
func sumOutsourcingCharges(workOrders []WorkOrderSummaryDTO) decimal.Decimal {
	total := decimal.Zero
	for _, wo := range workOrders {
		if wo.OutsourcingCharge == nil {
			continue
		}
		charge, err := decimal.NewFromString(*wo.OutsourcingCharge)
		if err != nil {
			continue
		}
		total = total.Add(charge)
	}
	return total
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
