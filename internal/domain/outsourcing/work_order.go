package outsourcing

import (
	"fmt"
	"time"
)

// Host database encodings
const (
	// FlagTrue is how the host database stores a true checkbox value
	FlagTrue = "T"
	// FlagFalse is how the host database stores a false checkbox value
	FlagFalse = "F"
	// TransactionTypeWorkOrder is the transactions.type value for work orders
	TransactionTypeWorkOrder = "WorkOrd"
)

// Deep link templates into the ERP UI
const (
	WorkOrderURLTemplate     = "/app/accounting/transactions/workord.nl?id=%s"
	PurchaseOrderURLTemplate = "/app/accounting/transactions/purchord.nl?id=%s"
)

// WorkOrderURL builds the UI link for a work order id
func WorkOrderURL(id string) string {
	return fmt.Sprintf(WorkOrderURLTemplate, id)
}

// PurchaseOrderURL builds the UI link for a linked purchase order.
// Returns nil when there is no linked purchase order.
func PurchaseOrderURL(linkedPOID *string) *string {
	if linkedPOID == nil {
		return nil
	}
	url := fmt.Sprintf(PurchaseOrderURLTemplate, *linkedPOID)
	return &url
}

// WorkOrderFilter narrows the outsourced work order list.
// Nil fields are not applied.
type WorkOrderFilter struct {
	VendorID  *string
	StartDate *time.Time
	EndDate   *time.Time
}

// IsEmpty returns true if no filter field is set
func (f WorkOrderFilter) IsEmpty() bool {
	return f.VendorID == nil && f.StartDate == nil && f.EndDate == nil
}

// Validate checks that the date range is not inverted
func (f WorkOrderFilter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return fmt.Errorf("startDate %s is after endDate %s",
			f.StartDate.Format(time.DateOnly), f.EndDate.Format(time.DateOnly))
	}
	return nil
}
