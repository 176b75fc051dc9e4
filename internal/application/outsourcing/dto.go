package outsourcing

// WorkOrderFilterParams is the list request. Empty fields are not applied.
// Dates accept M/D/YYYY or YYYY-MM-DD and bound the transaction date inclusively.
type WorkOrderFilterParams struct {
	VendorID  string `form:"vendorId" json:"vendorId,omitempty" validate:"omitempty,number,max=20"`
	StartDate string `form:"startDate" json:"startDate,omitempty" validate:"omitempty,hostdate"`
	EndDate   string `form:"endDate" json:"endDate,omitempty" validate:"omitempty,hostdate"`
}

// WorkOrderLookupParams is the detail request
type WorkOrderLookupParams struct {
	WorkOrderID string `uri:"id" json:"workOrderId"`
}

// WorkOrderSummaryDTO is one row of the outsourced work order list.
// Nullable columns stay nil and serialize as JSON null.
type WorkOrderSummaryDTO struct {
	WorkOrderID           string  `json:"workOrderId"`
	WorkOrderNumber       *string `json:"workOrderNumber"`
	WorkOrderDate         *string `json:"workOrderDate"`
	AssemblyItemID        *string `json:"assemblyItemId"`
	AssemblyItemNumber    *string `json:"assemblyItemNumber"`
	AssemblyName          *string `json:"assemblyName"`
	Quantity              *string `json:"quantity"`
	QuantityBuilt         *string `json:"quantityBuilt"`
	IsFirmed              bool    `json:"isFirmed"`
	IsOutsourced          bool    `json:"isOutsourced"`
	VendorID              *string `json:"vendorId"`
	VendorName            *string `json:"vendorName"`
	LinkedPurchaseOrderID *string `json:"linkedPurchaseOrderId"`
	LinkedPONumber        *string `json:"linkedPONumber"`
	LinkedPODate          *string `json:"linkedPODate"`
	LinkedPOStatus        *string `json:"linkedPOStatus"`
	StartDate             *string `json:"startDate"`
	EndDate               *string `json:"endDate"`
	LocationID            *string `json:"locationId"`
	Status                *string `json:"status"`
	Memo                  *string `json:"memo"`
	OutsourcingCharge     *string `json:"outsourcingCharge"`
	WorkOrderURL          string  `json:"workOrderUrl"`
	PurchaseOrderURL      *string `json:"purchaseOrderUrl"`
}

// WorkOrderDetailDTO is a single work order with its detail-only fields
type WorkOrderDetailDTO struct {
	WorkOrderSummaryDTO
	CreatedDate         *string `json:"createdDate"`
	LastModifiedDate    *string `json:"lastModifiedDate"`
	AssemblyDescription *string `json:"assemblyDescription"`
	VendorEmail         *string `json:"vendorEmail"`
	LinkedPOTotal       *string `json:"linkedPOTotal"`
	LocationName        *string `json:"locationName"`
}

// WorkOrderListResponse is the list payload
type WorkOrderListResponse struct {
	TotalCount             int                   `json:"totalCount"`
	TotalOutsourcingCharge string                `json:"totalOutsourcingCharge"`
	WorkOrders             []WorkOrderSummaryDTO `json:"workOrders"`
}
