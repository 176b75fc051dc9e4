package outsourcing

import (
	"strings"
	"time"

	"github.com/erp/outsourcing/internal/domain/outsourcing"
)

// Columns shared by the list and detail queries. Aliases are the row keys the
// mapper reads.
const summaryColumns = `
	wo.id,
	wo.tranid,
	wo.trandate,
	wo.assemblyitem,
	wo.quantity,
	wo.built,
	wo.firmed,
	wo.outsourced,
	wo.entity AS vendor,
	wo.linkedpo,
	wo.startdate,
	wo.enddate,
	wo.location,
	wo.status,
	wo.memo,
	wo.outsourcingcharge,
	ai.itemid AS assembly_itemid,
	ai.displayname AS assembly_name,
	v.companyname AS vendor_name,
	po.tranid AS po_number,
	po.trandate AS po_date,
	po.status AS po_status`

const detailColumns = summaryColumns + `,
	wo.createddate,
	wo.lastmodifieddate,
	ai.description AS assembly_description,
	v.email AS vendor_email,
	po.total AS po_total,
	loc.name AS location_name`

const workOrderJoins = `
FROM transactions wo
LEFT JOIN items ai ON ai.id = wo.assemblyitem
LEFT JOIN vendors v ON v.id = wo.entity
LEFT JOIN transactions po ON po.id = wo.linkedpo`

// Bound date parameters use ISO dates so every dialect compares them as DATE.
const queryDateLayout = time.DateOnly

// buildListQuery returns the outsourced work order list query and its
// positional parameters. Firmed and outsourced are always required.
func buildListQuery(filter outsourcing.WorkOrderFilter) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT")
	b.WriteString(summaryColumns)
	b.WriteString(workOrderJoins)
	b.WriteString("\nWHERE wo.type = ? AND wo.firmed = ? AND wo.outsourced = ?")

	params := []any{outsourcing.TransactionTypeWorkOrder, outsourcing.FlagTrue, outsourcing.FlagTrue}

	if filter.VendorID != nil {
		b.WriteString("\n  AND wo.entity = ?")
		params = append(params, *filter.VendorID)
	}
	if filter.StartDate != nil {
		b.WriteString("\n  AND wo.trandate >= ?")
		params = append(params, filter.StartDate.Format(queryDateLayout))
	}
	if filter.EndDate != nil {
		b.WriteString("\n  AND wo.trandate <= ?")
		params = append(params, filter.EndDate.Format(queryDateLayout))
	}

	b.WriteString("\nORDER BY wo.trandate DESC, wo.id DESC")
	return b.String(), params
}

// buildDetailQuery returns the single work order lookup. LIMIT 2 is enough to
// tell one match from several.
func buildDetailQuery(workOrderID string) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT")
	b.WriteString(detailColumns)
	b.WriteString(workOrderJoins)
	b.WriteString("\nLEFT JOIN locations loc ON loc.id = wo.location")
	b.WriteString("\nWHERE wo.type = ? AND wo.id = ?")
	b.WriteString("\nLIMIT 2")

	return b.String(), []any{outsourcing.TransactionTypeWorkOrder, workOrderID}
}
