package outsourcing

import (
	"context"
	"fmt"
	"strings"

	"github.com/erp/outsourcing/internal/domain/outsourcing"
	"github.com/erp/outsourcing/internal/domain/shared"
	"github.com/erp/outsourcing/internal/infrastructure/logger"
	"github.com/erp/outsourcing/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const serviceName = "outsourced_work_order"

// WorkOrderQueryService answers outsourced work order list and detail queries.
// It holds no per-request state and is safe for concurrent use.
type WorkOrderQueryService struct {
	executor outsourcing.QueryExecutor
	logger   *zap.Logger
}

// NewWorkOrderQueryService creates a new WorkOrderQueryService
func NewWorkOrderQueryService(executor outsourcing.QueryExecutor, zapLogger *zap.Logger) *WorkOrderQueryService {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	return &WorkOrderQueryService{
		executor: executor,
		logger:   zapLogger,
	}
}

// ListOutsourcedWorkOrders returns firmed, outsourced work orders matching the
// filters, in the order the database returned them.
func (s *WorkOrderQueryService) ListOutsourcedWorkOrders(ctx context.Context, params WorkOrderFilterParams) (*WorkOrderListResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "list")
	defer span.End()
	log := logger.WithLogger(ctx, s.logger)

	filter, err := params.ToDomainFilter()
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	query, args := buildListQuery(filter)
	log.Debug("Listing outsourced work orders",
		zap.Bool("filtered", !filter.IsEmpty()),
		zap.Int("param_count", len(args)),
	)

	rs, err := s.executor.Execute(telemetry.ContextWithQueryName(ctx, serviceName+".list"), query, args...)
	if err != nil {
		log.Error("Outsourced work order list query failed", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, shared.NewUpstreamQueryError(fmt.Errorf("list outsourced work orders: %w", err))
	}

	result := toListResponse(rs.AsMappedResults())
	telemetry.SetAttributes(span,
		"work_order.count", result.TotalCount,
		"work_order.total_charge", result.TotalOutsourcingCharge,
	)
	log.Debug("Outsourced work orders listed",
		zap.Int("count", result.TotalCount),
		zap.Strings("columns", rs.Columns()),
	)

	return result, nil
}

// GetOutsourcedWorkOrderDetails returns one work order with its detail fields.
// A missing id fails before any query runs. The id is trimmed for the query,
// while error messages quote it as requested.
func (s *WorkOrderQueryService) GetOutsourcedWorkOrderDetails(ctx context.Context, params WorkOrderLookupParams) (*WorkOrderDetailDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "get_details")
	defer span.End()
	log := logger.WithLogger(ctx, s.logger)

	workOrderID := strings.TrimSpace(params.WorkOrderID)
	if workOrderID == "" {
		err := shared.NewValidationError("Missing work order ID")
		telemetry.RecordError(span, err)
		return nil, err
	}
	if filterValidator.Var(workOrderID, "number") != nil {
		err := shared.NewValidationError(fmt.Sprintf("Invalid work order ID %s", workOrderID))
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, "work_order.id", workOrderID)

	query, args := buildDetailQuery(workOrderID)
	rs, err := s.executor.Execute(telemetry.ContextWithQueryName(ctx, serviceName+".get_details"), query, args...)
	if err != nil {
		log.Error("Outsourced work order detail query failed",
			zap.String("work_order_id", workOrderID),
			zap.Error(err),
		)
		telemetry.RecordError(span, err)
		return nil, shared.NewUpstreamQueryError(fmt.Errorf("get work order %s: %w", workOrderID, err))
	}

	rows := rs.AsMappedResults()
	switch len(rows) {
	case 0:
		log.Debug("Work order not found", zap.String("work_order_id", workOrderID))
		return nil, shared.NewNotFoundError("No Work Order found with id %s", params.WorkOrderID)
	case 1:
		detail := toDetailDTO(rows[0])
		return &detail, nil
	default:
		log.Error("Work order id matched more than one row",
			zap.String("work_order_id", workOrderID),
			zap.Int("rows", len(rows)),
		)
		err := shared.NewDataIntegrityError("Multiple Work Orders found with id %s", params.WorkOrderID)
		telemetry.RecordError(span, err)
		return nil, err
	}
}
