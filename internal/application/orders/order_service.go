package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/catalog"
	"github.com/tajer/backend/internal/domain/delivery"
	"github.com/tajer/backend/internal/domain/identity"
	"github.com/tajer/backend/internal/domain/orders"
	"github.com/tajer/backend/internal/domain/shared"
	"github.com/tajer/backend/internal/domain/shared/valueobject"
)

// OrderService handles order lifecycle operations. Pricing is never taken
// from the client: every line is resolved against the catalog and the
// delivery fee against the platform's delivery settings at submission time.
type OrderService struct {
	orderRepo        orders.OrderRepository
	productRepo      catalog.ProductRepository
	settingRepo      delivery.SettingRepository
	platformRepo     identity.PlatformRepository
	idempotencyStore shared.IdempotencyStore
	idempotencyTTL   time.Duration
	eventPublisher   shared.EventPublisher
	logger           *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo orders.OrderRepository,
	productRepo catalog.ProductRepository,
	settingRepo delivery.SettingRepository,
	platformRepo identity.PlatformRepository,
	idempotencyStore shared.IdempotencyStore,
	idempotencyTTL time.Duration,
	logger *zap.Logger,
) *OrderService {
	if idempotencyTTL <= 0 {
		idempotencyTTL = shared.DefaultIdempotencyConfig().TTL
	}
	return &OrderService{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		settingRepo:      settingRepo,
		platformRepo:     platformRepo,
		idempotencyStore: idempotencyStore,
		idempotencyTTL:   idempotencyTTL,
		logger:           logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates and submits an order. A repeated submission carrying the
// same idempotency key returns the already-created order instead of a
// duplicate.
func (s *OrderService) Create(ctx context.Context, platformID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	if req.IdempotencyKey != "" {
		reserved, err := s.idempotencyStore.Reserve(ctx, s.idempotencyKey(platformID, req.IdempotencyKey), s.idempotencyTTL)
		if err != nil {
			return nil, err
		}
		if !reserved {
			existing, err := s.orderRepo.FindByIdempotencyKey(ctx, platformID, req.IdempotencyKey)
			if err == nil {
				response := ToOrderResponse(existing)
				return &response, nil
			}
			if err != shared.ErrNotFound {
				return nil, err
			}
			// Reservation exists but no order was stored: the first
			// submission is still in flight
			return nil, shared.NewDomainError("DUPLICATE_SUBMISSION", "Order submission is already being processed")
		}
	}

	order, err := s.buildOrder(ctx, platformID, req)
	if err != nil {
		s.releaseIdempotency(ctx, platformID, req.IdempotencyKey)
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		s.releaseIdempotency(ctx, platformID, req.IdempotencyKey)
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("platform_id", platformID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("source", order.Source.String()),
	)

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// CreatePublic creates an order submitted from a platform's public landing
// page. The platform is resolved by subdomain and must be operable.
func (s *OrderService) CreatePublic(ctx context.Context, subdomain string, req CreateOrderRequest) (*OrderResponse, error) {
	platform, err := s.platformRepo.FindBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	if !platform.CanOperate() {
		return nil, shared.NewDomainError("PLATFORM_INACTIVE", "Store is not accepting orders")
	}

	req.Source = orders.SourceLandingPage.String()
	return s.Create(ctx, platform.ID, req)
}

// buildOrder assembles a submittable order from the request
func (s *OrderService) buildOrder(ctx context.Context, platformID uuid.UUID, req CreateOrderRequest) (*orders.Order, error) {
	customer, err := s.toCustomer(req.Customer)
	if err != nil {
		return nil, err
	}

	source := orders.SourceManual
	if req.Source != "" {
		source = orders.Source(req.Source)
	}

	orderNumber, err := s.orderRepo.NextOrderNumber(ctx, platformID)
	if err != nil {
		return nil, err
	}

	order, err := orders.NewOrder(platformID, orderNumber, customer, source)
	if err != nil {
		return nil, err
	}
	if req.IdempotencyKey != "" {
		order.SetIdempotencyKey(req.IdempotencyKey)
	}
	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}

	for _, input := range req.Items {
		if err := s.addItem(ctx, platformID, order, input); err != nil {
			return nil, err
		}
	}

	if req.Discount != nil {
		if err := order.ApplyDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}

	if err := s.applyDeliveryFee(ctx, order); err != nil {
		return nil, err
	}

	if err := order.Submit(); err != nil {
		return nil, err
	}

	return order, nil
}

// addItem resolves a line against the catalog and appends it to the order
func (s *OrderService) addItem(ctx context.Context, platformID uuid.UUID, order *orders.Order, input OrderItemInput) (err error) {
	product, err := s.productRepo.FindByIDForPlatform(ctx, platformID, input.ProductID)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
		}
		return err
	}
	if !product.IsActive() {
		return shared.NewDomainError("PRODUCT_INACTIVE", "Product is not available")
	}

	selections := toSelections(input)
	if err := selections.Validate(); err != nil {
		return err
	}
	for _, variantID := range selections.All() {
		if !product.HasVariant(variantID) {
			return shared.NewDomainError("INVALID_VARIANT", "Selected variant does not belong to the product")
		}
	}

	resolved := product.ResolvePrice(input.OfferLabel)
	if input.OfferLabel != "" && resolved.Offer == nil {
		return shared.NewDomainError("OFFER_NOT_FOUND", "Selected offer does not exist on the product")
	}
	if resolved.Offer == nil && input.Quantity > 0 {
		resolved.Quantity = input.Quantity
	}

	_, err = order.AddItem(product.ID, product.Name, resolved, selections)
	return err
}

// applyDeliveryFee resolves the fee for the customer's governorate against
// the platform's delivery settings. The free-delivery threshold compares
// against the discounted goods total, before the fee itself.
func (s *OrderService) applyDeliveryFee(ctx context.Context, order *orders.Order) error {
	setting, err := s.settingRepo.FindForPlatform(ctx, order.PlatformID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil
		}
		return err
	}

	net := order.Subtotal.Sub(order.DiscountAmount)
	fee := setting.FeeFor(order.Customer.Governorate, net)
	return order.SetDeliveryFee(fee)
}

// Get retrieves an order by ID within a platform
func (s *OrderService) Get(ctx context.Context, platformID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForPlatform(ctx, platformID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByNumber retrieves an order by its order number
func (s *OrderService) GetByNumber(ctx context.Context, platformID uuid.UUID, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByNumberForPlatform(ctx, platformID, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List lists orders for a platform
func (s *OrderService) List(ctx context.Context, platformID uuid.UUID, filter ListFilter) ([]OrderResponse, int64, error) {
	query, err := s.toQuery(filter)
	if err != nil {
		return nil, 0, err
	}

	result, err := s.orderRepo.FindAllForPlatform(ctx, platformID, query)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForPlatform(ctx, platformID, query)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, len(result))
	for i := range result {
		responses[i] = ToOrderResponse(&result[i])
	}
	return responses, total, nil
}

// StatusCounts returns order counts grouped by status. Every status is
// present in the response, zero when the platform has no orders in it.
func (s *OrderService) StatusCounts(ctx context.Context, platformID uuid.UUID) (StatusCountsResponse, error) {
	counts, err := s.orderRepo.CountByStatusForPlatform(ctx, platformID)
	if err != nil {
		return nil, err
	}

	statuses := orders.AllStatuses()
	response := make(StatusCountsResponse, len(statuses))
	for _, status := range statuses {
		response[status.String()] = counts[status]
	}
	return response, nil
}

// Update changes the mutable head fields of a pending order
func (s *OrderService) Update(ctx context.Context, platformID, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForPlatform(ctx, platformID, orderID)
	if err != nil {
		return nil, err
	}

	if req.Customer != nil {
		customer, err := s.toCustomer(*req.Customer)
		if err != nil {
			return nil, err
		}
		if err := order.UpdateCustomer(customer); err != nil {
			return nil, err
		}
		// Governorate may have changed
		if err := s.applyDeliveryFee(ctx, order); err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		if err := order.ApplyDiscount(*req.Discount); err != nil {
			return nil, err
		}
		if err := s.applyDeliveryFee(ctx, order); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		order.SetNotes(*req.Notes)
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// AddItem appends a line to a pending order and reprices delivery
func (s *OrderService) AddItem(ctx context.Context, platformID, orderID uuid.UUID, req AddItemRequest) (*OrderResponse, error) {
	return s.mutateItems(ctx, platformID, orderID, func(order *orders.Order) error {
		return s.addItem(ctx, platformID, order, req.Item)
	})
}

// RemoveItem removes a line from a pending order
func (s *OrderService) RemoveItem(ctx context.Context, platformID, orderID, itemID uuid.UUID) (*OrderResponse, error) {
	return s.mutateItems(ctx, platformID, orderID, func(order *orders.Order) error {
		return order.RemoveItem(itemID)
	})
}

// UpdateItemQuantity changes a base-priced line's quantity
func (s *OrderService) UpdateItemQuantity(ctx context.Context, platformID, orderID, itemID uuid.UUID, req UpdateItemQuantityRequest) (*OrderResponse, error) {
	return s.mutateItems(ctx, platformID, orderID, func(order *orders.Order) error {
		return order.UpdateItemQuantity(itemID, req.Quantity)
	})
}

// ChangeItemProduct swaps the product behind a line, repricing it from the
// catalog and keeping the variant selections
func (s *OrderService) ChangeItemProduct(ctx context.Context, platformID, orderID, itemID uuid.UUID, req ChangeItemProductRequest) (*OrderResponse, error) {
	return s.mutateItems(ctx, platformID, orderID, func(order *orders.Order) error {
		product, err := s.productRepo.FindByIDForPlatform(ctx, platformID, req.ProductID)
		if err != nil {
			if err == shared.ErrNotFound {
				return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
			}
			return err
		}
		if !product.IsActive() {
			return shared.NewDomainError("PRODUCT_INACTIVE", "Product is not available")
		}

		resolved := product.ResolvePrice(req.OfferLabel)
		if req.OfferLabel != "" && resolved.Offer == nil {
			return shared.NewDomainError("OFFER_NOT_FOUND", "Selected offer does not exist on the product")
		}
		return order.ChangeItemProduct(itemID, product.ID, product.Name, resolved)
	})
}

func (s *OrderService) mutateItems(ctx context.Context, platformID, orderID uuid.UUID, mutate func(*orders.Order) error) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForPlatform(ctx, platformID, orderID)
	if err != nil {
		return nil, err
	}

	if err := mutate(order); err != nil {
		return nil, err
	}
	if err := s.applyDeliveryFee(ctx, order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Transition moves an order to a new status
func (s *OrderService) Transition(ctx context.Context, platformID, orderID uuid.UUID, req TransitionRequest) (*OrderResponse, error) {
	target := orders.Status(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}

	order, err := s.orderRepo.FindByIDForPlatform(ctx, platformID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(target, req.Reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// BulkTransition moves several orders to the same status. Orders that cannot
// make the transition are reported individually and do not fail the batch.
func (s *OrderService) BulkTransition(ctx context.Context, platformID uuid.UUID, req BulkTransitionRequest) (*BulkTransitionResult, error) {
	target := orders.Status(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}

	result := &BulkTransitionResult{Failed: map[string]string{}}
	for _, orderID := range req.OrderIDs {
		order, err := s.orderRepo.FindByIDForPlatform(ctx, platformID, orderID)
		if err != nil {
			result.Failed[orderID.String()] = err.Error()
			continue
		}
		if err := order.TransitionTo(target, req.Reason); err != nil {
			result.Failed[orderID.String()] = err.Error()
			continue
		}
		if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
			result.Failed[orderID.String()] = err.Error()
			continue
		}
		s.publishEvents(ctx, order)
		result.Updated++
	}

	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	return result, nil
}

// Delete removes an order. Only pending orders can be deleted; anything past
// that is part of the platform's history and must be cancelled instead.
func (s *OrderService) Delete(ctx context.Context, platformID, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByIDForPlatform(ctx, platformID, orderID)
	if err != nil {
		return err
	}
	if !order.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be deleted")
	}

	return s.orderRepo.DeleteForPlatform(ctx, platformID, orderID)
}

func (s *OrderService) toCustomer(input CustomerInput) (orders.Customer, error) {
	gov, err := valueobject.ParseGovernorate(input.Governorate)
	if err != nil {
		return orders.Customer{}, shared.NewDomainError("INVALID_GOVERNORATE", err.Error())
	}
	return orders.Customer{
		Name:        input.Name,
		Phone:       input.Phone,
		Address:     input.Address,
		Governorate: gov,
	}, nil
}

func (s *OrderService) toQuery(filter ListFilter) (orders.Query, error) {
	query := orders.Query{}
	query.Page = filter.Page
	query.PageSize = filter.PageSize
	query.Search = filter.Search
	query.OrderBy = filter.OrderBy
	query.OrderDir = filter.OrderDir
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}

	if filter.Status != "" {
		status := orders.Status(filter.Status)
		if !status.IsValid() {
			return query, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
		}
		query.Status = status
	}
	if filter.Source != "" {
		source := orders.Source(filter.Source)
		if !source.IsValid() {
			return query, shared.NewDomainError("INVALID_SOURCE", "Unknown order source")
		}
		query.Source = source
	}
	if filter.Governorate != "" {
		gov, err := valueobject.ParseGovernorate(filter.Governorate)
		if err != nil {
			return query, shared.NewDomainError("INVALID_GOVERNORATE", err.Error())
		}
		query.Governorate = gov
	}
	if filter.From != "" {
		from, err := time.Parse(time.RFC3339, filter.From)
		if err != nil {
			return query, shared.NewDomainError("INVALID_DATE", "from must be RFC3339")
		}
		query.From = &from
	}
	if filter.To != "" {
		to, err := time.Parse(time.RFC3339, filter.To)
		if err != nil {
			return query, shared.NewDomainError("INVALID_DATE", "to must be RFC3339")
		}
		query.To = &to
	}

	return query, nil
}

func (s *OrderService) idempotencyKey(platformID uuid.UUID, key string) string {
	return platformID.String() + ":" + key
}

func (s *OrderService) releaseIdempotency(ctx context.Context, platformID uuid.UUID, key string) {
	if key == "" {
		return
	}
	if err := s.idempotencyStore.Release(ctx, s.idempotencyKey(platformID, key)); err != nil {
		s.logger.Warn("failed to release idempotency key", zap.Error(err))
	}
}

func (s *OrderService) publishEvents(ctx context.Context, order *orders.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish order event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	order.ClearDomainEvents()
}
