package order

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"
)

var (
	ErrInvalidStatus = errors.New("invalid order status")
)

// deliveryDays maps a shipping method to the business-day delivery estimate
// shown on the confirmation page. Display estimate only, not a commitment.
var deliveryDays = map[string]int{
	ShippingStandard: 7,
	ShippingPriority: 4,
	ShippingExpress:  2,
}

// Confirmation is a placed order assembled for the confirmation and history
// views: header, lines, and the derived display fields.
type Confirmation struct {
	Order             Order       `json:"order"`
	Items             []OrderItem `json:"items"`
	EstimatedDelivery string      `json:"estimated_delivery"`
	// TrackingNumber is a placeholder derived from the order id; no carrier
	// is integrated yet.
	TrackingNumber string `json:"tracking_number"`
}

// Service reads placed orders back for display.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the confirmation view of one order, scoped to the requesting
// user. An order id belonging to someone else is indistinguishable from a
// missing order.
func (s *Service) Get(ctx context.Context, orderID string, userID int) (Confirmation, error) {
	ord, err := s.repo.GetByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return Confirmation{}, err
	}

	items, err := s.repo.ListItems(ctx, orderID)
	if err != nil {
		return Confirmation{}, err
	}

	return Confirmation{
		Order:             ord,
		Items:             items,
		EstimatedDelivery: estimatedDelivery(ord.CreatedAt, ord.ShippingMethod),
		TrackingNumber:    placeholderTracking(ord.ID),
	}, nil
}

// History lists the user's orders, newest first.
func (s *Service) History(ctx context.Context, userID int) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UpdateStatus moves an order to a new status. Only known statuses are
// accepted; transitions beyond that are not policed here.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, orderID, status)
}

// estimatedDelivery adds the method's business-day count to the order date,
// skipping weekends. Falls back to the standard tier for unknown methods.
func estimatedDelivery(createdAt, shippingMethod string) string {
	days, ok := deliveryDays[shippingMethod]
	if !ok {
		days = deliveryDays[ShippingStandard]
	}

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		t = time.Now().UTC()
	}

	for days > 0 {
		t = t.AddDate(0, 0, 1)
		if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days--
	}
	return t.Format("2006-01-02")
}

// placeholderTracking derives a stable fake tracking number from the order id
// so repeated reads of the same order agree.
func placeholderTracking(orderID string) string {
	h := fnv.New32a()
	h.Write([]byte(orderID))
	return fmt.Sprintf("TSM%07d", h.Sum32()%10000000)
}
