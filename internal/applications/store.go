// Package applications tracks credit-card-debt-clearing and tax-refund
// applications for one client and keeps a JSON snapshot of each collection
// in durable storage.
package applications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talent-horizon/internal/domain"
	"talent-horizon/internal/idgen"
	"talent-horizon/internal/storage"
)

const (
	CreditCardStorageKey = "talent-horizon-credit-card-applications"
	TaxRefundStorageKey  = "talent-horizon-tax-refund-applications"
)

// Notifier is told about every application that changed through an update.
type Notifier interface {
	NotifyApplicationUpdated(ctx context.Context, clientID, appType, id, status string) error
}

type Options struct {
	ClientID string
	Logger   *zap.Logger
	Notifier Notifier
	// Now is the clock used for submission timestamps and application
	// numbers. Defaults to time.Now.
	Now func() time.Time
}

type Store struct {
	mu sync.RWMutex

	kv       storage.KeyValue
	log      *zap.Logger
	notifier Notifier
	clientID string
	now      func() time.Time
	numbers  *idgen.Sequence

	creditCards []domain.CreditCardApplication
	taxRefunds  []domain.TaxRefundApplication
}

// New loads both collections from kv. A missing key yields an empty
// collection; so does a value that cannot be decoded, which is logged.
func New(ctx context.Context, kv storage.KeyValue, opts Options) (*Store, error) {
	s := &Store{
		kv:       kv,
		log:      opts.Logger,
		notifier: opts.Notifier,
		clientID: opts.ClientID,
		now:      opts.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.numbers = idgen.NewSequence(s.now)

	if err := load(ctx, s, CreditCardStorageKey, &s.creditCards); err != nil {
		return nil, err
	}
	if err := load(ctx, s, TaxRefundStorageKey, &s.taxRefunds); err != nil {
		return nil, err
	}
	if s.creditCards == nil {
		s.creditCards = []domain.CreditCardApplication{}
	}
	if s.taxRefunds == nil {
		s.taxRefunds = []domain.TaxRefundApplication{}
	}

	for _, a := range s.creditCards {
		s.observeNumber(a.ApplicationNumber)
	}
	for _, a := range s.taxRefunds {
		s.observeNumber(a.ApplicationNumber)
	}

	return s, nil
}

func load[T any](ctx context.Context, s *Store, key string, dst *[]T) error {
	raw, err := s.kv.Load(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Warn("malformed stored applications, starting empty",
			zap.String("client_id", s.clientID),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}
	*dst = items
	return nil
}

func (s *Store) observeNumber(n string) {
	if v, err := strconv.ParseInt(n, 10, 64); err == nil {
		s.numbers.Observe(v)
	}
}

func (s *Store) persist(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func (s *Store) notify(ctx context.Context, appType, id, status string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyApplicationUpdated(ctx, s.clientID, appType, id, status); err != nil {
		s.log.Warn("application update notification failed",
			zap.String("client_id", s.clientID),
			zap.String("application_id", id),
			zap.Error(err),
		)
	}
}

// AddCreditCardApplication assigns identity, zeroes the fee fields and puts
// the record at the front of the collection. The returned record is kept in
// memory even when persisting fails.
func (s *Store) AddCreditCardApplication(ctx context.Context, in domain.NewCreditCardApplication) (domain.CreditCardApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app := domain.CreditCardApplication{
		ID:                 uuid.NewString(),
		ApplicationNumber:  s.numbers.NextString(),
		Type:               domain.ApplicationTypeCreditCard,
		Status:             in.Status,
		SubmittedAt:        in.SubmittedAt,
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		Email:              in.Email,
		Phone:              in.Phone,
		BankName:           in.BankName,
		CardType:           in.CardType,
		CardLast4:          in.CardLast4,
		CreditLimit:        in.CreditLimit,
		CurrentBalance:     in.CurrentBalance,
		EstimatedClearDate: in.EstimatedClearDate,
		ClearedDate:        in.ClearedDate,
		TeamNotes:          in.TeamNotes,
	}
	app = app.Clone()
	if app.Status == "" {
		app.Status = domain.CreditCardSubmitted
	}
	if app.SubmittedAt.IsZero() {
		app.SubmittedAt = s.now().UTC()
	}

	s.creditCards = append([]domain.CreditCardApplication{app}, s.creditCards...)

	return app.Clone(), s.persist(ctx, CreditCardStorageKey, s.creditCards)
}

func (s *Store) AddTaxRefundApplication(ctx context.Context, in domain.NewTaxRefundApplication) (domain.TaxRefundApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app := domain.TaxRefundApplication{
		ID:                      uuid.NewString(),
		ApplicationNumber:       s.numbers.NextString(),
		Type:                    domain.ApplicationTypeTaxRefund,
		Status:                  in.Status,
		SubmittedAt:             in.SubmittedAt,
		FirstName:               in.FirstName,
		LastName:                in.LastName,
		Email:                   in.Email,
		Phone:                   in.Phone,
		TaxYear:                 in.TaxYear,
		EmploymentStatus:        in.EmploymentStatus,
		FilingStatus:            in.FilingStatus,
		EstimatedIncome:         in.EstimatedIncome,
		EstimatedRefund:         in.EstimatedRefund,
		ActualRefund:            in.ActualRefund,
		EstimatedCompletionDate: in.EstimatedCompletionDate,
		CompletedDate:           in.CompletedDate,
		TeamNotes:               in.TeamNotes,
	}
	app = app.Clone()
	if app.Status == "" {
		app.Status = domain.TaxRefundSubmitted
	}
	if app.SubmittedAt.IsZero() {
		app.SubmittedAt = s.now().UTC()
	}

	s.taxRefunds = append([]domain.TaxRefundApplication{app}, s.taxRefunds...)

	return app.Clone(), s.persist(ctx, TaxRefundStorageKey, s.taxRefunds)
}

// UpdateCreditCardApplication merges patch into the application with the
// given id. A patch carrying currentBalance recomputes serviceFee. It reports
// false, and writes nothing, when no application has that id.
func (s *Store) UpdateCreditCardApplication(ctx context.Context, id string, patch domain.CreditCardPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.creditCards, func(a domain.CreditCardApplication) bool { return a.ID == id })
	if i < 0 {
		return false, nil
	}

	app := s.creditCards[i]
	patch.Apply(&app)
	if patch.CurrentBalance != nil {
		app.ServiceFee = ServiceFee(*patch.CurrentBalance)
	}
	s.creditCards[i] = app

	err := s.persist(ctx, CreditCardStorageKey, s.creditCards)
	s.notify(ctx, domain.ApplicationTypeCreditCard, app.ID, string(app.Status))
	return true, err
}

// UpdateTaxRefundApplication merges patch into the application with the
// given id. A patch carrying actualRefund or estimatedRefund recomputes
// serviceFee and netRefund from RefundAmount.
func (s *Store) UpdateTaxRefundApplication(ctx context.Context, id string, patch domain.TaxRefundPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.taxRefunds, func(a domain.TaxRefundApplication) bool { return a.ID == id })
	if i < 0 {
		return false, nil
	}

	prev := s.taxRefunds[i]
	app := prev
	patch.Apply(&app)
	if patch.RefundChanged() {
		refund := RefundAmount(patch, prev)
		app.ServiceFee = ServiceFee(refund)
		app.NetRefund = refund - app.ServiceFee
	}
	s.taxRefunds[i] = app

	err := s.persist(ctx, TaxRefundStorageKey, s.taxRefunds)
	s.notify(ctx, domain.ApplicationTypeTaxRefund, app.ID, string(app.Status))
	return true, err
}

// GetCreditCardApplication finds an application by id or application number.
func (s *Store) GetCreditCardApplication(idOrNumber string) (domain.CreditCardApplication, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.creditCards, func(a domain.CreditCardApplication) bool {
		return a.ID == idOrNumber || a.ApplicationNumber == idOrNumber
	})
	if i < 0 {
		return domain.CreditCardApplication{}, false
	}
	return s.creditCards[i].Clone(), true
}

func (s *Store) GetTaxRefundApplication(idOrNumber string) (domain.TaxRefundApplication, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.taxRefunds, func(a domain.TaxRefundApplication) bool {
		return a.ID == idOrNumber || a.ApplicationNumber == idOrNumber
	})
	if i < 0 {
		return domain.TaxRefundApplication{}, false
	}
	return s.taxRefunds[i].Clone(), true
}

// CreditCardApplications returns a copy of the collection, newest first.
func (s *Store) CreditCardApplications() []domain.CreditCardApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CreditCardApplication, len(s.creditCards))
	for i, a := range s.creditCards {
		out[i] = a.Clone()
	}
	return out
}

func (s *Store) TaxRefundApplications() []domain.TaxRefundApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.TaxRefundApplication, len(s.taxRefunds))
	for i, a := range s.taxRefunds {
		out[i] = a.Clone()
	}
	return out
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}
