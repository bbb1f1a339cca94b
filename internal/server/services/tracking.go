package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/prisynced/internal/common"
	"github.com/dmitrijs2005/prisynced/internal/logging"
	"github.com/dmitrijs2005/prisynced/internal/server/models"
	"github.com/dmitrijs2005/prisynced/internal/server/repositories/items"
)

// Reconciler is the subscription reconciliation used by TrackingService.
type Reconciler interface {
	EnsureOptedIn(ctx context.Context, recipient string) (bool, error)
	RepairOnRead(ctx context.Context, recipient string)
}

// AddResult is returned by TrackingService.Add.
type AddResult struct {
	Success              bool `json:"success"`
	RequiresConfirmation bool `json:"requiresConfirmation"`
}

// TrackingService serves the track/list/remove operations and keeps the
// caller's alert subscription reconciled along the way.
type TrackingService struct {
	items        items.Repository
	reconciler   Reconciler
	domain       string
	scopedDelete bool
	logger       logging.Logger
	now          func() time.Time
}

// NewTrackingService builds a TrackingService accepting URLs on domain and
// its subdomains. With scopedDelete set, Remove only deletes the caller's
// own items.
func NewTrackingService(repo items.Repository, r Reconciler, domain string, scopedDelete bool, logger logging.Logger) *TrackingService {
	return &TrackingService{
		items:        repo,
		reconciler:   r,
		domain:       strings.ToLower(domain),
		scopedDelete: scopedDelete,
		logger:       logger.With("module", "tracking_service"),
		now:          time.Now,
	}
}

// Add starts tracking productURL for recipient. The subscription is
// reconciled first; the item is written only if that succeeds.
func (s *TrackingService) Add(ctx context.Context, recipient, productURL string) (*AddResult, error) {
	if recipient == "" {
		return nil, common.ErrorUnauthorized
	}
	if !s.supported(productURL) {
		return nil, fmt.Errorf("%w: %q", common.ErrorUnsupportedSource, productURL)
	}

	requiresConfirmation, err := s.reconciler.EnsureOptedIn(ctx, recipient)
	if err != nil {
		return nil, fmt.Errorf("reconcile subscription: %w", err)
	}

	if err := s.upsert(ctx, recipient, productURL); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "item tracked", "user_id", recipient, "url", productURL, "requires_confirmation", requiresConfirmation)
	return &AddResult{Success: true, RequiresConfirmation: requiresConfirmation}, nil
}

func (s *TrackingService) upsert(ctx context.Context, recipient, productURL string) error {
	now := s.now().UTC()
	item := &models.Item{
		ProductURL: productURL,
		UserID:     recipient,
		CreatedAt:  now,
		UpdatedAt:  now,
		InStock:    true,
	}

	existing, err := s.items.Get(ctx, productURL)
	switch {
	case err == nil:
		if existing.UserID == recipient {
			item.CreatedAt = existing.CreatedAt
			item.LastPrice = existing.LastPrice
			item.InStock = existing.InStock
		} else {
			s.logger.Warn(ctx, "item changes owner", "url", productURL, "from", existing.UserID, "to", recipient)
		}
	case !errors.Is(err, common.ErrorNotFound):
		return fmt.Errorf("load item: %w", err)
	}

	if err := s.items.Put(ctx, item); err != nil {
		return fmt.Errorf("save item: %w", err)
	}
	return nil
}

// List returns recipient's items newest first after a best-effort
// subscription repair.
func (s *TrackingService) List(ctx context.Context, recipient string) ([]*models.Item, error) {
	if recipient == "" {
		return nil, common.ErrorUnauthorized
	}

	s.reconciler.RepairOnRead(ctx, recipient)

	result, err := s.items.ListByUser(ctx, recipient)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if result == nil {
		result = []*models.Item{}
	}
	return result, nil
}

// Remove stops tracking productURL.
func (s *TrackingService) Remove(ctx context.Context, recipient, productURL string) error {
	if recipient == "" {
		return common.ErrorUnauthorized
	}
	if productURL == "" {
		return fmt.Errorf("%w: url is required", common.ErrorValidation)
	}

	if s.scopedDelete {
		existing, err := s.items.Get(ctx, productURL)
		if err != nil {
			return err
		}
		if existing.UserID != recipient {
			return common.ErrorNotFound
		}
	}

	if err := s.items.Delete(ctx, productURL); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.logger.Info(ctx, "item removed", "user_id", recipient, "url", productURL)
	return nil
}

// supported reports whether raw is an http(s) URL on the configured
// domain or one of its subdomains.
func (s *TrackingService) supported(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	return host == s.domain || strings.HasSuffix(host, "."+s.domain)
}
