package service

import (
	"context"
	"fmt"
	"strings"

	"yardflow/internal/core/logger"
	"yardflow/internal/yard/domain"
	"yardflow/internal/yard/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CarrierServiceImpl implements ports.CarrierService. Carriers hold the
// detention policy the accrual engine reads, so writes validate the
// policy and the site-eligibility set.
type CarrierServiceImpl struct {
	carriers ports.CarrierRepository
	sites    ports.SiteRepository
	trailers ports.TrailerRepository
}

// NewCarrierService creates a new CarrierServiceImpl.
func NewCarrierService(carriers ports.CarrierRepository, sites ports.SiteRepository, trailers ports.TrailerRepository) *CarrierServiceImpl {
	return &CarrierServiceImpl{carriers: carriers, sites: sites, trailers: trailers}
}

// Create registers a new carrier.
func (s *CarrierServiceImpl) Create(ctx context.Context, in ports.CarrierInput) (*domain.Carrier, error) {
	if err := validateCarrierInput(in); err != nil {
		return nil, err
	}
	existing, err := s.carriers.FindByCode(ctx, in.Code)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up carrier code %s: %w", in.Code, err)
	}
	if existing != nil {
		return nil, domain.Invalidf("carrier code %s is already in use", in.Code)
	}
	if err := s.checkSites(ctx, in.EligibleSiteIDs); err != nil {
		return nil, err
	}

	carrier := &domain.Carrier{ID: uuid.NewString()}
	applyCarrierInput(carrier, in)
	if err := s.carriers.Save(ctx, carrier); err != nil {
		return nil, fmt.Errorf("service: failed to save carrier: %w", err)
	}
	logger.Get().Info("Carrier created", zap.String("carrier_id", carrier.ID), zap.String("code", carrier.Code))
	return carrier, nil
}

// Update rewrites a carrier's attributes and detention policy.
func (s *CarrierServiceImpl) Update(ctx context.Context, id string, in ports.CarrierInput) (*domain.Carrier, error) {
	if err := validateCarrierInput(in); err != nil {
		return nil, err
	}
	carrier, err := s.getCarrier(ctx, id)
	if err != nil {
		return nil, err
	}
	if carrier.Code != in.Code {
		existing, err := s.carriers.FindByCode(ctx, in.Code)
		if err != nil {
			return nil, fmt.Errorf("service: failed to look up carrier code %s: %w", in.Code, err)
		}
		if existing != nil && existing.ID != id {
			return nil, domain.Invalidf("carrier code %s is already in use", in.Code)
		}
	}
	if err := s.checkSites(ctx, in.EligibleSiteIDs); err != nil {
		return nil, err
	}

	applyCarrierInput(carrier, in)
	if err := s.carriers.Save(ctx, carrier); err != nil {
		return nil, fmt.Errorf("service: failed to save carrier %s: %w", id, err)
	}
	return carrier, nil
}

// GetByID retrieves one carrier.
func (s *CarrierServiceImpl) GetByID(ctx context.Context, id string) (*domain.Carrier, error) {
	return s.getCarrier(ctx, id)
}

// GetByCode retrieves a carrier by its unique code.
func (s *CarrierServiceImpl) GetByCode(ctx context.Context, code string) (*domain.Carrier, error) {
	carrier, err := s.carriers.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up carrier code %s: %w", code, err)
	}
	if carrier == nil {
		return nil, domain.NotFound("carrier", code)
	}
	return carrier, nil
}

// GetAll retrieves every carrier.
func (s *CarrierServiceImpl) GetAll(ctx context.Context) ([]domain.Carrier, error) {
	return s.carriers.FindAll(ctx)
}

// GetWithDetention retrieves the carriers with detention billing
// enabled.
func (s *CarrierServiceImpl) GetWithDetention(ctx context.Context) ([]domain.Carrier, error) {
	return s.carriers.FindDetentionEnabled(ctx)
}

// UpdateSiteEligibility replaces the set of sites a carrier may operate
// at.
func (s *CarrierServiceImpl) UpdateSiteEligibility(ctx context.Context, id string, siteIDs []string) (*domain.Carrier, error) {
	carrier, err := s.getCarrier(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkSites(ctx, siteIDs); err != nil {
		return nil, err
	}
	carrier.EligibleSiteIDs = siteIDs
	if err := s.carriers.Save(ctx, carrier); err != nil {
		return nil, fmt.Errorf("service: failed to save carrier %s: %w", id, err)
	}
	return carrier, nil
}

// Delete removes a carrier that no trailer references.
func (s *CarrierServiceImpl) Delete(ctx context.Context, id string) error {
	carrier, err := s.getCarrier(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.trailers.CountByCarrier(ctx, id)
	if err != nil {
		return fmt.Errorf("service: failed to count trailers for carrier %s: %w", id, err)
	}
	if count > 0 {
		return domain.Invalidf("cannot delete carrier %s: it has %d associated trailers, reassign the trailers first", carrier.Code, count)
	}
	if err := s.carriers.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete carrier %s: %w", id, err)
	}
	logger.Get().Info("Carrier deleted", zap.String("carrier_id", id))
	return nil
}

func (s *CarrierServiceImpl) checkSites(ctx context.Context, siteIDs []string) error {
	for _, siteID := range siteIDs {
		site, err := s.sites.FindByID(ctx, siteID)
		if err != nil {
			return fmt.Errorf("service: failed to look up site %s: %w", siteID, err)
		}
		if site == nil {
			return domain.NotFound("site", siteID)
		}
	}
	return nil
}

func (s *CarrierServiceImpl) getCarrier(ctx context.Context, id string) (*domain.Carrier, error) {
	carrier, err := s.carriers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up carrier %s: %w", id, err)
	}
	if carrier == nil {
		return nil, domain.NotFound("carrier", id)
	}
	return carrier, nil
}

func applyCarrierInput(carrier *domain.Carrier, in ports.CarrierInput) {
	carrier.Name = in.Name
	carrier.Code = in.Code
	carrier.OwnsTractors = in.OwnsTractors
	carrier.OwnsTrailers = in.OwnsTrailers
	carrier.DetentionEnabled = in.DetentionEnabled
	carrier.FreeTimeHours = in.FreeTimeHours
	carrier.ChargeIntervalHours = in.ChargeIntervalHours
	carrier.ChargePerInterval = in.ChargePerInterval
	carrier.MaxChargeEnabled = in.MaxChargeEnabled
	carrier.MaxCharge = in.MaxCharge
	carrier.EligibleSiteIDs = in.EligibleSiteIDs
}

func validateCarrierInput(in ports.CarrierInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalidf("carrier name is required")
	}
	if strings.TrimSpace(in.Code) == "" {
		return domain.Invalidf("carrier code is required")
	}
	if in.DetentionEnabled {
		if in.FreeTimeHours <= 0 {
			return domain.Invalidf("free time hours must be positive when detention is enabled")
		}
		if in.ChargeIntervalHours <= 0 {
			return domain.Invalidf("charge interval hours must be positive when detention is enabled")
		}
		if in.ChargePerInterval.IsNegative() {
			return domain.Invalidf("charge per interval cannot be negative")
		}
	}
	return nil
}
