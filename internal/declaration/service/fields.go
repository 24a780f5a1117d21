package service

import (
	"context"
	"time"

	"travelgate/internal/declaration/models"
	"travelgate/internal/declaration/wizard"
	refmodels "travelgate/internal/referencedata/models"
	id "travelgate/pkg/domain"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/platform/audit"
)

func (s *Service) UpdatePassenger(ctx context.Context, sessionID id.SessionID, u models.PassengerUpdate) (*models.Declaration, error) {
	return s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		return s.machine.UpdatePassenger(d, u)
	})
}

func (s *Service) SetTaxPIN(ctx context.Context, sessionID id.SessionID, pin string) (*models.Declaration, error) {
	return s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		return s.machine.SetTaxPIN(d, pin)
	})
}

func (s *Service) UpdateTravel(ctx context.Context, sessionID id.SessionID, u models.TravelUpdate) (*models.Declaration, error) {
	return s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		return s.machine.UpdateTravel(d, u)
	})
}

func (s *Service) AddCountryVisited(ctx context.Context, sessionID id.SessionID, code string) (*models.Declaration, error) {
	return s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		return s.machine.AddCountryVisited(d, code)
	})
}

func (s *Service) RemoveCountryVisited(ctx context.Context, sessionID id.SessionID, code string) (*models.Declaration, error) {
	return s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		return s.machine.RemoveCountryVisited(d, code)
	})
}

func (s *Service) UpdateDeclarationFlags(ctx context.Context, sessionID id.SessionID, u models.DeclarationFlags) (*models.Declaration, error) {
	return s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		return s.machine.UpdateDeclarationFlags(d, u)
	})
}

func (s *Service) SaveItem(ctx context.Context, sessionID id.SessionID, c models.Category, it models.Item) (*models.Declaration, error) {
	return s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		return s.machine.SaveItem(d, c, it)
	})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID id.SessionID, c models.Category, index int) (*models.Declaration, error) {
	return s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		return s.machine.RemoveItem(d, c, index)
	})
}

func (s *Service) SendOTP(ctx context.Context, sessionID id.SessionID) (*models.Declaration, error) {
	defer s.observe("send_otp", time.Now())

	d, err := s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		return s.machine.SendOTP(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, d, audit.Event{Action: string(audit.EventOTPSent)})
	return d, nil
}

func (s *Service) VerifyOTP(ctx context.Context, sessionID id.SessionID, code string) (*models.Declaration, error) {
	defer s.observe("verify_otp", time.Now())

	d, err := s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		return s.machine.VerifyOTP(ctx, d, code)
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, d, audit.Event{Action: string(audit.EventOTPVerified)})
	return d, nil
}

// SearchHSCodes looks up codes for the item modal. Lookups are throttled per
// session and do not take the busy flag; queries too short to search are
// rejected before they count against the throttle.
func (s *Service) SearchHSCodes(ctx context.Context, sessionID id.SessionID, query string) ([]refmodels.HSCode, error) {
	defer s.observe("search_hs_codes", time.Now())

	if _, err := s.load(ctx, sessionID); err != nil {
		return nil, err
	}
	query, err := wizard.CheckHSQuery(query)
	if err != nil {
		return nil, err
	}
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, sessionID.String())
		if err != nil {
			s.logger.WarnContext(ctx, "hs lookup limiter failed, allowing request",
				"session_id", sessionID.String(),
				"error", err,
			)
		} else if !allowed {
			return nil, dErrors.New(dErrors.CodeRateLimited, "too many searches, please slow down")
		}
	}
	return s.machine.SearchHSCodes(ctx, query)
}
