package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"travelgate/internal/declaration/handler/mocks"
	"travelgate/internal/declaration/models"
	"travelgate/internal/declaration/service"
	"travelgate/internal/declaration/wizard"
	refmodels "travelgate/internal/referencedata/models"
	"travelgate/internal/session"
	id "travelgate/pkg/domain"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/service.go -package=mocks
type HandlerSuite struct {
	suite.Suite
	service   *mocks.MockService
	tokens    *session.TokenService
	router    chi.Router
	sessionID id.SessionID
	token     string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.service = mocks.NewMockService(ctrl)
	s.tokens = session.NewTokenService("test-key", "travelgate", "travelgate-web")

	h := New(s.service, s.tokens, session.NewMiddlewareAdapter(s.tokens), 2*time.Hour,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)

	s.sessionID = id.NewSessionID()
	token, err := s.tokens.Issue(s.sessionID, session.FlowDeclaration, time.Hour)
	s.Require().NoError(err)
	s.token = token
}

func (s *HandlerSuite) declaration(step models.Step) *models.Declaration {
	d := models.NewDeclaration(s.sessionID, time.Now(), 2*time.Hour)
	s.Require().NoError(d.Form.Initialize("DEC-2026-0007"))
	d.Step = step
	return d
}

func (s *HandlerSuite) authed(req *http.Request) *http.Request {
	return testutil.WithBearer(req, s.token)
}

func (s *HandlerSuite) TestStart() {
	s.Run("issues a session token", func() {
		d := s.declaration(models.StepPassengerInfo)
		s.service.EXPECT().Start(gomock.Any(), id.SessionID{}).Return(d, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/declarations", nil))
		s.Require().Equal(http.StatusCreated, rr.Code)

		resp := testutil.UnmarshalResponse[StartResponse](s.T(), rr)
		s.Equal("passenger_info", resp.Declaration.Step)
		s.Equal("DEC-2026-0007", resp.Declaration.ReferenceNumber)
		claims, err := s.tokens.ValidateToken(resp.SessionToken)
		s.Require().NoError(err)
		s.Equal(s.sessionID.String(), claims.SessionID)
	})

	s.Run("passes an existing session along", func() {
		d := s.declaration(models.StepPassengerInfo)
		s.service.EXPECT().Start(gomock.Any(), s.sessionID).Return(d, nil)

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/declarations", nil)))
		s.Equal(http.StatusCreated, rr.Code)
	})

	s.Run("collaborator failure is a bad gateway", func() {
		s.service.EXPECT().Start(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "no reference number was issued, please try again"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/declarations", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadGateway, "service_unavailable")
	})
}

func (s *HandlerSuite) TestSuccessfulCallsRenewTheToken() {
	s.Run("renewed token outlives the one presented", func() {
		s.service.EXPECT().Get(gomock.Any(), s.sessionID).Return(s.declaration(models.StepTravelInfo), nil)

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/declarations/current")))
		testutil.AssertStatusOK(s.T(), rr)

		renewed := rr.Header().Get(session.HeaderRenewedToken)
		s.Require().NotEmpty(renewed)
		claims, err := s.tokens.ValidateToken(renewed)
		s.Require().NoError(err)
		s.Equal(s.sessionID.String(), claims.SessionID)
		s.Equal(session.FlowDeclaration, claims.Flow)
		s.True(claims.ExpiresAt.After(time.Now().Add(90*time.Minute)), "renewed for the full session TTL")
	})

	s.Run("error responses carry no token", func() {
		s.service.EXPECT().Get(gomock.Any(), s.sessionID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "declaration session has expired, please start again"))

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/declarations/current")))
		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
		s.Empty(rr.Header().Get(session.HeaderRenewedToken))
	})
}

func (s *HandlerSuite) TestRequiresSession() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/declarations/current"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")

	regToken, err := s.tokens.Issue(s.sessionID, session.FlowRegistration, time.Hour)
	s.Require().NoError(err)
	req := testutil.WithBearer(testutil.NewRequest(s.T(), http.MethodGet, "/declarations/current"), regToken)
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
}

func (s *HandlerSuite) TestGet() {
	s.service.EXPECT().Get(gomock.Any(), s.sessionID).Return(s.declaration(models.StepTravelInfo), nil)

	rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/declarations/current")))
	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[DeclarationResponse](s.T(), rr)
	s.Equal("travel_info", resp.Step)
	s.Equal(s.sessionID.String(), resp.SessionID)
}

func (s *HandlerSuite) TestExpiredSessionIsNotFound() {
	s.service.EXPECT().Get(gomock.Any(), s.sessionID).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "declaration session has expired, please start again"))

	rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/declarations/current")))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *HandlerSuite) TestUpdatePassenger() {
	s.Run("maps the body to a partial update", func() {
		s.service.EXPECT().UpdatePassenger(gomock.Any(), s.sessionID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ id.SessionID, u models.PassengerUpdate) (*models.Declaration, error) {
				s.Require().NotNil(u.Surname)
				s.Equal("akinyi", *u.Surname)
				s.Nil(u.FirstName)
				s.Require().NotNil(u.Citizenship)
				s.Equal(models.CitizenshipKenyan, *u.Citizenship)
				return s.declaration(models.StepPassengerInfo), nil
			})

		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/declarations/current/passenger",
			map[string]any{"surname": "akinyi", "citizenship": "Kenyan"})
		rr := testutil.DoRequest(s.router, s.authed(req))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("unknown fields are rejected", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/declarations/current/passenger",
			map[string]any{"tax_pin": "A012345678Z"})
		rr := testutil.DoRequest(s.router, s.authed(req))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("validation markers are returned", func() {
		s.service.EXPECT().UpdatePassenger(gomock.Any(), s.sessionID, gomock.Any()).
			Return(nil, dErrors.NewValidation("physical address is too long", map[string]string{"physical_address": "Invalid"}))

		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/declarations/current/passenger",
			map[string]any{"physical_address": "x"})
		rr := testutil.DoRequest(s.router, s.authed(req))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		body := testutil.UnmarshalErrorResponse(s.T(), rr)
		s.Equal("validation_error", body.Error)
		s.Equal("Invalid", body.Fields["physical_address"])
	})
}

func (s *HandlerSuite) TestRejectsNonJSONBody() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPut, "/declarations/current/travel", "arrival_date=1")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := testutil.DoRequest(s.router, s.authed(req))
	testutil.AssertStatus(s.T(), rr, http.StatusUnsupportedMediaType)
}

func (s *HandlerSuite) TestSaveItem() {
	s.Run("decodes the variant for the category", func() {
		s.service.EXPECT().SaveItem(gomock.Any(), s.sessionID, models.CategoryExceeding10000, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ id.SessionID, _ models.Category, it models.Item) (*models.Declaration, error) {
				funds, ok := it.(models.FundsItem)
				s.Require().True(ok)
				s.Equal("Savings", funds.SourceOfFund)
				return s.declaration(models.StepDeclarations), nil
			})

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/declarations/current/items/exceeding_10k",
			map[string]any{"currency": "USD", "value_of_fund": 15000, "source_of_fund": "Savings", "purpose_of_fund": "Tuition"})
		rr := testutil.DoRequest(s.router, s.authed(req))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("goods fields on a funds category are rejected", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/declarations/current/items/7",
			map[string]any{"hs_code": "8471.30.00"})
		rr := testutil.DoRequest(s.router, s.authed(req))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("unknown category", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/declarations/current/items/jewellery", map[string]any{})
		rr := testutil.DoRequest(s.router, s.authed(req))
		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	})
}

func (s *HandlerSuite) TestRemoveItem() {
	s.service.EXPECT().RemoveItem(gomock.Any(), s.sessionID, models.CategoryGifts, 1).
		Return(s.declaration(models.StepDeclarations), nil)
	rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodDelete, "/declarations/current/items/gifts/1")))
	testutil.AssertStatusOK(s.T(), rr)

	rr = testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodDelete, "/declarations/current/items/gifts/first")))
	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
}

func (s *HandlerSuite) TestNextCarriesWarning() {
	d := s.declaration(models.StepTravelInfo)
	s.service.EXPECT().Next(gomock.Any(), s.sessionID).Return(service.StepResult{
		Declaration: d,
		Outcome:     wizard.Outcome{From: models.StepPassengerInfo, To: models.StepTravelInfo, Warning: "Passport number mismatch"},
	}, nil)

	rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodPost, "/declarations/current/next")))
	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[DeclarationResponse](s.T(), rr)
	s.Equal("travel_info", resp.Step)
	s.Equal("Passport number mismatch", resp.Warning)
}

func (s *HandlerSuite) TestBusySessionIsConflict() {
	s.service.EXPECT().Back(gomock.Any(), s.sessionID).
		Return(service.StepResult{}, dErrors.New(dErrors.CodeConflict, "another request for this declaration is in progress"))

	rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodPost, "/declarations/current/back")))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
}

func (s *HandlerSuite) TestPay() {
	s.Run("pay now returns the redirect", func() {
		d := s.declaration(models.StepTaxComputation)
		d.Checkout = &models.FinalizeResult{CheckoutURL: "https://pay.example/abc", InvoiceNumber: "INV-9"}
		s.service.EXPECT().Pay(gomock.Any(), s.sessionID, wizard.PayNow).Return(service.PaymentResult{
			Declaration: d,
			Payment:     wizard.Payment{Mode: wizard.PayNow, RedirectURL: "https://pay.example/abc"},
		}, nil)

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodPost, "/declarations/current/pay-now")))
		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[PaymentResponse](s.T(), rr)
		s.Equal("https://pay.example/abc", resp.RedirectURL)
		s.Equal("INV-9", resp.Declaration.Checkout.InvoiceNumber)
	})

	s.Run("pay later returns the invoice", func() {
		d := s.declaration(models.StepTaxComputation)
		s.service.EXPECT().Pay(gomock.Any(), s.sessionID, wizard.PayLater).Return(service.PaymentResult{
			Declaration: d,
			Payment:     wizard.Payment{Mode: wizard.PayLater, InvoiceNumber: "INV-10", Message: "Pay before exit"},
		}, nil)

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodPost, "/declarations/current/pay-later")))
		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[PaymentResponse](s.T(), rr)
		s.Equal("INV-10", resp.InvoiceNumber)
		s.Empty(resp.RedirectURL)
	})
}

func (s *HandlerSuite) TestSearchHSCodes() {
	s.service.EXPECT().SearchHSCodes(gomock.Any(), s.sessionID, "lapt").
		Return([]refmodels.HSCode{{Code: "8471.30.00", Description: "Portable computers"}}, nil)

	rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/declarations/current/hs-codes?q=lapt")))
	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[[]HSCodeResponse](s.T(), rr)
	s.Require().Len(*resp, 1)
	s.Equal("8471.30.00", (*resp)[0].Code)

	s.service.EXPECT().SearchHSCodes(gomock.Any(), s.sessionID, "lapt").
		Return(nil, dErrors.New(dErrors.CodeRateLimited, "too many searches, please slow down"))
	rr = testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/declarations/current/hs-codes?q=lapt")))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusTooManyRequests, "rate_limited")
}

func (s *HandlerSuite) TestInternalErrorsHideDetails() {
	s.service.EXPECT().Refresh(gomock.Any(), s.sessionID).
		Return(nil, dErrors.Wrap(errors.New("redis: connection refused"), dErrors.CodeInternal, "failed to load declaration"))

	rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodPost, "/declarations/current/refresh")))
	testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
	body := testutil.UnmarshalErrorResponse(s.T(), rr)
	s.Equal("internal_error", body.Error)
	s.Empty(body.ErrorDescription)
}

func (s *HandlerSuite) TestAbandon() {
	s.service.EXPECT().Abandon(gomock.Any(), s.sessionID).Return(nil)
	rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodDelete, "/declarations/current")))
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
}
