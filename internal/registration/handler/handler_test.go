package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"travelgate/internal/registration/handler/mocks"
	"travelgate/internal/registration/models"
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
	limited   bool
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.service = mocks.NewMockService(ctrl)
	s.tokens = session.NewTokenService("test-key", "travelgate", "travelgate-web")
	s.limited = false

	limit := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.limited {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
	h := New(s.service, s.tokens, session.NewMiddlewareAdapter(s.tokens), 2*time.Hour,
		slog.New(slog.NewTextHandler(io.Discard, nil)), WithStartLimit(limit))
	s.router = chi.NewRouter()
	h.Register(s.router)

	s.sessionID = id.NewSessionID()
	token, err := s.tokens.Issue(s.sessionID, session.FlowRegistration, time.Hour)
	s.Require().NoError(err)
	s.token = token
}

func (s *HandlerSuite) registration() *models.Registration {
	return models.NewRegistration(s.sessionID, models.TypeIndividual, "+254711000111", time.Now(), 2*time.Hour)
}

func (s *HandlerSuite) authed(req *http.Request) *http.Request {
	return testutil.WithBearer(req, s.token)
}

func (s *HandlerSuite) TestStart() {
	s.Run("issues a registration token", func() {
		s.service.EXPECT().Start(gomock.Any(), id.SessionID{}, models.TypeIndividual, "+254711000111").
			Return(s.registration(), nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/registrations",
			map[string]string{"type": "individual", "phone": "+254711000111"}))
		s.Require().Equal(http.StatusCreated, rr.Code)

		resp := testutil.UnmarshalResponse[StartResponse](s.T(), rr)
		s.Equal(models.TypeIndividual, resp.Registration.Type)
		claims, err := s.tokens.ValidateToken(resp.SessionToken)
		s.Require().NoError(err)
		s.Equal(session.FlowRegistration, claims.Flow)
	})

	s.Run("validation markers", func() {
		s.service.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return(nil, dErrors.NewValidation("enter a valid phone number", map[string]string{"phone": "Required"}))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/registrations",
			map[string]string{"type": "individual"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("throttled", func() {
		s.limited = true
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/registrations",
			map[string]string{"type": "individual", "phone": "+254711000111"}))
		testutil.AssertStatus(s.T(), rr, http.StatusTooManyRequests)
		s.limited = false
	})
}

func (s *HandlerSuite) TestDeclarationTokenIsRejected() {
	declToken, err := s.tokens.Issue(s.sessionID, session.FlowDeclaration, time.Hour)
	s.Require().NoError(err)
	req := testutil.WithBearer(testutil.NewRequest(s.T(), http.MethodGet, "/registrations/current"), declToken)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
}

func (s *HandlerSuite) TestOTP() {
	r := s.registration()
	r.OTP.Sent = true
	s.service.EXPECT().SendOTP(gomock.Any(), s.sessionID).Return(r, nil)
	rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodPost, "/registrations/current/otp/send")))
	testutil.AssertStatusOK(s.T(), rr)
	s.True(testutil.UnmarshalResponse[RegistrationResponse](s.T(), rr).OTPSent)

	verified := *r
	verified.OTP.Verified = true
	s.service.EXPECT().VerifyOTP(gomock.Any(), s.sessionID, "123456").Return(&verified, nil)
	rr = testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost,
		"/registrations/current/otp/verify", map[string]string{"code": "123456"})))
	testutil.AssertStatusOK(s.T(), rr)
	s.True(testutil.UnmarshalResponse[RegistrationResponse](s.T(), rr).OTPVerified)
}

func (s *HandlerSuite) TestSubmit() {
	s.Run("returns the PIN", func() {
		r := s.registration()
		r.PIN = "A012345678Z"
		s.service.EXPECT().Submit(gomock.Any(), s.sessionID, gomock.Any()).
			DoAndReturn(func(_ any, _ id.SessionID, d models.Details) (*models.Registration, models.Result, error) {
				s.Equal("Amina", d.FirstName)
				s.Equal("14/02/1990", d.DateOfBirth)
				return r, models.Result{PIN: r.PIN, Message: "Registered"}, nil
			})

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/registrations/current/submit", map[string]string{
				"first_name": "Amina", "surname": "Otieno", "id_number": "12345678",
				"date_of_birth": "14/02/1990", "email": "amina@example.com",
			})))
		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[SubmitResponse](s.T(), rr)
		s.Equal("A012345678Z", resp.PIN)
		s.True(resp.Registration.Submitted)
	})

	s.Run("unverified phone", func() {
		s.service.EXPECT().Submit(gomock.Any(), s.sessionID, gomock.Any()).
			Return(nil, models.Result{}, dErrors.New(dErrors.CodeForbidden, "verify your phone number before submitting"))
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/registrations/current/submit", map[string]string{"email": "a@b.co"})))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})

	s.Run("unknown field", func() {
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/registrations/current/submit", map[string]string{"nickname": "x"})))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}
