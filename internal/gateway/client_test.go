package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"travelgate/internal/declaration/models"
	"travelgate/internal/notify"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/requestcontext"
)

type ClientSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	client  *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))
	client, err := New(s.server.URL, "secret", "travelgate-test", 2*time.Second)
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func writeEnvelope(w http.ResponseWriter, status int, env map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func (s *ClientSuite) TestInitializeSendsCallerAndHeaders() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/declarations", r.URL.Path)
		s.Equal("secret", r.Header.Get(headerAPIKey))
		s.Equal("travelgate-test", r.Header.Get(headerCallerID))
		s.Equal("req-42", r.Header.Get(headerRequestID))
		body, _ := io.ReadAll(r.Body)
		s.JSONEq(`{"caller_id":"travelgate-test"}`, string(body))
		writeEnvelope(w, http.StatusOK, map[string]any{
			"status": "success",
			"data":   map[string]any{"reference_number": " DEC-001 "},
		})
	}

	ctx := requestcontext.WithRequestID(context.Background(), "req-42")
	ref, err := s.client.InitializeDeclaration(ctx)
	s.Require().NoError(err)
	s.Equal("DEC-001", ref.String())
}

func (s *ClientSuite) TestInitializeWithoutReference() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"status": "success", "data": map[string]any{}})
	}
	ref, err := s.client.InitializeDeclaration(context.Background())
	s.Require().NoError(err)
	s.True(ref.IsZero())
}

func (s *ClientSuite) TestSubmitItemsDecodesAssessments() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/declarations/DEC-9/items", r.URL.Path)
		var got map[string]any
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&got))
		s.Equal(true, got["compute_assessments"])
		writeEnvelope(w, http.StatusOK, map[string]any{
			"status": "success",
			"data": map[string]any{"assessments": []map[string]any{
				{"tax_type": "VAT", "tax_amount": 8, "tax_base": 50, "tax_rate": 0.16, "item_reference": "1006"},
			}},
		})
	}

	lines, err := s.client.SubmitItems(context.Background(), models.ItemsSubmission{
		ReferenceNumber:    "DEC-9",
		Items:              []models.SubmissionItem{},
		ComputeAssessments: true,
	})
	s.Require().NoError(err)
	s.Require().Len(lines, 1)
	s.Equal("VAT", lines[0].TaxType)
	s.True(lines[0].TaxAmount.Equal(models.NewAmount(8)))
}

func (s *ClientSuite) TestErrorClassification() {
	cases := []struct {
		name     string
		status   int
		body     string
		category ErrorCategory
	}{
		{"business error envelope", http.StatusOK, `{"status":"error","message":"Passport mismatch"}`, ErrorRejected},
		{"4xx with message", http.StatusUnprocessableEntity, `{"status":"error","message":"bad pin"}`, ErrorRejected},
		{"server error", http.StatusBadGateway, `oops`, ErrorUnavailable},
		{"not found", http.StatusNotFound, `{}`, ErrorNotFound},
		{"auth", http.StatusUnauthorized, `{}`, ErrorAuthentication},
		{"rate limited", http.StatusTooManyRequests, `{}`, ErrorRateLimited},
		{"malformed", http.StatusOK, `{not json`, ErrorBadData},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.handler = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}
			err := s.client.SubmitPassengerInfo(context.Background(), models.PassengerSubmission{ReferenceNumber: "DEC-1"})
			s.Require().Error(err)
			s.Equal(tc.category, GetCategory(err))
		})
	}
}

func (s *ClientSuite) TestRejectedMessageSurvivesDomainMapping() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"status": "error", "message": "Invalid PIN"})
	}
	err := s.client.SubmitTravelInfo(context.Background(), models.TravelSubmission{ReferenceNumber: "DEC-1"})
	s.True(IsRejected(err))
	s.False(IsRetryable(err))

	derr := ToDomainError(err, "could not save travel details")
	s.True(dErrors.HasCode(derr, dErrors.CodeBadRequest))
	s.Contains(derr.Error(), "Invalid PIN")
}

func (s *ClientSuite) TestOTPUnsuccessfulIsRejected() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/otp/pin/verify", r.URL.Path)
		writeEnvelope(w, http.StatusOK, map[string]any{
			"status": "success",
			"data":   map[string]any{"success": false, "message": "Code expired"},
		})
	}
	err := s.client.VerifyTaxPINOTP(context.Background(), "A123456789B", "1234")
	s.True(IsRejected(err))
	s.Equal("Code expired", RemoteMessage(err))
}

func (s *ClientSuite) TestFinalizeWithoutCheckout() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"status": "success", "data": nil})
	}
	res, err := s.client.FinalizeDeclaration(context.Background(), "DEC-1", "")
	s.Require().NoError(err)
	s.False(res.HasCheckout())
}

func (s *ClientSuite) TestSearchHSCodesQuery() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("rice", r.URL.Query().Get("q"))
		s.Equal("5", r.URL.Query().Get("page_size"))
		writeEnvelope(w, http.StatusOK, map[string]any{
			"status": "success",
			"data":   []map[string]string{{"code": "1006", "description": "Rice"}},
		})
	}
	out, err := s.client.SearchHSCodes(context.Background(), "rice", 5)
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Equal("1006", out[0].Code)
}

func (s *ClientSuite) TestNotificationBody() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		var got notify.Message
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&got))
		s.Equal("+254700000000", got.Phone)
		s.Equal(notify.KindCheckout, got.Kind)
		writeEnvelope(w, http.StatusOK, map[string]any{"status": "success"})
	}
	s.NoError(s.client.Send(context.Background(), notify.Message{Kind: notify.KindCheckout, Phone: "+254700000000"}))
}

func TestClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client, err := New(server.URL, "", "caller", 20*time.Millisecond)
	require.NoError(t, err)

	_, err = client.ListCountries(context.Background())
	require.Error(t, err)
	assert.Equal(t, ErrorTimeout, GetCategory(err))
	assert.True(t, IsRetryable(err))
	assert.True(t, dErrors.HasCode(ToDomainError(err, "try again"), dErrors.CodeTimeout))
}

func TestClientUnreachable(t *testing.T) {
	client, err := New("http://127.0.0.1:1", "", "caller", time.Second)
	require.NoError(t, err)

	err = client.SubmitPassengerInfo(context.Background(), models.PassengerSubmission{ReferenceNumber: "X"})
	assert.Equal(t, ErrorUnavailable, GetCategory(err))
	assert.False(t, IsRejected(err))
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("ftp://example.com", "", "caller", time.Second)
	assert.Error(t, err)
}
