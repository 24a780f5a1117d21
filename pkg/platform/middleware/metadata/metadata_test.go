package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"travelgate/pkg/requestcontext"
)

type MetadataSuite struct {
	suite.Suite
}

func TestMetadataSuite(t *testing.T) {
	suite.Run(t, new(MetadataSuite))
}

func (s *MetadataSuite) TestClientIPFromRequest() {
	tests := []struct {
		name   string
		remote string
		xff    []string
		hops   int
		want   string
	}{
		{name: "peer address without proxies", remote: "192.0.2.10:5555", want: "192.0.2.10"},
		{name: "forwarded header ignored without trusted hops", remote: "203.0.113.9:5555", xff: []string{"1.1.1.1"}, want: "203.0.113.9"},
		{name: "one proxy: rightmost forwarded entry", remote: "10.0.0.2:443", xff: []string{"6.6.6.6, 198.51.100.4"}, hops: 1, want: "198.51.100.4"},
		{name: "two proxies across repeated headers", remote: "10.0.0.3:443", xff: []string{"6.6.6.6, 198.51.100.4", "10.0.0.2"}, hops: 2, want: "198.51.100.4"},
		{name: "short chain falls back to leftmost", remote: "10.0.0.2:443", hops: 3, want: "10.0.0.2"},
		{name: "ipv6 peer", remote: "[2001:db8::1]:5555", want: "2001:db8::1"},
		{name: "missing peer", remote: "", want: "unknown"},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remote
			for _, v := range tc.xff {
				r.Header.Add("X-Forwarded-For", v)
			}
			s.Equal(tc.want, ClientIPFromRequest(r, tc.hops))
		})
	}
}

func (s *MetadataSuite) TestSpoofedForwardedForKeepsKey() {
	var seen []string
	h := ClientMetadata(0)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = append(seen, requestcontext.ClientIP(r.Context()))
	}))
	for _, spoof := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3, 4.4.4.4"} {
		r := httptest.NewRequest(http.MethodPost, "/declarations", nil)
		r.RemoteAddr = "203.0.113.9:5555"
		r.Header.Set("X-Forwarded-For", spoof)
		r.Header.Set("X-Real-IP", spoof)
		h.ServeHTTP(httptest.NewRecorder(), r)
	}
	s.Equal([]string{"203.0.113.9", "203.0.113.9", "203.0.113.9"}, seen)
}

func (s *MetadataSuite) TestMiddlewareInjectsContext() {
	var gotIP, gotUA string
	h := ClientMetadata(0)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotIP = requestcontext.ClientIP(r.Context())
		gotUA = requestcontext.UserAgent(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:5555"
	r.Header.Set("User-Agent", "curl/8.0")
	h.ServeHTTP(httptest.NewRecorder(), r)

	s.Equal("192.0.2.10", gotIP)
	s.Equal("curl/8.0", gotUA)
}

func (s *MetadataSuite) TestDeviceDisplayName() {
	s.Run("empty user agent returns unknown device", func() {
		s.Equal("Unknown Device", DeviceDisplayName(""))
	})

	s.Run("chrome on desktop includes browser and OS", func() {
		ua := "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
		result := DeviceDisplayName(ua)
		s.Contains(result, "Chrome")
		s.Contains(result, "on")
		s.NotContains(result, "  ")
	})

	s.Run("firefox on linux includes browser", func() {
		ua := "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
		result := DeviceDisplayName(ua)
		s.Contains(result, "Firefox")
		s.Contains(result, "on")
	})
}
