package httpapi

import (
	"net/http/httptest"
	"testing"
)

func TestResolveClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded chain uses first hop", headers: map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, remote: "10.0.0.1:443", want: "203.0.113.9"},
		{name: "fly header wins", headers: map[string]string{"Fly-Client-IP": "198.51.100.4", "X-Real-IP": "10.1.1.1"}, remote: "10.0.0.1:443", want: "198.51.100.4"},
		{name: "remote addr fallback", remote: "192.0.2.7:51234", want: "192.0.2.7"},
		{name: "garbage ignored", headers: map[string]string{"X-Real-IP": "not-an-ip"}, remote: "bad", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/fines", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := resolveClientIP(req); got != tt.want {
				t.Fatalf("resolveClientIP()=%q want=%q", got, tt.want)
			}
		})
	}
}
