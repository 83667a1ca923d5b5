package api

import (
	"log/slog"
	"net"
	"net/http"
)

const realIPHeader = "X-Real-IP"

func remoteIP(r *http.Request) string {
	if ip := r.Header.Get(realIPHeader); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// accessLog logs every request except health checks.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			slog.Info("request", "ip", remoteIP(r), "method", r.Method, "url", r.URL.RequestURI())
		}
		next.ServeHTTP(w, r)
	})
}
