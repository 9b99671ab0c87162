package backend

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/odyssey-erp/odyssey-console/internal/platform/httpx"
)

// NewProxy returns a handler forwarding /api/* to {upstream}/api/v1/*.
func NewProxy(upstream string, logger *slog.Logger) (http.Handler, error) {
	target, err := url.Parse(strings.TrimRight(upstream, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend: parse upstream: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("backend: upstream %q must be absolute", upstream)
	}
	if logger == nil {
		logger = slog.Default()
	}
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.URL.Path = target.Path + RewritePath(pr.In.URL.Path)
			pr.Out.URL.RawPath = ""
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Warn("api proxy", slog.String("path", r.URL.Path), slog.Any("error", err))
			httpx.Problem(w, http.StatusBadGateway, "Bad Gateway", "backend unavailable")
		},
	}
	return proxy, nil
}

// RewritePath maps a console /api/... path onto the backend /api/v1/... path.
func RewritePath(path string) string {
	rest := strings.TrimPrefix(path, "/api")
	if rest == "" {
		rest = "/"
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	if rest == "/v1" || strings.HasPrefix(rest, "/v1/") {
		return "/api" + rest
	}
	return APIPrefix + rest
}
