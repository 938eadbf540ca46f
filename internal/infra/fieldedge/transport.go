package fieldedge

import (
	"net/http"
	"strings"

	"fieldedge/internal/domain"
)

func buildHeaders(cfg domain.ClientConfig) http.Header {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+cfg.APIKey)
	headers.Set("Accept", "application/json")
	headers.Set("User-Agent", domain.ServerName+"/"+domain.ServerVersion)
	if companyID := strings.TrimSpace(cfg.CompanyID); companyID != "" {
		headers.Set(domain.HeaderCompanyID, companyID)
	}
	if key := strings.TrimSpace(cfg.SubscriptionKey); key != "" {
		headers.Set(domain.HeaderSubscriptionKey, key)
	}
	return headers
}

type headerRoundTripper struct {
	base    http.RoundTripper
	headers http.Header
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())
	for key, values := range h.headers {
		if key == "Accept" && req.Header.Get(key) != "" {
			continue
		}
		req.Header.Del(key)
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	return h.base.RoundTrip(req)
}

func wrapHTTPClient(base *http.Client, cfg domain.ClientConfig) *http.Client {
	client := &http.Client{}
	if base != nil {
		*client = *base
	}
	rt := client.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	client.Transport = &headerRoundTripper{
		base:    rt,
		headers: buildHeaders(cfg),
	}
	if cfg.Timeout > 0 && client.Timeout == 0 {
		client.Timeout = cfg.Timeout
	}
	return client
}
