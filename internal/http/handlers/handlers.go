package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/readee/gateway/internal/http/middleware"
	"github.com/readee/gateway/internal/mock"
)

type Handler struct {
	Client      *http.Client
	BackendBase *url.URL
	Mock        *mock.Layer
	Logger      zerolog.Logger
	MaxBodySize int64
}

type HealthResponse struct {
	Status  string   `json:"status"`
	Mock    bool     `json:"mock"`
	Domains []string `json:"domains"`
}

type ResetResponse struct {
	Status string `json:"status"`
}

// hop-by-hop headers are never forwarded in either direction.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// @Summary Health check
// @Description Reports whether the API simulation layer is active and which domains it serves
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	domains := []string{}
	if h.Mock != nil {
		domains = append(domains, h.Mock.Registry.Installed()...)
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Mock:    h.Mock != nil && h.Mock.Enabled,
		Domains: domains,
	})
}

// @Summary Reset mock data
// @Description Puts every in-memory store back to its seeded state
// @Tags system
// @Produce json
// @Param X-Admin-Key header string false "Admin key"
// @Success 200 {object} ResetResponse
// @Failure 401 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /_mock/reset [post]
func (h *Handler) ResetMock(c *gin.Context) {
	if h.Mock == nil || !h.Mock.Reset() {
		writeError(c, http.StatusConflict, "MOCK_DISABLED", "Mock API layer is not enabled", nil)
		return
	}
	h.Logger.Info().Msg("mock stores reset")
	c.JSON(http.StatusOK, ResetResponse{Status: "reset"})
}

// @Summary Backend API
// @Description Forwards any /api call to the backend, or to the simulation layer when USE_MOCK is on
// @Tags api
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /api/{path} [get]
func (h *Handler) Proxy(c *gin.Context) {
	if c.Request.URL.Path != "/api" && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Route not found", c.Request.URL.Path)
		return
	}

	target := *h.BackendBase
	target.Path = strings.TrimRight(h.BackendBase.Path, "/") + c.Request.URL.Path
	if c.Request.URL.RawPath != "" {
		target.RawPath = strings.TrimRight(h.BackendBase.EscapedPath(), "/") + c.Request.URL.RawPath
	}
	target.RawQuery = c.Request.URL.RawQuery

	body := io.Reader(http.NoBody)
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		body = c.Request.Body
		if h.MaxBodySize > 0 {
			body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBodySize)
		}
	}
	out, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target.String(), body)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Cannot build upstream request", err.Error())
		return
	}
	out.Header = c.Request.Header.Clone()
	stripHop(out.Header)
	if rid, ok := c.Get(middleware.RequestIDHeader); ok {
		out.Header.Set(middleware.RequestIDHeader, rid.(string))
	}
	out.ContentLength = c.Request.ContentLength

	resp, err := h.Client.Do(out)
	if err != nil {
		var maxErr *http.MaxBytesError
		var urlErr *url.Error
		switch {
		case errors.As(err, &maxErr):
			writeError(c, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "Request body too large", maxErr.Limit)
		case errors.Is(err, context.DeadlineExceeded), errors.As(err, &urlErr) && urlErr.Timeout():
			writeError(c, http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT", "Backend did not answer in time", err.Error())
		default:
			h.Logger.Error().Err(err).Str("target", target.Redacted()).Msg("upstream call failed")
			writeError(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Backend unavailable", err.Error())
		}
		return
	}
	defer resp.Body.Close()

	header := c.Writer.Header()
	for k, vs := range resp.Header {
		// CORS is answered by the gateway itself.
		if strings.HasPrefix(k, "Access-Control-") {
			continue
		}
		for _, v := range vs {
			header.Add(k, v)
		}
	}
	stripHop(header)
	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		h.Logger.Warn().Err(err).Msg("copy upstream body")
	}
}

func stripHop(h http.Header) {
	for _, k := range hopHeaders {
		h.Del(k)
	}
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
