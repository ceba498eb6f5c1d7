package headers

import (
	"net/http"

	"bookcatalog/internal/httpx"
)

const approvalValue = "manager42"

type HTTPHandler struct {
	tokens *TokenSource
}

func NewHTTPHandler(tokens *TokenSource) *HTTPHandler {
	return &HTTPHandler{tokens: tokens}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /headers/user-agent", h.UserAgent)
	mux.HandleFunc("GET /headers/custom", h.Custom)
	mux.HandleFunc("GET /headers/secure", h.Secure)
	mux.HandleFunc("GET /headers/all", h.All)
	mux.HandleFunc("GET /headers/approval", h.Approval)
}

// optional returns nil for an absent header so it encodes as JSON null.
func optional(r *http.Request, name string) *string {
	values, ok := r.Header[http.CanonicalHeaderKey(name)]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// UserAgent handles GET /headers/user-agent
// @Summary Echo the User-Agent header
// @Tags headers
// @Produce json
// @Success 200 {object} map[string]string
// @Router /headers/user-agent [get]
func (h *HTTPHandler) UserAgent(w http.ResponseWriter, r *http.Request) {
	httpx.JSONOK(w, r, map[string]*string{
		"user_agent": optional(r, "User-Agent"),
	})
}

// Custom handles GET /headers/custom
// @Summary Echo the X-Token and X-Client-ID headers
// @Tags headers
// @Produce json
// @Success 200 {object} map[string]string
// @Router /headers/custom [get]
func (h *HTTPHandler) Custom(w http.ResponseWriter, r *http.Request) {
	httpx.JSONOK(w, r, map[string]*string{
		"x_token":     optional(r, "X-Token"),
		"x_client_id": optional(r, "X-Client-ID"),
	})
}

// Secure handles GET /headers/secure
// @Summary Token protected route
// @Description Grants access when Authorization is "Bearer <configured token>"
// @Tags headers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} map[string]string
// @Failure 401 {object} httpx.ErrorResponse
// @Router /headers/secure [get]
func (h *HTTPHandler) Secure(w http.ResponseWriter, r *http.Request) {
	if !h.tokens.Authorized(r.Header.Get("Authorization")) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}
	httpx.JSONOK(w, r, map[string]string{"message": "Access granted - Token Verified"})
}

// All handles GET /headers/all
// @Summary Echo User-Agent, X-Token and Authorization together
// @Tags headers
// @Produce json
// @Success 200 {object} map[string]string
// @Router /headers/all [get]
func (h *HTTPHandler) All(w http.ResponseWriter, r *http.Request) {
	httpx.JSONOK(w, r, map[string]*string{
		"user_agent":    optional(r, "User-Agent"),
		"x_token":       optional(r, "X-Token"),
		"authorization": optional(r, "Authorization"),
	})
}

// Approval handles GET /headers/approval
// @Summary Response carrying a custom header
// @Tags headers
// @Produce json
// @Success 200 {object} map[string]string
// @Header 200 {string} X-Approval "approver id"
// @Router /headers/approval [get]
func (h *HTTPHandler) Approval(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Approval", approvalValue)
	httpx.JSONOK(w, r, map[string]string{"status": "secure"})
}
