package handler

import (
	"net/http"

	"circlefin-go/internal/transport/httpserver/middleware"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type authMeResponse struct {
	ID    string  `json:"id"`
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	response := authMeResponse{ID: user.ID}

	// The stored profile carries whatever the identity provider reported on
	// the last authenticated request, which may lag the token's claims.
	profile, err := h.Profiles.GetProfile(r.Context(), user.ID)
	if err == nil && profile != nil {
		response.Email = profile.Email
		response.Name = profile.Name
	} else {
		if user.Email != "" {
			response.Email = &user.Email
		}
		if user.Name != "" {
			response.Name = &user.Name
		}
	}

	writeJSON(w, http.StatusOK, response)
}
