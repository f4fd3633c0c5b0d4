package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	circledomain "circlefin-go/internal/domain/circle"
	"circlefin-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createCircleRequest struct {
	Name string `json:"name"`
}

type joinCircleRequest struct {
	Code string `json:"code"`
}

type updateCircleRequest struct {
	Name string `json:"name"`
}

func (h *Handlers) GetCircleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Circles.GetCircleByUser(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, circledomain.ErrCircleNotFound) {
			h.log.BusinessError("circles.get_me: circle not found", err, "user_id", user.ID)
			writeError(w, http.StatusNotFound, "circle_not_found", "circle not found")
			return
		}
		h.log.InternalError("circles.get_me: get circle failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toCircleResponse(result))
}

func (h *Handlers) CreateCircle(w http.ResponseWriter, r *http.Request) {
	var req createCircleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Circles.CreateCircle(r.Context(), user.ID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, circledomain.ErrAlreadyInCircle):
			h.log.BusinessError("circles.create: user already in circle", err, "user_id", user.ID)
			writeError(w, http.StatusConflict, "already_in_circle", "already in a circle")
		default:
			h.log.InternalError("circles.create: create circle failed", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toCircleResponse(result))
}

func (h *Handlers) JoinCircle(w http.ResponseWriter, r *http.Request) {
	var req joinCircleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code is required")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Circles.JoinCircle(r.Context(), user.ID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, circledomain.ErrCodeNotFound):
			h.log.BusinessError("circles.join: circle code not found", err, "user_id", user.ID, "code", req.Code)
			writeError(w, http.StatusNotFound, "circle_code_not_found", "circle code not found")
		case errors.Is(err, circledomain.ErrAlreadyInCircle):
			h.log.BusinessError("circles.join: user already in circle", err, "user_id", user.ID)
			writeError(w, http.StatusConflict, "already_in_circle", "already in a circle")
		default:
			h.log.InternalError("circles.join: join circle failed", err, "user_id", user.ID, "code", req.Code)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toCircleResponse(result))
}

func (h *Handlers) LeaveCircle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Circles.LeaveCircle(r.Context(), user.ID); err != nil {
		switch {
		case errors.Is(err, circledomain.ErrMemberNotFound), errors.Is(err, circledomain.ErrCircleNotFound):
			h.log.BusinessError("circles.leave: circle not found", err, "user_id", user.ID)
			writeError(w, http.StatusNotFound, "circle_not_found", "circle not found")
		case errors.Is(err, circledomain.ErrCannotRemoveOwner):
			h.log.BusinessError("circles.leave: owner cannot leave while members remain", err, "user_id", user.ID)
			writeError(w, http.StatusConflict, "cannot_remove_owner", "owner cannot leave while members remain")
		default:
			h.log.InternalError("circles.leave: leave circle failed", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UpdateCircle(w http.ResponseWriter, r *http.Request) {
	var req updateCircleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Circles.UpdateCircle(r.Context(), user.ID, req.Name)
	if err != nil {
		if errors.Is(err, circledomain.ErrCircleNotFound) {
			h.log.BusinessError("circles.update: circle not found", err, "user_id", user.ID)
			writeError(w, http.StatusNotFound, "circle_not_found", "circle not found")
			return
		}
		h.log.InternalError("circles.update: update circle failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toCircleResponse(result))
}

func (h *Handlers) ListCircleMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	members, err := h.Circles.ListMembers(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, circledomain.ErrCircleNotFound) {
			h.log.BusinessError("circles.list_members: circle not found", err, "user_id", user.ID)
			writeError(w, http.StatusNotFound, "circle_not_found", "circle not found")
			return
		}
		h.log.InternalError("circles.list_members: list members failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]circleMemberResponse, 0, len(members))
	for _, member := range members {
		item := circleMemberResponse{
			UserID:   member.UserID,
			Role:     member.Role,
			JoinedAt: member.JoinedAt,
		}
		if profile, err := h.Profiles.GetProfile(r.Context(), member.UserID); err == nil && profile != nil {
			item.Email = profile.Email
			item.Name = profile.Name
		}
		response = append(response, item)
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) RemoveCircleMember(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	memberID := strings.TrimSpace(chi.URLParam(r, "user_id"))
	if memberID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_id is required")
		return
	}

	if err := h.Circles.RemoveMember(r.Context(), user.ID, memberID); err != nil {
		switch {
		case errors.Is(err, circledomain.ErrMemberNotFound):
			h.log.BusinessError("circles.remove_member: member not found", err, "actor_id", user.ID, "member_id", memberID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, circledomain.ErrNotOwner):
			h.log.BusinessError("circles.remove_member: actor is not owner", err, "actor_id", user.ID, "member_id", memberID)
			writeError(w, http.StatusForbidden, "not_owner", "only owner can remove members")
		case errors.Is(err, circledomain.ErrCannotRemoveOwner):
			h.log.BusinessError("circles.remove_member: cannot remove owner", err, "actor_id", user.ID, "member_id", memberID)
			writeError(w, http.StatusConflict, "cannot_remove_owner", "cannot remove owner")
		default:
			h.log.InternalError("circles.remove_member: remove member failed", err, "actor_id", user.ID, "member_id", memberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type circleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type circleMemberResponse struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
	Email    *string   `json:"email"`
	Name     *string   `json:"name"`
}

func toCircleResponse(c *circledomain.Circle) circleResponse {
	return circleResponse{
		ID:        c.ID,
		Name:      c.Name,
		Code:      c.Code,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
	}
}
