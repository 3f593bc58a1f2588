package http

import (
	"net/http"

	"github.com/classmeet/classmeet/internal/service"
	"github.com/classmeet/classmeet/pkg/httpx"
)

// MeetingsHandler serves the /v1/meetings endpoints. Every route sits behind
// AuthnMiddleware; the services enforce ownership on top of that.
type MeetingsHandler struct {
	MeetingService *service.MeetingService
}

func (h *MeetingsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromCtx(r.Context())
	if !ok {
		writeBearerError(w)
		return
	}

	var req service.CreateMeetingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Topic == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "topic is required")
		return
	}

	resp, err := h.MeetingService.Create(r.Context(), req, actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, resp)
}

func (h *MeetingsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromCtx(r.Context())
	if !ok {
		writeBearerError(w)
		return
	}

	meetings, err := h.MeetingService.List(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, meetings)
}

func (h *MeetingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromCtx(r.Context())
	if !ok {
		writeBearerError(w)
		return
	}

	meeting, err := h.MeetingService.GetByID(r.Context(), r.PathValue("id"), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, meeting)
}

func (h *MeetingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromCtx(r.Context())
	if !ok {
		writeBearerError(w)
		return
	}

	var req service.UpdateMeetingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Topic == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "topic is required")
		return
	}

	resp, err := h.MeetingService.Update(r.Context(), r.PathValue("id"), req, actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *MeetingsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromCtx(r.Context())
	if !ok {
		writeBearerError(w)
		return
	}

	if err := h.MeetingService.Delete(r.Context(), r.PathValue("id"), actor); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
