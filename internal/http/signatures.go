package http

import (
	"net/http"

	"github.com/classmeet/classmeet/internal/service"
	"github.com/classmeet/classmeet/pkg/httpx"
)

// SignaturesHandler serves the /v1/signatures endpoints. Signatures are
// issued for the authenticated actor's own role; clients cannot request a
// different one.
type SignaturesHandler struct {
	SignatureService *service.SignatureService
}

func (h *SignaturesHandler) HandleVideo(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromCtx(r.Context())
	if !ok {
		writeBearerError(w)
		return
	}

	var req service.VideoSignatureRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Topic == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "topic is required")
		return
	}

	resp, err := h.SignatureService.SignVideo(r.Context(), req, actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *SignaturesHandler) HandleMeeting(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromCtx(r.Context())
	if !ok {
		writeBearerError(w)
		return
	}

	var req service.MeetingSignatureRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.MeetingNumber == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "meetingNumber is required")
		return
	}

	resp, err := h.SignatureService.SignMeeting(r.Context(), req, actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
