package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cwrk-planet/meeting-service/internal/domain"
	"github.com/cwrk-planet/meeting-service/internal/service"
	httpmw "github.com/cwrk-planet/meeting-service/internal/transport/http/middleware"
	"github.com/cwrk-planet/meeting-service/pkg/httputil"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	meetingSvc     *service.MeetingService
	participantSvc *service.ParticipantService
	chatSvc        *service.ChatService
	backgroundSvc  *service.BackgroundService
	preferenceSvc  *service.PreferenceService
}

func NewHandler(
	meetings *service.MeetingService,
	participants *service.ParticipantService,
	chat *service.ChatService,
	backgrounds *service.BackgroundService,
	prefs *service.PreferenceService,
) *Handler {
	return &Handler{
		meetingSvc:     meetings,
		participantSvc: participants,
		chatSvc:        chat,
		backgroundSvc:  backgrounds,
		preferenceSvc:  prefs,
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json", domain.ErrInvalidInput)
	}
	return nil
}

func int64Param(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", domain.ErrInvalidInput, name)
	}
	return id, nil
}

// POST /meetings
func (h *Handler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	hostID := httpmw.UserIDFromCtx(r.Context())
	if hostID == "" && r.ContentLength > 0 {
		var req CreateMeetingRequest
		if err := decodeJSON(r, &req); err != nil {
			httputil.Error(r.Context(), w, err)
			return
		}
		hostID = req.HostID
	}

	m, err := h.meetingSvc.CreateMeeting(r.Context(), hostID)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, m)
}

// GET /meetings
func (h *Handler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	items, err := h.meetingSvc.ListMeetings(r.Context())
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, items)
}

// GET /meetings/{id}
func (h *Handler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	m, err := h.meetingSvc.GetMeeting(r.Context(), id)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, m)
}

// GET /meetings/code/{code}?strict=true
func (h *Handler) GetMeetingByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	strict, _ := strconv.ParseBool(r.URL.Query().Get("strict"))

	var (
		m   *domain.Meeting
		err error
	)
	if strict {
		m, err = h.meetingSvc.FindMeetingByCode(r.Context(), code)
	} else {
		m, err = h.meetingSvc.GetMeetingByCode(r.Context(), code)
	}
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, m)
}

// PATCH /meetings/{id}
func (h *Handler) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	var patch domain.MeetingPatch
	if err := decodeJSON(r, &patch); err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	m, err := h.meetingSvc.UpdateMeeting(r.Context(), id, patch)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, m)
}

// DELETE /meetings/{id}
func (h *Handler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	ok, err := h.meetingSvc.DeleteMeeting(r.Context(), id)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, DeletedResponse{Deleted: ok})
}

// POST /meetings/{id}/participants
func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	meetingID, err := int64Param(r, "id")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	var p domain.Participant
	if err := decodeJSON(r, &p); err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	roster, err := h.participantSvc.AddParticipant(r.Context(), meetingID, p)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, roster)
}

// GET /meetings/{id}/participants
func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	meetingID, err := int64Param(r, "id")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	roster, err := h.participantSvc.ListParticipants(r.Context(), meetingID)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, roster)
}

// PATCH /meetings/{id}/participants/{pid}
func (h *Handler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	meetingID, err := int64Param(r, "id")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	var patch domain.ParticipantPatch
	if err := decodeJSON(r, &patch); err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	p, err := h.participantSvc.UpdateParticipant(r.Context(), meetingID, chi.URLParam(r, "pid"), patch)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, p)
}

// DELETE /meetings/{id}/participants/{pid}
func (h *Handler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	meetingID, err := int64Param(r, "id")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	roster, err := h.participantSvc.RemoveParticipant(r.Context(), meetingID, chi.URLParam(r, "pid"))
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, roster)
}

// POST /meetings/{id}/messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	meetingID, err := int64Param(r, "id")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	var req SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	if req.SenderID == "" {
		req.SenderID = httpmw.UserIDFromCtx(r.Context())
	}

	msg, err := h.chatSvc.SendMessage(r.Context(), meetingID, domain.ChatMessage{
		SenderID:   req.SenderID,
		SenderName: req.SenderName,
		Content:    req.Content,
		Type:       req.Type,
	})
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, msg)
}

// GET /meetings/{id}/messages
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	meetingID, err := int64Param(r, "id")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	msgs, err := h.chatSvc.ListMessages(r.Context(), meetingID)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, msgs)
}

// DELETE /meetings/{id}/messages/{mid}
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	meetingID, err := int64Param(r, "id")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	messageID, err := int64Param(r, "mid")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	ok, err := h.chatSvc.DeleteMessage(r.Context(), meetingID, messageID)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, DeletedResponse{Deleted: ok})
}
