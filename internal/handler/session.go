package handler

import (
	"net/http"
	"strings"
	"time"

	"brainshift/internal/models"
	"brainshift/internal/repository"
	"brainshift/internal/service"
	"brainshift/internal/timeutil"
	"brainshift/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// SessionHandler serves the focus session endpoints.
type SessionHandler struct {
	Sessions *service.SessionService
	PageSize int
	Log      hclog.Logger
}

func NewSessionHandler(sessions *service.SessionService, pageSize int, log hclog.Logger) *SessionHandler {
	return &SessionHandler{
		Sessions: sessions,
		PageSize: pageSize,
		Log:      log.Named("http"),
	}
}

type sessionResp struct {
	ID               string     `json:"id"`
	UserID           uint       `json:"userId"`
	TargetType       *string    `json:"targetType"`
	TargetID         *string    `json:"targetId"`
	StartTime        time.Time  `json:"startTime"`
	EndTime          *time.Time `json:"endTime"`
	Duration         *int       `json:"duration"`
	BreakDuration    *int       `json:"breakDuration"`
	IsPomodoro       bool       `json:"isPomodoro"`
	Completed        bool       `json:"completed"`
	IsCancelled      bool       `json:"isCancelled"`
	Status           string     `json:"status"`
	ElapsedSeconds   *int64     `json:"elapsedSeconds,omitempty"`
	RemainingSeconds *int64     `json:"remainingSeconds,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func toSessionResp(s *models.Session, now time.Time) sessionResp {
	r := sessionResp{
		ID:            s.ID,
		UserID:        s.UserID,
		TargetID:      s.TargetID,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Duration:      s.Duration,
		BreakDuration: s.BreakDuration,
		IsPomodoro:    s.IsPomodoro,
		Completed:     s.Completed,
		IsCancelled:   s.IsCancelled,
		Status:        s.Status(),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if s.TargetType != models.TargetNone {
		tt := string(s.TargetType)
		r.TargetType = &tt
	}
	p := service.ProgressOf(s, now)
	r.ElapsedSeconds = p.ElapsedSeconds
	r.RemainingSeconds = p.RemainingSeconds
	return r
}

// startReq mirrors what clients send. StartTime and Completed are accepted
// and ignored; the server owns both.
type startReq struct {
	TargetType    string      `json:"targetType"`
	TargetID      *string     `json:"targetId"`
	StartTime     interface{} `json:"startTime"`
	IsPomodoro    bool        `json:"isPomodoro"`
	Duration      *int        `json:"duration"`
	BreakDuration *int        `json:"breakDuration"`
	EndTime       string      `json:"endTime"`
	Completed     interface{} `json:"completed"`
}

type completeReq struct {
	Completed *bool `json:"completed"`
}

// Start POST /api/sessions
func (h *SessionHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req startReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	in := service.StartInput{
		TargetType:    models.TargetType(strings.TrimSpace(req.TargetType)),
		TargetID:      req.TargetID,
		IsPomodoro:    req.IsPomodoro,
		Duration:      req.Duration,
		BreakDuration: req.BreakDuration,
	}
	if !req.IsPomodoro && strings.TrimSpace(req.EndTime) != "" {
		end, err := timeutil.LocalToUTC(req.EndTime)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid endTime")
			return
		}
		in.EndTime = &end
	}

	sess, err := h.Sessions.Start(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	util.Created(c, util.Response{"session": toSessionResp(sess, h.Sessions.Now())})
}

// Complete PATCH /api/sessions/:id/completed
func (h *SessionHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req completeReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !isEmptyBody(err) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
			return
		}
	}
	if req.Completed != nil && !*req.Completed {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "completed must be true")
		return
	}

	sess, err := h.Sessions.Complete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	util.Success(c, util.Response{"session": toSessionResp(sess, h.Sessions.Now())})
}

// Cancel PATCH /api/sessions/:id/cancel
func (h *SessionHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sess, err := h.Sessions.Cancel(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	util.Success(c, util.Response{"session": toSessionResp(sess, h.Sessions.Now())})
}

// Get GET /api/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sess, err := h.Sessions.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	util.Success(c, util.Response{"session": toSessionResp(sess, h.Sessions.Now())})
}

// Active GET /api/sessions/active
func (h *SessionHandler) Active(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sess, err := h.Sessions.Active(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	if sess == nil {
		util.Success(c, util.Response{"session": nil})
		return
	}
	util.Success(c, util.Response{"session": toSessionResp(sess, h.Sessions.Now())})
}

// List GET /api/sessions
func (h *SessionHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	f, err := sessionFilter(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	page, size, offset := pagination(c, h.PageSize)
	f.Limit, f.Offset = size, offset

	sessions, total, err := h.Sessions.List(c.Request.Context(), userID, f)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	now := h.Sessions.Now()
	items := make([]sessionResp, 0, len(sessions))
	for i := range sessions {
		items = append(items, toSessionResp(&sessions[i], now))
	}
	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

// Delete DELETE /api/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.Sessions.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.Log, err)
		return
	}
	util.Success(c, util.Response{"message": "session deleted"})
}

// sessionFilter reads the list query. from and to are naive local
// date-times.
func sessionFilter(c *gin.Context) (repository.SessionFilter, error) {
	f := repository.SessionFilter{
		Status:     strings.ToLower(strings.TrimSpace(c.Query("status"))),
		TargetType: models.TargetType(strings.TrimSpace(c.Query("target_type"))),
		TargetID:   strings.TrimSpace(c.Query("target_id")),
	}
	if s := c.Query("from"); s != "" {
		t, err := timeutil.LocalToUTC(s)
		if err != nil {
			return f, err
		}
		f.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := timeutil.LocalToUTC(s)
		if err != nil {
			return f, err
		}
		f.To = &t
	}
	return f, nil
}
