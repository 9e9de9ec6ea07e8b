package handler

import (
	"net/http"
	"time"

	"brainshift/internal/repository"
	"brainshift/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// ActivityHandler serves the caller's audit trail.
type ActivityHandler struct {
	Repo     *repository.AuditRepository
	Cipher   *util.Cipher
	Loc      *time.Location
	PageSize int
	Log      hclog.Logger
}

func NewActivityHandler(repo *repository.AuditRepository, cipher *util.Cipher, loc *time.Location, pageSize int, log hclog.Logger) *ActivityHandler {
	return &ActivityHandler{
		Repo:     repo,
		Cipher:   cipher,
		Loc:      loc,
		PageSize: pageSize,
		Log:      log.Named("http"),
	}
}

type activityResp struct {
	ID        uint      `json:"id"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Action    string    `json:"action"`
	Status    int       `json:"status"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
}

// List GET /api/activity?page=&page_size=&start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, size, offset := pagination(c, h.PageSize)
	f := repository.AuditFilter{Limit: size, Offset: offset}

	// day bounds are calendar days in the reference zone
	if s := c.Query("start"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, h.Loc)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start date")
			return
		}
		f.From = &t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, h.Loc)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid end date")
			return
		}
		t = t.AddDate(0, 0, 1)
		f.To = &t
	}

	logs, total, err := h.Repo.List(c.Request.Context(), userID, f)
	if err != nil {
		h.Log.Error("list activity", "user_id", userID, "error", err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}

	items := make([]activityResp, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		items = append(items, activityResp{
			ID:        l.ID,
			Method:    l.Method,
			Path:      h.Cipher.DecryptString(l.PathEnc),
			Action:    h.Cipher.DecryptString(l.ActionEnc),
			Status:    l.Status,
			IP:        l.IP,
			UserAgent: l.UserAgent,
			CreatedAt: l.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
