package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"brainshift/internal/models"
	"brainshift/internal/service"
	"brainshift/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/xuri/excelize/v2"
)

// ExportHandler streams a user's sessions as CSV or XLSX.
type ExportHandler struct {
	Sessions *service.SessionService
	Loc      *time.Location
	Log      hclog.Logger
}

func NewExportHandler(sessions *service.SessionService, loc *time.Location, log hclog.Logger) *ExportHandler {
	return &ExportHandler{
		Sessions: sessions,
		Loc:      loc,
		Log:      log.Named("export"),
	}
}

var exportHeaders = []string{"ID", "Status", "Type", "Target", "Start", "End", "Minutes", "Break"}

func exportRow(s *models.Session, loc *time.Location) []string {
	kind := "manual"
	if s.IsPomodoro {
		kind = "pomodoro"
	}
	target := ""
	if s.TargetID != nil {
		target = string(s.TargetType) + ":" + *s.TargetID
	}
	end := ""
	if s.EndTime != nil {
		end = s.EndTime.In(loc).Format("2006-01-02 15:04:05")
	}
	minutes, brk := "", ""
	if s.Duration != nil {
		minutes = strconv.Itoa(*s.Duration)
	}
	if s.BreakDuration != nil {
		brk = strconv.Itoa(*s.BreakDuration)
	}
	return []string{
		s.ID,
		s.Status(),
		kind,
		target,
		s.StartTime.In(loc).Format("2006-01-02 15:04:05"),
		end,
		minutes,
		brk,
	}
}

// writeSessionsCSV writes a UTF-8 BOM so spreadsheet apps pick the encoding.
func writeSessionsCSV(w io.Writer, sessions []models.Session, loc *time.Location) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for i := range sessions {
		if err := writer.Write(exportRow(&sessions[i], loc)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeSessionsXLSX(w io.Writer, sessions []models.Session, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sessions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}
	for idx := range sessions {
		for col, v := range exportRow(&sessions[idx], loc) {
			cell, _ := excelize.CoordinatesToCellName(col+1, idx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "C", 11)
	f.SetColWidth(sheetName, "D", "D", 24)
	f.SetColWidth(sheetName, "E", "F", 20)

	return f.Write(w)
}

// Export GET /api/sessions/export?format=csv|xlsx
func (h *ExportHandler) Export(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "format must be csv or xlsx")
		return
	}
	f, err := sessionFilter(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	sessions, _, err := h.Sessions.List(c.Request.Context(), userID, f)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	filename := fmt.Sprintf("sessions_%s.%s", time.Now().In(h.Loc).Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if format == "csv" {
		c.Header("Content-Type", "text/csv; charset=utf-8")
		err = writeSessionsCSV(c.Writer, sessions, h.Loc)
	} else {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = writeSessionsXLSX(c.Writer, sessions, h.Loc)
	}
	if err != nil {
		// headers are gone once the body started
		h.Log.Error("export failed", "user_id", userID, "format", format, "error", err)
	}
}
