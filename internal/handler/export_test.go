package handler

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"brainshift/internal/models"

	"github.com/xuri/excelize/v2"
)

func exportFixture() []models.Session {
	start := time.Date(2024, 5, 1, 1, 30, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	d, b := 30, 5
	task := "t-7"
	return []models.Session{
		{ID: "a", StartTime: start, EndTime: &end, Duration: &d, BreakDuration: &b, IsPomodoro: true, Completed: true,
			TargetType: models.TargetTask, TargetID: &task},
		{ID: "b", StartTime: start.Add(time.Hour), IsCancelled: true},
	}
}

func TestWriteSessionsCSV(t *testing.T) {
	var buf bytes.Buffer
	loc := time.FixedZone("UTC+8", 8*3600)
	if err := writeSessionsCSV(&buf, exportFixture(), loc); err != nil {
		t.Fatalf("writeSessionsCSV() error = %v", err)
	}

	data := buf.Bytes()
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("missing UTF-8 BOM")
	}
	rows, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	want := []string{"a", "completed", "pomodoro", "task:t-7", "2024-05-01 09:30:00", "2024-05-01 10:00:00", "30", "5"}
	for i := range want {
		if rows[1][i] != want[i] {
			t.Errorf("row[1][%d] = %q, want %q", i, rows[1][i], want[i])
		}
	}
	if rows[2][1] != "cancelled" || rows[2][5] != "" || rows[2][6] != "" {
		t.Errorf("row[2] = %v, want cancelled without end or minutes", rows[2])
	}
}

func TestWriteSessionsXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSessionsXLSX(&buf, exportFixture(), time.UTC); err != nil {
		t.Fatalf("writeSessionsXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sessions")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "ID" || rows[1][3] != "task:t-7" {
		t.Errorf("rows = %v", rows)
	}
}
