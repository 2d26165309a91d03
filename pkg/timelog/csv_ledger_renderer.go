package timelog

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

type CsvLedgerRendererImpl struct {
}

func NewCsvLedgerRenderer() *CsvLedgerRendererImpl {
	return &CsvLedgerRendererImpl{}
}

// RenderLedger writes the entries as CSV, newest first, one row per entry.
func (t *CsvLedgerRendererImpl) RenderLedger(entries []Entry) (string, error) {
	data := make([][]string, 0, len(entries)+1)
	data = append(data, []string{"Date", "Project", "Task", "Type", "Started", "Ended", "Duration"})

	for _, entry := range entries {
		ended := ""
		if entry.EndAt != nil {
			ended = entry.EndAt.Format(time.RFC3339)
		}
		data = append(data, []string{
			entry.LogDate,
			entry.ProjectName,
			entry.TaskTitle,
			string(entry.LogType),
			entry.StartAt.Format(time.RFC3339),
			ended,
			secondsToString(entry.DurationSeconds),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

// ExportHandler serves the full ledger as a CSV download.
type ExportHandler struct {
	timeLogService TimeLogService
	renderer       *CsvLedgerRendererImpl
}

func NewExportHandler(timeLogService TimeLogService) *ExportHandler {
	return &ExportHandler{timeLogService: timeLogService, renderer: NewCsvLedgerRenderer()}
}

func (handler *ExportHandler) ExportCsv(w http.ResponseWriter, r *http.Request) {
	entries, err := handler.timeLogService.List(r.Context())
	if err != nil {
		writeTimeLogError(w, err)
		return
	}

	csvData, err := handler.renderer.RenderLedger(entries)
	if err != nil {
		http.Error(w, "Failed to render CSV", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="time_logs.csv"`)
	if _, err := w.Write([]byte(csvData)); err != nil {
		log.Errorf("Error writing csv response: %v", err)
	}
}

func secondsToString(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	hours := strconv.Itoa(int(duration.Hours()))
	if len(hours) == 1 {
		hours = "0" + hours
	}
	minutes := strconv.Itoa(int(duration.Minutes()) % 60)
	if len(minutes) == 1 {
		minutes = "0" + minutes
	}
	secs := strconv.Itoa(int(duration.Seconds()) % 60)
	if len(secs) == 1 {
		secs = "0" + secs
	}
	return hours + ":" + minutes + ":" + secs
}
