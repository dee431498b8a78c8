package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxLogBatch = 200

// ShellLogEntry is one log line from the desktop shell
type ShellLogEntry struct {
	ID        string                 `json:"id"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context"`
	Timestamp string                 `json:"timestamp"`
}

// ShellLogBatch is a batch of shell log lines
type ShellLogBatch struct {
	Entries []ShellLogEntry `json:"entries"`
}

// StreamLogs forwards shell log lines into the server log
func (h *Handlers) StreamLogs(c *gin.Context) {
	var req ShellLogBatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid log batch")
		return
	}
	if len(req.Entries) == 0 {
		badRequest(c, "no log entries provided")
		return
	}
	if len(req.Entries) > maxLogBatch {
		req.Entries = req.Entries[:maxLogBatch]
	}

	for _, entry := range req.Entries {
		h.logShellEntry(entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"received": len(req.Entries),
		"time":     time.Now().Unix(),
	})
}

func (h *Handlers) logShellEntry(entry ShellLogEntry) {
	fields := make([]zap.Field, 0, len(entry.Context)+2)
	fields = append(fields,
		zap.String("shell_log_id", entry.ID),
		zap.String("shell_timestamp", entry.Timestamp),
	)
	for key, value := range entry.Context {
		switch v := value.(type) {
		case string:
			fields = append(fields, zap.String(key, v))
		case float64:
			fields = append(fields, zap.Float64(key, v))
		case bool:
			fields = append(fields, zap.Bool(key, v))
		default:
			fields = append(fields, zap.Any(key, v))
		}
	}

	switch entry.Level {
	case "error":
		h.shell.Error(entry.Message, fields...)
	case "warn":
		h.shell.Warn(entry.Message, fields...)
	case "debug", "verbose":
		h.shell.Debug(entry.Message, fields...)
	default:
		h.shell.Info(entry.Message, fields...)
	}
}
