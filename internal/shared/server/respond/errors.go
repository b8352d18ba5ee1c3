package respond

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"

	"github.com/gin-gonic/gin"

	"meme-backend/internal/apperr"
	"meme-backend/internal/shared/telemetry"
)

// ErrorBody is the error object returned for every failed request.
type ErrorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

const unknownErrorMessage = "Unknown error..."

// detail strings are keyed by status code and stay stable for clients.
var detailByStatus = map[int]string{
	http.StatusBadRequest:          "Bad request",
	http.StatusNotFound:            "Not found",
	http.StatusMethodNotAllowed:    "Method not allowed",
	http.StatusInternalServerError: "Internal server error",
}

var (
	settingsMu   sync.RWMutex
	logLevel     = "info"
	logTraceback = false
)

// Configure sets the severity used for failure log lines and whether those
// lines carry a full stack trace instead of the compact summary.
func Configure(level string, traceback bool) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	logLevel = level
	logTraceback = traceback
}

// Failure maps err to the standardized error response: classified failures
// become 400 with their user message, anything else becomes 500.
func Failure(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := unknownErrorMessage
	var ae *apperr.Error
	if errors.As(err, &ae) {
		status = http.StatusBadRequest
		message = ae.Message()
	}
	Abort(c, status, message, err)
}

// Abort writes the error body for an explicit status. Used directly for
// route-level failures (unknown path, wrong method).
func Abort(c *gin.Context, status int, message string, err error) {
	logFailure(c, status, err)
	c.AbortWithStatusJSON(status, ErrorBody{
		Detail:  detailFor(status),
		Message: message,
	})
}

func detailFor(status int) string {
	if d, ok := detailByStatus[status]; ok {
		return d
	}
	return http.StatusText(status)
}

func logFailure(c *gin.Context, status int, err error) {
	settingsMu.RLock()
	level, traceback := logLevel, logTraceback
	settingsMu.RUnlock()

	fields := map[string]any{
		"status":     status,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if traceback || level == "critical" {
		fields["stack"] = string(debug.Stack())
	} else {
		fields["summary"] = fmt.Sprintf(
			"url=%s exception=%T message_to_user=%v",
			c.Request.URL, err, err,
		)
	}

	switch level {
	case "critical":
		fields["banner"] = "WARNING: an error has occurred to which there is no correct response of the application. WE NEED TO RESPOND URGENTLY"
		telemetry.Critical("http.failure", fields)
	case "error":
		telemetry.Error("http.failure", fields)
	case "warning":
		telemetry.Warn("http.failure", fields)
	default:
		telemetry.Info("http.failure", fields)
	}
}
