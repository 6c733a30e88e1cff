// internal/common/errors/handler.go
package errors

// ErrorHandler normalizes and logs errors leaving a command.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err once and returns it as a StandardError. A nil err yields nil.
func (h *ErrorHandler) Handle(command string, err error) *StandardError {
	if err == nil {
		return nil
	}
	stdErr := AsStandard(err)

	fields := map[string]interface{}{
		"command":       command,
		"errorCode":     string(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
		"message":       stdErr.Message,
		"retryable":     stdErr.Retryable,
	}
	if stdErr.StatusCode != 0 {
		fields["statusCode"] = stdErr.StatusCode
	}
	// decode details embed model output; keep them out of the log line
	if stdErr.Code != ErrCodeDecode {
		fields["details"] = stdErr.Details
	}
	h.logger.Error("command failed", fields)

	return stdErr
}
