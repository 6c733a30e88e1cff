// internal/server/handlers.go
package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "idea-generator/internal/common/errors"
	"idea-generator/internal/idea"
	"idea-generator/internal/models"
	"idea-generator/internal/prompt"
)

const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// GenerateIdeaRequest requires the category field but, like the commands
// themselves, accepts an empty category.
type GenerateIdeaRequest struct {
	Category *string `json:"category" binding:"required"`
	APIKey   string  `json:"api_key"`
}

type TestKeyRequest struct {
	APIKey string `json:"api_key"`
}

type TestKeyResponse struct {
	Valid bool `json:"valid"`
}

type SetKeyRequest struct {
	APIKey *string `json:"api_key" binding:"required"`
}

type KeyResponse struct {
	APIKey *string `json:"api_key"`
}

type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func newErrorBody(stdErr *apperrors.StandardError) ErrorBody {
	return ErrorBody{Error: ErrorDetail{
		Code:    string(stdErr.Code),
		Message: stdErr.Message,
		Details: stdErr.Details,
	}}
}

// statusFor maps an error code to the bridge's HTTP status.
func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeInvalidRequest, apperrors.ErrCodeMissingAPIKey:
		return http.StatusBadRequest
	case apperrors.ErrCodeTransport, apperrors.ErrCodeAPI, apperrors.ErrCodeDecode, apperrors.ErrCodeEmptyResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	stdErr := apperrors.AsStandard(err)
	c.JSON(statusFor(stdErr.Code), newErrorBody(stdErr))
}

func (s *Server) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.fail(c, apperrors.NewInvalidRequestError(err.Error()))
		return false
	}
	return true
}

// bindOptional accepts an empty body as the zero request.
func (s *Server) bindOptional(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		s.fail(c, apperrors.NewInvalidRequestError(err.Error()))
		return false
	}
	return true
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": prompt.Categories})
}

// generateIdea answers with an IdeaRecord; ?format=markdown|html returns the
// rendered document instead.
func (s *Server) generateIdea(c *gin.Context) {
	var req GenerateIdeaRequest
	if !s.bind(c, &req) {
		return
	}

	format := c.DefaultQuery("format", FormatJSON)
	if format != FormatJSON && format != FormatMarkdown && format != FormatHTML {
		s.fail(c, apperrors.NewInvalidRequestError("unsupported format "+format))
		return
	}

	ctx := c.Request.Context()
	apiKey, err := s.commands.ResolveAPIKey(ctx, req.APIKey)
	if err != nil {
		s.fail(c, err)
		return
	}

	category := *req.Category
	generated, err := s.commands.GenerateIdea(ctx, category, apiKey)
	if err != nil {
		s.fail(c, err)
		return
	}
	record := models.NewIdeaRecord(category, *generated)

	switch format {
	case FormatMarkdown:
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(idea.FormatMarkdown(record)))
	case FormatHTML:
		html, err := idea.RenderHTML(record)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	default:
		c.JSON(http.StatusOK, record)
	}
}

func (s *Server) testKey(c *gin.Context) {
	var req TestKeyRequest
	if !s.bindOptional(c, &req) {
		return
	}

	ctx := c.Request.Context()
	apiKey, err := s.commands.ResolveAPIKey(ctx, req.APIKey)
	if err != nil {
		s.fail(c, err)
		return
	}

	valid, err := s.commands.TestAPIKey(ctx, apiKey)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, TestKeyResponse{Valid: valid})
}

func (s *Server) getKey(c *gin.Context) {
	value, ok, err := s.commands.GetAPIKey(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	resp := KeyResponse{}
	if ok {
		resp.APIKey = &value
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) setKey(c *gin.Context) {
	var req SetKeyRequest
	if !s.bind(c, &req) {
		return
	}
	if err := s.commands.SetAPIKey(c.Request.Context(), *req.APIKey); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteKey(c *gin.Context) {
	if err := s.commands.DeleteAPIKey(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
