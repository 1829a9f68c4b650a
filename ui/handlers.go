package ui

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"ppi/domain/core"
	"ppi/internal/errors"

	"github.com/gin-gonic/gin"
)

// Response messages shared by several handlers.
const (
	msgMissingListName = "Missing list name"
	msgMissingFileName = "Missing file name"
	msgListNotFound    = "List not found"
	msgFileNotFound    = "File not found"
	msgRowOutOfBounds  = "Row index out of bounds"
	msgInvalidIndex    = "Invalid index"
	msgMissingRow      = "Missing row payload"
	msgFileTooLarge    = "File too large"
)

// respondError answers with the status mapped from err. notFound and failed
// are the client-facing messages for 404 and 5xx answers.
func (s *Server) respondError(c *gin.Context, err error, notFound, failed string) {
	status := errors.HTTPStatus(err)

	var message string
	switch {
	case core.IsIndexError(err):
		message = msgRowOutOfBounds
	case stderrors.Is(err, core.ErrInvalidPayload):
		message = msgMissingRow
	case status == http.StatusNotFound:
		message = notFound
	case status == http.StatusRequestEntityTooLarge:
		message = msgFileTooLarge
	case status == http.StatusBadRequest:
		message = clientMessage(err)
	default:
		message = failed
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		s.logger.Debug("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": message})
}

func clientMessage(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

// listName reads the required name query parameter, answering 400 when absent.
func listName(c *gin.Context, missing string) (string, bool) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": missing})
		return "", false
	}
	return name, true
}

// rowIndex parses the :index path parameter. Negative or non-integer
// indices answer 400.
func rowIndex(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil || i < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidIndex})
		return 0, false
	}
	return i, true
}

// source reports whether name is served from memory or read from a file.
func (s *Server) source(name string) string {
	if _, err := s.service.Resident(name); err == nil {
		return "memory"
	}
	return "file"
}
