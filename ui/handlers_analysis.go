package ui

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"ppi/internal/report"

	"github.com/gin-gonic/gin"
)

const (
	msgMissingSource  = "Missing list/file name"
	msgSourceNotFound = "List/file not found"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (s *Server) handleAnalyze(c *gin.Context) {
	name, ok := listName(c, msgMissingSource)
	if !ok {
		return
	}
	source := s.source(name)
	result, err := s.service.Analyze(c.Request.Context(), name)
	if err != nil {
		s.respondError(c, err, msgSourceNotFound, "Failed to analyze data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "source": source, "analysis": result})
}

func (s *Server) handleDependencies(c *gin.Context) {
	name, ok := listName(c, msgMissingSource)
	if !ok {
		return
	}
	source := s.source(name)
	deps, err := s.service.Dependencies(c.Request.Context(), name)
	if err != nil {
		s.respondError(c, err, msgSourceNotFound, "Failed to analyze column dependencies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "source": source, "dependencies": deps})
}

func (s *Server) handleProfile(c *gin.Context) {
	name, ok := listName(c, msgMissingSource)
	if !ok {
		return
	}
	profiles, err := s.service.Profile(c.Request.Context(), name)
	if err != nil {
		s.respondError(c, err, msgSourceNotFound, "Failed to profile columns")
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "profiles": profiles})
}

func (s *Server) handleReport(c *gin.Context) {
	name, ok := listName(c, msgMissingSource)
	if !ok {
		return
	}
	rep, err := s.service.Report(c.Request.Context(), name)
	if err != nil {
		s.respondError(c, err, msgSourceNotFound, "Failed to build report")
		return
	}

	switch strings.ToLower(c.DefaultQuery("format", "json")) {
	case "md", "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown(rep)))
	case "html":
		c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(rep))
	case "json":
		c.JSON(http.StatusOK, rep)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported report format"})
	}
}

func (s *Server) handleExport(c *gin.Context) {
	name, ok := listName(c, msgMissingListName)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := s.service.Export(c.Request.Context(), name, &buf); err != nil {
		s.respondError(c, err, msgListNotFound, "Failed to export list")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName(name)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// exportName swaps the extension of name for .xlsx.
func exportName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".xlsx"
}
