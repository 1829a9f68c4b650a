package ui

import (
	stderrors "errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strconv"

	"ppi/domain/core"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgFileTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if s.config.MaxUploadBytes > 0 && fh.Size > s.config.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgFileTooLarge})
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.respondError(c, err, msgFileNotFound, "Failed to read upload")
		return
	}
	defer f.Close()

	upload, err := s.service.Ingest(c.Request.Context(), fh.Filename, f)
	if err != nil {
		if stderrors.Is(err, core.ErrParseFailure) {
			s.logger.Error("parse failed for %s: %v", fh.Filename, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload ok, but failed to parse Excel"})
			return
		}
		s.respondError(c, err, msgFileNotFound, "Failed to save upload")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "File received & list created",
		"path":         path.Join(filepath.ToSlash(s.config.UploadDir), upload.StoredName),
		"savedName":    upload.StoredName,
		"originalName": upload.OriginalName,
		"count":        upload.RowCount,
	})
}

func (s *Server) handleListFiles(c *gin.Context) {
	files, err := s.service.ListFiles(c.Request.Context())
	if err != nil {
		s.respondError(c, err, msgFileNotFound, "Failed to read uploads directory")
		return
	}
	c.JSON(http.StatusOK, files)
}

func (s *Server) handleGetFile(c *gin.Context) {
	s.serveFile(c, c.Param("filename"), true)
}

func (s *Server) handleFindFile(c *gin.Context) {
	name, ok := listName(c, msgMissingFileName)
	if !ok {
		return
	}
	s.serveFile(c, name, false)
}

func (s *Server) serveFile(c *gin.Context, name string, exact bool) {
	rc, stored, err := s.service.OpenFile(c.Request.Context(), name, exact)
	if err != nil {
		s.respondError(c, err, msgFileNotFound, "Failed to read file")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(stored))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", stored),
	})
}

func (s *Server) handleDeleteFile(c *gin.Context) {
	filename := c.Param("filename")
	if _, err := s.service.DeleteFile(c.Request.Context(), filename); err != nil {
		s.respondError(c, err, msgFileNotFound, "Failed to delete file")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("File %s deleted successfully", filename)})
}

func (s *Server) handleListUploads(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	uploads, err := s.service.Uploads(c.Request.Context(), limit, offset)
	if err != nil {
		s.respondError(c, err, msgFileNotFound, "Failed to read upload catalog")
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploads": uploads, "count": len(uploads)})
}
