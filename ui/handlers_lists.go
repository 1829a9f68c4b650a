package ui

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"ppi/domain/dataset"

	"github.com/gin-gonic/gin"
)

const msgListNotInMemory = "List not found in memory"

// rowRequest is the body of row create and update calls.
type rowRequest struct {
	Row json.RawMessage `json:"row"`
}

// bindRow decodes {"row": {...}} and returns the row with its key order.
// Anything but a JSON object of scalars answers 400. With partial set, a
// missing body or row field decodes as an empty row.
func bindRow(c *gin.Context, partial bool) (dataset.Row, []string, bool) {
	var req rowRequest
	err := c.ShouldBindJSON(&req)
	if partial && (stderrors.Is(err, io.EOF) || (err == nil && absent(req.Row))) {
		return dataset.Row{}, nil, true
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingRow})
		return nil, nil, false
	}
	row, keys, err := dataset.DecodeRow(req.Row)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingRow})
		return nil, nil, false
	}
	return row, keys, true
}

func absent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func (s *Server) handleListLists(c *gin.Context) {
	c.JSON(http.StatusOK, s.service.Lists())
}

func (s *Server) handleGetList(c *gin.Context) {
	name, ok := listName(c, msgMissingListName)
	if !ok {
		return
	}
	proj, err := s.service.Rows(c.Request.Context(), name)
	if err != nil {
		s.respondError(c, err, msgListNotFound, "Failed to read list from file")
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "headers": proj.Headers, "rows": proj.Rows})
}

func (s *Server) handleGetRows(c *gin.Context) {
	name, ok := listName(c, msgMissingListName)
	if !ok {
		return
	}
	proj, err := s.service.Rows(c.Request.Context(), name)
	if err != nil {
		s.respondError(c, err, msgListNotFound, "Failed to read rows")
		return
	}
	c.JSON(http.StatusOK, proj)
}

func (s *Server) handleAppendRow(c *gin.Context) {
	name, ok := listName(c, msgMissingListName)
	if !ok {
		return
	}
	row, keys, ok := bindRow(c, false)
	if !ok {
		return
	}
	index, err := s.service.AppendRow(c.Request.Context(), name, row, keys...)
	if err != nil {
		s.respondError(c, err, msgListNotFound, "Failed to load list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Row added to list", "index": index})
}

func (s *Server) handleUpdateRow(c *gin.Context) {
	name, ok := listName(c, msgMissingListName)
	if !ok {
		return
	}
	index, ok := rowIndex(c)
	if !ok {
		return
	}
	row, _, ok := bindRow(c, true)
	if !ok {
		return
	}
	updated, err := s.service.UpdateRow(name, index, row)
	if err != nil {
		s.respondError(c, err, msgListNotInMemory, "Failed to update row")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Row updated in list", "row": updated})
}

func (s *Server) handleDeleteRow(c *gin.Context) {
	name, ok := listName(c, msgMissingListName)
	if !ok {
		return
	}
	index, ok := rowIndex(c)
	if !ok {
		return
	}
	if err := s.service.DeleteRow(name, index); err != nil {
		s.respondError(c, err, msgListNotInMemory, "Failed to delete row")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Row deleted from list"})
}
