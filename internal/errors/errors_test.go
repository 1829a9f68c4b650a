package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"ppi/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsSentinelCode(t *testing.T) {
	err := Wrap(core.NewIndexError(4, 2), "update row")

	assert.Equal(t, CodeIndexOutOfRange, GetCode(err))
	assert.True(t, stderrors.Is(err, core.ErrIndexOutOfRange))
	assert.Contains(t, err.Error(), "update row")
}

func TestWrap_UnknownBecomesInternal(t *testing.T) {
	err := Wrap(stderrors.New("disk on fire"), "store upload")

	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "x"))
	assert.Nil(t, Wrapf(nil, "x %d", 1))
	assert.Nil(t, WithCode(CodeNotFound, nil))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{core.NewNotFoundError("list", "a.xlsx"), http.StatusNotFound},
		{core.NewIndexError(9, 1), http.StatusNotFound},
		{core.ErrInvalidPayload, http.StatusBadRequest},
		{InvalidInput("missing name"), http.StatusBadRequest},
		{core.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{core.NewParseError("a.xlsx", stderrors.New("zip: not a valid zip file")), http.StatusInternalServerError},
		{stderrors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "%v", tt.err)
	}
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeValidationError, InvalidInput("list name too long"))

	assert.Equal(t, CodeValidationError, GetCode(err))
	assert.Equal(t, "list name too long", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestStorageAndDatabaseErrors(t *testing.T) {
	cause := stderrors.New("permission denied")

	storageErr := StorageError("failed to open file", cause)
	dbErr := DatabaseError("failed to query uploads", cause)

	assert.Equal(t, CodeStorageError, GetCode(storageErr))
	assert.Equal(t, CodeDatabaseError, GetCode(Wrap(dbErr, "list uploads")))
	assert.ErrorIs(t, dbErr, cause)
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(storageErr))
}
