package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"ppi/adapters/excel"
	"ppi/app"
	"ppi/internal/registry"
	"ppi/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const echoCSV = "PatientName,Systole_mm,LA_area,MR_area\n" +
	"Ann,101,10,2\nBob,102,20,4\nCy,103,30,6\nDi,104,40,8\nEd,105,50,10\n"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestApp(t *testing.T, maxUpload int64) http.Handler {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewLocalFileStorage(&storage.StorageConfig{BasePath: dir, MaxFileSize: maxUpload})
	svc := app.NewDatasetService(registry.New(), store, excel.NewDataReader(), excel.NewDataWriter(), nil)
	server := NewServer(svc, ServerConfig{UploadDir: dir, MaxUploadBytes: maxUpload})
	return NewApp(Config{Port: "0"}, server).Handler()
}

func do(t *testing.T, h http.Handler, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func upload(t *testing.T, h http.Handler, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return do(t, h, http.MethodPost, "/api/upload", buf.Bytes(), mw.FormDataContentType())
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func savedName(t *testing.T, h http.Handler, filename string) string {
	t.Helper()
	rec := upload(t, h, filename, echoCSV)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode(t, rec)["savedName"].(string)
}

func jsonBody(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestHealthz(t *testing.T) {
	h := newTestApp(t, 0)

	rec := do(t, h, http.MethodGet, "/healthz", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUpload(t *testing.T) {
	h := newTestApp(t, 0)

	rec := upload(t, h, "echo data.csv", echoCSV)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode(t, rec)
	assert.Equal(t, "File received & list created", out["message"])
	assert.Equal(t, "echo data.csv", out["originalName"])
	assert.Equal(t, float64(5), out["count"])
	saved := out["savedName"].(string)
	assert.True(t, strings.HasSuffix(saved, "_echo_data.csv"))
	assert.True(t, strings.HasSuffix(out["path"].(string), "/"+saved))

	lists := do(t, h, http.MethodGet, "/api/lists", nil, "")
	var entries []registry.AliasEntry
	require.NoError(t, json.Unmarshal(lists.Body.Bytes(), &entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
		assert.Equal(t, 5, e.Count)
	}
	assert.ElementsMatch(t, []string{"echo data.csv", "echo_data.csv", saved}, names)
}

func TestUpload_NoFile(t *testing.T) {
	h := newTestApp(t, 0)

	rec := do(t, h, http.MethodPost, "/api/upload", nil, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", decode(t, rec)["error"])
}

func TestUpload_ParseFailureKeepsFile(t *testing.T) {
	h := newTestApp(t, 0)

	rec := upload(t, h, "broken.xlsx", "definitely not a zip")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Upload ok, but failed to parse Excel", decode(t, rec)["error"])

	files := do(t, h, http.MethodGet, "/api/files", nil, "")
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal(files.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.True(t, strings.HasSuffix(listed[0]["name"].(string), "_broken.xlsx"))
}

func TestUpload_TooLarge(t *testing.T) {
	h := newTestApp(t, 16)

	rec := upload(t, h, "echo.csv", echoCSV)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestGetRows_IsProjected(t *testing.T) {
	h := newTestApp(t, 0)
	saved := savedName(t, h, "echo.csv")

	rec := do(t, h, http.MethodGet, "/api/rows?name="+saved, nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, []interface{}{"Systole_mm", "LA_area", "MR_area"}, out["headers"])
	assert.NotContains(t, rec.Body.String(), "PatientName")
	assert.NotContains(t, rec.Body.String(), "Ann")
}

func TestGetList(t *testing.T) {
	h := newTestApp(t, 0)
	savedName(t, h, "echo data.csv")

	rec := do(t, h, http.MethodGet, "/api/list?name=echo_data.csv", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "echo_data.csv", decode(t, rec)["name"])
	assert.NotContains(t, rec.Body.String(), "Bob")

	missing := do(t, h, http.MethodGet, "/api/list?name=nope.csv", nil, "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "List not found", decode(t, missing)["error"])

	noName := do(t, h, http.MethodGet, "/api/list", nil, "")
	assert.Equal(t, http.StatusBadRequest, noName.Code)
	assert.Equal(t, "Missing list name", decode(t, noName)["error"])
}

func TestAppendRow(t *testing.T) {
	h := newTestApp(t, 0)
	saved := savedName(t, h, "echo.csv")

	rec := do(t, h, http.MethodPost, "/api/rows?name="+saved,
		jsonBody(t, map[string]interface{}{"row": map[string]interface{}{"LA_area": 60, "MR_area": 12}}), "application/json")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode(t, rec)
	assert.Equal(t, "Row added to list", out["message"])
	assert.Equal(t, float64(5), out["index"])
}

func TestAppendRow_BadPayload(t *testing.T) {
	h := newTestApp(t, 0)
	saved := savedName(t, h, "echo.csv")

	for _, body := range []string{`{"row": [1, 2]}`, `{"row": "x"}`, `{}`, `not json`} {
		rec := do(t, h, http.MethodPost, "/api/rows?name="+saved, []byte(body), "application/json")
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Missing row payload", decode(t, rec)["error"], body)
	}

	rec := do(t, h, http.MethodPost, "/api/rows", []byte(`{"row":{}}`), "application/json")
	assert.Equal(t, "Missing list name", decode(t, rec)["error"])
}

func TestUpdateRow(t *testing.T) {
	h := newTestApp(t, 0)
	saved := savedName(t, h, "echo.csv")
	body := jsonBody(t, map[string]interface{}{"row": map[string]interface{}{"LA_area": 99}})

	rec := do(t, h, http.MethodPut, "/api/rows/1?name="+saved, body, "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Row updated in list", decode(t, rec)["message"])

	rows := decode(t, do(t, h, http.MethodGet, "/api/rows?name="+saved, nil, ""))["rows"].([]interface{})
	assert.Equal(t, float64(99), rows[1].(map[string]interface{})["LA_area"])
	assert.Equal(t, float64(4), rows[1].(map[string]interface{})["MR_area"])

	cases := []struct {
		target, message string
		status          int
	}{
		{"/api/rows/abc?name=" + saved, "Invalid index", http.StatusBadRequest},
		{"/api/rows/-1?name=" + saved, "Invalid index", http.StatusBadRequest},
		{"/api/rows/9?name=" + saved, "Row index out of bounds", http.StatusNotFound},
		{"/api/rows/0?name=unknown.csv", "List not found in memory", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := do(t, h, http.MethodPut, tc.target, body, "application/json")
		assert.Equal(t, tc.status, rec.Code, tc.target)
		assert.Equal(t, tc.message, decode(t, rec)["error"], tc.target)
	}
}

func TestUpdateRow_MissingRowLeavesRowUnchanged(t *testing.T) {
	h := newTestApp(t, 0)
	saved := savedName(t, h, "echo.csv")

	for _, body := range []string{``, `{}`, `{"row": null}`} {
		rec := do(t, h, http.MethodPut, "/api/rows/2?name="+saved, []byte(body), "application/json")
		require.Equal(t, http.StatusOK, rec.Code, body)
		row := decode(t, rec)["row"].(map[string]interface{})
		assert.Equal(t, float64(30), row["LA_area"], body)
		assert.NotContains(t, row, "PatientName", body)
	}

	rec := do(t, h, http.MethodPut, "/api/rows/2?name="+saved, []byte(`{"row": [1]}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppendRow_EmptyListTakesSubmittedKeyOrder(t *testing.T) {
	h := newTestApp(t, 0)
	rec := upload(t, h, "blank.csv", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode(t, rec)["savedName"].(string)

	rec = do(t, h, http.MethodPost, "/api/rows?name="+saved,
		[]byte(`{"row": {"Systole_mm": 101, "LA_area": 10, "MR_area": 2}}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(0), decode(t, rec)["index"])

	list := decode(t, do(t, h, http.MethodGet, "/api/list?name="+saved, nil, ""))
	assert.Equal(t, []interface{}{"Systole_mm", "LA_area", "MR_area"}, list["headers"])
}

func TestDeleteRow(t *testing.T) {
	h := newTestApp(t, 0)
	saved := savedName(t, h, "echo.csv")

	rec := do(t, h, http.MethodDelete, "/api/rows/0?name="+saved, nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Row deleted from list", decode(t, rec)["message"])
	rows := decode(t, do(t, h, http.MethodGet, "/api/rows?name="+saved, nil, ""))["rows"].([]interface{})
	assert.Len(t, rows, 4)

	oob := do(t, h, http.MethodDelete, "/api/rows/4?name="+saved, nil, "")
	assert.Equal(t, http.StatusNotFound, oob.Code)
}

func TestAnalyze(t *testing.T) {
	h := newTestApp(t, 0)
	saved := savedName(t, h, "echo.csv")

	rec := do(t, h, http.MethodPost, "/api/analyze?name="+saved, nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, "memory", out["source"])
	analysis := out["analysis"].(map[string]interface{})
	assert.Equal(t, true, analysis["isMedicalLike"])
	assert.NotContains(t, rec.Body.String(), `"Ann"`)

	missing := do(t, h, http.MethodPost, "/api/analyze?name=nope.csv", nil, "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "List/file not found", decode(t, missing)["error"])
}

func TestDependencies(t *testing.T) {
	h := newTestApp(t, 0)
	saved := savedName(t, h, "echo.csv")

	rec := do(t, h, http.MethodPost, "/api/dependencies?name="+saved, nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	deps := decode(t, rec)["dependencies"].(map[string]interface{})
	pairs := deps["pairs"].([]interface{})
	assert.Len(t, pairs, 3)
	for _, p := range pairs {
		assert.InDelta(t, 1.0, p.(map[string]interface{})["correlation"], 1e-9)
	}
}

func TestReportFormats(t *testing.T) {
	h := newTestApp(t, 0)
	saved := savedName(t, h, "echo.csv")

	md := do(t, h, http.MethodGet, "/api/report?format=md&name="+saved, nil, "")
	require.Equal(t, http.StatusOK, md.Code)
	assert.Contains(t, md.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, md.Body.String(), "## Correlations")

	html := do(t, h, http.MethodGet, "/api/report?format=html&name="+saved, nil, "")
	require.Equal(t, http.StatusOK, html.Code)
	assert.Contains(t, html.Body.String(), "<table>")

	js := do(t, h, http.MethodGet, "/api/report?name="+saved, nil, "")
	require.Equal(t, http.StatusOK, js.Code)
	assert.Contains(t, decode(t, js), "profiles")

	bad := do(t, h, http.MethodGet, "/api/report?format=pdf&name="+saved, nil, "")
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestExport(t *testing.T) {
	h := newTestApp(t, 0)
	saved := savedName(t, h, "echo.csv")

	rec := do(t, h, http.MethodGet, "/api/export?name="+saved, nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestFiles_GetAndDelete(t *testing.T) {
	h := newTestApp(t, 0)
	saved := savedName(t, h, "echo data.csv")

	got := do(t, h, http.MethodGet, "/api/file/"+saved, nil, "")
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, echoCSV, got.Body.String())

	missing := do(t, h, http.MethodGet, "/api/file/nope.csv", nil, "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "File not found", decode(t, missing)["error"])

	noName := do(t, h, http.MethodGet, "/api/file", nil, "")
	assert.Equal(t, "Missing file name", decode(t, noName)["error"])

	del := do(t, h, http.MethodDelete, "/api/delete/"+saved, nil, "")
	require.Equal(t, http.StatusOK, del.Code)
	assert.Equal(t, "File "+saved+" deleted successfully", decode(t, del)["message"])

	var entries []registry.AliasEntry
	require.NoError(t, json.Unmarshal(do(t, h, http.MethodGet, "/api/lists", nil, "").Body.Bytes(), &entries))
	assert.Empty(t, entries)

	again := do(t, h, http.MethodDelete, "/api/delete/"+saved, nil, "")
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestUploads_WithoutCatalog(t *testing.T) {
	h := newTestApp(t, 0)

	rec := do(t, h, http.MethodGet, "/api/uploads", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["count"])
}
