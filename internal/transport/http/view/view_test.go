package view

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRendererWritesTemplateAndData(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, JSONRenderer{}.Render(rec, http.StatusOK, "login", Data{"error_message": "Invalid credentials"}))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var page Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, "login", page.Template)
	assert.Equal(t, "Invalid credentials", page.Data["error_message"])
}

func TestJSONRendererNilData(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, JSONRenderer{}.Render(rec, http.StatusCreated, "signup", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"template":"signup","data":{}}`, rec.Body.String())
}
