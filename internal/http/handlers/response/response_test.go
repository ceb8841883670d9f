package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	rw := httptest.NewRecorder()

	Render(rw, map[string]string{"message": "ok"}, http.StatusOK)

	require.Equal(t, http.StatusOK, rw.Code)
	require.Equal(t, "application/json", rw.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rw.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"message":"ok"}`, rw.Body.String())
}

func TestRenderUnencodable(t *testing.T) {
	rw := httptest.NewRecorder()

	Render(rw, map[string]interface{}{"ch": make(chan int)}, http.StatusOK)

	require.Equal(t, http.StatusInternalServerError, rw.Code)
	require.Empty(t, rw.Body.String())
}

func TestRenderBadRequest(t *testing.T) {
	rw := httptest.NewRecorder()

	RenderBadRequest(rw)

	require.Equal(t, http.StatusBadRequest, rw.Code)
	require.JSONEq(t, `{"error":"invalid request data"}`, rw.Body.String())
}

func TestSeeOther(t *testing.T) {
	rw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/password_reset", nil)

	SeeOther(rw, req, "/login?reset=true")

	require.Equal(t, http.StatusSeeOther, rw.Code)
	require.Equal(t, "/login?reset=true", rw.Header().Get("Location"))
	require.Equal(t, "no-store", rw.Header().Get("Cache-Control"))
}
