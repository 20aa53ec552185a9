package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func loginRequest(body string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	return httptest.NewRecorder(), req
}

func TestHandleLogin_Success(t *testing.T) {
	service, _ := newStubService()
	handler := NewHandler(service)

	w, req := loginRequest(`{"username":"alice","password":"pw1"}`)
	handler.HandleLogin(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Contains(t, w.Body.String(), `"token"`)
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	service, _ := newStubService()
	handler := NewHandler(service)

	w, req := loginRequest(`{"username":"alice","password":"wrong"}`)
	handler.HandleLogin(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestHandleLogin_MissingFields(t *testing.T) {
	service, _ := newStubService()
	handler := NewHandler(service)

	for _, body := range []string{`{"username":"alice"}`, `{"password":"pw1"}`, `not json`} {
		w, req := loginRequest(body)
		handler.HandleLogin(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode, "body: %s", body)
	}
}
