package apperr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func writeStatus(err error) int {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Write(c, err)
	return w.Code
}

func TestWriteStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Authentication(), http.StatusUnauthorized},
		{Authorization("nope"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := writeStatus(tc.err); got != tc.want {
			t.Errorf("Write(%v) status = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestInternalDetailDoesNotLeak(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Write(c, errors.New("pq: secret table exploded"))
	if body := w.Body.String(); body != `{"error":"internal error"}` {
		t.Errorf("body = %s, leaked internal detail", body)
	}
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	err := NotFound("review not found")
	wrapped := errors.Join(errors.New("handler context"), err)
	if got := writeStatus(wrapped); got != http.StatusNotFound {
		t.Errorf("wrapped status = %d, want 404", got)
	}
}
