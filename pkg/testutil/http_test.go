package testutil

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorderBodyCanBeReadRepeatedly(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total": 3, "status": "done"}`))
	})

	rr := DoRequest(handler, NewRequest(t, http.MethodGet, "/"))
	AssertJSONContains(t, rr, "total", float64(3))
	AssertJSONContains(t, rr, "status", "done")
	assert.NotEmpty(t, ReadBody(t, rr))
}
