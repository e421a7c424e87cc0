package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dataapp "github.com/Aixtrade/Tally/internal/application/data"
	"github.com/Aixtrade/Tally/internal/interfaces/http/dto"
	"github.com/Aixtrade/Tally/internal/interfaces/http/middleware"
)

func setupDataRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDataHandler(dataapp.NewService(zap.NewNop()))
	r.POST("/data", h.Aggregate)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestDataHandlerAggregate(t *testing.T) {
	r := setupDataRouter()

	cases := []struct {
		name string
		body string
		want dto.AggregateResponse
	}{
		{"mixed", `{"data": ["a", "b", 1, 2, 3]}`, dto.AggregateResponse{StringLen: 2, IntSum: 6}},
		{"empty", `{"data": []}`, dto.AggregateResponse{}},
		{"ignored kinds", `{"data": [true, null, {"x":1}, [1,2]]}`, dto.AggregateResponse{}},
		{"large integers", `{"data": [9007199254740993, -1]}`, dto.AggregateResponse{IntSum: 9007199254740992}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(r, "/data", tc.body)
			if resp.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
			}
			var got dto.AggregateResponse
			if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to parse response: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestDataHandlerResponseShape(t *testing.T) {
	resp := postJSON(setupDataRouter(), "/data", `{"data": []}`)

	if got := strings.TrimSpace(resp.Body.String()); got != `{"string_len":0,"int_sum":0}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestDataHandlerInvalidNumericElement(t *testing.T) {
	resp := postJSON(setupDataRouter(), "/data", `{"data": ["x", 1.5]}`)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
	var body struct {
		Code    string             `json:"code"`
		Details dto.ElementDetails `json:"details"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Code != "INVALID_NUMERIC_ELEMENT" {
		t.Fatalf("expected INVALID_NUMERIC_ELEMENT, got %s", body.Code)
	}
	if body.Details.Index != 1 || body.Details.Value != "1.5" {
		t.Fatalf("unexpected details: %+v", body.Details)
	}
}

func TestDataHandlerOverflow(t *testing.T) {
	resp := postJSON(setupDataRouter(), "/data", `{"data": [9223372036854775807, 1]}`)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Code != "INTEGER_OVERFLOW" {
		t.Fatalf("expected INTEGER_OVERFLOW, got %s", body.Code)
	}
}

func TestDataHandlerMalformedRequest(t *testing.T) {
	r := setupDataRouter()

	for _, body := range []string{
		``,
		`not json`,
		`{}`,
		`{"data": null}`,
		`{"data": "abc"}`,
		`{"data": {"a": 1}}`,
		`[1, 2]`,
	} {
		resp := postJSON(r, "/data", body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%q: expected status 400, got %d", body, resp.Code)
		}
	}
}

func TestDataHandlerBodyTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.BodyLimit(16))
	r.POST("/data", NewDataHandler(dataapp.NewService(zap.NewNop())).Aggregate)

	resp := postJSON(r, "/data", `{"data": ["aaaaaaaaaaaaaaaaaaaa"]}`)
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", resp.Code)
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Code != "PAYLOAD_TOO_LARGE" {
		t.Fatalf("expected PAYLOAD_TOO_LARGE, got %s", body.Code)
	}

	if resp := postJSON(r, "/data", `{"data": [1]}`); resp.Code != http.StatusOK {
		t.Fatalf("expected small body to pass, got %d", resp.Code)
	}
}
