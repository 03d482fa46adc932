package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"meeting-assistant/pkg/response"
)

func record(t *testing.T, send func(c *gin.Context)) (*httptest.ResponseRecorder, response.Resp) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	send(c)

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	return w, resp
}

func TestResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("OK", func(t *testing.T) {
		w, resp := record(t, func(c *gin.Context) {
			response.OK(c, map[string]string{"foo": "bar"})
		})

		if w.Code != http.StatusOK {
			t.Errorf("expected %d but got %d", http.StatusOK, w.Code)
		}
		if resp.ErrorCode != 0 {
			t.Errorf("expected ErrorCode 0, got %d", resp.ErrorCode)
		}
		if resp.Message != response.MessageSuccess {
			t.Errorf("expected success message, got %q", resp.Message)
		}
		dMap, ok := resp.Data.(map[string]interface{})
		if !ok || dMap["foo"] != "bar" {
			t.Errorf("unexpected data payload: %v", resp.Data)
		}
	})

	t.Run("Accepted", func(t *testing.T) {
		w, resp := record(t, func(c *gin.Context) {
			response.Accepted(c, "accepted")
		})

		if w.Code != http.StatusOK {
			t.Errorf("expected %d but got %d", http.StatusOK, w.Code)
		}
		dMap, ok := resp.Data.(map[string]interface{})
		if !ok || dMap["status"] != "accepted" {
			t.Errorf("unexpected data payload: %v", resp.Data)
		}
	})

	t.Run("Error", func(t *testing.T) {
		w, resp := record(t, func(c *gin.Context) {
			response.Error(c, errors.New("test err"), map[string]interface{}{"field": "invalid"})
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected %d, got %d", http.StatusBadRequest, w.Code)
		}
		if resp.ErrorCode != 1 {
			t.Errorf("expected ErrorCode 1, got %d", resp.ErrorCode)
		}
		if resp.Message != "test err" {
			t.Errorf("expected message 'test err', got %s", resp.Message)
		}
	})

	t.Run("Error Nil Data", func(t *testing.T) {
		_, resp := record(t, func(c *gin.Context) {
			response.Error(c, errors.New("test err nil"), nil)
		})
		if resp.Data == nil {
			t.Errorf("expected empty map for nil data, got nil")
		}
	})

	t.Run("InternalError Hides Cause", func(t *testing.T) {
		w, resp := record(t, func(c *gin.Context) {
			response.InternalError(c, errors.New("db crash"))
		})

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", w.Code)
		}
		if resp.Message != response.DefaultErrorMessage {
			t.Errorf("internal detail leaked: %q", resp.Message)
		}
	})

	t.Run("Unauthorized", func(t *testing.T) {
		w, _ := record(t, func(c *gin.Context) {
			response.Unauthorized(c)
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("Forbidden", func(t *testing.T) {
		w, _ := record(t, func(c *gin.Context) {
			response.Forbidden(c)
		})
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})
}
