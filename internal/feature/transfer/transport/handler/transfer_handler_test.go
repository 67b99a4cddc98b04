package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodjournal/internal/feature/transfer/usecase"
)

// mockExportUsecase is a mock implementation of the ExportUsecase interface.
type mockExportUsecase struct {
	ExportJSONFunc func(ctx context.Context, userID uint) (string, error)
	ExportCSVFunc  func(ctx context.Context, userID uint) (string, error)
}

func (m *mockExportUsecase) ExportJSON(ctx context.Context, userID uint) (string, error) {
	if m.ExportJSONFunc != nil {
		return m.ExportJSONFunc(ctx, userID)
	}
	return "", errors.New("not implemented")
}

func (m *mockExportUsecase) ExportCSV(ctx context.Context, userID uint) (string, error) {
	if m.ExportCSVFunc != nil {
		return m.ExportCSVFunc(ctx, userID)
	}
	return "", errors.New("not implemented")
}

// mockImportUsecase is a mock implementation of the ImportUsecase interface.
type mockImportUsecase struct {
	ImportCSVFunc     func(ctx context.Context, userID uint, body string) usecase.ImportResult
	ImportJSONFunc    func(ctx context.Context, userID uint, body string) usecase.ImportResult
	ImportCSVFlowFunc func(ctx context.Context, userID uint, body string) (<-chan usecase.ImportProgress, <-chan usecase.ImportResult)
}

func (m *mockImportUsecase) ImportCSV(ctx context.Context, userID uint, body string) usecase.ImportResult {
	if m.ImportCSVFunc != nil {
		return m.ImportCSVFunc(ctx, userID, body)
	}
	return usecase.ImportResult{}
}

func (m *mockImportUsecase) ImportJSON(ctx context.Context, userID uint, body string) usecase.ImportResult {
	if m.ImportJSONFunc != nil {
		return m.ImportJSONFunc(ctx, userID, body)
	}
	return usecase.ImportResult{}
}

func (m *mockImportUsecase) ImportCSVFlow(ctx context.Context, userID uint, body string) (<-chan usecase.ImportProgress, <-chan usecase.ImportResult) {
	if m.ImportCSVFlowFunc != nil {
		return m.ImportCSVFlowFunc(ctx, userID, body)
	}
	progress := make(chan usecase.ImportProgress)
	result := make(chan usecase.ImportResult, 1)
	close(progress)
	close(result)
	return progress, result
}

func newTransferRouter(exporter *mockExportUsecase, importer *mockImportUsecase) *gin.Engine {
	handler := NewTransferHandler(exporter, importer)
	router := gin.New()
	router.GET("/users/:id/export/json", handler.ExportJSON)
	router.GET("/users/:id/export/csv", handler.ExportCSV)
	router.POST("/users/:id/import/json", handler.ImportJSON)
	router.POST("/users/:id/import/csv", handler.ImportCSV)
	router.GET("/users/:id/import/ws", handler.ImportWS)
	return router
}

func TestTransferHandler_ExportJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: document passes through untouched", func(t *testing.T) {
		doc := `{"exportDate":"2024-05-02T18:30:00Z","userId":1,"totalEntries":0,"entries":[]}`
		router := newTransferRouter(&mockExportUsecase{
			ExportJSONFunc: func(ctx context.Context, userID uint) (string, error) {
				assert.Equal(t, uint(1), userID)
				return doc, nil
			},
		}, &mockImportUsecase{})

		req, _ := http.NewRequest(http.MethodGet, "/users/1/export/json", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, doc, w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})

	t.Run("failure: export error", func(t *testing.T) {
		router := newTransferRouter(&mockExportUsecase{
			ExportJSONFunc: func(ctx context.Context, userID uint) (string, error) {
				return "", errors.New("db down")
			},
		}, &mockImportUsecase{})

		req, _ := http.NewRequest(http.MethodGet, "/users/1/export/json", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("failure: non-numeric id", func(t *testing.T) {
		router := newTransferRouter(&mockExportUsecase{}, &mockImportUsecase{})

		req, _ := http.NewRequest(http.MethodGet, "/users/abc/export/json", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTransferHandler_ExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)

	doc := "ID,Title,Content,MoodRating,CreatedAt,UpdatedAt\n"
	router := newTransferRouter(&mockExportUsecase{
		ExportCSVFunc: func(ctx context.Context, userID uint) (string, error) {
			return doc, nil
		},
	}, &mockImportUsecase{})

	req, _ := http.NewRequest(http.MethodGet, "/users/1/export/csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, doc, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, "attachment; filename=journal_entries.csv", w.Header().Get("Content-Disposition"))
}

func TestTransferHandler_ImportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		result         usecase.ImportResult
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success: clean import returns 200",
			result:         usecase.ImportResult{Successful: 2, Skipped: 1},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok","successful":2,"skipped":1,"failed":0,"errors":[]}`,
		},
		{
			name: "partial: failures return 207 with per-record errors",
			result: usecase.ImportResult{
				Successful: 1,
				Failed:     1,
				Errors:     []string{"row 2: mood rating must be an integer between 1 and 10"},
			},
			expectedStatus: http.StatusMultiStatus,
			expectedBody:   `{"status":"partial","successful":1,"skipped":0,"failed":1,"errors":["row 2: mood rating must be an integer between 1 and 10"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTransferRouter(&mockExportUsecase{}, &mockImportUsecase{
				ImportCSVFunc: func(ctx context.Context, userID uint, body string) usecase.ImportResult {
					return tt.result
				},
			})

			req, _ := http.NewRequest(http.MethodPost, "/users/1/import/csv",
				bytes.NewBufferString("1,1,2024-05-02T18:30:00Z,Good day,Went for a walk,8\n"))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestTransferHandler_ImportJSON_BodyReachesUsecase(t *testing.T) {
	gin.SetMode(gin.TestMode)

	doc := `{"exportDate":"2024-05-02T18:30:00Z","userId":1,"totalEntries":0,"entries":[]}`
	var received string

	router := newTransferRouter(&mockExportUsecase{}, &mockImportUsecase{
		ImportJSONFunc: func(ctx context.Context, userID uint, body string) usecase.ImportResult {
			received = body
			return usecase.ImportResult{}
		},
	})

	req, _ := http.NewRequest(http.MethodPost, "/users/1/import/json", bytes.NewBufferString(doc))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, doc, received)
}

func TestTransferHandler_ImportWS_StreamsProgressAndResult(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := newTransferRouter(&mockExportUsecase{}, &mockImportUsecase{
		ImportCSVFlowFunc: func(ctx context.Context, userID uint, body string) (<-chan usecase.ImportProgress, <-chan usecase.ImportResult) {
			progress := make(chan usecase.ImportProgress, 2)
			result := make(chan usecase.ImportResult, 1)
			progress <- usecase.ImportProgress{TotalLines: 2, ProcessedLines: 1, SuccessfulImports: 1}
			progress <- usecase.ImportProgress{TotalLines: 2, ProcessedLines: 2, SuccessfulImports: 2}
			close(progress)
			result <- usecase.ImportResult{Successful: 2}
			close(result)
			return progress, result
		},
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/users/1/import/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte("1,1,2024-05-02T18:30:00Z,Good day,Went for a walk,8\n")))

	var frames []map[string]any
	for i := 0; i < 3; i++ {
		var frame map[string]any
		require.NoError(t, conn.ReadJSON(&frame))
		frames = append(frames, frame)
	}

	assert.Equal(t, "progress", frames[0]["type"])
	assert.Equal(t, float64(1), frames[0]["processedLines"])
	assert.Equal(t, "progress", frames[1]["type"])
	assert.Equal(t, float64(2), frames[1]["processedLines"])
	assert.Equal(t, true, frames[1]["isComplete"])
	assert.Equal(t, float64(1), frames[1]["successRate"])

	final := frames[2]
	assert.Equal(t, "result", final["type"])
	assert.Equal(t, frames[0]["jobId"], final["jobId"])
	res, ok := final["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", res["status"])
	assert.Equal(t, float64(2), res["successful"])
}
