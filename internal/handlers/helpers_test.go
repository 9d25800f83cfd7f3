package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/scms/internal/config"
	"github.com/SAP-F-2025/scms/internal/events"
	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
	"github.com/SAP-F-2025/scms/internal/repositories/memory"
	"github.com/SAP-F-2025/scms/internal/services"
	"github.com/SAP-F-2025/scms/internal/utils"
	"github.com/SAP-F-2025/scms/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router    *gin.Engine
	manager   *HandlerManager
	store     *memory.Store
	publisher *events.MockEventPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	snapshot := models.Snapshot{
		Students: []models.Student{{ID: "1", RegNo: "R-001", Name: "Ada", Email: "ada@uni.edu", Year: 1}},
		Courses:  []models.Course{{ID: "1", Code: "CS101", Title: "Programming", Credits: 4}},
		Enrollments: []models.Enrollment{
			{ID: "e1", StudentID: "1", CourseID: "1", Grade: models.GradeB},
		},
	}
	if _, err := repositories.Seed(context.Background(), store, snapshot, logger); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	publisher := events.NewMockEventPublisher(logger)
	sm := services.NewServiceManager(store, logger, validator.New(), services.ServiceManagerConfig{Publisher: publisher})
	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	router := gin.New()
	SetupMiddleware(router, utils.NewSlogLogger(logger))
	manager := NewHandlerManager(sm, utils.NewSlogLogger(logger), config.CasdoorConfig{})

	return &testServer{router: router, manager: manager, store: store, publisher: publisher}
}

// routes registers the routes; call after adjusting the manager
func (s *testServer) routes() *testServer {
	s.manager.SetupRoutes(s.router)
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			encoded, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			raw = string(encoded)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, want, rec.Body.String())
	}
}

