package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/scms/internal/events"
	"github.com/SAP-F-2025/scms/internal/validator"
)

func TestServiceManager_Lifecycle(t *testing.T) {
	store := newScenarioStore(t)
	sm := NewServiceManager(store, discardLogger(), validator.New(), ServiceManagerConfig{
		Confirmer: AlwaysConfirm,
		Publisher: events.NewMockEventPublisher(nil),
	})
	ctx := context.Background()

	func() {
		defer func() {
			if recover() == nil {
				t.Error("getter before Initialize should panic")
			}
		}()
		sm.Student()
	}()

	if err := sm.HealthCheck(ctx); err == nil {
		t.Error("HealthCheck before Initialize should fail")
	}

	if err := sm.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if sm.Enrollment() == nil || sm.Student() == nil || sm.Course() == nil || sm.Record() == nil {
		t.Fatal("services not wired")
	}
	if err := sm.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}

	if err := sm.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if err := sm.HealthCheck(ctx); err == nil {
		t.Error("HealthCheck after Shutdown should fail")
	}
}
