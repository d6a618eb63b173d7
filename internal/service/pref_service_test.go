package service

import (
	"context"
	"errors"
	"testing"

	"fluxterm/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type fakeStore struct {
	prefs     *domain.Preferences
	loadErr   error
	saveErr   error
	saveCalls int
}

func (f *fakeStore) Load(ctx context.Context) (*domain.Preferences, error) {
	return f.prefs, f.loadErr
}

func (f *fakeStore) Save(ctx context.Context, prefs domain.Preferences) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.prefs = &prefs
	return nil
}

type fakeEngine struct {
	current domain.Preferences
	applied *domain.Preferences
}

func (f *fakeEngine) Preferences() domain.Preferences { return f.current }

func (f *fakeEngine) ApplyPreferences(prefs domain.Preferences) { f.applied = &prefs }

func TestRestore_AppliesSavedPreferences(t *testing.T) {
	t.Parallel()

	store := &fakeStore{prefs: &domain.Preferences{Watchlist: []string{"BTC"}}}
	engine := &fakeEngine{}
	svc := NewPrefService(testTracer, store, engine)

	if err := svc.Restore(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.applied == nil || len(engine.applied.Watchlist) != 1 {
		t.Fatalf("preferences not applied: %+v", engine.applied)
	}
}

func TestRestore_FreshStoreIsNoop(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	svc := NewPrefService(testTracer, &fakeStore{}, engine)

	if err := svc.Restore(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.applied != nil {
		t.Fatal("nothing saved must not touch the engine")
	}
}

func TestRestore_PropagatesError(t *testing.T) {
	t.Parallel()

	store := &fakeStore{loadErr: errors.New("connection reset")}
	svc := NewPrefService(testTracer, store, &fakeEngine{})
	if err := svc.Restore(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
}

func TestPersist_SavesEngineState(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	engine := &fakeEngine{current: domain.Preferences{PrimaryTF: domain.TF5m}}
	svc := NewPrefService(testTracer, store, engine)

	if err := svc.Persist(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saveCalls != 1 {
		t.Fatalf("save calls = %d, want 1", store.saveCalls)
	}
	if store.prefs == nil || store.prefs.PrimaryTF != domain.TF5m {
		t.Fatalf("saved preferences wrong: %+v", store.prefs)
	}
}

func TestPersist_PropagatesError(t *testing.T) {
	t.Parallel()

	store := &fakeStore{saveErr: errors.New("connection reset")}
	svc := NewPrefService(testTracer, store, &fakeEngine{})
	if err := svc.Persist(context.Background()); err == nil {
		t.Fatal("expected save error")
	}
}
