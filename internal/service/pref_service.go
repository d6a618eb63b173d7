package service

import (
	"context"
	"fmt"
	"log"

	"fluxterm/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type PrefStore interface {
	Load(ctx context.Context) (*domain.Preferences, error)
	Save(ctx context.Context, prefs domain.Preferences) error
}

type ScreenerEngine interface {
	Preferences() domain.Preferences
	ApplyPreferences(prefs domain.Preferences)
}

// PrefService moves the configuration surface between the engine and the
// backing store. The engine stays unaware of where preferences live.
type PrefService struct {
	tracer trace.Tracer
	store  PrefStore
	engine ScreenerEngine
}

func NewPrefService(tracer trace.Tracer, store PrefStore, engine ScreenerEngine) *PrefService {
	return &PrefService{tracer: tracer, store: store, engine: engine}
}

// Restore overlays persisted preferences onto the engine at startup. A
// fresh store with nothing saved is not an error.
func (s *PrefService) Restore(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "pref-service.restore")
	defer span.End()

	prefs, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore preferences: %w", err)
	}
	if prefs == nil {
		log.Println("No saved preferences, using defaults")
		return nil
	}
	s.engine.ApplyPreferences(*prefs)
	log.Println("Preferences restored")
	return nil
}

// Persist snapshots the engine's current configuration into the store.
// Called after every configuration change.
func (s *PrefService) Persist(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "pref-service.persist")
	defer span.End()

	if err := s.store.Save(ctx, s.engine.Preferences()); err != nil {
		return fmt.Errorf("persist preferences: %w", err)
	}
	return nil
}
