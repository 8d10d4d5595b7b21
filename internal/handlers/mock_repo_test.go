package handlers_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/serroba/linkpreview/internal/link"
	"github.com/serroba/linkpreview/internal/messaging"
)

// noopPublish returns a publish function that always succeeds.
func noopPublish[T any]() messaging.Publish[T] {
	return func(_ *T) error { return nil }
}

// capturePublish returns a publish function that records every event.
func capturePublish[T any](events *[]T) messaging.Publish[T] {
	return func(event *T) error {
		*events = append(*events, *event)

		return nil
	}
}

// errorPublish returns a publish function that always fails.
func errorPublish[T any](err error) messaging.Publish[T] {
	return func(_ *T) error { return err }
}

// failingRepo fails every operation with the configured error.
type failingRepo struct {
	err error
}

func (f *failingRepo) List(context.Context) ([]link.Link, error) { return nil, f.err }

func (f *failingRepo) GetBySlug(context.Context, string) (*link.Link, error) {
	return nil, f.err
}

func (f *failingRepo) GetByID(context.Context, uuid.UUID) (*link.Link, error) {
	return nil, f.err
}

func (f *failingRepo) Create(context.Context, *link.Link) error { return f.err }
func (f *failingRepo) Update(context.Context, *link.Link) error { return f.err }
func (f *failingRepo) Delete(context.Context, uuid.UUID) error  { return f.err }

func (f *failingRepo) SetActive(context.Context, uuid.UUID, bool) (*link.Link, error) {
	return nil, f.err
}

func (f *failingRepo) IncrementClick(context.Context, uuid.UUID) error { return f.err }
