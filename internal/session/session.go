// Package session hands out authenticated worksheet and photo-store handles.
// Google handles are rebuilt on every call from the credentials loaded at
// startup; nothing is pooled between requests.
package session

import (
	"context"

	"github.com/vbonduro/snakebite/internal/photostore"
	"github.com/vbonduro/snakebite/internal/sheet"
)

type Provider interface {
	OpenWorksheet(ctx context.Context) (sheet.Worksheet, error)
	OpenPhotoStore(ctx context.Context) (photostore.PhotoStore, error)
}

// WorksheetOpener and PhotoStoreOpener produce one handle per call.
type (
	WorksheetOpener  func(ctx context.Context) (sheet.Worksheet, error)
	PhotoStoreOpener func(ctx context.Context) (photostore.PhotoStore, error)
)

type provider struct {
	openSheet  WorksheetOpener
	openPhotos PhotoStoreOpener
}

// New combines two openers into a Provider.
func New(openSheet WorksheetOpener, openPhotos PhotoStoreOpener) Provider {
	return &provider{openSheet: openSheet, openPhotos: openPhotos}
}

func (p *provider) OpenWorksheet(ctx context.Context) (sheet.Worksheet, error) {
	return p.openSheet(ctx)
}

func (p *provider) OpenPhotoStore(ctx context.Context) (photostore.PhotoStore, error) {
	return p.openPhotos(ctx)
}

// StaticWorksheet returns an opener that always yields ws.
func StaticWorksheet(ws sheet.Worksheet) WorksheetOpener {
	return func(context.Context) (sheet.Worksheet, error) { return ws, nil }
}

// StaticPhotoStore returns an opener that always yields ps.
func StaticPhotoStore(ps photostore.PhotoStore) PhotoStoreOpener {
	return func(context.Context) (photostore.PhotoStore, error) { return ps, nil }
}

// FailedWorksheet returns an opener that always fails with err.
func FailedWorksheet(err error) WorksheetOpener {
	return func(context.Context) (sheet.Worksheet, error) { return nil, err }
}

// FailedPhotoStore returns an opener that always fails with err.
func FailedPhotoStore(err error) PhotoStoreOpener {
	return func(context.Context) (photostore.PhotoStore, error) { return nil, err }
}
