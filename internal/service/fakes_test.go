package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/vbonduro/snakebite/internal/photostore"
	"github.com/vbonduro/snakebite/internal/sheet"
)

// memWorksheet is an in-memory sheet.Worksheet holding a raw grid.
type memWorksheet struct {
	mu        sync.Mutex
	grid      [][]any
	getErr    error
	updateErr error
	clears    int
}

func (m *memWorksheet) GetAllRecords(_ context.Context) ([]map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return sheet.RowsToRecords(m.grid), nil
}

func (m *memWorksheet) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.grid = nil
	return nil
}

func (m *memWorksheet) Update(_ context.Context, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	for r, row := range rows {
		for len(m.grid) <= r {
			m.grid = append(m.grid, nil)
		}
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		m.grid[r] = cells
	}
	return nil
}

func (m *memWorksheet) rows() [][]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.grid
}

// memPhotoStore records uploads and can be told to fail either step.
type memPhotoStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	shared    map[string]bool
	createErr error
	shareErr  error
	counter   int
}

func newMemPhotoStore() *memPhotoStore {
	return &memPhotoStore{objects: make(map[string][]byte), shared: make(map[string]bool)}
}

func (m *memPhotoStore) Create(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	id := fmt.Sprintf("file%d-%s", m.counter, name)
	m.objects[id] = bytes.Clone(data)
	return id, nil
}

func (m *memPhotoStore) Share(_ context.Context, id string) error {
	if m.shareErr != nil {
		return m.shareErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shared[id] = true
	return nil
}

func (m *memPhotoStore) PublicURL(id string) string {
	return "https://drive.google.com/uc?id=" + id
}

// fakeProvider hands out the configured handles or errors.
type fakeProvider struct {
	ws       sheet.Worksheet
	ps       photostore.PhotoStore
	sheetErr error
	photoErr error
	photoOps int
}

func (f *fakeProvider) OpenWorksheet(_ context.Context) (sheet.Worksheet, error) {
	if f.sheetErr != nil {
		return nil, f.sheetErr
	}
	return f.ws, nil
}

func (f *fakeProvider) OpenPhotoStore(_ context.Context) (photostore.PhotoStore, error) {
	f.photoOps++
	if f.photoErr != nil {
		return nil, f.photoErr
	}
	return f.ps, nil
}
