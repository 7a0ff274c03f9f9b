package store_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-reportschema/internal/store"
	"github.com/goliatone/go-reportschema/pkg/model"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	current := c.now
	c.now = c.now.Add(time.Minute)
	return current
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("00000000-0000-0000-0000-%012d", n)
	}
}

type factory func(t *testing.T, opts ...store.Option) store.Store

func factories() map[string]factory {
	return map[string]factory{
		"memory": func(t *testing.T, opts ...store.Option) store.Store {
			return store.NewMemoryStore(opts...)
		},
		"sqlite": func(t *testing.T, opts ...store.Option) store.Store {
			s, err := store.OpenSQLite(context.Background(), ":memory:", opts...)
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func sampleTemplate(name string, reportType model.ReportType) model.Template {
	return model.Template{
		ID:          "ignored",
		Name:        name,
		Description: "Stored template fixture",
		ReportType:  reportType,
		Sections: []model.Section{{
			Title: "General",
			Fields: []model.Field{
				{Name: "inspector", Label: "Inspector", Type: model.FieldTypeText, Required: true},
				{Name: "passed", Label: "Passed", Type: model.FieldTypeCheckbox, Order: 1, Default: false},
			},
		}},
	}
}

func TestStore_CRUD(t *testing.T) {
	for name, newStore := range factories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			clock := &fixedClock{now: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
			s := newStore(t, store.WithClock(clock.Now), store.WithIDGenerator(sequentialIDs()))

			created, err := s.Create(ctx, sampleTemplate("Crane", model.ReportTypeCrane))
			require.NoError(t, err)
			assert.Equal(t, "00000000-0000-0000-0000-000000000001", created.ID)
			assert.Equal(t, created.ID, created.Template.ID)
			assert.True(t, created.CreatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))

			got, err := s.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, created.Template, got.Template)
			assert.True(t, got.UpdatedAt.Equal(created.UpdatedAt))

			changed := got.Template
			changed.Name = "Crane (rev 2)"
			changed.Sections[0].Fields[0].Label = "Lead inspector"
			updated, err := s.Update(ctx, created.ID, changed)
			require.NoError(t, err)
			assert.Equal(t, "Crane (rev 2)", updated.Template.Name)
			assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
			assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

			activated, err := s.SetActive(ctx, created.ID, true)
			require.NoError(t, err)
			assert.True(t, activated.Template.IsActive)
			assert.Equal(t, "Lead inspector", activated.Template.Sections[0].Fields[0].Label)

			require.NoError(t, s.Delete(ctx, created.ID))
			_, err = s.Get(ctx, created.ID)
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestStore_NotFound(t *testing.T) {
	for name, newStore := range factories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)

			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, store.ErrNotFound)
			_, err = s.Update(ctx, "missing", sampleTemplate("x", model.ReportTypeGeneral))
			assert.ErrorIs(t, err, store.ErrNotFound)
			_, err = s.SetActive(ctx, "missing", true)
			assert.ErrorIs(t, err, store.ErrNotFound)
			assert.ErrorIs(t, s.Delete(ctx, "missing"), store.ErrNotFound)
		})
	}
}

func TestStore_ListFilters(t *testing.T) {
	for name, newStore := range factories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)

			psv, err := s.Create(ctx, sampleTemplate("PSV", model.ReportTypePSV))
			require.NoError(t, err)
			_, err = s.Create(ctx, sampleTemplate("Corrosion", model.ReportTypeCorrosion))
			require.NoError(t, err)
			_, err = s.Create(ctx, sampleTemplate("Annual PSV", model.ReportTypePSV))
			require.NoError(t, err)
			_, err = s.SetActive(ctx, psv.ID, true)
			require.NoError(t, err)

			all, err := s.List(ctx, store.ListOptions{})
			require.NoError(t, err)
			assert.Equal(t, []string{"Annual PSV", "Corrosion", "PSV"}, names(all))

			psvOnly, err := s.List(ctx, store.ListOptions{ReportType: model.ReportTypePSV})
			require.NoError(t, err)
			assert.Equal(t, []string{"Annual PSV", "PSV"}, names(psvOnly))

			active, err := s.List(ctx, store.ListOptions{ActiveOnly: true})
			require.NoError(t, err)
			assert.Equal(t, []string{"PSV"}, names(active))

			none, err := s.List(ctx, store.ListOptions{ReportType: model.ReportTypeMaintenance})
			require.NoError(t, err)
			assert.NotNil(t, none)
			assert.Empty(t, none)
		})
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	for name, newStore := range factories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)

			created, err := s.Create(ctx, sampleTemplate("Copy", model.ReportTypeGeneral))
			require.NoError(t, err)
			created.Template.Sections[0].Title = "mutated"

			got, err := s.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, "General", got.Template.Sections[0].Title)
		})
	}
}

func TestSQLiteStore_PersistsAcrossConnections(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "templates.db")

	first, err := store.OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	created, err := first.Create(ctx, sampleTemplate("Durable", model.ReportTypeMaintenance))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := store.OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Durable", got.Template.Name)
	assert.True(t, store.ValidID(got.ID))
}

func names(records []store.Record) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.Template.Name
	}
	return out
}
