package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/discharge-parser/config"
	"github.com/sahilchouksey/discharge-parser/model"
)

func newTestStore(t *testing.T) *GORMStore {
	t.Helper()

	store, err := OpenGORM(sqlite.Open(":memory:"), true)
	require.NoError(t, err)

	// every pooled connection would otherwise get its own empty database
	sqlDB, err := store.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedPatients(t *testing.T, store *GORMStore, n int) {
	t.Helper()
	rows := make([]model.Discharge, n)
	for i := range rows {
		rows[i] = model.Discharge{
			Name:   fmt.Sprintf("patient %02d", i+1),
			EpicID: fmt.Sprintf("E%03d", n-i),
		}
	}
	require.NoError(t, store.InsertDischarges(context.Background(), rows))
}

func rowNames(rows []model.Discharge) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestDSN(t *testing.T) {
	env := &config.EnvironmentVariable{
		DB_HOST:      "db.internal",
		DB_USER_NAME: "app",
		DB_PASSWORD:  "pw",
		DB_NAME:      "discharges",
		DB_PORT:      "5432",
		DB_SSL_MODE:  "require",
	}
	assert.Equal(t, "host=db.internal user=app password=pw dbname=discharges port=5432 sslmode=require TimeZone=UTC", DSN(env))

	env.DATABASE_URL = "postgres://app:pw@db.internal:5432/discharges"
	assert.Equal(t, env.DATABASE_URL, DSN(env))
}

func TestGORMStore_InsertAndCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertDischarges(ctx, nil))
	total, err := store.CountDischarges(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	seedPatients(t, store, 12)
	total, err = store.CountDischarges(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
}

func TestGORMStore_ListDischarges(t *testing.T) {
	store := newTestStore(t)
	seedPatients(t, store, 12)

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{
			name: "second page ascending by name",
			opts: ListOptions{Offset: 5, Limit: 5, SortField: model.FieldName, Ascending: true},
			want: []string{"patient 06", "patient 07", "patient 08", "patient 09", "patient 10"},
		},
		{
			name: "last partial page",
			opts: ListOptions{Offset: 10, Limit: 5, SortField: model.FieldName, Ascending: true},
			want: []string{"patient 11", "patient 12"},
		},
		{
			name: "descending by name",
			opts: ListOptions{Offset: 0, Limit: 3, SortField: model.FieldName},
			want: []string{"patient 12", "patient 11", "patient 10"},
		},
		{
			name: "ascending by epic id reverses insertion order",
			opts: ListOptions{Offset: 0, Limit: 2, SortField: model.FieldEpicID, Ascending: true},
			want: []string{"patient 12", "patient 11"},
		},
		{
			name: "page beyond the last",
			opts: ListOptions{Offset: 20, Limit: 5, SortField: model.FieldName, Ascending: true},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := store.ListDischarges(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rowNames(rows))
		})
	}
}

func TestGORMStore_ListDischarges_RejectsUnknownSortField(t *testing.T) {
	store := newTestStore(t)

	_, err := store.ListDischarges(context.Background(), ListOptions{Limit: 10, SortField: "name; DROP TABLE discharges"})
	assert.ErrorIs(t, err, ErrInvalidSortField)
}

func TestGORMStore_ExtraColumnRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	d := model.FromRecord(model.Record{
		model.FieldName: "Jane Doe",
		"room":          "4B",
	})
	require.NoError(t, store.InsertDischarges(ctx, []model.Discharge{d}))

	rows, err := store.ListDischarges(ctx, ListOptions{Limit: 1, SortField: model.FieldName, Ascending: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	record := rows[0].ToRecord()
	assert.Equal(t, "Jane Doe", record[model.FieldName])
	assert.Equal(t, "4B", record["room"])
	assert.NotZero(t, rows[0].ID)
}

func TestGORMStore_HealthCheck(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.HealthCheck(context.Background()))
}

func TestSeedSampleDischarges(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	n, err := SeedSampleDischarges(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, len(SampleDischarges), n)

	n, err = SeedSampleDischarges(ctx, store)
	require.NoError(t, err)
	assert.Zero(t, n)

	total, err := store.CountDischarges(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(SampleDischarges)), total)
}
