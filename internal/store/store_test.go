package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	rec := &Record{
		Address:    "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm",
		PrivateKey: "0000000000000000000000000000000000000000000000000000000000000001",
		WIF:        "5HpHagT65TZzG1PH3CSu63k8DbpvD8s5ip4nEB3kEsreAnchuDf",
		Prefix:     "EH",
		Mode:       "Legacy (1...)",
		Created:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Put(rec))

	got, err := s.Get(rec.Address)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("1NoSuchAddress")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutFillsCreated(t *testing.T) {
	s := openTestStore(t)

	rec := &Record{Address: "3Abc", PrivateKey: "deadbeef"}
	require.NoError(t, s.Put(rec))

	got, err := s.Get("3Abc")
	require.NoError(t, err)
	assert.False(t, got.Created.IsZero())
}

func TestList(t *testing.T) {
	s := openTestStore(t)

	records, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, records)

	for _, addr := range []string{"1Aaa", "1Bbb", "3Ccc"} {
		require.NoError(t, s.Put(&Record{Address: addr, PrivateKey: "aa"}))
	}

	records, err = s.List()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "1Aaa", records[0].Address)
	assert.Equal(t, "3Ccc", records[2].Address)
}
