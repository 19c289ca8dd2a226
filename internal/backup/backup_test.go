package backup

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarwork/crewledger/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, st *store.Store) {
	t.Helper()
	require.NoError(t, st.Put(store.StateKey, `{"workers":[{"id":"w1","name":"Ana"}]}`))
	require.NoError(t, st.Put(store.TimerKey, `{"isRunning":false,"startTime":null,"breakStartTime":null,"totalBreakTime":0}`))
	require.NoError(t, st.SavePlan(context.Background(), "proj-1", []byte("%PDF-1.4 plan bytes\x00\xff")))
}

func TestExportCapturesEverything(t *testing.T) {
	st := newTestStore(t)
	seed(t, st)

	doc, err := Export(context.Background(), st)
	require.NoError(t, err)

	assert.Equal(t, Version, doc.Version)
	assert.NotZero(t, doc.Timestamp)
	assert.Equal(t, `{"workers":[{"id":"w1","name":"Ana"}]}`, doc.LocalStorage[store.StateKey])
	assert.Contains(t, doc.LocalStorage, store.TimerKey)
	require.Len(t, doc.IndexedDB.PDFStore, 1)
	assert.Equal(t, "proj-1", doc.IndexedDB.PDFStore[0].ID)
	assert.Equal(t, []byte("%PDF-1.4 plan bytes\x00\xff"), doc.IndexedDB.PDFStore[0].PDF)
}

func TestRoundTripIsBitIdentical(t *testing.T) {
	src := newTestStore(t)
	seed(t, src)
	ctx := context.Background()

	data, err := ExportJSON(ctx, src)
	require.NoError(t, err)

	dst := newTestStore(t)
	require.NoError(t, dst.Put(store.StateKey, "stale state to be replaced"))
	require.NoError(t, dst.SavePlan(ctx, "stale-plan", []byte("old")))

	require.NoError(t, Restore(ctx, dst, data))

	// Every kv blob comes back byte for byte.
	for _, key := range []string{store.StateKey, store.TimerKey} {
		want, err := src.Get(key)
		require.NoError(t, err)
		got, err := dst.Get(key)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Pre-restore contents are gone.
	_, err = dst.LoadPlan(ctx, "stale-plan")
	assert.ErrorIs(t, err, store.ErrNotFound)

	pdf, err := dst.LoadPlan(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 plan bytes\x00\xff"), pdf)
}

func TestRestoreRejectsMalformedDocuments(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		data string
	}{
		{"not json", "{oops"},
		{"missing sections", `{"timestamp":1}`},
		{"plan without id", `{"version":"4.1","localStorage":{},"indexedDB":{"pdfStore":[{"pdf":"aGk="}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Restore(ctx, st, []byte(tt.data))
			require.Error(t, err)
			assert.True(t, IsFormatError(err), "want format error, got %v", err)
		})
	}
}

func TestEncryptedRoundTrip(t *testing.T) {
	st := newTestStore(t)
	seed(t, st)
	ctx := context.Background()

	plain, err := ExportJSON(ctx, st)
	require.NoError(t, err)
	assert.False(t, IsEncrypted(plain))

	sealed, err := Encrypt(plain, "hunter2")
	require.NoError(t, err)
	assert.True(t, IsEncrypted(sealed))
	assert.NotContains(t, string(sealed), "Ana", "plaintext never appears in the envelope")

	opened, err := Decrypt(sealed, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, plain, opened)
}

func TestDecryptWrongPassphrase(t *testing.T) {
	sealed, err := Encrypt([]byte(`{"version":"4.1"}`), "correct")
	require.NoError(t, err)

	_, err = Decrypt(sealed, "wrong")
	require.Error(t, err)
	assert.True(t, IsFormatError(err))
}

func TestDecryptRejectsPlainDocument(t *testing.T) {
	_, err := Decrypt([]byte(`{"version":"4.1","localStorage":{}}`), "any")
	require.Error(t, err)
	assert.True(t, IsFormatError(err))
}

func TestEncryptUsesFreshSalt(t *testing.T) {
	a, err := Encrypt([]byte("payload"), "pw")
	require.NoError(t, err)
	b, err := Encrypt([]byte("payload"), "pw")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
