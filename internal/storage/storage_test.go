package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-horizon/internal/clients"
)

// backendContract runs the shared Load/Save expectations against kv.
func backendContract(t *testing.T, kv KeyValue) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Load(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Save(ctx, "talent-horizon-credit-card-applications", []byte(`[{"id":"a"}]`)))
	got, err := kv.Load(ctx, "talent-horizon-credit-card-applications")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(got))

	require.NoError(t, kv.Save(ctx, "talent-horizon-credit-card-applications", []byte(`[]`)))
	got, err = kv.Load(ctx, "talent-horizon-credit-card-applications")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestMemory(t *testing.T) {
	backendContract(t, NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	buf := []byte("abc")
	require.NoError(t, m.Save(ctx, "k", buf))
	buf[0] = 'x'

	got, err := m.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _ := m.Load(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestNamespaced_IsolatesClients(t *testing.T) {
	shared := NewMemory()
	ctx := context.Background()

	a := NewNamespaced(shared, "client-a")
	b := NewNamespaced(shared, "client-b")

	require.NoError(t, a.Save(ctx, "profile", []byte("A")))
	_, err := b.Load(ctx, "profile")
	assert.ErrorIs(t, err, ErrNotFound)

	raw, err := shared.Load(ctx, "client-a:profile")
	require.NoError(t, err)
	assert.Equal(t, "A", string(raw))

	backendContract(t, b)
}

func TestFile(t *testing.T) {
	files, err := clients.NewLocalStorage(t.TempDir(), "", "")
	require.NoError(t, err)

	backendContract(t, NewFile(files))
}

func TestFile_KeysWithSeparators(t *testing.T) {
	files, err := clients.NewLocalStorage(t.TempDir(), "", "")
	require.NoError(t, err)
	kv := NewNamespaced(NewFile(files), "0b6f2c4e-1111-4a4a-9999-000000000000")
	ctx := context.Background()

	require.NoError(t, kv.Save(ctx, "../../etc/passwd", []byte("x")))
	got, err := kv.Load(ctx, "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}
