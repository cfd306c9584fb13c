package codec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCodec struct {
	name string
}

func (f *fakeCodec) Initialize(cfg CompressionConfig) error     { return nil }
func (f *fakeCodec) Compress(frame *Frame) ([]byte, error)      { return nil, nil }
func (f *fakeCodec) Decompress(payload []byte) (*Frame, error)  { return nil, nil }
func (f *fakeCodec) Name() string                               { return f.name }
func (f *fakeCodec) Stats() string                              { return "" }
func (f *fakeCodec) Reset()                                     {}

func TestRegistry_RegisterAndCreate(t *testing.T) {
	r := NewRegistry()

	require.False(t, r.IsAvailable("alpha"))

	err := r.Register("alpha", func() Codec { return &fakeCodec{name: "alpha-v1"} })
	require.NoError(t, err)
	assert.True(t, r.IsAvailable("alpha"))

	c, err := r.Create("alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha-v1", c.Name())
}

func TestRegistry_RegisterDuplicateFails(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("alpha", func() Codec { return &fakeCodec{name: "first"} }))

	err := r.Register("alpha", func() Codec { return &fakeCodec{name: "second"} })
	require.Error(t, err)

	// The original binding stays in effect.
	c, err := r.Create("alpha")
	require.NoError(t, err)
	assert.Equal(t, "first", c.Name())
}

func TestRegistry_RegisterNilFactory(t *testing.T) {
	r := NewRegistry()
	require.Error(t, r.Register("alpha", nil))
	assert.False(t, r.IsAvailable("alpha"))
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.Unregister("alpha"), "unregistering an unknown name reports false")

	require.NoError(t, r.Register("alpha", func() Codec { return &fakeCodec{} }))
	assert.True(t, r.Unregister("alpha"))
	assert.False(t, r.IsAvailable("alpha"))

	// The name is free again after unregistering.
	require.NoError(t, r.Register("alpha", func() Codec { return &fakeCodec{name: "replacement"} }))
	c, err := r.Create("alpha")
	require.NoError(t, err)
	assert.Equal(t, "replacement", c.Name())
}

func TestRegistry_CreateUnknown(t *testing.T) {
	r := NewRegistry()

	c, err := r.Create("missing")
	require.Error(t, err)
	assert.Nil(t, c)
}

func TestRegistry_ListIsSortedAndExact(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("zeta", func() Codec { return &fakeCodec{} }))
	require.NoError(t, r.Register("alpha", func() Codec { return &fakeCodec{} }))
	require.NoError(t, r.Register("mid", func() Codec { return &fakeCodec{} }))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.List())

	r.Unregister("mid")
	assert.Equal(t, []string{"alpha", "zeta"}, r.List())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("base", func() Codec { return &fakeCodec{} }))

	var wg sync.WaitGroup
	names := []string{"a", "b", "c", "d"}

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = r.Register(name, func() Codec { return &fakeCodec{} })
				r.Unregister(name)
			}
		}(name)
	}

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				r.IsAvailable("base")
				r.List()
				_, _ = r.Create("base")
			}
		}()
	}

	wg.Wait()

	assert.True(t, r.IsAvailable("base"))
}
