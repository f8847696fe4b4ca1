package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
)

func svc(typ, provider, version string) component.Descriptor {
	return component.Descriptor{
		Key:     component.Key{Kind: component.KindService, Type: typ, Provider: provider},
		Version: version,
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Register(svc("database", "postgresql", "1.0.0")))
	require.NoError(t, s.Register(svc("database", "postgresql", "1.1.0")))

	err := s.Register(svc("database", "postgresql", "1.0.0"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
	assert.Equal(t, 2, s.Len())
}

func TestRegisterRejectsMalformed(t *testing.T) {
	s := NewMemoryStore()
	err := s.Register(component.Descriptor{
		Key: component.Key{Kind: component.KindService, Type: "auth", Provider: "x"},
	})
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestGetServesHighestSatisfyingVersion(t *testing.T) {
	s := NewMemoryStore()
	for _, v := range []string{"1.0.0", "1.4.2", "2.0.0", "1.2.0"} {
		require.NoError(t, s.Register(svc("auth", "better-auth", v)))
	}
	key := component.Key{Kind: component.KindService, Type: "auth", Provider: "better-auth"}

	d, err := s.Get(key, "^1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", d.Version)

	d, err = s.Get(key, "")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", d.Version)

	d, err = s.Get(key, "~1.2.0")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", d.Version)
}

func TestGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Register(svc("auth", "better-auth", "1.0.0")))

	_, err := s.Get(component.Key{Kind: component.KindService, Type: "auth", Provider: "clerk"}, "")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.Get(component.Key{Kind: component.KindService, Type: "auth", Provider: "better-auth"}, "^2.0.0")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListFiltersAndSorts(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Register(svc("database", "postgresql", "1.0.0")))
	require.NoError(t, s.Register(svc("database", "postgresql", "1.2.0")))
	require.NoError(t, s.Register(svc("auth", "better-auth", "1.0.0")))
	require.NoError(t, s.Register(component.Descriptor{
		Key:     component.Key{Kind: component.KindFragment, Type: "layout", Provider: "dashboard"},
		Version: "1.0.0",
	}))

	all := s.List(Filter{})
	require.Len(t, all, 4)
	// Key ascending, then version descending within a key.
	assert.Equal(t, "fragment:layout:dashboard", all[0].Key.String())
	assert.Equal(t, "service:auth:better-auth", all[1].Key.String())
	assert.Equal(t, "1.2.0", all[2].Version)
	assert.Equal(t, "1.0.0", all[3].Version)

	services := s.List(Filter{Kind: component.KindService})
	assert.Len(t, services, 3)

	databases := s.List(Filter{Kind: component.KindService, Type: "database"})
	assert.Len(t, databases, 2)
}
