package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flag(id ID, implies ...ID) *Flag {
	return &Flag{ID: id, Implies: implies}
}

func TestNewGraph(t *testing.T) {
	t.Run("valid graph", func(t *testing.T) {
		g, err := NewGraph(
			[]*Flag{flag("a", "b"), flag("b"), flag("c")},
			Base{Sources: []string{"core.c"}},
			nil,
			[]ID{"a", "c"},
		)
		require.NoError(t, err)
		assert.Equal(t, []ID{"a", "b", "c"}, g.IDs())
		assert.Equal(t, []ID{"a", "c"}, g.Defaults())
	})

	t.Run("duplicate flag", func(t *testing.T) {
		_, err := NewGraph([]*Flag{flag("a"), flag("a")}, Base{}, nil, nil)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ErrDuplicateFlag, cfgErr.Kind)
	})

	t.Run("unknown flag in implies", func(t *testing.T) {
		_, err := NewGraph([]*Flag{flag("a", "missing")}, Base{}, nil, nil)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ErrUnknownFlag, cfgErr.Kind)
		assert.Equal(t, ID("missing"), cfgErr.Flag)
	})

	t.Run("unknown flag in conflicts", func(t *testing.T) {
		_, err := NewGraph([]*Flag{{ID: "a", Conflicts: []ID{"missing"}}}, Base{}, nil, nil)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ErrUnknownFlag, cfgErr.Kind)
	})

	t.Run("unknown flag in defaults", func(t *testing.T) {
		_, err := NewGraph([]*Flag{flag("a")}, Base{}, nil, []ID{"missing"})
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ErrUnknownFlag, cfgErr.Kind)
	})

	t.Run("unknown substitution", func(t *testing.T) {
		f := flag("a")
		f.Artifact.Needs = []string{"timer"}
		_, err := NewGraph([]*Flag{f}, Base{}, nil, nil)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ErrUnknownSubstitution, cfgErr.Kind)
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("self implication is a no-op", func(t *testing.T) {
		_, err := NewGraph([]*Flag{flag("a", "a")}, Base{}, nil, nil)
		assert.NoError(t, err)
	})

	t.Run("chain is not a cycle", func(t *testing.T) {
		_, err := NewGraph([]*Flag{flag("a", "b"), flag("b", "c"), flag("c")}, Base{}, nil, nil)
		assert.NoError(t, err)
	})

	t.Run("diamond is not a cycle", func(t *testing.T) {
		_, err := NewGraph([]*Flag{flag("a", "b", "c"), flag("b", "d"), flag("c", "d"), flag("d")}, Base{}, nil, nil)
		assert.NoError(t, err)
	})

	t.Run("two-node cycle", func(t *testing.T) {
		_, err := NewGraph([]*Flag{flag("a", "b"), flag("b", "a")}, Base{}, nil, nil)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ErrImplicationCycle, cfgErr.Kind)
	})

	t.Run("long cycle", func(t *testing.T) {
		_, err := NewGraph([]*Flag{flag("a", "b"), flag("b", "c"), flag("c", "a")}, Base{}, nil, nil)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ErrImplicationCycle, cfgErr.Kind)
	})
}

func TestGraphQuery(t *testing.T) {
	g, err := NewGraph([]*Flag{flag("a", "b"), flag("b")}, Base{}, nil, nil)
	require.NoError(t, err)

	f, err := g.Flag("a")
	require.NoError(t, err)
	assert.Equal(t, []ID{"b"}, f.Implies)

	_, err = g.Flag("nope")
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrUnknownFlag, cfgErr.Kind)
	assert.Equal(t, ID("nope"), cfgErr.Flag)
}

func TestSet(t *testing.T) {
	t.Run("deduplicates and sorts", func(t *testing.T) {
		s := NewSet("c", "a", "b", "a")
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []ID{"a", "b", "c"}, s.IDs())
		assert.True(t, s.Has("b"))
		assert.False(t, s.Has("d"))
	})

	t.Run("fingerprint is order independent", func(t *testing.T) {
		s1 := NewSet("a", "b", "c")
		s2 := NewSet("c", "b", "a")
		assert.Equal(t, s1.Fingerprint(), s2.Fingerprint())
	})

	t.Run("fingerprint differs for different content", func(t *testing.T) {
		s1 := NewSet("a", "b")
		s2 := NewSet("a", "c")
		assert.NotEqual(t, s1.Fingerprint(), s2.Fingerprint())
	})

	t.Run("string rendering", func(t *testing.T) {
		assert.Equal(t, "{a, b}", NewSet("b", "a").String())
	})
}
