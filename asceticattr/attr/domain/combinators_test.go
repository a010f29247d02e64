package attr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"syreclabs.com/go/faker"

	"github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain/interval"
)

func instrument(v string) SimpleAttr {
	return NewSimpleAttr("Instrument", v)
}

func source(v string) SimpleAttr {
	return NewSimpleAttr("Source", v)
}

type span struct {
	lo, hi int
}

var spanKind = RangeKind[span, int]{
	Compare: interval.Ordered[int],
	Span: func(s span) interval.Span[int] {
		return interval.New(s.lo, s.hi)
	},
	Build: func(s interval.Span[int]) (span, error) {
		return span{lo: s.Lo, hi: s.Hi}, nil
	},
}

func (s span) Kind() Kind {
	return "Span"
}

func (s span) Equal(other Attr) bool {
	o, ok := other.(span)
	return ok && o == s
}

func (s span) String() string {
	return fmt.Sprintf("<Span(%d, %d)>", s.lo, s.hi)
}

func (s span) SymmetricDifference(left, right Attr) (Attr, error) {
	return spanKind.SymmetricDifference(left, right)
}

func mustAnd(t *testing.T, left Attr, rights ...Attr) Attr {
	t.Helper()
	result, err := And(left, rights...)
	require.NoError(t, err)
	return result
}

func TestAnd(t *testing.T) {
	t.Run("distinct kinds", func(t *testing.T) {
		result := mustAnd(t, instrument("eit"), source("soho"))
		conj, ok := result.(AttrAnd)
		require.True(t, ok)
		assert.Len(t, conj.Members(), 2)
		assert.True(t, result.Equal(mustAnd(t, source("soho"), instrument("eit"))))
	})
	t.Run("idempotent", func(t *testing.T) {
		x := instrument("eit")
		assert.True(t, mustAnd(t, x, x).Equal(x))
	})
	t.Run("nested conjunctions are flattened", func(t *testing.T) {
		left := mustAnd(t, instrument("eit"), source("soho"))
		right := mustAnd(t, NewSimpleAttr("Level", 1), source("soho"))
		result := mustAnd(t, left, right)
		assert.Len(t, result.(AttrAnd).Members(), 3)
	})
	t.Run("operands are not modified", func(t *testing.T) {
		left := mustAnd(t, instrument("eit"), source("soho"))
		_ = mustAnd(t, left, NewSimpleAttr("Level", 1))
		assert.Len(t, left.(AttrAnd).Members(), 2)
	})
	t.Run("same kind collides", func(t *testing.T) {
		_, err := And(instrument("foo"), instrument("bar"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrType)
		var collision *TypeCollisionError
		require.ErrorAs(t, err, &collision)
		assert.True(t, collision.Existing.Equal(instrument("foo")))
		assert.True(t, collision.Incoming.Equal(instrument("bar")))
	})
	t.Run("string", func(t *testing.T) {
		result := mustAnd(t, instrument("eit"), source("soho"))
		assert.Equal(t, `<AttrAnd(<Instrument("eit")>, <Source("soho")>)>`, result.String())
	})
}

func TestAndIsCommutative(t *testing.T) {
	for i := 0; i < 20; i++ {
		a := instrument(faker.Lorem().Word())
		b := source(faker.Lorem().Word())
		c := NewSimpleAttr("Physobs", faker.Lorem().Word())
		assert.True(t, mustAnd(t, a, b, c).Equal(mustAnd(t, c, a, b)))
		assert.True(t, Or(a, b, c).Equal(Or(b, c, a)))
	}
}

func TestAndDistributesOverOr(t *testing.T) {
	t.Run("all branches survive", func(t *testing.T) {
		result := mustAnd(t, Or(instrument("foo"), instrument("bar")), source("bar"))
		expected := NewOr(
			mustAnd(t, instrument("foo"), source("bar")),
			mustAnd(t, instrument("bar"), source("bar")),
		)
		assert.True(t, result.Equal(expected), result.String())
	})
	t.Run("or on the right", func(t *testing.T) {
		result := mustAnd(t, source("bar"), Or(instrument("foo"), instrument("bar")))
		assert.Equal(t, 2, result.(AttrOr).Len())
	})
	t.Run("colliding branch is dropped", func(t *testing.T) {
		result := mustAnd(t, Or(instrument("foo"), source("foo")), instrument("bar"))
		assert.True(t, result.Equal(mustAnd(t, source("foo"), instrument("bar"))), result.String())
	})
	t.Run("strict rejects any collision", func(t *testing.T) {
		_, err := AndStrict(Or(instrument("foo"), source("foo")), instrument("bar"))
		assert.ErrorIs(t, err, ErrType)
	})
	t.Run("every branch collides", func(t *testing.T) {
		_, err := And(Or(instrument("foo"), instrument("baz")), instrument("bar"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrType)
		var collision *TypeCollisionError
		require.ErrorAs(t, err, &collision)
		assert.Error(t, collision.Err)
	})
	t.Run("or of ors", func(t *testing.T) {
		left := Or(instrument("a"), instrument("b"))
		right := Or(source("x"), source("y"))
		result := mustAnd(t, left, right)
		assert.Equal(t, 4, result.(AttrOr).Len())
	})
	t.Run("contradiction", func(t *testing.T) {
		result := mustAnd(t, NewOr(), instrument("foo"))
		assert.True(t, result.Equal(NewOr()))
	})
}

func TestOr(t *testing.T) {
	a, b, c := instrument("a"), instrument("b"), source("c")

	t.Run("idempotent", func(t *testing.T) {
		assert.True(t, Or(a, a).Equal(a))
	})
	t.Run("flattens", func(t *testing.T) {
		result := Or(Or(a, b), c)
		assert.True(t, result.Equal(NewOr(a, b, c)))
		assert.Equal(t, 3, result.(AttrOr).Len())
	})
	t.Run("absorbs duplicates of nested members", func(t *testing.T) {
		assert.True(t, Or(Or(a, b), a).Equal(NewOr(a, b)))
	})
	t.Run("order independent", func(t *testing.T) {
		assert.True(t, NewOr(a, b).Equal(NewOr(b, a)))
		assert.False(t, NewOr(a, b).Equal(NewOr(a, c)))
	})
	t.Run("singleton collapses", func(t *testing.T) {
		assert.Equal(t, 1, NewOr(a).Len())
		assert.True(t, Or(a).Equal(a))
	})
}

func TestDummyIsIdentity(t *testing.T) {
	x := instrument("eit")

	assert.True(t, mustAnd(t, Dummy(), x).Equal(x))
	assert.True(t, mustAnd(t, x, Dummy()).Equal(x))
	assert.True(t, Or(Dummy(), x).Equal(x))
	assert.True(t, Or(Dummy(), Dummy()).Equal(Dummy()))

	result, err := Xor(Dummy(), span{0, 1})
	require.NoError(t, err)
	assert.True(t, result.Equal(span{0, 1}))
	result, err = Xor(span{0, 1}, Dummy())
	require.NoError(t, err)
	assert.True(t, result.Equal(span{0, 1}))
}

func TestMergerJoinsSameKind(t *testing.T) {
	t.Run("disjoint entries", func(t *testing.T) {
		result := mustAnd(t, ValueOf(map[string]any{"a": 1}), ValueOf(map[string]any{"b": 2}))
		assert.True(t, result.Equal(ValueOf(map[string]any{"a": 1, "b": 2})), result.String())
	})
	t.Run("conflicting entries", func(t *testing.T) {
		_, err := And(ValueOf(map[string]any{"a": 1}), ValueOf(map[string]any{"a": 2}))
		assert.ErrorIs(t, err, ErrType)
		var conflict *MergeConflict
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, 1, conflict.ExistingValue)
		assert.Equal(t, 2, conflict.NewValue)
	})
}

func TestXor(t *testing.T) {
	t.Run("contained", func(t *testing.T) {
		result, err := Xor(span{0, 10}, span{2, 4})
		require.NoError(t, err)
		assert.True(t, result.Equal(NewOr(span{0, 2}, span{4, 10})), result.String())
	})
	t.Run("resplits every branch", func(t *testing.T) {
		first, err := Xor(span{0, 10}, span{2, 4})
		require.NoError(t, err)
		result, err := Xor(first, span{6, 8})
		require.NoError(t, err)
		assert.Equal(t, []Attr{span{0, 2}, span{4, 6}, span{8, 10}}, result.(AttrOr).Members())
	})
	t.Run("operand order", func(t *testing.T) {
		result, err := Xor(span{2, 4}, span{0, 10})
		require.NoError(t, err)
		assert.Equal(t, []Attr{span{0, 2}, span{4, 10}}, result.(AttrOr).Members())
	})
	t.Run("single fragment", func(t *testing.T) {
		result, err := Xor(span{0, 10}, span{5, 10})
		require.NoError(t, err)
		assert.True(t, result.Equal(span{0, 5}))
	})
	t.Run("equal ranges give the contradiction", func(t *testing.T) {
		result, err := Xor(span{0, 10}, span{0, 10})
		require.NoError(t, err)
		assert.True(t, result.Equal(NewOr()))
	})
	t.Run("incompatible kinds", func(t *testing.T) {
		_, err := Xor(span{0, 10}, instrument("eit"))
		assert.ErrorIs(t, err, ErrType)
		_, err = Xor(instrument("eit"), source("soho"))
		assert.ErrorIs(t, err, ErrType)
	})
}
