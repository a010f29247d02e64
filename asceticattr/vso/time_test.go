package vso

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/instant"
)

func day(parts ...int) []int {
	return parts
}

func TestNewTime(t *testing.T) {
	t.Run("tuples", func(t *testing.T) {
		tm, err := NewTime(day(2010, 1, 1), day(2010, 1, 2))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), tm.Start())
		assert.Equal(t, time.Date(2010, 1, 2, 0, 0, 0, 0, time.UTC), tm.End())
	})
	t.Run("strings", func(t *testing.T) {
		tm, err := NewTime("2012/1/1", "2012/1/2")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC), tm.Start())
	})
	t.Run("from range", func(t *testing.T) {
		r, err := instant.NewRange("2012/1/1", "2012/1/2")
		require.NoError(t, err)
		assert.True(t, TimeFromRange(r).Equal(MustTime("2012/1/1", "2012/1/2")))
		assert.Equal(t, r, TimeFromRange(r).Range())
	})
	t.Run("reversed", func(t *testing.T) {
		_, err := NewTime(day(2010, 1, 2), day(2010, 1, 1))
		assert.ErrorIs(t, err, attr.ErrValue)
		var valueErr *attr.ValueError
		require.ErrorAs(t, err, &valueErr)
		assert.Equal(t, KindTime, valueErr.Kind)
	})
	t.Run("unparsable", func(t *testing.T) {
		_, err := NewTime("2012/1/1", "not a date")
		assert.ErrorIs(t, err, attr.ErrValue)
	})
}

func TestTimeXor(t *testing.T) {
	one := MustTime(day(2010, 1, 1), day(2010, 1, 2))

	a, err := attr.Xor(one, MustTime(day(2010, 1, 1, 1), day(2010, 1, 1, 2)))
	require.NoError(t, err)
	assert.True(t, a.Equal(attr.NewOr(
		MustTime(day(2010, 1, 1), day(2010, 1, 1, 1)),
		MustTime(day(2010, 1, 1, 2), day(2010, 1, 2)),
	)), a.String())

	a, err = attr.Xor(a, MustTime(day(2010, 1, 1, 4), day(2010, 1, 1, 5)))
	require.NoError(t, err)
	assert.Equal(t, []attr.Attr{
		MustTime(day(2010, 1, 1), day(2010, 1, 1, 1)),
		MustTime(day(2010, 1, 1, 2), day(2010, 1, 1, 4)),
		MustTime(day(2010, 1, 1, 5), day(2010, 1, 2)),
	}, a.(attr.AttrOr).Members())
}

func TestTimeXorPoints(t *testing.T) {
	five := MustTime(day(2010, 1, 1, 5), day(2010, 1, 1, 5))
	nine := MustTime(day(2010, 1, 1, 9), day(2010, 1, 1, 9))

	result, err := attr.Xor(five, nine)
	require.NoError(t, err)
	assert.Equal(t, []attr.Attr{five, nine}, result.(attr.AttrOr).Members())

	later := MustTime(day(2010, 1, 2), day(2010, 1, 3))
	result, err = attr.Xor(five, later)
	require.NoError(t, err)
	assert.Equal(t, []attr.Attr{five, later}, result.(attr.AttrOr).Members())

	result, err = attr.Xor(five, five)
	require.NoError(t, err)
	assert.True(t, result.Equal(attr.NewOr()), result.String())
}

func TestTimeXorRejectsOtherKinds(t *testing.T) {
	_, err := attr.Xor(MustTime(day(2010, 1, 1), day(2010, 1, 2)), Angstroms(0, 10))
	assert.ErrorIs(t, err, attr.ErrType)
}

func TestTimeAndDuplicate(t *testing.T) {
	tm := MustTime(day(2011, 1, 1), day(2011, 1, 1, 1))
	other := MustTime(day(2011, 2, 1), day(2011, 2, 1, 1))

	_, err := attr.And(tm, other)
	assert.ErrorIs(t, err, attr.ErrType)

	either := attr.Or(tm, Source("foo"))
	_, err = attr.AndStrict(either, other)
	assert.ErrorIs(t, err, attr.ErrType)

	result, err := attr.And(either, other)
	require.NoError(t, err)
	expected, err := attr.And(Source("foo"), other)
	require.NoError(t, err)
	assert.True(t, result.Equal(expected))
}

func TestTimeOrIsIdempotent(t *testing.T) {
	tm := MustTime(day(2011, 1, 1), day(2011, 1, 1, 1))
	assert.True(t, attr.Or(tm, tm).Equal(tm))
	assert.True(t, attr.Or(tm, MustTime(day(2011, 1, 1), day(2011, 1, 1, 1))).Equal(tm))
}

func TestTimePadAndContains(t *testing.T) {
	tm := MustTime(day(2010, 1, 1, 12), day(2010, 1, 2))
	padded := tm.Pad(time.Hour)
	assert.Equal(t, time.Date(2010, 1, 1, 11, 0, 0, 0, time.UTC), padded.Start())
	assert.Equal(t, time.Date(2010, 1, 1, 13, 0, 0, 0, time.UTC), padded.End())

	assert.True(t, tm.Contains(MustTime(day(2010, 1, 1, 13), day(2010, 1, 1, 14))))
	assert.False(t, tm.Contains(padded))
}

func TestTimeValues(t *testing.T) {
	v := MustTime(day(2010, 1, 1), day(2010, 1, 2, 3, 4, 5)).Values()
	start, _ := v.Get("time", "start")
	end, _ := v.Get("time", "end")
	assert.Equal(t, "20100101000000", start)
	assert.Equal(t, "20100102030405", end)
}

func TestTimeString(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "time_repr", []byte(MustTime(day(2010, 1, 1), day(2010, 1, 2)).String()+"\n"))
}
