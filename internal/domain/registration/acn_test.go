package registration

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/erp/bizid/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewACN(t *testing.T) {
	t.Run("accepts the full 9-digit range", func(t *testing.T) {
		for _, v := range []int64{0, 4085616, MaxACN} {
			a, err := NewACN(v)
			require.NoError(t, err)
			assert.Equal(t, v, a.Int64())
		}
	})

	t.Run("rejects values wider than 9 digits", func(t *testing.T) {
		_, err := NewACN(MaxACN + 1)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeInvalidACN, domainErr.Code)
	})

	t.Run("rejects negative values", func(t *testing.T) {
		_, err := NewACN(-1)
		assert.Error(t, err)
	})
}

func TestACNFromBase(t *testing.T) {
	t.Run("zero base", func(t *testing.T) {
		a, err := ACNFromBase(0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), a.Int64())
		assert.Equal(t, "000000000", a.String())
	})

	t.Run("largest base", func(t *testing.T) {
		a, err := ACNFromBase(MaxACNBase)
		require.NoError(t, err)
		assert.Equal(t, int64(999_999_996), a.Int64())
		assert.Equal(t, 6, a.CheckDigit())
	})

	t.Run("base with leading zeros", func(t *testing.T) {
		a, err := ACNFromBase(408561)
		require.NoError(t, err)
		assert.Equal(t, "004085616", a.String())
		assert.Equal(t, int64(408561), a.Base())
	})

	t.Run("rejects base wider than 8 digits", func(t *testing.T) {
		_, err := ACNFromBase(MaxACNBase + 1)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeInvalidACNBase, domainErr.Code)
	})

	t.Run("MustACNFromBase panics on invalid base", func(t *testing.T) {
		assert.Panics(t, func() {
			MustACNFromBase(-5)
		})
	})
}

func TestACNDisplay(t *testing.T) {
	assert.Equal(t, "004 085 616", MustNewACN(4085616).Display())
	assert.Equal(t, "000 000 000", MustNewACN(0).Display())
}

func TestACNEquals(t *testing.T) {
	assert.True(t, MustNewACN(4085616).Equals(MustACNFromBase(408561)))
	assert.False(t, MustNewACN(4085616).Equals(MustNewACN(4085617)))
}

func TestACNJSON(t *testing.T) {
	t.Run("marshals as zero-padded string", func(t *testing.T) {
		data, err := json.Marshal(MustNewACN(4085616))
		require.NoError(t, err)
		assert.Equal(t, `"004085616"`, string(data))
	})

	t.Run("unmarshals from string", func(t *testing.T) {
		var a ACN
		require.NoError(t, json.Unmarshal([]byte(`"004085616"`), &a))
		assert.Equal(t, int64(4085616), a.Int64())
	})

	t.Run("unmarshals from number", func(t *testing.T) {
		var a ACN
		require.NoError(t, json.Unmarshal([]byte(`4085616`), &a))
		assert.Equal(t, int64(4085616), a.Int64())
	})

	t.Run("rejects out of range", func(t *testing.T) {
		var a ACN
		assert.Error(t, json.Unmarshal([]byte(`"1000000000"`), &a))
	})

	t.Run("rejects non-numeric", func(t *testing.T) {
		var a ACN
		assert.Error(t, json.Unmarshal([]byte(`"abc"`), &a))
	})
}
