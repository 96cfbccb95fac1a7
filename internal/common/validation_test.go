package common

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCardNumber(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		cases := []struct {
			name string
			in   any
			want string
		}{
			{"string digits", "1234", "1234"},
			{"leading zero string", "0042", "0042"},
			{"json number", float64(1234), "1234"},
			{"int", 5678, "5678"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := ValidateCardNumber(tc.in)
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			})
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		cases := []struct {
			name string
			in   any
		}{
			{"letters", "12a4"},
			{"empty", ""},
			{"inner space", "12 34"},
			{"too short", "123"},
			{"too long", "12345"},
			{"negative number", float64(-1234)},
			{"fractional number", float64(12.34)},
			{"short number", float64(123)},
			{"nil", nil},
			{"bool", true},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := ValidateCardNumber(tc.in)
				assert.Error(t, err)
			})
		}
	})
}

func TestValidatePaymentName(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, v := range []string{"JOHN", "SMITH-JONES", "A", "MARIA-DEL-CARMEN"} {
			assert.NoError(t, ValidatePaymentName(v, "first_name", MaxFirstNameLen), v)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, v := range []string{"", "john", "John", "JOHN1", "JOHN SMITH", "----", "ИВАН"} {
			assert.Error(t, ValidatePaymentName(v, "first_name", MaxFirstNameLen), v)
		}
	})

	t.Run("length limit", func(t *testing.T) {
		assert.NoError(t, ValidatePaymentName(strings.Repeat("A", MaxFirstNameLen), "first_name", MaxFirstNameLen))
		assert.Error(t, ValidatePaymentName(strings.Repeat("A", MaxFirstNameLen+1), "first_name", MaxFirstNameLen))
	})
}

func TestValidateUserName(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, v := range []string{"John", "john", "JOHN", "Smith-Jones"} {
			assert.NoError(t, ValidateUserName(v, "first_name", MaxFirstNameLen), v)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, v := range []string{"", "John1", "John Smith", "----", "J@hn"} {
			assert.Error(t, ValidateUserName(v, "first_name", MaxFirstNameLen), v)
		}
	})
}

func TestValidateEmail(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, v := range []string{"user@example.com", "a.b+c@sub.example.org"} {
			assert.NoError(t, ValidateEmail(v), v)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		long := strings.Repeat("a", MaxEmailLen) + "@example.com"
		for _, v := range []string{"", "   ", "plainaddress", "missing@domain@twice", "@example.com", long} {
			assert.Error(t, ValidateEmail(v), v)
		}
	})
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("abcd"))
	assert.NoError(t, ValidatePassword("longer password"))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("abc"))
}

func TestValidateAmount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, v := range []string{"0.001", "1", "99.99", "123456789.123", "999999999.999"} {
			assert.NoError(t, ValidateAmount(decimal.RequireFromString(v)), v)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, v := range []string{"0", "-1", "1.0005", "1000000000", "1000000000.5"} {
			assert.Error(t, ValidateAmount(decimal.RequireFromString(v)), v)
		}
	})
}
