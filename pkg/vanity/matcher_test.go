package vanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcherMatches(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		suffix  string
		address string
		want    bool
	}{
		{
			name:    "empty criteria always match",
			address: "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm",
			want:    true,
		},
		{
			name:    "prefix matches core not leading version char",
			prefix:  "EH",
			address: "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm",
			want:    true,
		},
		{
			name:    "prefix does not consider leading version char",
			prefix:  "1E",
			address: "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm",
			want:    false,
		},
		{
			name:    "prefix is case-insensitive",
			prefix:  "AB",
			address: "3abXXXXXXX",
			want:    true,
		},
		{
			name:    "suffix matches end of core",
			suffix:  "KZM",
			address: "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm",
			want:    true,
		},
		{
			name:    "suffix mismatch",
			suffix:  "ZZZ",
			address: "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm",
			want:    false,
		},
		{
			name:    "prefix and suffix together",
			prefix:  "EH",
			suffix:  "6KZM",
			address: "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm",
			want:    true,
		},
		{
			name:    "prefix longer than core",
			prefix:  "ABCDEFGH",
			address: "1ABC",
			want:    false,
		},
		{
			name:    "empty address never matches",
			prefix:  "A",
			address: "",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(NormalizeCriteria(tt.prefix, tt.suffix))
			assert.Equal(t, tt.want, m.Matches(tt.address))
		})
	}
}

func TestMatcherCaseEquivalence(t *testing.T) {
	addr := "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm"
	upper := NewMatcher(NormalizeCriteria("eh", ""))
	lower := NewMatcher(NormalizeCriteria("EH", ""))
	assert.Equal(t, upper.Matches(addr), lower.Matches(addr))
	assert.True(t, upper.Matches(addr))
}

func TestNormalizeCriteria(t *testing.T) {
	c := NormalizeCriteria("  ab ", "\tcd\n")
	assert.Equal(t, "AB", c.Prefix)
	assert.Equal(t, "CD", c.Suffix)
	assert.False(t, c.Empty())
	assert.True(t, NormalizeCriteria("", " ").Empty())
}

func TestCriteriaValidate(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		suffix  string
		wantErr error
	}{
		{name: "both empty", wantErr: nil},
		{name: "length 8 accepted", prefix: "ABCDEFGH", suffix: "ABCDEFGH", wantErr: nil},
		{name: "prefix length 9 rejected", prefix: "ABCDEFGHJ", wantErr: ErrPrefixTooLong},
		{name: "suffix length 9 rejected", suffix: "ABCDEFGHJ", wantErr: ErrSuffixTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NormalizeCriteria(tt.prefix, tt.suffix).Validate()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestImpossibleChars(t *testing.T) {
	// '0' has no base58 form in either case; 'O' matches a lowercase 'o'
	// in the address under case-insensitive comparison.
	assert.Equal(t, []rune{'0'}, ImpossibleChars("0AB"))
	assert.Empty(t, ImpossibleChars("OIL"))
	assert.Equal(t, []rune{'!', '0'}, ImpossibleChars("!0"))
	assert.Empty(t, ImpossibleChars(""))
}
