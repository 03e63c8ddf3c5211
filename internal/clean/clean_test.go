package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantNil bool
		wantErr bool
	}{
		{name: "plain", in: "300", want: 300},
		{name: "award annotation", in: "4944*", want: 4944},
		{name: "both annotations", in: "48*+", want: 48},
		{name: "thousands separator", in: "12,345", want: 12345},
		{name: "salary", in: "$23,500,000", want: 23500000},
		{name: "float-rendered integer", in: "12.0", want: 12},
		{name: "whitespace", in: "  17 ", want: 17},
		{name: "empty is nil not zero", in: "", wantNil: true},
		{name: "blank is nil not zero", in: "   ", wantNil: true},
		{name: "garbage", in: "abc", wantErr: true},
		{name: "true fraction", in: "12.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Int(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantNil bool
		wantErr bool
	}{
		{name: "plain", in: "7.9", want: 7.9},
		{name: "annotated", in: "8.1*", want: 8.1},
		{name: "negative", in: "-12.3", want: -12.3},
		{name: "empty", in: "", wantNil: true},
		{name: "garbage", in: "n/a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Float(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantNil bool
		wantErr bool
	}{
		{name: "suffix", in: "12.3%", want: 0.123},
		{name: "negative suffix", in: "-31.8%", want: -0.318},
		{name: "bare value still percentage", in: "65.3", want: 0.653},
		{name: "empty", in: "", wantNil: true},
		{name: "garbage", in: "x%", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Percent(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}

func TestWinsFromRecord(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{name: "no ties", in: "11-5-0", want: 11},
		{name: "tie counts half", in: "8-7-1", want: 8.5},
		{name: "single start", in: "0-1-0", want: 0},
		{name: "seventeen games", in: "12-5-0", want: 12},
		{name: "too many games", in: "12-6-0", wantErr: true},
		{name: "zero games", in: "0-0-0", wantErr: true},
		{name: "two components", in: "11-5", wantErr: true},
		{name: "non numeric", in: "a-b-c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WinsFromRecord(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSplitPair(t *testing.T) {
	a, b, err := SplitPair("26/384", "/")
	require.NoError(t, err)
	assert.Equal(t, "26", a)
	assert.Equal(t, "384", b)

	_, _, err = SplitPair("26", "/")
	require.Error(t, err)
}
