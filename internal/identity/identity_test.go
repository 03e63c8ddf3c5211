package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "full name", in: "Tom Brady", want: "T. BRADY"},
		{name: "already initialed", in: "J. Smith", want: "J. SMITH"},
		{name: "lowercase no punctuation", in: "j smith", want: "J. SMITH"},
		{name: "no space after initial", in: "T.Brady", want: "T. BRADY"},
		{name: "award annotations", in: "Drew Brees*+", want: "D. BREES"},
		{name: "apostrophe", in: "Ryan O'Connell", want: "R. OCONNELL"},
		{name: "multi part last name", in: "Robert Griffin III", want: "R. GRIFFIN III"},
		{name: "mononym survives", in: "Brady", want: "BRADY"},
		{name: "empty", in: "", wantErr: true},
		{name: "only punctuation", in: "*+.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalName(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalTeam(t *testing.T) {
	assert.Equal(t, "NE", CanonicalTeam("NE"))
	assert.Equal(t, "NE", CanonicalTeam(" ne "))

	// PFR long forms fold into the short vocabulary.
	assert.Equal(t, "NE", CanonicalTeam("NWE"))
	assert.Equal(t, "GB", CanonicalTeam("GNB"))
	assert.Equal(t, "TB", CanonicalTeam("TAM"))

	// Relocated franchises join across the move.
	assert.Equal(t, "LAR", CanonicalTeam("STL"))
	assert.Equal(t, "LAC", CanonicalTeam("SDG"))
}

func TestNewKey(t *testing.T) {
	k, err := NewKey("J. Smith", "NE")
	require.NoError(t, err)
	assert.Equal(t, "J. SMITH|NE", k.String())

	// The same player scraped from a sloppier source yields the same key.
	k2, err := NewKey("j smith", "ne")
	require.NoError(t, err)
	assert.Equal(t, k, k2)

	_, err = NewKey("", "NE")
	require.Error(t, err)

	_, err = NewKey("J. Smith", "")
	require.Error(t, err)
}
