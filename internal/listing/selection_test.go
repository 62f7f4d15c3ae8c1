package listing

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/user/jobboard/internal/posting"
)

func TestSelection_StartsIdle(t *testing.T) {
	var s Selection

	require.Equal(t, Idle, s.State())
	_, ok := s.Current()
	require.False(t, ok)
}

func TestSelection_SelectReplaces(t *testing.T) {
	a := posting.Posting{ID: "a", Title: "A"}
	b := posting.Posting{ID: "b", Title: "B"}

	var s Selection
	s.Select(a)
	s.Select(b)

	require.Equal(t, Viewing, s.State())
	got, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, b, got)
}

func TestSelection_Dismiss(t *testing.T) {
	var s Selection
	s.Select(posting.Posting{ID: "a"})

	s.Dismiss()

	require.Equal(t, Idle, s.State())
	_, ok := s.Current()
	require.False(t, ok)
}

func TestSelection_DismissWhenIdleIsNoop(t *testing.T) {
	var s Selection

	s.Dismiss()

	require.Equal(t, Selection{}, s)
}

func TestSelection_Cycles(t *testing.T) {
	var s Selection
	for i := 0; i < 3; i++ {
		s.Select(posting.Posting{ID: "a"})
		require.Equal(t, Viewing, s.State())
		s.Dismiss()
		require.Equal(t, Idle, s.State())
	}
}
