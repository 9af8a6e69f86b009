package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grape/internal/grape"
)

func TestNewGameAndPlay(t *testing.T) {
	m := NewManager()
	g, err := m.NewGame("")
	require.NoError(t, err)
	assert.Equal(t, grape.DefaultFEN, g.Start)
	assert.Equal(t, "ongoing", g.Status())

	st, captures, err := m.Play(g.ID, grape.Move{Row: 2, Col: 4, Steps: 1})
	require.NoError(t, err)
	assert.Empty(t, captures)
	require.Len(t, st.History, 1)
	assert.Equal(t, "rot1@2,4", st.History[0].Notation)
	assert.Equal(t, grape.Blue, st.History[0].Side)
	assert.Equal(t, grape.Red, st.Pos.SideToMove)

	// 返回的是副本，外面改不动里面
	st.History[0].Notation = "changed"
	again, err := m.Get(g.ID)
	require.NoError(t, err)
	assert.Equal(t, "rot1@2,4", again.History[0].Notation)
}

func TestPlayRejectsIllegalMove(t *testing.T) {
	m := NewManager()
	g, err := m.NewGame("")
	require.NoError(t, err)

	_, _, err = m.Play(g.ID, grape.Move{Row: 3, Col: 3, Steps: 1})
	assert.ErrorIs(t, err, grape.ErrFriendlyFire)

	st, err := m.Get(g.ID)
	require.NoError(t, err)
	assert.Empty(t, st.History)
	assert.Equal(t, grape.DefaultFEN, st.Pos.Encode())
}

func TestGameFinishes(t *testing.T) {
	m := NewManager()
	g, err := m.NewGame("OO8/OO8/A/A/2IIII4/A/A/2oo6/2oo6/A w")
	require.NoError(t, err)

	st, captures, err := m.Play(g.ID, grape.Move{Row: 5, Col: 2, Steps: 1})
	require.NoError(t, err)
	require.Len(t, captures, 1)
	assert.Equal(t, grape.KindOrangutan, captures[0].Kind)
	assert.Equal(t, "finished", st.Status())

	_, _, err = m.Play(g.ID, grape.Move{Row: 5, Col: 2, Steps: 1})
	assert.ErrorIs(t, err, grape.ErrGameAlreadyOver)
}

func TestUnknownGame(t *testing.T) {
	m := NewManager()
	_, err := m.Get("missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
	_, _, err = m.Play("missing", grape.Move{})
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.False(t, m.Delete("missing"))
}

func TestNewGameBadFEN(t *testing.T) {
	m := NewManager()
	_, err := m.NewGame("not a board")
	assert.ErrorIs(t, err, grape.ErrInvalidNotation)
	assert.Equal(t, 0, m.Len())
}

func TestConcurrentPlaysSerialize(t *testing.T) {
	m := NewManager()
	g, err := m.NewGame("")
	require.NoError(t, err)

	// 同一步棋并发提交，只有一次能成功（第二次轮到红方，蓝子不能动）
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := m.Play(g.ID, grape.Move{Row: 2, Col: 4, Steps: 1}); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
}

func TestUndo(t *testing.T) {
	m := NewManager()
	g, err := m.NewGame("")
	require.NoError(t, err)

	_, _, err = m.Undo(g.ID)
	assert.ErrorIs(t, err, ErrNothingToUndo)

	first, _, err := m.Play(g.ID, grape.Move{Row: 2, Col: 4, Steps: 1})
	require.NoError(t, err)
	red := first.Pos.GenerateMoves()[0]
	_, _, err = m.Play(g.ID, red)
	require.NoError(t, err)

	st, undone, err := m.Undo(g.ID)
	require.NoError(t, err)
	assert.Equal(t, red.String(), undone.Notation)
	require.Len(t, st.History, 1)
	assert.Equal(t, first.Pos.Encode(), st.Pos.Encode())
	assert.Equal(t, grape.Red, st.Pos.SideToMove)

	st, _, err = m.Undo(g.ID)
	require.NoError(t, err)
	assert.Empty(t, st.History)
	assert.Equal(t, grape.DefaultFEN, st.Pos.Encode())

	_, _, err = m.Undo("missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestUndoReopensFinishedGame(t *testing.T) {
	m := NewManager()
	g, err := m.NewGame("OO8/OO8/A/A/2IIII4/A/A/2oo6/2oo6/A w")
	require.NoError(t, err)

	st, _, err := m.Play(g.ID, grape.Move{Row: 5, Col: 2, Steps: 1})
	require.NoError(t, err)
	require.Equal(t, "finished", st.Status())

	st, _, err = m.Undo(g.ID)
	require.NoError(t, err)
	assert.Equal(t, "ongoing", st.Status())
	assert.Equal(t, g.Start, st.Pos.Encode())

	// 悔棋之后可以重新走
	_, _, err = m.Play(g.ID, grape.Move{Row: 5, Col: 2, Steps: 1})
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	m := NewManager()
	g, err := m.NewGame("")
	require.NoError(t, err)
	assert.True(t, m.Delete(g.ID))
	assert.False(t, m.Delete(g.ID))
	_, err = m.Get(g.ID)
	assert.ErrorIs(t, err, ErrGameNotFound)
}
