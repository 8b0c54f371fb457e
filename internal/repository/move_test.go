package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-ai/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveRepository_Set(t *testing.T) {
	ctx, st := suite.New(t)

	moveRepo := NewMoveRepository(st.Storage.Connection, time.Minute)

	// Given: a search result for the empty board
	result := tictactoe.SearchResult{Score: 0, Move: &entity.Move{Row: 0, Col: 0}, Nodes: 42}

	// When: Set is called
	err := moveRepo.Set(ctx, entity.NewBoard(), entity.PlayerX, result)

	// Then: no error should be returned and the key carries the TTL
	require.NoError(t, err)

	ttl, err := st.Storage.Connection.TTL(ctx, "move:X:.........").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestMoveRepository_Get(t *testing.T) {
	t.Run("Get_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		moveRepo := NewMoveRepository(st.Storage.Connection, time.Minute)

		// Given: a board with a stored result
		board, err := entity.ParseBoard("XX.OO....")
		require.NoError(t, err)

		result := tictactoe.SearchResult{Score: 9, Move: &entity.Move{Row: 0, Col: 2}, Nodes: 3}
		require.NoError(t, moveRepo.Set(ctx, board, entity.PlayerX, result))

		// When: Get is called for the same board and mark
		cached, err := moveRepo.Get(ctx, board, entity.PlayerX)

		// Then: the stored result comes back
		require.NoError(t, err)
		require.Equal(t, result, cached)
	})

	t.Run("Get_OtherMark", func(t *testing.T) {
		ctx, st := suite.New(t)

		moveRepo := NewMoveRepository(st.Storage.Connection, time.Minute)

		// Given: a result stored for X
		board := entity.NewBoard()
		require.NoError(t, moveRepo.Set(ctx, board, entity.PlayerX, tictactoe.SearchResult{Move: &entity.Move{}}))

		// When: Get is called for O
		_, err := moveRepo.Get(ctx, board, entity.PlayerO)

		// Then: it is a miss
		require.ErrorIs(t, err, apperror.ErrNotCached)
	})

	t.Run("Get_NotCached", func(t *testing.T) {
		ctx, st := suite.New(t)

		moveRepo := NewMoveRepository(st.Storage.Connection, time.Minute)

		// When: Get is called for a board nobody searched
		_, err := moveRepo.Get(ctx, entity.NewBoard(), entity.PlayerX)

		// Then: an ErrNotCached error should be returned
		require.ErrorIs(t, err, apperror.ErrNotCached)
	})
}

func TestMoveRepository_Delete(t *testing.T) {
	ctx, st := suite.New(t)

	moveRepo := NewMoveRepository(st.Storage.Connection, time.Minute)

	// Given: a stored result
	board := entity.NewBoard()
	require.NoError(t, moveRepo.Set(ctx, board, entity.PlayerX, tictactoe.SearchResult{Move: &entity.Move{}}))

	// When: Delete is called
	err := moveRepo.Delete(ctx, board, entity.PlayerX)
	require.NoError(t, err)

	// Then: the result is gone
	_, err = moveRepo.Get(ctx, board, entity.PlayerX)
	require.ErrorIs(t, err, apperror.ErrNotCached)

	// Then: deleting a missing key is not an error
	require.NoError(t, moveRepo.Delete(ctx, board, entity.PlayerX))
}
