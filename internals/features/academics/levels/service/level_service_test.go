package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkbm_backend/internals/features/academics/levels/dto"
	"pkbm_backend/internals/features/academics/levels/model"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/testutil"
)

func TestCreateUpdateLevel(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	ctx := context.Background()

	a, err := Create(ctx, db, dto.SaveLevelRequest{Name: " Paket A "})
	require.NoError(t, err)
	assert.Equal(t, "Paket A", a.LevelName)
	assert.Equal(t, model.LevelTypeClassTeacher, a.LevelType)

	c, err := Create(ctx, db, dto.SaveLevelRequest{Name: "Paket C", Type: "subject_teacher"})
	require.NoError(t, err)
	assert.Equal(t, model.LevelTypeSubjectTeacher, c.LevelType)

	_, err = Create(ctx, db, dto.SaveLevelRequest{Name: "Paket A"})
	var ve *helper.ValidationError
	require.True(t, errors.As(err, &ve), "err=%v", err)
	assert.Contains(t, ve.Fields, "name")

	_, err = Create(ctx, db, dto.SaveLevelRequest{Name: "Paket X", Type: "kepala"})
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "type")

	_, err = Update(ctx, db, c.LevelID, dto.SaveLevelRequest{Name: "Paket A"})
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "name")

	upd, err := Update(ctx, db, c.LevelID, dto.SaveLevelRequest{Name: "Paket C (Setara SMA)", Type: "subject_teacher"})
	require.NoError(t, err)
	assert.Equal(t, "Paket C (Setara SMA)", upd.LevelName)

	_, err = Update(ctx, db, uuid.New(), dto.SaveLevelRequest{Name: "Paket Z"})
	assert.ErrorIs(t, err, ErrLevelNotFound)

	rows, err := List(ctx, db)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Paket A", rows[0].LevelName)
}

func TestDeleteLevel_GuardedWhileUsed(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	ctx := context.Background()

	used := f.AddLevel(t, "Paket B")
	require.NoError(t, db.Model(&f.Classroom).Update("classroom_level_id", used.LevelID).Error)
	free := f.AddLevel(t, "Paket A")

	assert.ErrorIs(t, Delete(ctx, db, used.LevelID), ErrLevelInUse)
	require.NoError(t, Delete(ctx, db, free.LevelID))
	assert.ErrorIs(t, Delete(ctx, db, free.LevelID), ErrLevelNotFound)

	ok, err := Lookup{}.Exists(ctx, db, used.LevelID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = Lookup{}.Exists(ctx, db, free.LevelID)
	require.NoError(t, err)
	assert.False(t, ok)
}
