package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardlyhq/boardly/internal/perrors"
)

func TestResolveAccess(t *testing.T) {
	assert.Equal(t, AccessOwner, ResolveAccess(1, false, 1))
	assert.Equal(t, AccessOwner, ResolveAccess(1, true, 1))
	assert.Equal(t, AccessMember, ResolveAccess(1, true, 2))
	assert.Equal(t, AccessNone, ResolveAccess(1, false, 2))
}

func TestCreateBoardRequestValidate(t *testing.T) {
	req := &CreateBoardRequest{Title: "Sprint 12"}
	assert.NoError(t, req.Validate())

	req = &CreateBoardRequest{Title: "   "}
	err := req.Validate()
	require.Error(t, err)

	var fieldErr *perrors.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "title", fieldErr.Field)
}

func TestDedupeIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, dedupeIDs([]int64{3, 1, 3, 2, 1}))
	assert.Empty(t, dedupeIDs(nil))
}
