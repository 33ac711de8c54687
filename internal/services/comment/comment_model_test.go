package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardlyhq/boardly/internal/perrors"
)

func TestCreateCommentRequestValidate(t *testing.T) {
	req := &CreateCommentRequest{Content: "Looks good to me"}
	assert.NoError(t, req.Validate())

	for _, content := range []string{"", "   ", "\n\t"} {
		err := (&CreateCommentRequest{Content: content}).Validate()
		require.Error(t, err)

		var fieldErr *perrors.FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "content", fieldErr.Field)
		assert.Equal(t, "Content cannot be empty.", fieldErr.Message)
	}
}
