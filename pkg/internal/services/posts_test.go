package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/loreweave/loreweave/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestTruncatePostContentKeepsValidUTF8(t *testing.T) {
	content := strings.Repeat("日", TruncatePostContentThreshold+88)
	post := models.Post{Body: datatypes.JSONMap{"content": content}}

	out := TruncatePostContent(post)

	truncated, ok := out.Body["content"].(string)
	require.True(t, ok)
	assert.True(t, utf8.ValidString(truncated))
	assert.Equal(t, strings.Repeat("日", TruncatePostContentThreshold)+"...", truncated)
	assert.Equal(t, TruncatePostContentThreshold+88, out.Body["content_length"])
	assert.Equal(t, true, out.Body["content_truncated"])
}

func TestTruncatePostContentLeavesShortContent(t *testing.T) {
	post := models.Post{Body: datatypes.JSONMap{"content": "a short tale"}}

	out := TruncatePostContent(post)

	assert.Equal(t, "a short tale", out.Body["content"])
	assert.Equal(t, 12, out.Body["content_length"])
	assert.NotContains(t, out.Body, "content_truncated")
}

func TestValidateAuthorRefs(t *testing.T) {
	assert.NoError(t, ValidateAuthorRefs([]AuthorRef{
		{ProfileID: 1, IsPrimary: true},
	}))
	assert.NoError(t, ValidateAuthorRefs([]AuthorRef{
		{ProfileID: 1, IsPrimary: true},
		{ProfileID: 2},
	}))

	assert.ErrorIs(t, ValidateAuthorRefs(nil), ErrInvalidAuthors)
	assert.ErrorIs(t, ValidateAuthorRefs([]AuthorRef{
		{ProfileID: 1},
	}), ErrInvalidAuthors)
	assert.ErrorIs(t, ValidateAuthorRefs([]AuthorRef{
		{ProfileID: 1, IsPrimary: true},
		{ProfileID: 2, IsPrimary: true},
	}), ErrInvalidAuthors)
	assert.ErrorIs(t, ValidateAuthorRefs([]AuthorRef{
		{ProfileID: 1, IsPrimary: true},
		{ProfileID: 1},
	}), ErrInvalidAuthors)
}
