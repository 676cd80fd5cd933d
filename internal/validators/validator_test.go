package validators

import (
	"errors"
	"net/http"
	"testing"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.CredentialsRequest{Username: "alice", Password: "secret"}))

	err := v.Validate(&models.CreatePostRequest{Title: "", Content: "body"})
	var he *echo.HTTPError
	if assert.True(t, errors.As(err, &he)) {
		assert.Equal(t, http.StatusBadRequest, he.Code)
	}

	zero := uint(0)
	assert.Error(t, v.Validate(&models.CreateCommentRequest{Content: "hi", ParentID: &zero}))
}
