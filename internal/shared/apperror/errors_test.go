package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindNotFound:     http.StatusNotFound,
		KindUpstream:     http.StatusInternalServerError,
		KindInternal:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.Status(), kind)
	}
}

func TestAs_FindsWrappedError(t *testing.T) {
	base := NotFound("Bootcamp not found with id of %s", "42")
	wrapped := fmt.Errorf("get bootcamp: %w", base)

	got := As(wrapped)
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Equal(t, "Bootcamp not found with id of 42", got.Message)
	assert.True(t, IsKind(wrapped, KindNotFound))
}

func TestAs_UnknownBecomesInternal(t *testing.T) {
	got := As(errors.New("connection reset"))
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, "Server Error", got.Message)
	assert.Equal(t, http.StatusInternalServerError, got.Status())
}

func TestUpstream_Unwraps(t *testing.T) {
	cause := errors.New("smtp: 421")
	err := Upstream("Email could not be sent", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "smtp: 421")
}
