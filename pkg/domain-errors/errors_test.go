package domainerrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	base := New(CodeValidation, "reason is invalid")
	wrapped := Wrap(base, CodeBadRequest, "decode failed")

	assert.True(t, HasCode(wrapped, CodeBadRequest))
	assert.True(t, HasCode(wrapped, CodeValidation))
	assert.False(t, HasCode(wrapped, CodeNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	assert.False(t, HasCode(nil, CodeInternal))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "nothing to wrap"))
}

func TestErrorMessage(t *testing.T) {
	err := Wrap(errors.New("eof"), CodeBadRequest, "invalid json")
	assert.Equal(t, "invalid json: eof", err.Error())

	de, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, CodeBadRequest, de.Code)
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeValidation, http.StatusBadRequest},
		{CodeInvalidInput, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeUnsupported, http.StatusUnsupportedMediaType},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeInternal, http.StatusInternalServerError},
		{Code("something_new"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, ToHTTPStatus(tt.code))
		})
	}
}
