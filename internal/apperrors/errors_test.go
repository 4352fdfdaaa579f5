package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
		want string
	}{
		{"invalid argument", InvalidArgument(MsgInvalidArguments), KindInvalidArgument, MsgInvalidArguments},
		{"api error", API("base 'XXX' is not supported."), KindAPI, "base 'XXX' is not supported."},
		{"unavailable", Unavailable(errors.New("dial tcp: refused")), KindAPI, MsgConnection},
		{"not found", NotFound(MsgNotFound), KindNotFound, MsgNotFound},
		{"wrapped", fmt.Errorf("latest: %w", NotFound(MsgNotFound)), KindNotFound, MsgNotFound},
		{"plain error", errors.New(`currency "RUB" missing`), KindUnexpected, MsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("timeout")
	err := Unavailable(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "timeout")
}
