package dbapi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "not found sentinel", err: fmt.Errorf("%w: id %q", ErrCharacterNotFound, "999"), want: MsgNotFound},
		{name: "connection refused", err: errors.New("dbapi: request failed: dial tcp: connection refused"), want: MsgNetworkError},
		{name: "unknown host", err: errors.New("dbapi: request failed: lookup dragonball-api.com: no such host"), want: MsgNetworkError},
		{name: "timeout", err: errors.New("dbapi: request failed: context deadline exceeded"), want: MsgNetworkError},
		{name: "remote 404", err: remoteStatusError(404), want: MsgNotFound},
		{name: "remote 500", err: remoteStatusError(500), want: MsgServerError},
		{name: "anything else", err: errors.New("dbapi: decode character page: unexpected EOF"), want: MsgUnexpected},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, ClassifyError(tc.err))
		})
	}
}
