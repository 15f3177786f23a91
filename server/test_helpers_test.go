package server

import (
	"context"

	"connectrpc.com/connect"
)

// ---------------------------------------------------------------------------
// Request builder helpers
// ---------------------------------------------------------------------------

func connectReq[T any](msg *T) *connect.Request[T] {
	return connect.NewRequest(msg)
}

func bg() context.Context {
	return context.Background()
}

// ---------------------------------------------------------------------------
// helper: unwrap connect error
// ---------------------------------------------------------------------------

func asConnectError(err error, target **connect.Error) bool {
	if ce, ok := err.(*connect.Error); ok {
		*target = ce
		return true
	}
	return false
}
