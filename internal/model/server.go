package model

import (
	"context"
	"net"
)

// SecurityLayer produces the listener the server serves on, plain or TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a network server with a managed lifecycle.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}

// ContextManager moves the resolved identity in and out of request contexts.
type ContextManager interface {
	WithUser(ctx context.Context, user *User) context.Context
	UserFromContext(ctx context.Context) (*User, bool)
}
