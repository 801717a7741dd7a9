// Package server defines HTTP request handlers and related utilities.
package server

import "go.uber.org/zap"

// BaseHandler provides common dependencies for HTTP handlers.
type BaseHandler struct {
	logger *zap.Logger
}
