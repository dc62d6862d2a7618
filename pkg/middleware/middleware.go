package middleware

import (
	"net/http"
)

type ctxKey string

const (
	ContextKeyClient ctxKey = "client"
)

const (
	forwardedForHeader = "X-Forwarded-For"

	queryParameter = "query"
)

type Middleware func(http.Handler) http.Handler
