package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

func Cors(allowedOrigins []string) Middleware {
	options := cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	if slices.Contains(allowedOrigins, "*") {
		// credentials rule out a literal wildcard, so echo the origin back
		options.AllowOriginFunc = func(origin string) bool {
			return true
		}
	} else {
		options.AllowedOrigins = allowedOrigins
	}
	return cors.New(options).Handler
}
