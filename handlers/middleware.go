package handlers

import (
	"log"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// RequestLogMiddleware logs every API request with its method, path and
// handling duration.
func RequestLogMiddleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		start := time.Now()
		err := e.Next()
		log.Printf("%s %s (%s)", e.Request.Method, e.Request.URL.Path, time.Since(start).Round(time.Millisecond))
		return err
	}
}
