package db

import "log"

// Client - common shape of the database clients in this module.
// T = backend-specific handle type exposed by the client.
type Client[T any] interface {
	Init() error
	Close() error
	GetHandle() T // generic handle
}

func CloseClient[T any](name string, c Client[T]) {
	if c == nil {
		log.Printf("[INFO] `%s` Nothing to Close", name)
		return
	}
	if err := c.Close(); err != nil {
		log.Printf("[WARN] Failed to Close `%s`: %v", name, err)
	} else {
		log.Printf("[INFO] `%s` Closed", name)
	}
}
