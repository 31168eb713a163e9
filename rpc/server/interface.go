package server

import (
	"github.com/Driw/streamio/lib/options"
)

// IRPCServerAdapter answers the requests of one message type
type IRPCServerAdapter interface {
	// Handle takes the decoded request records and returns the records of the
	// response. A returned error is sent to the client as an error message.
	Handle(req []options.Record) (resp []options.Record, err error)
}
