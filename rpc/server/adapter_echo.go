package server

import (
	"github.com/Driw/streamio/lib/options"
)

// NewEchoServerAdapter returns an adapter that logs every record and answers
// with the request records in the order they were received
func NewEchoServerAdapter() IRPCServerAdapter {
	return &echoServerAdapterImpl{}
}

type echoServerAdapterImpl struct{}

func (adapter *echoServerAdapterImpl) Handle(req []options.Record) ([]options.Record, error) {
	for _, rec := range req {
		Logger.Debugf("option %s", rec)
	}
	return req, nil
}
