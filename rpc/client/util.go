package client

import (
	"errors"
	"fmt"
	"github.com/Driw/streamio/lib/builder"
	"github.com/Driw/streamio/lib/options"
	"github.com/Driw/streamio/rpc/common"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("rpc")

	// ErrRemote marks errors reported by the server in an error message
	ErrRemote = errors.New("server error")
)

// invokeRPCRequest is a helper function used by all client calls to send requests
// It writes the request header and records through a dynamic output packet and
// reads the response header through a static input packet and the payload
// with blocking reads.
// This method also checks if the response is an error response and if the type
// of the response is the expected type
func invokeRPCRequest(src builder.Source, msgType common.MessageType, req []options.Record) ([]options.Record, error) {
	size := options.Size(req...)

	// Send the request
	out, err := builder.DynamicOutputPacket(src.WithName("request"))
	if err != nil {
		return nil, err
	}
	if err := common.WriteHeader(out, common.Header{Type: msgType, Length: int32(size)}); err != nil {
		return nil, fmt.Errorf("failed to send request header: %w", err)
	}
	if err := options.NewWriter(out).PutAll(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	// Read the response
	in, err := builder.StaticInputPacket(src.WithName("response header"), common.HeaderSize)
	if err != nil {
		return nil, err
	}
	header, err := common.ReadHeader(in, 0)
	if err != nil {
		return nil, err
	}
	payload, err := common.ReadPayload(src, "response payload", int(header.Length))
	if err != nil {
		return nil, err
	}
	resp, err := options.NewReader(payload).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Check if the response is an error response
	if header.Type == common.MsgTError {
		msg := "unknown error"
		if len(resp) > 0 {
			msg = resp[0].Text()
		}
		return nil, fmt.Errorf("%w: %s", ErrRemote, msg)
	}

	// Check if the type of the response is the expected type
	if header.Type != msgType {
		return nil, fmt.Errorf("unexpected message type: %s, expected %s", header.Type, msgType)
	}

	return resp, nil
}
