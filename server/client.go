package server

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls a remote ConversionService over gRPC.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to a conversion server at target ("host:port"). The
// connection is cleartext, matching ConversionServer.
func Dial(target string) (*Client, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	return &Client{conn: conn}, nil
}

// Convert sends a conversion request line such as "10 m/s => mi/h".
func (c *Client) Convert(ctx context.Context, line string) (*Conversion, error) {
	req, err := structpb.NewStruct(map[string]interface{}{"input": line})
	if err != nil {
		return nil, err
	}
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, ConvertProcedure, req, resp); err != nil {
		return nil, err
	}
	return conversionFromStruct(resp), nil
}

// Check asks the server whether expr is a valid unit expression. It
// returns the base-unit breakdown, or the server's error message.
func (c *Client) Check(ctx context.Context, expr string) (string, error) {
	req, err := structpb.NewStruct(map[string]interface{}{"expression": expr})
	if err != nil {
		return "", err
	}
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, CheckProcedure, req, resp); err != nil {
		return "", err
	}
	fields := resp.GetFields()
	if !fields["valid"].GetBoolValue() {
		return "", fmt.Errorf("%s", fields["error"].GetStringValue())
	}
	return fields["base_units"].GetStringValue(), nil
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
