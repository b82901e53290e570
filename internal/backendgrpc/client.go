package backendgrpc

import (
	"context"
	"errors"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"pkt.systems/termtab/internal/backendpb"
	"pkt.systems/termtab/schema"
)

// Client implements core.Backend over gRPC.
type Client struct {
	conn   *grpc.ClientConn
	client backendpb.BackendClient
}

// Dial creates a new backend client over a Unix domain socket.
func Dial(ctx context.Context, socketPath string) (*Client, error) {
	if socketPath == "" {
		return nil, errors.New("backend socket path is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dialer := func(ctx context.Context, addr string) (net.Conn, error) {
		return net.Dial("unix", addr)
	}
	target := "passthrough:///" + socketPath
	conn, err := grpc.NewClient(
		target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(dialer),
	)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, client: backendpb.NewBackendClient(conn)}, nil
}

// Close closes the underlying gRPC connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Ping sends a keepalive ping to the backend.
func (c *Client) Ping(ctx context.Context) error {
	if c.client == nil {
		return errors.New("backend client not initialized")
	}
	_, err := c.client.Ping(ctx, &backendpb.PingRequest{})
	return wrapBackendError(err)
}

// RequestDetach asks the owning window to release the session and returns
// the launch configuration for reattaching it.
func (c *Client) RequestDetach(ctx context.Context, owner schema.WindowID, id schema.SessionID) (schema.LaunchConfig, error) {
	if c.client == nil {
		return schema.LaunchConfig{}, errors.New("backend client not initialized")
	}
	resp, err := c.client.RequestDetach(ctx, &backendpb.DetachRequest{
		Owner:     string(owner),
		SessionId: int64(id),
	})
	if err != nil {
		return schema.LaunchConfig{}, wrapBackendError(err)
	}
	return fromPBLaunchConfig(resp.GetLaunch()), nil
}

// ListSessions enumerates the sessions the backend hosts.
func (c *Client) ListSessions(ctx context.Context) ([]schema.SessionSnapshot, error) {
	if c.client == nil {
		return nil, errors.New("backend client not initialized")
	}
	resp, err := c.client.ListSessions(ctx, &backendpb.ListSessionsRequest{})
	if err != nil {
		return nil, wrapBackendError(err)
	}
	out := make([]schema.SessionSnapshot, 0, len(resp.GetSessions()))
	for _, info := range resp.GetSessions() {
		out = append(out, fromPBSessionInfo(info))
	}
	return out, nil
}

func wrapBackendError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.NotFound:
			return schema.ErrSessionNotFound
		case codes.FailedPrecondition:
			return schema.ErrSessionDetached
		case codes.Unavailable:
			return schema.ErrBackendUnavailable
		}
	}
	return err
}
