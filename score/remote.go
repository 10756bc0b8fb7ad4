package score

import (
	"context"
	"fmt"
	"tetrisgo/proto"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Remote reads and submits scores to a score server.
type Remote struct {
	client proto.HighScoreServiceClient
	conn   *grpc.ClientConn
}

func DialRemote(addr string) (*Remote, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("unable to create gRPC client: %w", err)
	}
	return &Remote{client: proto.NewHighScoreServiceClient(conn), conn: conn}, nil
}

func NewRemote(c proto.HighScoreServiceClient) *Remote { return &Remote{client: c} }

func (r *Remote) Read(ctx context.Context) (int, error) {
	resp, err := r.client.GetHighScore(ctx, &emptypb.Empty{})
	if err != nil {
		return 0, fmt.Errorf("GetHighScore failed: %w", err)
	}
	return int(resp.GetValue()), nil
}

func (r *Remote) Write(ctx context.Context, v int) error {
	if _, err := r.client.SubmitScore(ctx, wrapperspb.Int64(int64(v))); err != nil {
		return fmt.Errorf("SubmitScore failed: %w", err)
	}
	return nil
}

func (r *Remote) Close() error {
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}
