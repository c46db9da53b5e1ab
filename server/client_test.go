package server

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func dialTestServer(t *testing.T) *Client {
	t.Helper()
	ts := startTestServer(t)

	c, err := Dial(strings.TrimPrefix(ts.URL, "http://"))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient_Convert(t *testing.T) {
	c := dialTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := c.Convert(ctx, "1000 m => km")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if math.Abs(got.Value-1) > 1e-12 {
		t.Errorf("Value = %v, want 1", got.Value)
	}
	if got.Dimension != "length" {
		t.Errorf("Dimension = %q, want %q", got.Dimension, "length")
	}
}

func TestClient_ConvertMismatch(t *testing.T) {
	c := dialTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.Convert(ctx, "1 kg => m")
	if status.Code(err) != codes.FailedPrecondition {
		t.Errorf("code = %v, want %v (err %v)", status.Code(err), codes.FailedPrecondition, err)
	}
}

func TestClient_Check(t *testing.T) {
	c := dialTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := c.Check(ctx, "km/h")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if got != "[meter] [hour]^-1" {
		t.Errorf("Check = %q, want %q", got, "[meter] [hour]^-1")
	}

	if _, err := c.Check(ctx, "furlong"); err == nil {
		t.Error("Check(furlong) should fail")
	}
}
