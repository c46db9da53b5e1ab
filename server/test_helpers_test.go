package server

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/chazu/unitconv/registry"
)

// ---------------------------------------------------------------------------
// Shared test infrastructure for server package tests.
// ---------------------------------------------------------------------------

var testRegistry = registry.Default()

func bg() context.Context {
	return context.Background()
}

// newTestConversionService creates a ConversionService over the builtin units.
func newTestConversionService() *ConversionService {
	return NewConversionService(testRegistry)
}

// structReq wraps fields in a Connect request.
func structReq(t *testing.T, fields map[string]interface{}) *connect.Request[structpb.Struct] {
	t.Helper()
	msg, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	return connect.NewRequest(msg)
}

// startTestServer serves a ConversionServer on a loopback port for the
// duration of the test.
func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(testRegistry).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func asConnectError(err error, target **connect.Error) bool {
	return errors.As(err, target)
}

// wantCode fails the test unless err is a Connect error with code.
func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	var connectErr *connect.Error
	if !asConnectError(err, &connectErr) {
		t.Fatalf("expected *connect.Error, got %T: %v", err, err)
	}
	if connectErr.Code() != code {
		t.Errorf("code = %v, want %v", connectErr.Code(), code)
	}
}
