package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestInvokePostsPayloadAndReturnsBody(t *testing.T) {
	var gotMethod, gotCT string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCT = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[42]}`))
	}))
	defer srv.Close()

	inv := NewHTTPInvoker(srv.URL, time.Second)
	out, err := inv.Invoke(context.Background(), json.RawMessage(`{"input":"x"}`))
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", gotMethod)
	}
	if gotCT != "application/json" {
		t.Fatalf("expected JSON content type, got %q", gotCT)
	}
	if string(gotBody) != `{"input":"x"}` {
		t.Fatalf("payload not forwarded verbatim: %s", gotBody)
	}
	if string(out) != `{"data":[42]}` {
		t.Fatalf("unexpected response body: %s", out)
	}
}

func TestInvokeEmptyPayloadSendsEmptyObject(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	inv := NewHTTPInvoker(srv.URL, time.Second)
	if _, err := inv.Invoke(context.Background(), nil); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if string(gotBody) != "{}" {
		t.Fatalf("expected empty object body, got %q", gotBody)
	}
}

func TestInvokeBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	inv := NewHTTPInvoker(srv.URL, time.Second)
	_, err := inv.Invoke(context.Background(), json.RawMessage(`{}`))
	if err == nil || !IsBadStatus(err) {
		t.Fatalf("expected bad-status error, got %v", err)
	}
}

func TestInvokeTransportErrorIsNotBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	inv := NewHTTPInvoker(srv.URL, time.Second)
	_, err := inv.Invoke(context.Background(), json.RawMessage(`{}`))
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if IsBadStatus(err) {
		t.Fatalf("transport failure must not be classified as a backend status error")
	}
}

func TestInvokeHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background read and can
		// observe the client disconnect; otherwise Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	inv := NewHTTPInvoker(srv.URL, time.Second)
	if _, err := inv.Invoke(ctx, json.RawMessage(`{}`)); err == nil {
		t.Fatalf("expected context deadline error")
	}
}
