package lookup

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vocdoni/gofirma/eolookup/internal/appstore"
	"github.com/vocdoni/gofirma/eolookup/internal/model"
	"github.com/vocdoni/gofirma/eolookup/internal/storage"
)

type fakeLooker struct {
	resp    *appstore.OrderLookupResponse
	err     error
	release chan struct{}
	panics  bool
}

func (f *fakeLooker) LookUpOrderID(ctx context.Context, orderID string) (*appstore.OrderLookupResponse, error) {
	if f.release != nil {
		<-f.release
	}
	if f.panics {
		panic("boom")
	}
	return f.resp, f.err
}

func factoryFor(l OrderLooker) ClientFactory {
	return func([]byte, string, string, string, model.Environment) (OrderLooker, error) {
		return l, nil
	}
}

var testReq = Request{
	Inputs: model.FormInputs{
		KeyFilePath: "/k.p8",
		KeyID:       "KEY",
		IssuerID:    "ISS",
		BundleID:    "com.example.app",
		OrderID:     "MQKXQ2Z8T1",
		Environment: model.Sandbox,
	},
	PrivateKey: []byte("key"),
}

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		looker *fakeLooker
		kind   ResultKind
		text   string
	}{
		{
			name:   "success joins decoded payloads",
			looker: &fakeLooker{resp: &appstore.OrderLookupResponse{Status: 0, SignedTransactions: []string{"AAA.eyJhIjoxfQ.BBB", "raw-token"}}},
			kind:   Success,
			text:   "{\n    \"a\": 1\n}\nraw-token",
		},
		{
			name:   "success without transactions",
			looker: &fakeLooker{resp: &appstore.OrderLookupResponse{Status: 0}},
			kind:   Success,
			text:   "",
		},
		{
			name:   "non-zero status",
			looker: &fakeLooker{resp: &appstore.OrderLookupResponse{Status: appstore.OrderLookupInvalid}},
			kind:   InvalidOrder,
			text:   OrderNotValidMessage,
		},
		{
			name:   "api error passed through",
			looker: &fakeLooker{err: &appstore.APIError{HTTPStatus: 401, ErrorMessage: "Unauthenticated"}},
			kind:   APIFailure,
			text:   (&appstore.APIError{HTTPStatus: 401, ErrorMessage: "Unauthenticated"}).Error(),
		},
		{
			name:   "connection failure mapped",
			looker: &fakeLooker{err: &url.Error{Op: "Get", URL: "https://x", Err: errors.New("dial tcp: no such host")}},
			kind:   ConnectionFailure,
			text:   ConnectionFailedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(factoryFor(tt.looker), nil, zap.NewNop())
			res := r.Run(context.Background(), testReq)
			if res.Kind != tt.kind {
				t.Fatalf("kind=%v want %v", res.Kind, tt.kind)
			}
			if res.Text != tt.text {
				t.Fatalf("text=%q want %q", res.Text, tt.text)
			}
			if res.ID == "" {
				t.Fatal("missing lookup id")
			}
		})
	}
}

func TestRunFactoryError(t *testing.T) {
	factory := func([]byte, string, string, string, model.Environment) (OrderLooker, error) {
		return nil, errors.New("invalid private key: bad pem")
	}
	r := NewRunner(factory, nil, nil)
	res := r.Run(context.Background(), testReq)
	if res.Kind != APIFailure || res.Text != "invalid private key: bad pem" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	h, err := storage.NewHistoryLogger(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewHistoryLogger: %v", err)
	}
	r := NewRunner(factoryFor(&fakeLooker{resp: &appstore.OrderLookupResponse{Status: 1}}), h, zap.NewNop())
	res := r.Run(context.Background(), testReq)

	entries, err := h.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.LookupID != res.ID || e.Status != "invalid_order" || e.Environment != "Sandbox" || e.Error != OrderNotValidMessage {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestStartDeliversOnceAndRefusesOverlap(t *testing.T) {
	looker := &fakeLooker{
		resp:    &appstore.OrderLookupResponse{Status: 0, SignedTransactions: []string{"AAA.eyJhIjoxfQ.BBB"}},
		release: make(chan struct{}),
	}
	r := NewRunner(factoryFor(looker), nil, zap.NewNop())

	ch, ok := r.Start(context.Background(), testReq)
	if !ok {
		t.Fatal("first Start refused")
	}
	if !r.Busy() {
		t.Fatal("runner not busy while lookup in flight")
	}
	if _, ok := r.Start(context.Background(), testReq); ok {
		t.Fatal("second Start accepted while busy")
	}

	close(looker.release)
	select {
	case res := <-ch:
		if res.Kind != Success || res.Text != "{\n    \"a\": 1\n}" {
			t.Fatalf("unexpected result %+v", res)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for result")
	}

	deadline := time.Now().Add(5 * time.Second)
	for r.Busy() {
		if time.Now().After(deadline) {
			t.Fatal("runner still busy after delivering result")
		}
		time.Sleep(time.Millisecond)
	}
	if _, ok := r.Start(context.Background(), testReq); !ok {
		t.Fatal("Start refused after previous lookup finished")
	}
}

func TestStartRecoversPanic(t *testing.T) {
	h, err := storage.NewHistoryLogger(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewHistoryLogger: %v", err)
	}
	r := NewRunner(factoryFor(&fakeLooker{panics: true}), h, zap.NewNop())
	ch, ok := r.Start(context.Background(), testReq)
	if !ok {
		t.Fatal("Start refused")
	}
	select {
	case res := <-ch:
		if res.Kind != APIFailure || res.Err == nil || res.ID == "" {
			t.Fatalf("unexpected result %+v", res)
		}
		entries, err := h.ReadAll()
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		if len(entries) != 1 || entries[0].LookupID != res.ID || entries[0].Status != "api_error" || entries[0].Error != res.Text {
			t.Fatalf("panicked lookup not recorded: %+v", entries)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for result")
	}
}
