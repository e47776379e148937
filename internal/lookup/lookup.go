// Package lookup runs an order id lookup against the App Store Server API
// and turns the outcome into the text shown to the user.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"runtime/debug"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vocdoni/gofirma/eolookup/internal/appstore"
	"github.com/vocdoni/gofirma/eolookup/internal/jws"
	"github.com/vocdoni/gofirma/eolookup/internal/model"
	"github.com/vocdoni/gofirma/eolookup/internal/storage"
)

const (
	SearchingMessage        = "Searching..."
	OrderNotValidMessage    = "OrderId is not valid!"
	ConnectionFailedMessage = "HTTPSConnectionPool: could not connect to the App Store server"
)

type OrderLooker interface {
	LookUpOrderID(ctx context.Context, orderID string) (*appstore.OrderLookupResponse, error)
}

// ClientFactory builds the API client for one lookup.
type ClientFactory func(privateKey []byte, keyID, issuerID, bundleID string, env model.Environment) (OrderLooker, error)

// AppStoreFactory returns a ClientFactory backed by appstore.NewClient.
func AppStoreFactory(opts ...appstore.Option) ClientFactory {
	return func(privateKey []byte, keyID, issuerID, bundleID string, env model.Environment) (OrderLooker, error) {
		c, err := appstore.NewClient(privateKey, keyID, issuerID, bundleID, env, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

type Request struct {
	Inputs     model.FormInputs
	PrivateKey []byte
}

type ResultKind int

const (
	Success ResultKind = iota
	InvalidOrder
	APIFailure
	ConnectionFailure
)

func (k ResultKind) String() string {
	switch k {
	case Success:
		return "success"
	case InvalidOrder:
		return "invalid_order"
	case APIFailure:
		return "api_error"
	case ConnectionFailure:
		return "connection_error"
	default:
		return "unknown"
	}
}

type Result struct {
	ID       string
	Kind     ResultKind
	Text     string
	Status   int
	Payloads []string
	Err      error
}

type Runner struct {
	newClient ClientFactory
	history   *storage.HistoryLogger
	logger    *zap.Logger
	busy      atomic.Bool
}

// NewRunner returns a Runner. history may be nil.
func NewRunner(newClient ClientFactory, history *storage.HistoryLogger, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		newClient: newClient,
		history:   history,
		logger:    logger,
	}
}

func (r *Runner) Busy() bool {
	return r.busy.Load()
}

// Start runs the lookup on its own goroutine and delivers exactly one Result
// on the returned channel. It refuses to start, returning false, while a
// previous lookup is still in flight.
func (r *Runner) Start(ctx context.Context, req Request) (<-chan Result, bool) {
	if !r.busy.CompareAndSwap(false, true) {
		return nil, false
	}
	out := make(chan Result, 1)
	go func() {
		defer r.busy.Store(false)
		defer func() {
			if p := recover(); p != nil {
				r.logger.Sugar().Errorw("Panic during lookup", "panic", p, "stack", string(debug.Stack()))
				err := fmt.Errorf("panic while looking up order: %v", p)
				res := Result{ID: uuid.NewString(), Kind: APIFailure, Text: "Unexpected Error: " + err.Error(), Err: err}
				r.record(req.Inputs, res)
				out <- res
			}
		}()
		out <- r.Run(ctx, req)
	}()
	return out, true
}

// Run performs the lookup synchronously. Failures never surface as errors;
// they are folded into the Result text.
func (r *Runner) Run(ctx context.Context, req Request) Result {
	in := req.Inputs
	res := Result{ID: uuid.NewString()}
	log := r.logger.Sugar().With("lookupId", res.ID, "orderId", in.OrderID, "environment", in.Environment)

	log.Infow("Looking up order")
	client, err := r.newClient(req.PrivateKey, in.KeyID, in.IssuerID, in.BundleID, in.Environment)
	if err != nil {
		res.Kind, res.Text, res.Err = APIFailure, err.Error(), err
		log.Warnw("Failed to create App Store client", "error", err)
		r.record(in, res)
		return res
	}

	resp, err := client.LookUpOrderID(ctx, in.OrderID)
	switch {
	case err != nil:
		res.Err = err
		res.Kind, res.Text = classify(err)
		log.Warnw("Lookup failed", "kind", res.Kind, "error", err)
	case resp.Status != appstore.OrderLookupValid:
		res.Status = resp.Status
		res.Kind, res.Text = InvalidOrder, OrderNotValidMessage
		log.Infow("Order id not valid", "status", resp.Status)
	default:
		res.Kind = Success
		res.Payloads = make([]string, 0, len(resp.SignedTransactions))
		for i, tx := range resp.SignedTransactions {
			if h, err := jws.DecodeHeader(tx); err == nil {
				log.Debugw("Signed transaction", "index", i, "alg", h.Alg, "kid", h.Kid, "chain", len(h.X5C))
			}
			res.Payloads = append(res.Payloads, jws.DecodePayload(tx))
		}
		res.Text = strings.Join(res.Payloads, "\n")
		log.Infow("Lookup succeeded", "transactions", len(res.Payloads))
	}
	r.record(in, res)
	return res
}

func classify(err error) (ResultKind, string) {
	var apiErr *appstore.APIError
	if errors.As(err, &apiErr) {
		return APIFailure, apiErr.Error()
	}
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return ConnectionFailure, ConnectionFailedMessage
	}
	return APIFailure, err.Error()
}

func (r *Runner) record(in model.FormInputs, res Result) {
	if r.history == nil {
		return
	}
	entry := storage.HistoryEntry{
		LookupID:     res.ID,
		OrderID:      in.OrderID,
		BundleID:     in.BundleID,
		Environment:  in.Environment.String(),
		Status:       res.Kind.String(),
		Transactions: len(res.Payloads),
	}
	if res.Kind != Success {
		entry.Error = res.Text
	}
	if err := r.history.Log(entry); err != nil {
		r.logger.Sugar().Warnw("Failed to write history entry", "error", err)
	}
}
