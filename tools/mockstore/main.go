package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/vocdoni/gofirma/eolookup/internal/appstore"
	"github.com/vocdoni/gofirma/eolookup/internal/canon"
)

const lookupPrefix = "/inApps/v1/lookup/"

type demoOrder struct {
	products []string
}

type server struct {
	key     *ecdsa.PrivateKey
	kid     string
	logger  *zap.Logger
	orders  map[string]demoOrder
	mu      sync.Mutex
	lookups int
}

func main() {
	cliApp := &cli.App{
		Name:  "mockstore",
		Usage: "Local stand-in for the App Store Server API order lookup endpoint",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "Port to listen on"},
			&cli.StringFlag{Name: "key-out", Value: "SubscriptionKey_MOCK.p8", Usage: "Where to write the generated .p8 key the client must sign with"},
			&cli.StringFlag{Name: "key-id", Value: "MOCKKEY001", Usage: "Key id expected in the bearer token header"},
			&cli.BoolFlag{Name: "debug", Usage: "Enable development logging"},
		},
		Action: run,
	}
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger, err := zap.NewProduction()
	if c.Bool("debug") {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}
	if err := writeKey(c.String("key-out"), key); err != nil {
		return err
	}

	s := &server{
		key:    key,
		kid:    c.String("key-id"),
		logger: logger,
		orders: map[string]demoOrder{
			"MOCK0RDER1": {products: []string{"com.example.pro.monthly"}},
			"MOCK0RDER2": {products: []string{"com.example.coins.100", "com.example.coins.500"}},
			"MOCK0RDER3": {products: nil},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc(lookupPrefix, s.handleLookup)

	addr := fmt.Sprintf("127.0.0.1:%d", c.Int("port"))
	logger.Sugar().Infow("Mock App Store listening",
		"addr", addr, "keyFile", c.String("key-out"), "keyId", s.kid, "orders", "MOCK0RDER1 MOCK0RDER2 MOCK0RDER3")
	return http.ListenAndServe(addr, mux)
}

func writeKey(path string, key *ecdsa.PrivateKey) error {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(path, pemBytes, 0600); err != nil {
		return fmt.Errorf("failed to write key: %w", err)
	}
	return nil
}

func (s *server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	claims, err := s.authorize(r)
	if err != nil {
		s.logger.Sugar().Infow("Rejected request", "error", err)
		writeError(w, http.StatusUnauthorized, 0, "Unauthorized")
		return
	}

	orderID := strings.TrimPrefix(r.URL.Path, lookupPrefix)
	if orderID == "" || strings.Contains(orderID, "/") {
		writeError(w, http.StatusBadRequest, appstore.ErrorCodeInvalidOrderID, "Invalid order id.")
		return
	}
	bundleID, _ := claims["bid"].(string)

	s.mu.Lock()
	s.lookups++
	n := s.lookups
	s.mu.Unlock()

	resp := appstore.OrderLookupResponse{Status: appstore.OrderLookupInvalid, SignedTransactions: []string{}}
	if order, ok := s.orders[orderID]; ok {
		resp.Status = appstore.OrderLookupValid
		for _, product := range order.products {
			signed, err := s.signTransaction(bundleID, product)
			if err != nil {
				s.logger.Sugar().Errorw("Failed to sign transaction", "error", err)
				writeError(w, http.StatusInternalServerError, appstore.ErrorCodeGeneralInternal, "An unknown error occurred.")
				return
			}
			resp.SignedTransactions = append(resp.SignedTransactions, signed)
		}
	}
	s.logger.Sugar().Infow("Order lookup", "n", n, "orderId", orderID, "bundleId", bundleID,
		"status", resp.Status, "transactions", len(resp.SignedTransactions))

	body, err := canon.Encode(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body) //nolint:errcheck
}

// authorize checks the bearer token against the generated key.
func (s *server) authorize(r *http.Request) (jwt.MapClaims, error) {
	auth := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || raw == "" {
		return nil, fmt.Errorf("missing bearer token")
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if kid, _ := t.Header["kid"].(string); kid != s.kid {
			return nil, fmt.Errorf("unknown key id %q", kid)
		}
		return &s.key.PublicKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
		jwt.WithAudience(appstore.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid bearer token: %w", err)
	}
	return claims, nil
}

func (s *server) signTransaction(bundleID, productID string) (string, error) {
	now := time.Now()
	txID := fmt.Sprintf("%d", 2000000000000000+now.UnixNano()%1000000000000)
	tok := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"transactionId":         txID,
		"originalTransactionId": txID,
		"bundleId":              bundleID,
		"productId":             productID,
		"purchaseDate":          now.Add(-24 * time.Hour).UnixMilli(),
		"originalPurchaseDate":  now.Add(-24 * time.Hour).UnixMilli(),
		"quantity":              1,
		"type":                  "Non-Consumable",
		"appAccountToken":       uuid.NewString(),
		"inAppOwnershipType":    "PURCHASED",
		"signedDate":            now.UnixMilli(),
		"environment":           "Sandbox",
		"storefront":            "ESP",
	})
	tok.Header["kid"] = s.kid
	return tok.SignedString(s.key)
}

func writeError(w http.ResponseWriter, status int, code int64, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
		"errorCode":    code,
		"errorMessage": msg,
	})
}
