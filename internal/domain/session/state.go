// internal/domain/session/state.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/your-org/pos-backend/internal/domain/sale"
)

// Keys of the local durable store
const (
	KeyOrderNumber  = "pos_orderNumber"
	KeySalesHistory = "pos_salesHistory"
	KeyLastDetailID = "pos_lastDetailId"
	KeyShiftStart   = "pos_shiftStart"
	KeyCredential   = "pos_google_token"
	KeySessionID    = "pos_session_id"
)

// Session errors
var (
	ErrNotConnected      = errors.New("datastore is not connected")
	ErrMissingCredential = errors.New("access token is required")
	ErrUnknownProduct    = errors.New("product not found")
	ErrUnknownCategory   = errors.New("category not found")
	ErrUnknownSide       = errors.New("side option not found")
	ErrNoPendingProduct  = errors.New("no product is waiting for a side")
	ErrPaymentNotOpen    = errors.New("payment has not been started")
	ErrAwaitingAck       = errors.New("last sale has not been acknowledged")
	ErrNothingToAck      = errors.New("no sale to acknowledge")
	ErrSaleNotFound      = errors.New("sale not found")
)

// KVStore is the local durable key-value store
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// SyncStatus reports where a confirmed sale ended up
type SyncStatus string

const (
	SyncCloud       SyncStatus = "cloud"
	SyncCloudFailed SyncStatus = "cloud_failed"
	SyncLocal       SyncStatus = "local"
)

// persisted is the part of the state that survives restarts
type persisted struct {
	nextOrderNumber int
	lastDetailID    int
	history         []sale.Sale
	shiftStart      time.Time
}

// loadPersisted reads the durable keys. Unreadable values fall back to
// defaults; a corrupt history becomes empty.
func loadPersisted(ctx context.Context, kv KVStore) (persisted, []error) {
	p := persisted{nextOrderNumber: 1}
	var errs []error

	if raw, ok, err := kv.Get(ctx, KeyOrderNumber); err != nil {
		errs = append(errs, fmt.Errorf("read %s: %w", KeyOrderNumber, err))
	} else if ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
			p.nextOrderNumber = n
		}
	}

	if raw, ok, err := kv.Get(ctx, KeySalesHistory); err != nil {
		errs = append(errs, fmt.Errorf("read %s: %w", KeySalesHistory, err))
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &p.history); err != nil {
			p.history = nil
			errs = append(errs, fmt.Errorf("decode %s: %w", KeySalesHistory, err))
		}
	}

	if raw, ok, err := kv.Get(ctx, KeyLastDetailID); err != nil {
		errs = append(errs, fmt.Errorf("read %s: %w", KeyLastDetailID, err))
	} else if ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 0 {
			p.lastDetailID = n
		}
	}

	if raw, ok, err := kv.Get(ctx, KeyShiftStart); err != nil {
		errs = append(errs, fmt.Errorf("read %s: %w", KeyShiftStart, err))
	} else if ok {
		if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw)); err == nil {
			p.shiftStart = t.UTC()
		}
	}

	if p.history == nil {
		p.history = []sale.Sale{}
	}
	return p, errs
}

// savePersisted writes counters and history
func savePersisted(ctx context.Context, kv KVStore, p persisted) error {
	history, err := json.Marshal(p.history)
	if err != nil {
		return fmt.Errorf("encode sales history: %w", err)
	}
	if err := kv.Set(ctx, KeyOrderNumber, strconv.Itoa(p.nextOrderNumber)); err != nil {
		return fmt.Errorf("write %s: %w", KeyOrderNumber, err)
	}
	if err := kv.Set(ctx, KeySalesHistory, string(history)); err != nil {
		return fmt.Errorf("write %s: %w", KeySalesHistory, err)
	}
	if err := kv.Set(ctx, KeyLastDetailID, strconv.Itoa(p.lastDetailID)); err != nil {
		return fmt.Errorf("write %s: %w", KeyLastDetailID, err)
	}
	return nil
}

func saveShiftStart(ctx context.Context, kv KVStore, t time.Time) error {
	if err := kv.Set(ctx, KeyShiftStart, t.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("write %s: %w", KeyShiftStart, err)
	}
	return nil
}
