// internal/domain/session/service.go
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/analytics"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/infrastructure/datastore"
	"github.com/your-org/pos-backend/internal/pkg/auth"
)

// ShiftReporter delivers the shift close report
type ShiftReporter interface {
	Enabled() bool
	SendShiftReport(ctx context.Context, summary analytics.ShiftSummary, daily analytics.DailyReport, top []analytics.ProductRank, cashier string) error
}

// ConnectResult is returned after a successful connect
type ConnectResult struct {
	SessionID  string `json:"-"`
	Email      string `json:"email"`
	Categories int    `json:"categories"`
	Sales      int    `json:"sales"`
}

// SyncResult is returned after a catalog and history reload
type SyncResult struct {
	Categories int `json:"categories"`
	Sales      int `json:"sales"`
}

// SelectResult tells whether a product went to the cart or waits for a side
type SelectResult struct {
	Pending bool            `json:"pending"`
	Product catalog.Product `json:"product"`
	Line    *cart.Line      `json:"line,omitempty"`
}

// Confirmation is the outcome of a confirmed payment
type Confirmation struct {
	Sale   sale.Sale   `json:"sale"`
	Ticket sale.Ticket `json:"ticket"`
	Status SyncStatus  `json:"sync_status"`
}

// ShiftClosure is the outcome of closing a shift
type ShiftClosure struct {
	Summary       analytics.ShiftSummary `json:"summary"`
	NewShiftStart time.Time              `json:"new_shift_start"`
	Emailed       bool                   `json:"emailed"`
}

// Session owns the whole terminal state. Every command takes the lock for
// its full duration, datastore I/O included, so commands never interleave.
type Session struct {
	mu sync.Mutex

	cfg      *config.Config
	logger   *logrus.Logger
	kv       KVStore
	backend  datastore.Backend
	catalogs *catalog.Service
	store    *catalog.Store
	recorder *sale.Recorder
	stats    *analytics.Service
	pin      *auth.PINManager
	reporter ShiftReporter

	state           persisted
	ledger          *cart.Ledger
	currentCategory string
	pending         *catalog.Product
	received        *decimal.Decimal
	confirmed       *Confirmation

	connected  bool
	credential string
	email      string
	sessionID  string
	source     datastore.Source
}

// NewSession creates a disconnected session with an empty cart
func NewSession(cfg *config.Config, kv KVStore, backend datastore.Backend, logger *logrus.Logger) *Session {
	s := &Session{
		cfg:      cfg,
		logger:   logger,
		kv:       kv,
		backend:  backend,
		catalogs: catalog.NewService(logger),
		store:    catalog.NewStore(),
		recorder: sale.NewRecorder(cfg.Location(), cfg.POS.DateLayout, cfg.POS.TimeLayout),
		stats:    analytics.NewService(cfg.POS),
		pin:      auth.NewPINManager(cfg.Security.ShiftClosePINHash),
		state:    persisted{nextOrderNumber: 1, history: []sale.Sale{}},
		ledger:   cart.NewLedger(),
	}
	s.ledger.OnChange(s.cartChanged)
	return s
}

// cartChanged runs under the session lock after every ledger mutation
func (s *Session) cartChanged() {
	t := s.ledger.Totals()
	s.logger.WithFields(logrus.Fields{
		"lines": t.LineCount,
		"items": t.ItemCount,
		"total": t.Total.StringFixed(2),
	}).Debug("Cart changed")
}

// WithShiftReporter sets the mailer used when a shift is closed
func (s *Session) WithShiftReporter(r ShiftReporter) *Session {
	s.reporter = r
	return s
}

// WithClock replaces the wall clock used for sales and shifts
func (s *Session) WithClock(now func() time.Time) *Session {
	s.recorder.WithClock(now)
	return s
}

// Restore rehydrates the durable state and reconnects with a stored
// credential. Read failures degrade to defaults and are only logged.
func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, errs := loadPersisted(ctx, s.kv)
	for _, err := range errs {
		s.logger.WithError(err).Warn("Failed to restore local state")
	}
	s.state = p

	if s.state.shiftStart.IsZero() {
		s.state.shiftStart = s.recorder.Now().UTC()
		if err := saveShiftStart(ctx, s.kv, s.state.shiftStart); err != nil {
			s.logger.WithError(err).Warn("Failed to persist shift start")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"sales":        len(s.state.history),
		"order_number": s.state.nextOrderNumber,
	}).Info("Local state restored")

	cred, ok, err := s.kv.Get(ctx, KeyCredential)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read stored credential")
		return nil
	}
	if !ok || strings.TrimSpace(cred) == "" {
		return nil
	}

	sessionID, _, err := s.kv.Get(ctx, KeySessionID)
	if err != nil {
		sessionID = ""
	}
	if err := s.connectLocked(ctx, cred, sessionID); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.WithError(err).Warn("Stored credential rejected, logging out")
		s.logoutLocked(ctx)
	}
	return nil
}

// Connect verifies a credential, remembers it and loads catalog and history
func (s *Session) Connect(ctx context.Context, credential string) (ConnectResult, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return ConnectResult{}, ErrMissingCredential
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.connectLocked(ctx, credential, ""); err != nil {
		return ConnectResult{}, err
	}
	return ConnectResult{
		SessionID:  s.sessionID,
		Email:      s.email,
		Categories: len(s.store.Snapshot().Categories),
		Sales:      len(s.state.history),
	}, nil
}

func (s *Session) connectLocked(ctx context.Context, credential, sessionID string) error {
	src, err := s.backend.Open(ctx, credential)
	if err != nil {
		return fmt.Errorf("failed to open datastore: %w", err)
	}
	if err := src.Probe(ctx); err != nil {
		return fmt.Errorf("credential verification failed: %w", err)
	}

	email, err := s.backend.ResolveEmail(ctx, credential)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to resolve cashier e-mail")
		email = ""
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if err := s.kv.Set(ctx, KeyCredential, credential); err != nil {
		s.logger.WithError(err).Warn("Failed to store credential")
	}
	if err := s.kv.Set(ctx, KeySessionID, sessionID); err != nil {
		s.logger.WithError(err).Warn("Failed to store session id")
	}

	s.source = src
	s.credential = credential
	s.email = email
	s.sessionID = sessionID
	s.connected = true

	s.logger.WithFields(logrus.Fields{
		"email":      email,
		"session_id": sessionID,
	}).Info("Datastore connected")

	return s.loadAllLocked(ctx, true)
}

// Disconnect revokes the credential and drops catalog data. History and the
// cart are kept.
func (s *Session) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected && s.credential == "" {
		return nil
	}
	s.logoutLocked(ctx)
	return nil
}

func (s *Session) logoutLocked(ctx context.Context) {
	if s.credential != "" {
		if err := s.backend.Revoke(ctx, s.credential); err != nil {
			s.logger.WithError(err).Warn("Failed to revoke credential")
		}
	}
	if err := s.kv.Delete(ctx, KeyCredential, KeySessionID); err != nil {
		s.logger.WithError(err).Warn("Failed to delete stored credential")
	}

	s.connected = false
	s.source = nil
	s.credential = ""
	s.email = ""
	s.sessionID = ""
	s.store.Reset()
	s.currentCategory = ""
	s.pending = nil

	s.logger.Info("Datastore disconnected")
}

// Sync reloads catalog and history. The current category is kept when it
// still exists.
func (s *Session) Sync(ctx context.Context) (SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.probeLocked(ctx); err != nil {
		return SyncResult{}, err
	}
	if err := s.loadAllLocked(ctx, false); err != nil {
		return SyncResult{}, err
	}
	return SyncResult{
		Categories: len(s.store.Snapshot().Categories),
		Sales:      len(s.state.history),
	}, nil
}

// SetupSchema creates missing tables and writes their headers
func (s *Session) SetupSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return ErrNotConnected
	}
	if err := s.source.EnsureSchema(ctx); err != nil {
		if errors.Is(err, datastore.ErrUnauthorized) {
			s.logoutLocked(ctx)
		}
		return fmt.Errorf("failed to set up datastore: %w", err)
	}
	s.logger.Info("Datastore schema ready")
	return nil
}

// probeLocked checks the credential and forces a logout when it was rejected
func (s *Session) probeLocked(ctx context.Context) error {
	if !s.connected {
		return ErrNotConnected
	}
	if err := s.source.Probe(ctx); err != nil {
		if errors.Is(err, datastore.ErrUnauthorized) {
			s.logger.Warn("Credential expired, logging out")
			s.logoutLocked(ctx)
			return err
		}
		return fmt.Errorf("datastore unreachable: %w", err)
	}
	return nil
}

func (s *Session) loadAllLocked(ctx context.Context, resetCategory bool) error {
	snap, err := s.catalogs.Load(ctx, s.source)
	if err != nil {
		return err
	}
	s.store.Replace(snap)

	categories := s.store.Categories()
	if _, ok := s.store.Category(s.currentCategory); resetCategory || !ok {
		s.currentCategory = ""
		if len(categories) > 0 {
			s.currentCategory = categories[0].ID
		}
	}

	return s.loadSalesLocked(ctx)
}

// loadSalesLocked merges the datastore history into the local one. Local
// sales missing remotely are kept and counters only move forward. A failed
// read keeps local history as is.
func (s *Session) loadSalesLocked(ctx context.Context) error {
	headers, err := s.source.ReadRows(ctx, datastore.TableSales)
	var details [][]string
	if err == nil {
		details, err = s.source.ReadRows(ctx, datastore.TableSaleDetails)
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.WithError(err).Warn("Failed to load sales, keeping local history")
		return nil
	}

	remote := sale.Reconcile(headers, details, s.state.nextOrderNumber, s.state.lastDetailID)
	rec := sale.Merge(remote, s.state.history)
	s.state.history = rec.History
	s.state.nextOrderNumber = rec.NextOrderNumber
	s.state.lastDetailID = rec.LastDetailID
	s.persistLocked(ctx)

	s.logger.WithFields(logrus.Fields{
		"sales":        len(rec.History),
		"remote_sales": len(remote.History),
		"order_number": rec.NextOrderNumber,
	}).Info("Sales history loaded")
	return nil
}

func (s *Session) persistLocked(ctx context.Context) {
	if err := savePersisted(ctx, s.kv, s.state); err != nil {
		s.logger.WithError(err).Error("Failed to persist local state")
	}
}

// SelectCategory switches the product grid to another category
func (s *Session) SelectCategory(id string) error {
	id = strings.ToLower(strings.TrimSpace(id))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Category(id); !ok {
		return ErrUnknownCategory
	}
	s.currentCategory = id
	return nil
}

// SelectProduct adds a product to the cart, or parks it until a side is
// chosen when it needs one and sides exist
func (s *Session) SelectProduct(productID int) (SelectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.confirmed != nil {
		return SelectResult{}, ErrAwaitingAck
	}
	p, ok := s.store.FindProduct(productID)
	if !ok {
		return SelectResult{}, ErrUnknownProduct
	}
	if p.HasSide && len(s.store.Sides()) > 0 {
		s.pending = &p
		return SelectResult{Pending: true, Product: p}, nil
	}

	line := s.ledger.Add(p, nil, "")
	return SelectResult{Product: p, Line: &line}, nil
}

// SelectSide adds the pending product with the chosen side
func (s *Session) SelectSide(sideID int) (cart.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return cart.Line{}, ErrNoPendingProduct
	}
	side, ok := s.store.FindSide(sideID)
	if !ok {
		return cart.Line{}, ErrUnknownSide
	}

	id := side.ID
	line := s.ledger.Add(*s.pending, &id, side.Name)
	s.pending = nil
	return line, nil
}

// CancelSide drops the pending product
func (s *Session) CancelSide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// AdjustLine changes a line quantity by delta
func (s *Session) AdjustLine(key string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.confirmed != nil {
		return ErrAwaitingAck
	}
	return s.ledger.ChangeQuantity(key, delta)
}

// RemoveLine deletes a cart line
func (s *Session) RemoveLine(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.confirmed != nil {
		return ErrAwaitingAck
	}
	s.ledger.Remove(key)
	return nil
}

// ClearCart empties the cart and the payment input
func (s *Session) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.confirmed != nil {
		return ErrAwaitingAck
	}
	s.ledger.Clear()
	s.received = nil
	return nil
}

// QuotePayment records the received amount and returns change or shortfall.
// With exact set the received amount equals the cart total.
func (s *Session) QuotePayment(received decimal.Decimal, exact bool) (sale.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.confirmed != nil {
		return sale.Quote{}, ErrAwaitingAck
	}
	if s.ledger.IsEmpty() {
		return sale.Quote{}, sale.ErrEmptyCart
	}

	total := s.ledger.Total()
	if exact {
		received = total
	}
	if received.IsNegative() {
		received = decimal.Zero
	}
	s.received = &received
	return sale.NewQuote(total, received), nil
}

// CancelPayment closes the payment input without selling
func (s *Session) CancelPayment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = nil
}

// Confirm records the sale locally, advances the order number and mirrors
// the sale to the datastore when connected. A mirroring failure never undoes
// the local sale; it is reported through the sync status.
func (s *Session) Confirm(ctx context.Context) (Confirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.confirmed != nil {
		return Confirmation{}, ErrAwaitingAck
	}
	if s.received == nil {
		return Confirmation{}, ErrPaymentNotOpen
	}
	if s.ledger.IsEmpty() {
		return Confirmation{}, sale.ErrEmptyCart
	}
	if s.received.LessThan(s.ledger.Total()) {
		return Confirmation{}, sale.ErrInsufficientPayment
	}

	sl, err := s.recorder.Finalize(s.state.nextOrderNumber, s.ledger.Lines(), *s.received, s.email)
	if err != nil {
		return Confirmation{}, err
	}

	s.state.history = append(s.state.history, *sl)
	s.state.nextOrderNumber++
	s.persistLocked(ctx)

	status := SyncLocal
	if s.connected {
		status = SyncCloud
		if err := s.mirrorLocked(ctx, sl); err != nil {
			s.logger.WithError(err).WithField("order_number", sl.OrderNumber).Warn("Sale saved locally only")
			status = SyncCloudFailed
		}
		s.persistLocked(ctx)
	}

	s.received = nil
	conf := Confirmation{
		Sale:   *sl,
		Ticket: sale.NewTicket(sl, s.cfg.POS.BusinessName, s.cfg.POS.CurrencySymbol),
		Status: status,
	}
	s.confirmed = &conf

	s.logger.WithFields(logrus.Fields{
		"order_number": sl.OrderNumber,
		"total":        sl.Total.StringFixed(2),
		"items":        sl.ItemCount(),
		"sync_status":  status,
	}).Info("Sale confirmed")

	return conf, nil
}

// mirrorLocked appends the header row and then the detail rows. Detail ids
// are consumed once the header is stored.
func (s *Session) mirrorLocked(ctx context.Context, sl *sale.Sale) error {
	header := sale.HeaderRow(sl, s.cashier(), s.recorder.Now())
	if err := s.source.AppendRows(ctx, datastore.TableSales, [][]string{header}); err != nil {
		return fmt.Errorf("failed to append sale: %w", err)
	}

	rows, last := sale.DetailRows(sl, s.state.lastDetailID)
	s.state.lastDetailID = last
	if len(rows) == 0 {
		return nil
	}
	if err := s.source.AppendRows(ctx, datastore.TableSaleDetails, rows); err != nil {
		return fmt.Errorf("failed to append sale details: %w", err)
	}
	return nil
}

func (s *Session) cashier() string {
	if s.email != "" {
		return s.email
	}
	return s.cfg.Datastore.DefaultCashier
}

// Acknowledge closes the confirmation and starts a new empty cart
func (s *Session) Acknowledge() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.confirmed == nil {
		return ErrNothingToAck
	}
	s.ledger.Clear()
	s.received = nil
	s.confirmed = nil
	return nil
}

// CloseShift checks the supervisor PIN, summarises the sales since the shift
// started and starts a new shift. The report e-mail is best-effort.
func (s *Session) CloseShift(ctx context.Context, pin string) (ShiftClosure, error) {
	if err := s.pin.Check(pin); err != nil {
		return ShiftClosure{}, err
	}

	s.mu.Lock()
	end := s.recorder.Now().UTC()
	if err := saveShiftStart(ctx, s.kv, end); err != nil {
		s.mu.Unlock()
		return ShiftClosure{}, err
	}
	summary := analytics.Shift(s.state.history, s.state.shiftStart, end)
	s.state.shiftStart = end
	daily := analytics.Daily(s.state.history, s.recorder.FormatDate(end))
	top := s.stats.TopSelling(s.state.history, s.store.Categories())
	cashier := s.email
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"orders": summary.Orders,
		"total":  summary.Total.StringFixed(2),
	}).Info("Shift closed")

	closure := ShiftClosure{Summary: summary, NewShiftStart: end}
	if s.reporter != nil && s.reporter.Enabled() {
		if err := s.reporter.SendShiftReport(ctx, summary, daily, top, cashier); err != nil {
			s.logger.WithError(err).Warn("Failed to send shift report")
		} else {
			closure.Emailed = true
		}
	}
	return closure, nil
}

// Dashboard is the statistics screen plus the summary panel
type Dashboard struct {
	analytics.Dashboard
	LastSale analytics.LastSale     `json:"last_sale"`
	Shift    analytics.ShiftSummary `json:"shift"`
}

// Dashboard recomputes all statistics from the history
func (s *Session) Dashboard() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Dashboard{
		Dashboard: s.stats.Dashboard(s.state.history, s.store.Categories()),
		LastSale:  analytics.Last(s.state.history),
		Shift:     analytics.Shift(s.state.history, s.state.shiftStart, s.recorder.Now().UTC()),
	}
}

// DailyReport summarises the sales shown with today's date
func (s *Session) DailyReport() analytics.DailyReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	return analytics.Daily(s.state.history, s.recorder.FormatDate(s.recorder.Now()))
}

// TopSelling returns the short product ranking
func (s *Session) TopSelling() []analytics.ProductRank {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stats.TopSelling(s.state.history, s.store.Categories())
}

// ExportCSV writes the history as CSV and returns the download file name
func (s *Session) ExportCSV(w io.Writer) (string, error) {
	s.mu.Lock()
	history := append([]sale.Sale(nil), s.state.history...)
	now := s.recorder.Now()
	s.mu.Unlock()

	if err := sale.ExportCSV(w, history); err != nil {
		return "", fmt.Errorf("failed to export sales: %w", err)
	}
	return sale.ExportFilename(now.UTC().Format("2006-01-02")), nil
}

// Ticket builds the receipt of a recorded sale
func (s *Session) Ticket(orderNumber int) (sale.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.state.history) - 1; i >= 0; i-- {
		if s.state.history[i].OrderNumber == orderNumber {
			sl := s.state.history[i]
			return sale.NewTicket(&sl, s.cfg.POS.BusinessName, s.cfg.POS.CurrencySymbol), nil
		}
	}
	return sale.Ticket{}, ErrSaleNotFound
}

// Catalog returns the loaded catalog snapshot with categories sorted
func (s *Session) Catalog() catalog.Snapshot {
	snap := *s.store.Snapshot()
	snap.Categories = catalog.SortedCategories(snap.Categories)
	return snap
}

// SessionID is the id embedded in issued tokens; empty when disconnected
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Connected reports whether a datastore credential is active
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Probe checks the datastore without taking part in the command sequence
func (s *Session) Probe(ctx context.Context) error {
	s.mu.Lock()
	src := s.source
	s.mu.Unlock()

	if src == nil {
		return ErrNotConnected
	}
	return src.Probe(ctx)
}
