package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/analytics"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/infrastructure/datastore"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"github.com/your-org/pos-backend/internal/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2025, 3, 7, 18, 4, 5, 0, time.UTC)

type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeKV) value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

type fakeSource struct {
	mu        sync.Mutex
	rows      map[datastore.Table][][]string
	appended  map[datastore.Table][][]string
	appendErr error
	probeErr  error
	schemaOK  bool
}

func (f *fakeSource) ReadRows(_ context.Context, t datastore.Table) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[t], nil
}

func (f *fakeSource) AppendRows(_ context.Context, t datastore.Table, rows [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended[t] = append(f.appended[t], rows...)
	return nil
}

func (f *fakeSource) EnsureSchema(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schemaOK = true
	return nil
}

func (f *fakeSource) Probe(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probeErr
}

func (f *fakeSource) setProbeErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probeErr = err
}

type fakeBackend struct {
	source  *fakeSource
	valid   string
	email   string
	revoked []string
}

func (b *fakeBackend) Open(_ context.Context, credential string) (datastore.Source, error) {
	if credential != b.valid {
		return &fakeSource{probeErr: datastore.ErrUnauthorized}, nil
	}
	return b.source, nil
}

func (b *fakeBackend) ResolveEmail(context.Context, string) (string, error) {
	return b.email, nil
}

func (b *fakeBackend) Revoke(_ context.Context, credential string) error {
	b.revoked = append(b.revoked, credential)
	return nil
}

type fakeReporter struct {
	sent    int
	summary analytics.ShiftSummary
	cashier string
}

func (r *fakeReporter) Enabled() bool { return true }

func (r *fakeReporter) SendShiftReport(_ context.Context, summary analytics.ShiftSummary, _ analytics.DailyReport, _ []analytics.ProductRank, cashier string) error {
	r.sent++
	r.summary = summary
	r.cashier = cashier
	return nil
}

func remoteRows() map[datastore.Table][][]string {
	return map[datastore.Table][][]string{
		datastore.TableCategories: {
			{"bebidas", "Bebidas", "🥤", "2", "TRUE"},
			{"milanesas", "Milanesas", "🥩", "1", "TRUE"},
		},
		datastore.TableProducts: {
			{"1", "Milanesa", "25", "milanesas", "TRUE", "TRUE"},
			{"2", "Gaseosa", "8", "bebidas", "FALSE", "TRUE"},
		},
		datastore.TableSides: {
			{"1", "Arroz", "1", "TRUE"},
			{"2", "Fideo", "2", "TRUE"},
		},
		datastore.TableSales: {
			{"3", "6/3/2025", "12:00:00", "33.00", "40.00", "7.00", "a@b.c", "2025-03-06T16:00:00.000Z"},
		},
		datastore.TableSaleDetails: {
			{"5", "3", "1", "Milanesa", "", "", "1", "25.00", "25.00", "milanesas"},
			{"6", "3", "2", "Gaseosa", "", "", "1", "8.00", "8.00", "bebidas"},
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Datastore: config.DatastoreConfig{DefaultCashier: "sistema"},
		POS: config.POSConfig{
			BusinessName:   "Pollos & Milanesas",
			CurrencySymbol: "Bs.",
			TimeZone:       "America/La_Paz",
			DateLayout:     "2/1/2006",
			TimeLayout:     "15:04:05",
		},
	}
}

type fixture struct {
	session *Session
	kv      *fakeKV
	backend *fakeBackend
	source  *fakeSource
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	src := &fakeSource{rows: remoteRows(), appended: map[datastore.Table][][]string{}}
	backend := &fakeBackend{source: src, valid: "good-token", email: "caja@example.com"}
	kv := newFakeKV()
	s := NewSession(cfg, kv, backend, logger.Discard()).WithClock(func() time.Time { return fixedNow })
	require.NoError(t, s.Restore(context.Background()))
	return &fixture{session: s, kv: kv, backend: backend, source: src}
}

func (f *fixture) connect(t *testing.T) ConnectResult {
	t.Helper()
	res, err := f.session.Connect(context.Background(), "good-token")
	require.NoError(t, err)
	return res
}

// fillCart builds Milanesa + Arroz x2 and Gaseosa x1 (Bs. 58.00)
func (f *fixture) fillCart(t *testing.T) {
	t.Helper()
	for i := 0; i < 2; i++ {
		res, err := f.session.SelectProduct(1)
		require.NoError(t, err)
		require.True(t, res.Pending)
		_, err = f.session.SelectSide(1)
		require.NoError(t, err)
	}
	res, err := f.session.SelectProduct(2)
	require.NoError(t, err)
	require.False(t, res.Pending)
	require.NotNil(t, res.Line)
}

func TestRestoreDefaults(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	v := f.session.View()

	assert.False(t, v.Connected)
	assert.Equal(t, "#0001", v.OrderLabel)
	assert.Empty(t, v.Categories)
	assert.Equal(t, "Conecta con Google para cargar el menú", v.EmptyMessage)
	assert.Equal(t, "14:04", v.ShiftStart)
	assert.False(t, v.LastSale.Present)

	stored, ok := f.kv.value(KeyShiftStart)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(stored, "2025-03-07T18:04:05"))
}

func TestRestoreCorruptHistory(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	kv.data[KeyOrderNumber] = "12"
	kv.data[KeySalesHistory] = "{not json"
	kv.data[KeyLastDetailID] = "40"
	kv.data[KeyShiftStart] = "2025-03-07T12:00:00Z"

	s := NewSession(testConfig(), kv, &fakeBackend{}, logger.Discard())
	require.NoError(t, s.Restore(context.Background()))

	assert.Equal(t, 12, s.state.nextOrderNumber)
	assert.Equal(t, 40, s.state.lastDetailID)
	assert.Empty(t, s.state.history)
	assert.Equal(t, time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC), s.state.shiftStart)
}

func TestConnectLoadsCatalogAndHistory(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	res := f.connect(t)

	assert.NotEmpty(t, res.SessionID)
	assert.Equal(t, "caja@example.com", res.Email)
	assert.Equal(t, 2, res.Categories)
	assert.Equal(t, 1, res.Sales)
	assert.Equal(t, res.SessionID, f.session.SessionID())

	v := f.session.View()
	assert.True(t, v.Connected)
	assert.Equal(t, "milanesas", v.CurrentCategory)
	require.Len(t, v.Categories, 2)
	assert.True(t, v.Categories[0].Active)
	assert.Equal(t, "🥩 Milanesas", v.Categories[0].Label)
	assert.Equal(t, "#0004", v.OrderLabel)
	assert.Equal(t, 6, f.session.state.lastDetailID)

	stored, ok := f.kv.value(KeyCredential)
	assert.True(t, ok)
	assert.Equal(t, "good-token", stored)
	order, _ := f.kv.value(KeyOrderNumber)
	assert.Equal(t, "4", order)
}

func TestConnectRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	_, err := f.session.Connect(context.Background(), "expired")
	assert.ErrorIs(t, err, datastore.ErrUnauthorized)
	assert.False(t, f.session.Connected())

	_, ok := f.kv.value(KeyCredential)
	assert.False(t, ok)

	_, err = f.session.Connect(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestRestoreReconnectsWithStoredCredential(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	res := f.connect(t)

	again := NewSession(testConfig(), f.kv, f.backend, logger.Discard())
	require.NoError(t, again.Restore(context.Background()))
	assert.True(t, again.Connected())
	assert.Equal(t, res.SessionID, again.SessionID())
}

func TestSaleFlow(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.connect(t)
	f.fillCart(t)

	v := f.session.View()
	require.Len(t, v.Cart.Lines, 2)
	assert.Equal(t, "1-1", v.Cart.Lines[0].Key)
	assert.Equal(t, 2, v.Cart.Lines[0].Quantity)
	assert.Equal(t, "Arroz", v.Cart.Lines[0].Side)
	assert.True(t, v.Cart.Total.Equal(decimal.RequireFromString("58")))
	assert.True(t, v.PayEnabled)

	_, err := f.session.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrPaymentNotOpen)

	q, err := f.session.QuotePayment(decimal.RequireFromString("50"), false)
	require.NoError(t, err)
	assert.False(t, q.Sufficient)
	assert.True(t, q.Shortfall.Equal(decimal.RequireFromString("8")))

	_, err = f.session.Confirm(context.Background())
	assert.ErrorIs(t, err, sale.ErrInsufficientPayment)

	q, err = f.session.QuotePayment(decimal.RequireFromString("60"), false)
	require.NoError(t, err)
	assert.True(t, q.Change.Equal(decimal.RequireFromString("2")))

	conf, err := f.session.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SyncCloud, conf.Status)
	assert.Equal(t, 4, conf.Sale.OrderNumber)
	assert.Equal(t, "7/3/2025", conf.Sale.Date)
	assert.Equal(t, "14:04:05", conf.Sale.Time)
	assert.Equal(t, "Bs. 2.00", conf.Ticket.Change)

	require.Len(t, f.source.appended[datastore.TableSales], 1)
	assert.Equal(t, []string{"4", "7/3/2025", "14:04:05", "58.00", "60.00", "2.00", "caja@example.com", "2025-03-07T18:04:05.000Z"},
		f.source.appended[datastore.TableSales][0])
	details := f.source.appended[datastore.TableSaleDetails]
	require.Len(t, details, 2)
	assert.Equal(t, "7", details[0][0])
	assert.Equal(t, "8", details[1][0])
	assert.Equal(t, 8, f.session.state.lastDetailID)

	order, _ := f.kv.value(KeyOrderNumber)
	assert.Equal(t, "5", order)
	lastDetail, _ := f.kv.value(KeyLastDetailID)
	assert.Equal(t, "8", lastDetail)

	// cart stays until the confirmation is acknowledged
	_, err = f.session.SelectProduct(2)
	assert.ErrorIs(t, err, ErrAwaitingAck)
	_, err = f.session.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrAwaitingAck)

	v = f.session.View()
	assert.NotNil(t, v.Confirmation)
	assert.False(t, v.PayEnabled)
	assert.Equal(t, "#0005", v.OrderLabel)
	assert.Equal(t, "#0004", v.LastSale.Label)

	require.NoError(t, f.session.Acknowledge())
	v = f.session.View()
	assert.True(t, v.Cart.Empty)
	assert.Nil(t, v.Payment)
	assert.ErrorIs(t, f.session.Acknowledge(), ErrNothingToAck)
}

func TestConfirmMirrorFailureKeepsLocalSale(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.connect(t)
	f.source.appendErr = errors.New("quota exceeded")
	f.fillCart(t)

	_, err := f.session.QuotePayment(decimal.Zero, true)
	require.NoError(t, err)
	conf, err := f.session.Confirm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SyncCloudFailed, conf.Status)
	assert.Len(t, f.session.state.history, 2)
	assert.Equal(t, 5, f.session.state.nextOrderNumber)
	assert.Equal(t, 6, f.session.state.lastDetailID)
}

func TestConfirmOfflineIsLocal(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.connect(t)
	f.fillCart(t)
	require.NoError(t, f.session.Disconnect(context.Background()))
	assert.Equal(t, []string{"good-token"}, f.backend.revoked)

	v := f.session.View()
	assert.Empty(t, v.Categories)
	assert.Len(t, v.Cart.Lines, 2)

	_, err := f.session.QuotePayment(decimal.RequireFromString("100"), false)
	require.NoError(t, err)
	conf, err := f.session.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SyncLocal, conf.Status)
	assert.Empty(t, conf.Sale.Cashier)
	assert.Empty(t, f.source.appended)
}

func TestSyncKeepsUnmirroredSales(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.connect(t)
	f.source.appendErr = errors.New("quota exceeded")
	f.fillCart(t)

	_, err := f.session.QuotePayment(decimal.Zero, true)
	require.NoError(t, err)
	conf, err := f.session.Confirm(context.Background())
	require.NoError(t, err)
	require.Equal(t, SyncCloudFailed, conf.Status)
	require.Equal(t, 4, conf.Sale.OrderNumber)
	require.NoError(t, f.session.Acknowledge())

	_, err = f.session.Sync(context.Background())
	require.NoError(t, err)

	require.Len(t, f.session.state.history, 2)
	assert.Equal(t, 3, f.session.state.history[0].OrderNumber)
	assert.Equal(t, 4, f.session.state.history[1].OrderNumber)
	assert.Equal(t, 5, f.session.state.nextOrderNumber)

	stored, errs := loadPersisted(context.Background(), f.kv)
	require.Empty(t, errs)
	require.Len(t, stored.history, 2)
	assert.Equal(t, 4, stored.history[1].OrderNumber)
	assert.Equal(t, 5, stored.nextOrderNumber)

	f.source.appendErr = nil
	f.fillCart(t)
	_, err = f.session.QuotePayment(decimal.Zero, true)
	require.NoError(t, err)
	conf, err = f.session.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, conf.Sale.OrderNumber)
}

func TestConnectKeepsOfflineSales(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.connect(t)
	f.fillCart(t)
	require.NoError(t, f.session.Disconnect(context.Background()))

	_, err := f.session.QuotePayment(decimal.RequireFromString("100"), false)
	require.NoError(t, err)
	conf, err := f.session.Confirm(context.Background())
	require.NoError(t, err)
	require.Equal(t, SyncLocal, conf.Status)
	require.Equal(t, 4, conf.Sale.OrderNumber)
	require.NoError(t, f.session.Acknowledge())

	res := f.connect(t)
	assert.Equal(t, 2, res.Sales)
	assert.Len(t, f.session.state.history, 2)

	v := f.session.View()
	assert.Equal(t, "#0005", v.OrderLabel)
	assert.Equal(t, "#0004", v.LastSale.Label)

	order, _ := f.kv.value(KeyOrderNumber)
	assert.Equal(t, "5", order)
}

func TestSyncNeverRewindsCounters(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.connect(t)
	f.fillCart(t)
	_, err := f.session.QuotePayment(decimal.Zero, true)
	require.NoError(t, err)
	_, err = f.session.Confirm(context.Background())
	require.NoError(t, err)
	require.NoError(t, f.session.Acknowledge())
	require.Equal(t, 8, f.session.state.lastDetailID)

	// the fake datastore does not echo appended rows, so it still ends at detail 6
	_, err = f.session.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, f.session.state.nextOrderNumber)
	assert.Equal(t, 8, f.session.state.lastDetailID)
	lastDetail, _ := f.kv.value(KeyLastDetailID)
	assert.Equal(t, "8", lastDetail)
}

func TestSideSelection(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.connect(t)

	_, err := f.session.SelectSide(1)
	assert.ErrorIs(t, err, ErrNoPendingProduct)

	_, err = f.session.SelectProduct(99)
	assert.ErrorIs(t, err, ErrUnknownProduct)

	res, err := f.session.SelectProduct(1)
	require.NoError(t, err)
	require.True(t, res.Pending)

	v := f.session.View()
	require.NotNil(t, v.PendingSide)
	assert.Equal(t, "Milanesa", v.PendingSide.Product.Name)
	assert.Len(t, v.PendingSide.Options, 2)

	_, err = f.session.SelectSide(42)
	assert.ErrorIs(t, err, ErrUnknownSide)

	f.session.CancelSide()
	assert.Nil(t, f.session.View().PendingSide)
	assert.True(t, f.session.View().Cart.Empty)
}

func TestCartCommands(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.connect(t)
	f.fillCart(t)

	require.NoError(t, f.session.AdjustLine("2", 1))
	assert.ErrorIs(t, f.session.AdjustLine("nope", 1), cart.ErrLineNotFound)
	require.NoError(t, f.session.AdjustLine("1-1", -2))
	v := f.session.View()
	require.Len(t, v.Cart.Lines, 1)
	assert.Equal(t, 2, v.Cart.Lines[0].Quantity)

	require.NoError(t, f.session.RemoveLine("2"))
	require.NoError(t, f.session.RemoveLine("2"))
	assert.True(t, f.session.View().Cart.Empty)

	_, err := f.session.QuotePayment(decimal.RequireFromString("10"), false)
	assert.ErrorIs(t, err, sale.ErrEmptyCart)

	f.fillCart(t)
	_, err = f.session.QuotePayment(decimal.RequireFromString("10"), false)
	require.NoError(t, err)
	require.NoError(t, f.session.ClearCart())
	v = f.session.View()
	assert.True(t, v.Cart.Empty)
	assert.Nil(t, v.Payment)
}

func TestCartChangesAreLogged(t *testing.T) {
	t.Parallel()

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	f := newFixture(t, nil)
	f.session.logger = log
	f.connect(t)
	hook.Reset()

	_, err := f.session.SelectProduct(2)
	require.NoError(t, err)
	_, err = f.session.SelectProduct(2)
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Cart changed", entry.Message)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, 1, entry.Data["lines"])
	assert.Equal(t, 2, entry.Data["items"])
	assert.Equal(t, "16.00", entry.Data["total"])

	require.NoError(t, f.session.ClearCart())
	assert.Equal(t, 0, hook.LastEntry().Data["items"])
}

func TestSelectCategory(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.connect(t)

	require.NoError(t, f.session.SelectCategory(" Bebidas "))
	v := f.session.View()
	assert.Equal(t, "bebidas", v.CurrentCategory)
	require.Len(t, v.Products, 1)
	assert.Equal(t, "Gaseosa", v.Products[0].Name)

	assert.ErrorIs(t, f.session.SelectCategory("postres"), ErrUnknownCategory)
}

func TestSyncKeepsCategoryAndForcesLogout(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.connect(t)
	require.NoError(t, f.session.SelectCategory("bebidas"))

	res, err := f.session.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Categories)
	assert.Equal(t, "bebidas", f.session.View().CurrentCategory)

	f.source.setProbeErr(datastore.ErrUnauthorized)
	_, err = f.session.Sync(context.Background())
	assert.ErrorIs(t, err, datastore.ErrUnauthorized)

	v := f.session.View()
	assert.False(t, v.Connected)
	assert.Empty(t, v.Categories)
	assert.True(t, v.LastSale.Present)
	assert.Len(t, f.session.state.history, 1)
	assert.Empty(t, f.session.SessionID())

	_, ok := f.kv.value(KeyCredential)
	assert.False(t, ok)

	_, err = f.session.Sync(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestSetupSchema(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	assert.ErrorIs(t, f.session.SetupSchema(context.Background()), ErrNotConnected)

	f.connect(t)
	require.NoError(t, f.session.SetupSchema(context.Background()))
	assert.True(t, f.source.schemaOK)
}

func TestCloseShift(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := testConfig()
	cfg.Security.ShiftClosePINHash = string(hash)

	f := newFixture(t, cfg)
	reporter := &fakeReporter{}
	f.session.WithShiftReporter(reporter)
	f.connect(t)

	f.fillCart(t)
	_, err = f.session.QuotePayment(decimal.Zero, true)
	require.NoError(t, err)
	_, err = f.session.Confirm(context.Background())
	require.NoError(t, err)

	_, err = f.session.CloseShift(context.Background(), "0000")
	assert.ErrorIs(t, err, auth.ErrInvalidPIN)

	closure, err := f.session.CloseShift(context.Background(), "4321")
	require.NoError(t, err)
	// the sale of 6/3 predates the shift start restored at 7/3 18:04:05
	assert.Equal(t, 1, closure.Summary.Orders)
	assert.True(t, closure.Summary.Total.Equal(decimal.RequireFromString("58")))
	assert.True(t, closure.Emailed)
	assert.Equal(t, 1, reporter.sent)
	assert.Equal(t, "caja@example.com", reporter.cashier)
	assert.True(t, fixedNow.Equal(closure.NewShiftStart))
}

func TestReports(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.connect(t)
	f.fillCart(t)
	_, err := f.session.QuotePayment(decimal.Zero, true)
	require.NoError(t, err)
	_, err = f.session.Confirm(context.Background())
	require.NoError(t, err)

	dash := f.session.Dashboard()
	assert.Equal(t, 2, dash.Summary.TotalOrders)
	assert.True(t, dash.Summary.TotalRevenue.Equal(decimal.RequireFromString("91")))
	assert.True(t, dash.LastSale.Present)
	assert.Equal(t, 1, dash.Shift.Orders)

	daily := f.session.DailyReport()
	assert.Equal(t, "7/3/2025", daily.Date)
	assert.Equal(t, 1, daily.Orders)

	top := f.session.TopSelling()
	require.NotEmpty(t, top)
	assert.Equal(t, "Milanesa", top[0].Name)
	assert.Equal(t, 3, top[0].Quantity)

	var buf bytes.Buffer
	name, err := f.session.ExportCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, "ventas_2025-03-07.csv", name)
	assert.Contains(t, buf.String(), "Milanesa + Arroz x2")

	ticket, err := f.session.Ticket(4)
	require.NoError(t, err)
	assert.Equal(t, "#0004", ticket.Number)
	_, err = f.session.Ticket(99)
	assert.ErrorIs(t, err, ErrSaleNotFound)
}
