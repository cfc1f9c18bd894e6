package http

import (
	"context"
	"time"

	"github.com/MKhiriev/glory-keeper/internal/service"
	"github.com/MKhiriev/glory-keeper/models"
)

// ─────────────────────────────────────────────
// hand-written service fakes
// ─────────────────────────────────────────────

type mockAccountService struct {
	addFn    func(ctx context.Context, acc models.NewAccount) (models.Account, error)
	getFn    func(ctx context.Context, id string) (models.Account, error)
	listFn   func(ctx context.Context) ([]models.Account, error)
	updateFn func(ctx context.Context, id, clanRef string) (models.Account, error)
}

func (m *mockAccountService) Add(ctx context.Context, acc models.NewAccount) (models.Account, error) {
	return m.addFn(ctx, acc)
}

func (m *mockAccountService) Get(ctx context.Context, id string) (models.Account, error) {
	return m.getFn(ctx, id)
}

func (m *mockAccountService) List(ctx context.Context) ([]models.Account, error) {
	return m.listFn(ctx)
}

func (m *mockAccountService) Update(ctx context.Context, id, clanRef string) (models.Account, error) {
	return m.updateFn(ctx, id, clanRef)
}

type mockFarmingService struct {
	service.FarmingService

	startFn    func(ctx context.Context, id string) (models.Account, error)
	stopFn     func(ctx context.Context, id string) (models.Account, error)
	resetFn    func(ctx context.Context, id string) (models.Account, error)
	deleteFn   func(ctx context.Context, id string) error
	startAllFn func(ctx context.Context) (models.StartAllResult, error)
	workers    int
}

func (m *mockFarmingService) Start(ctx context.Context, id string) (models.Account, error) {
	return m.startFn(ctx, id)
}

func (m *mockFarmingService) Stop(ctx context.Context, id string) (models.Account, error) {
	return m.stopFn(ctx, id)
}

func (m *mockFarmingService) Reset(ctx context.Context, id string) (models.Account, error) {
	return m.resetFn(ctx, id)
}

func (m *mockFarmingService) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockFarmingService) StartAll(ctx context.Context) (models.StartAllResult, error) {
	return m.startAllFn(ctx)
}

func (m *mockFarmingService) ActiveWorkers() int {
	return m.workers
}

type mockInviteService struct {
	got models.InviteRequest
	res models.BatchResult
	err error
}

func (m *mockInviteService) DispatchInvites(_ context.Context, req models.InviteRequest) (models.BatchResult, error) {
	m.got = req
	return m.res, m.err
}

type mockSyncService struct {
	report models.SyncReport
	err    error
}

func (m *mockSyncService) Reconcile(context.Context) (models.SyncReport, error) {
	return m.report, m.err
}

func (m *mockSyncService) LastSyncAt() *time.Time { return nil }

type mockStatsService struct {
	active   int
	today    int64
	snapshot models.Stats
	err      error
}

func (m *mockStatsService) ActiveCount(context.Context) (int, error) { return m.active, m.err }
func (m *mockStatsService) TodayGlory(context.Context) (int64, error) { return m.today, m.err }
func (m *mockStatsService) Refresh(context.Context) error             { return nil }
func (m *mockStatsService) Snapshot() models.Stats                   { return m.snapshot }

type mockAppInfoService struct {
	info   models.AppBuildInfo
	health models.HealthResponse
}

func (m *mockAppInfoService) GetAppVersion(context.Context) models.AppBuildInfo {
	return m.info
}

func (m *mockAppInfoService) Health(context.Context) models.HealthResponse {
	return m.health
}
