package datasource

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"index-observer/src/helpers"
	"index-observer/src/interfaces"
	"index-observer/src/logger"
	"index-observer/src/models"

	"github.com/robfig/cron/v3"
)

// ReloadTimeout bounds one scheduled reload, retries included.
const ReloadTimeout = 5 * time.Minute

// Listener is told about every snapshot that goes live.
type Listener func(ds *models.MDataset)

// DatasetManager owns the live dataset snapshot. Readers take whatever
// snapshot is current; a reload builds a new one and swaps it in.
type DatasetManager struct {
	Source   interfaces.IDataSource
	Logger   *logger.Logger
	Recorder interfaces.IRecorder
	Errors   *helpers.ErrorHandler
	Retries  int

	current atomic.Pointer[models.MDataset]
	version atomic.Uint64

	reloadMu  sync.Mutex // one reload at a time so versions publish in order
	mu        sync.Mutex
	listeners []Listener
	cron      *cron.Cron
	cancel    context.CancelFunc
}

// -----------------------------------------------------------------------------

func NewDatasetManager(src interfaces.IDataSource, log *logger.Logger, rec interfaces.IRecorder, retries int) *DatasetManager {
	return &DatasetManager{
		Source:   src,
		Logger:   log,
		Recorder: rec,
		Errors:   helpers.NewErrorHandler(log),
		Retries:  retries,
	}
}

// -----------------------------------------------------------------------------

// Current returns the live snapshot, or nil before the first successful load.
func (m *DatasetManager) Current() *models.MDataset {
	return m.current.Load()
}

// -----------------------------------------------------------------------------

// Subscribe registers fn to run after each swap.
func (m *DatasetManager) Subscribe(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// -----------------------------------------------------------------------------

// Reload reads the source and publishes a new snapshot. On failure the
// previous snapshot stays live.
func (m *DatasetManager) Reload(ctx context.Context) (*models.MDataset, error) {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	var rows []models.MObservation
	err := m.Errors.ExecuteWithRetry(ctx, "load "+m.Source.Name(), m.Retries, func() error {
		var loadErr error
		rows, loadErr = m.Source.Load(ctx)
		return loadErr
	})
	if err == nil && len(rows) == 0 {
		err = helpers.NewDataSourceError(m.Source.Name(), helpers.ErrEmptyDataset)
	}
	if err != nil {
		m.record(false)
		return nil, err
	}

	ds := models.NewDataset(m.version.Add(1), m.Source.Name(), rows)
	m.current.Store(ds)
	m.record(true)
	if m.Recorder != nil {
		m.Recorder.SetDatasetRows(len(ds.Rows))
	}

	m.Logger.Info("Dataset v%d live: %d rows, %d indices from %s", ds.Version, len(ds.Rows), len(ds.Indices), ds.Source)

	m.mu.Lock()
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(ds)
	}

	return ds, nil
}

// -----------------------------------------------------------------------------

// Start schedules periodic reloads. An empty schedule disables them.
func (m *DatasetManager) Start(parentCtx context.Context, schedule string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cron != nil {
		return fmt.Errorf("DatasetManager is already running")
	}
	if schedule == "" {
		m.Logger.Info("Scheduled reload disabled")
		return nil
	}

	ctx, cancel := context.WithCancel(parentCtx)
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(schedule, func() { m.scheduledReload(ctx) }); err != nil {
		cancel()
		return helpers.NewConfigurationError(fmt.Sprintf("invalid reload schedule %q", schedule), err)
	}

	m.cron = c
	m.cancel = cancel
	c.Start()
	m.Logger.Info("Dataset reload scheduled: %s", schedule)

	return nil
}

// -----------------------------------------------------------------------------

// Stop cancels scheduled reloads and waits for a running one to finish.
func (m *DatasetManager) Stop() {
	m.mu.Lock()
	c, cancel := m.cron, m.cancel
	m.cron, m.cancel = nil, nil
	m.mu.Unlock()

	if c == nil {
		return
	}

	cancel()
	<-c.Stop().Done()
	m.Logger.Info("DatasetManager stopped")
}

// -----------------------------------------------------------------------------

func (m *DatasetManager) scheduledReload(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, ReloadTimeout)
	defer cancel()

	_, err := m.Reload(ctx)
	m.Errors.Handle(err, "scheduled reload")
}

// -----------------------------------------------------------------------------

func (m *DatasetManager) record(ok bool) {
	if m.Recorder != nil {
		m.Recorder.IncReload(ok)
	}
}
