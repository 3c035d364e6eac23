package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WayPool/ElysiumBOT-sub001/internal/config"
	"github.com/WayPool/ElysiumBOT-sub001/internal/shared/testutil"
	"github.com/WayPool/ElysiumBOT-sub001/internal/tradeimport"
)

func newTestImportService(t *testing.T, slots int64) (*ImportService, *testutil.BufferedSlogHandler) {
	t.Helper()

	logger, handler := testutil.NewTestLogger(t)
	engine := tradeimport.New(config.DefaultImport(), logger)
	return NewImportService(engine, slots, logger), handler
}

// gatedReader blocks its first Read until release is closed
type gatedReader struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
	r       io.Reader
}

func (g *gatedReader) Read(p []byte) (int, error) {
	g.once.Do(func() {
		close(g.started)
		<-g.release
	})
	return g.r.Read(p)
}

func TestImportServiceValidate(t *testing.T) {
	svc, _ := newTestImportService(t, 2)
	body := testutil.BalanceScenarioCSV

	res, err := svc.Validate(context.Background(), "history.csv", int64(len(body)), strings.NewReader(body))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Report.Valid)
	assert.Equal(t, tradeimport.SourceUpload, res.Source)
	assert.Equal(t, ImportStats{Capacity: 2, InFlight: 0}, svc.Stats())
}

func TestImportServiceInvalidReportIsNotAnError(t *testing.T) {
	svc, _ := newTestImportService(t, 1)
	body := testutil.DuplicateTicketCSV

	res, err := svc.Validate(context.Background(), "dup.csv", int64(len(body)), strings.NewReader(body))
	require.NoError(t, err)
	assert.False(t, res.Report.Valid)
	assert.NotEmpty(t, res.Report.Errors)
}

func TestImportServiceCapacity(t *testing.T) {
	svc, handler := newTestImportService(t, 1)
	body := testutil.BalanceScenarioCSV

	gate := &gatedReader{
		started: make(chan struct{}),
		release: make(chan struct{}),
		r:       strings.NewReader(body),
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		res, err := svc.Validate(context.Background(), "slow.csv", int64(len(body)), gate)
		assert.NoError(t, err)
		assert.True(t, res.Report.Valid)
	}()

	<-gate.started
	assert.Equal(t, int64(1), svc.Stats().InFlight)

	_, err := svc.Validate(context.Background(), "fast.csv", int64(len(body)), strings.NewReader(body))
	assert.ErrorIs(t, err, ErrImportCapacity)
	testutil.AssertLogContains(t, handler, slog.LevelWarn, "import rejected, no free slot")

	close(gate.release)
	wg.Wait()
	assert.Equal(t, int64(0), svc.Stats().InFlight)

	res, err := svc.Validate(context.Background(), "again.csv", int64(len(body)), strings.NewReader(body))
	require.NoError(t, err)
	assert.True(t, res.Report.Valid)
}

func TestImportServiceWithoutEngine(t *testing.T) {
	svc := NewImportService(nil, 0, nil)

	_, err := svc.Validate(context.Background(), "x.csv", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNoEngine)
	assert.Equal(t, int64(1), svc.Stats().Capacity)
}
