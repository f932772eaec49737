package scheduler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/valuebot/internal/analysis"
	"github.com/omarshaarawi/valuebot/internal/api/source"
	"github.com/omarshaarawi/valuebot/internal/config"
	"github.com/omarshaarawi/valuebot/internal/models"
	"github.com/omarshaarawi/valuebot/internal/repository/memory"
	"github.com/omarshaarawi/valuebot/internal/service"
)

const playersCSV = `name,position,height,weight,feature_1,feature_2,feature_3,actual_salary,predicted_salary
Patrick Mahomes,QB,75,225,66,4200,30,45,52
`

var testSchedule = config.Schedule{
	ReloadCron: "0 6 * * *",
	ReportCron: "30 7 * * 2",
	Timezone:   "America/Chicago",
}

func newTestService(t *testing.T) *service.ValuationService {
	t.Helper()
	p := filepath.Join(t.TempDir(), "players.csv")
	require.NoError(t, os.WriteFile(p, []byte(playersCSV), 0o644))

	loader := source.NewLoader(source.NewClient(), config.Data{Source: p, SyntheticCount: 30})
	return service.NewValuationService(loader, memory.NewRepository(), analysis.DefaultFeatureConfig())
}

func TestStartRegistersJobs(t *testing.T) {
	svc := newTestService(t)

	withoutBot, err := NewScheduler(testSchedule, svc, nil)
	require.NoError(t, err)
	require.NoError(t, withoutBot.Start())
	assert.Len(t, withoutBot.s.Jobs(), 1)
	require.NoError(t, withoutBot.Stop())

	withBot, err := NewScheduler(testSchedule, svc, func(string) error { return nil })
	require.NoError(t, err)
	require.NoError(t, withBot.Start())
	assert.Len(t, withBot.s.Jobs(), 2)
	require.NoError(t, withBot.Stop())
}

func TestUnknownTimezoneFallsBackToUTC(t *testing.T) {
	svc := newTestService(t)
	cfg := testSchedule
	cfg.Timezone = "Mars/Olympus"

	s, err := NewScheduler(cfg, svc, nil)
	require.NoError(t, err)
	assert.NotNil(t, s.s)
}

func TestJobTasks(t *testing.T) {
	svc := newTestService(t)

	var sent []string
	s, err := NewScheduler(testSchedule, svc, func(text string) error {
		sent = append(sent, text)
		return nil
	})
	require.NoError(t, err)

	s.reload()
	assert.Equal(t, models.OriginSource, svc.Dataset().Origin)

	s.sendUndervalued()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "Patrick Mahomes")
}
