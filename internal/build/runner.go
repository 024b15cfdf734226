package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docgallery/internal/logfields"
	"git.home.luguber.info/inful/docgallery/internal/metrics"
)

// runStages executes stages in order, recording timing and stopping on the
// first fatal or canceled stage. Warning stages are recorded and the build
// continues.
func runStages(ctx context.Context, bs *State, stages []StageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := NewCanceledStageError(st.Name, err)
			bs.recordStage(st.Name, 0, se)
			return se
		}

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)

		se := classifyStageError(st.Name, err)
		bs.recordStage(st.Name, dur, se)
		if se == nil {
			continue
		}
		if se.Kind == StageErrorWarning {
			bs.Logger.Warn("Stage finished with warnings", logfields.Stage(string(st.Name)), logfields.Error(se.Err))
			bs.Report.Warn(se.Error())
			continue
		}
		return se
	}
	return nil
}

func (bs *State) recordStage(name StageName, dur time.Duration, se *StageError) {
	result := StageResultSuccess
	if se != nil {
		result = se.result()
	}
	bs.Report.recordStage(name, dur, result)
	bs.Metrics.ObserveStageDuration(string(name), dur)
	bs.Metrics.IncStageResult(string(name), metrics.ResultLabel(result))
	bs.Logger.Debug("Stage complete",
		logfields.Stage(string(name)),
		logfields.DurationMS(float64(dur.Microseconds())/1000),
		logfields.BuildID(bs.Report.BuildID),
	)
}
