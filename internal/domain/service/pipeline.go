package service

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"
)

// Pipeline runs its stages in order, each one finishing before the next starts.
// A Pipeline holds no table between runs; callers must not share one table
// between concurrent runs.
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates the build_features -> compute_scores -> flag_suspicious pipeline.
func NewPipeline(builder *FeatureBuilder, scorer *RiskScorer, flagger *TransactionFlagger) *Pipeline {
	return &Pipeline{stages: []Stage{builder, scorer, flagger}}
}

// Stages returns the stages in execution order.
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// Run passes the table through every stage and returns the annotated table.
func (p *Pipeline) Run(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	var err error
	for _, stage := range p.stages {
		df, err = stage.Apply(df)
		if err != nil {
			return df, fmt.Errorf("risk pipeline: %w", err)
		}
	}
	return df, nil
}

// Threshold returns the band the pipeline's flagger marks as suspicious, or
// the zero band when the pipeline has no flagger.
func (p *Pipeline) Threshold() valueobject.RiskBand {
	for _, stage := range p.stages {
		if f, ok := stage.(*TransactionFlagger); ok {
			return f.Threshold()
		}
	}
	return valueobject.RiskBand{}
}
