package ops

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ajitpratap0/strata/pkg/logger"
	"github.com/ajitpratap0/strata/pkg/metrics"
	"github.com/ajitpratap0/strata/pkg/observability"
)

// Pass names, used for spans, metrics and logs.
const (
	OpArgSort         = "argsort"
	OpParallelArgSort = "parallel_argsort"
	OpDistinct        = "distinct"
	OpGroupOffsets    = "group_offsets"
	OpMergeJoin       = "merge_join"
)

// pass ties together the span, the metrics timer and the logger of one
// algorithmic pass.
type pass struct {
	op    string
	rows  int
	span  *observability.Span
	timer *metrics.Timer
	log   *zap.Logger
}

func startPass(ctx context.Context, op string, rows int) (context.Context, *pass) {
	if _, ok := ctx.Value(logger.PassIDKey).(string); !ok {
		ctx = context.WithValue(ctx, logger.PassIDKey, uuid.NewString())
	}
	ctx, span := observability.StartPass(ctx, op, rows)
	p := &pass{
		op:    op,
		rows:  rows,
		span:  span,
		timer: metrics.NewTimer(op),
		log:   logger.WithContext(ctx).With(zap.String("op", op)),
	}
	p.log.Debug("pass started", zap.Int("rows", rows))
	return ctx, p
}

func (p *pass) finish(err error) {
	p.span.End(err)
	if err != nil {
		p.log.Warn("pass failed", zap.Int("rows", p.rows), zap.Error(err))
		return
	}
	elapsed := p.timer.ObserveRows(p.rows)
	p.log.Debug("pass finished", zap.Int("rows", p.rows), zap.Duration("duration", elapsed))
}
