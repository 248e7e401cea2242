package recycling

import (
	"context"
	"fmt"

	"recyloop/pkg/types"

	"github.com/go-redis/redis/v8"
)

// Aggregates reports the total declared amount per eligible profile type.
// Amounts are summed at the document level; profile types with no forms
// report zero.
func (o *Orchestrator) Aggregates(ctx context.Context) (*types.AggregateReport, error) {
	recycler, err := o.aggregateFor(ctx, types.ProfileTypeRecycler)
	if err != nil {
		return nil, err
	}

	wasteGenerator, err := o.aggregateFor(ctx, types.ProfileTypeWasteGenerator)
	if err != nil {
		return nil, err
	}

	return &types.AggregateReport{
		Recycler:       recycler,
		WasteGenerator: wasteGenerator,
	}, nil
}

// aggregateFor serves the total from the cache when possible and falls back
// to the document sum query. Cache failures only log; reads never fail on
// the cache's account.
func (o *Orchestrator) aggregateFor(ctx context.Context, profileType types.ProfileType) (float64, error) {
	key := aggregateCacheKey(profileType)

	if o.cache != nil {
		total, err := o.cache.Get(ctx, key).Float64()
		if err == nil {
			return total, nil
		}
		if err != redis.Nil {
			o.logger.WithError(err).WithField("profile_type", profileType).Warn("aggregate cache read failed")
		}
	}

	total, err := o.documents.SumAmountByProfileType(ctx, profileType)
	if err != nil {
		return 0, err
	}

	if o.cache != nil {
		if err := o.cache.Set(ctx, key, total, o.cacheTTL).Err(); err != nil {
			o.logger.WithError(err).WithField("profile_type", profileType).Warn("aggregate cache write failed")
		}
	}

	return total, nil
}

func (o *Orchestrator) invalidateAggregate(ctx context.Context, profileType types.ProfileType) {
	if o.cache == nil {
		return
	}

	if err := o.cache.Del(ctx, aggregateCacheKey(profileType)).Err(); err != nil {
		o.logger.WithError(err).WithField("profile_type", profileType).Warn("aggregate cache invalidation failed")
	}
}

func aggregateCacheKey(profileType types.ProfileType) string {
	return fmt.Sprintf("aggregate:%s", profileType)
}
