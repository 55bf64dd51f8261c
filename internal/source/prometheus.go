package source

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/sensordonut/sensordonut/internal/config"
	"github.com/sensordonut/sensordonut/pkg/types"
)

type promSource struct {
	src    config.Source
	client *http.Client
	now    func() time.Time
}

func (s *promSource) ID() string { return s.src.ID }

// Fetch scrapes the exposition endpoint. With metric mappings configured
// only the mapped families are returned, each under its mapped entity id;
// a mapped family absent from the scrape is skipped. Without mappings every
// family is returned under its own name, sorted by name.
func (s *promSource) Fetch(ctx context.Context) ([]types.LiveValue, error) {
	mfs, err := fetchMetrics(ctx, s.client, s.src.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("prometheus %q: %w", s.src.ID, err)
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	ts := now().UTC()

	if len(s.src.Metrics) == 0 {
		names := make([]string, 0, len(mfs))
		for name := range mfs {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]types.LiveValue, 0, len(names))
		for _, name := range names {
			out = append(out, metricValue(name, name, "", sumFamily(mfs[name]), ts))
		}
		return out, nil
	}

	out := make([]types.LiveValue, 0, len(s.src.Metrics))
	for _, m := range s.src.Metrics {
		mf, ok := mfs[m.Name]
		if !ok {
			continue
		}
		out = append(out, metricValue(m.EntityID(), m.Name, m.Unit, sumFamily(mf), ts))
	}
	return out, nil
}

func metricValue(entityID, metric, unit string, v float64, ts time.Time) types.LiveValue {
	return types.LiveValue{
		EntityID:          entityID,
		State:             formatState(v),
		UnitOfMeasurement: unit,
		FriendlyName:      metric,
		LastUpdated:       ts,
	}
}

func formatState(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
