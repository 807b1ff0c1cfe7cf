// Package cache persists the per-image human-vs-human multimatch baseline so
// it is computed once per dataset.
package cache

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/vsbench/scanpath-eval/internal/alignment"
)

// BaselineFile is the name of the baseline cache inside a dataset results
// directory.
const BaselineFile = "multimatch_human_mean_per_image.json"

type Baseline map[string]alignment.Vector

// BaselineStore loads and saves a dataset's baseline. Load reports found=false
// when nothing has been stored yet.
type BaselineStore interface {
	Load(ctx context.Context) (baseline Baseline, found bool, err error)
	Save(ctx context.Context, baseline Baseline) error
}

func encode(baseline Baseline) ([]byte, error) {
	data, err := sonic.ConfigStd.MarshalIndent(baseline, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode baseline: %w", err)
	}
	return data, nil
}

func decode(data []byte) (Baseline, error) {
	var baseline Baseline
	if err := sonic.Unmarshal(data, &baseline); err != nil {
		return nil, fmt.Errorf("decode baseline: %w", err)
	}
	if baseline == nil {
		baseline = Baseline{}
	}
	return baseline, nil
}
