package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/techverse/internal/datasets"
	"github.com/yungbote/techverse/internal/platform/logger"
)

var newDatasetSource = datasets.NewSource

type DatasetSourceBootstrapErrorCode string

const (
	DatasetSourceBootstrapErrorInvalidLocation DatasetSourceBootstrapErrorCode = "invalid_location"
	DatasetSourceBootstrapErrorConnectFailed   DatasetSourceBootstrapErrorCode = "connect_failed"
)

type DatasetSourceBootstrapError struct {
	Code     DatasetSourceBootstrapErrorCode
	Location string
	Cause    error
}

func (e *DatasetSourceBootstrapError) Error() string {
	if e == nil {
		return "dataset source bootstrap failed"
	}
	return fmt.Sprintf("dataset source bootstrap failed (code=%s location=%q): %v", e.Code, e.Location, e.Cause)
}

func (e *DatasetSourceBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveDatasetSource picks the dataset backend from DATASET_SOURCE. The
// parsed location is returned too so local directories can be served at /data.
func resolveDatasetSource(ctx context.Context, log *logger.Logger, cfg Config) (datasets.Source, datasets.Location, error) {
	loc, err := datasets.ParseLocation(cfg.DatasetSource)
	if err != nil {
		bootErr := &DatasetSourceBootstrapError{
			Code:     DatasetSourceBootstrapErrorInvalidLocation,
			Location: cfg.DatasetSource,
			Cause:    err,
		}
		log.Error("Dataset source selection failed", "location", cfg.DatasetSource, "error_code", bootErr.Code, "error", err)
		return nil, datasets.Location{}, bootErr
	}

	log.Info("Selecting dataset source", "kind", loc.Kind, "location", cfg.DatasetSource)

	src, err := newDatasetSource(ctx, cfg.DatasetSource, cfg.Cloud)
	if err != nil {
		classified := classifyDatasetSourceBootstrapError(cfg.DatasetSource, err)
		log.Error(
			"Dataset source bootstrap failed",
			"kind", loc.Kind,
			"location", cfg.DatasetSource,
			"error_code", datasetSourceBootstrapErrorCode(classified),
			"error", classified,
		)
		return nil, datasets.Location{}, classified
	}
	return src, loc, nil
}

func classifyDatasetSourceBootstrapError(location string, err error) error {
	var bootErr *DatasetSourceBootstrapError
	if errors.As(err, &bootErr) {
		return err
	}
	return &DatasetSourceBootstrapError{
		Code:     DatasetSourceBootstrapErrorConnectFailed,
		Location: location,
		Cause:    err,
	}
}

func datasetSourceBootstrapErrorCode(err error) DatasetSourceBootstrapErrorCode {
	var bootErr *DatasetSourceBootstrapError
	if errors.As(err, &bootErr) && bootErr.Code != "" {
		return bootErr.Code
	}
	return DatasetSourceBootstrapErrorConnectFailed
}

// closeSource releases clients held by cloud sources.
func closeSource(src datasets.Source) {
	if c, ok := src.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}
