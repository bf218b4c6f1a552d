package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/techverse/internal/datasets"
	"github.com/yungbote/techverse/internal/platform/logger"
)

func TestResolveDatasetSourceLocalDirectory(t *testing.T) {
	dir := t.TempDir()
	src, loc, err := resolveDatasetSource(context.Background(), logger.Nop(), Config{DatasetSource: dir})
	require.NoError(t, err)

	assert.Equal(t, "fs", src.Kind())
	assert.Equal(t, "fs", loc.Kind)
	assert.Equal(t, dir, loc.Path)
}

func TestResolveDatasetSourceInvalidLocation(t *testing.T) {
	_, _, err := resolveDatasetSource(context.Background(), logger.Nop(), Config{DatasetSource: "s3:///no-bucket"})
	require.Error(t, err)

	var got *DatasetSourceBootstrapError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, DatasetSourceBootstrapErrorInvalidLocation, got.Code)
}

func TestResolveDatasetSourceConnectFailed(t *testing.T) {
	orig := newDatasetSource
	t.Cleanup(func() { newDatasetSource = orig })
	newDatasetSource = func(context.Context, string, datasets.CloudOptions) (datasets.Source, error) {
		return nil, errors.New("dial tcp: connection refused")
	}

	_, _, err := resolveDatasetSource(context.Background(), logger.Nop(), Config{DatasetSource: "gs://bucket/prefix"})
	require.Error(t, err)

	var got *DatasetSourceBootstrapError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, DatasetSourceBootstrapErrorConnectFailed, got.Code)
	assert.Equal(t, "gs://bucket/prefix", got.Location)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDatasetSourceBootstrapErrorCodeDefaults(t *testing.T) {
	assert.Equal(t, DatasetSourceBootstrapErrorConnectFailed, datasetSourceBootstrapErrorCode(errors.New("boom")))
	assert.Equal(t, DatasetSourceBootstrapErrorInvalidLocation, datasetSourceBootstrapErrorCode(&DatasetSourceBootstrapError{Code: DatasetSourceBootstrapErrorInvalidLocation}))
}
