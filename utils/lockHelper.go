package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/mmdatafocus/schedule3_backend/config"
)

var ErrLockNotObtained = errors.New("another update for this company is in progress")

const companyLockTTL = 30 * time.Second

// CompanyLock serializes a mutation per company. Without Redis (desktop mode)
// there is a single process and the returned release is a no-op.
func CompanyLock(ctx context.Context, companyId string, lockType string, moduleName string, functionName string) (func(), error) {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		return func() {}, nil
	}

	lockKey := fmt.Sprintf("%s:%s", lockType, companyId)
	lock, err := locker.Obtain(ctx, lockKey, companyLockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		config.LogError(logger, moduleName, functionName, "Could not obtain lock for companyID", companyId, err)
		return nil, ErrLockNotObtained
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "Error obtaining lock for companyID", companyId, err)
		return nil, err
	}

	return func() {
		_ = lock.Release(context.Background())
	}, nil
}
