package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/schedule3_backend/models"
)

type majorHeadReader struct{}

func (r *majorHeadReader) getMajorHeads(ctx context.Context, ids []int) []*dataloader.Result[*models.MajorHead] {
	results, err := models.GetMajorHeadsByIds(ctx, ids)
	if err != nil {
		return handleError[*models.MajorHead](len(ids), err)
	}
	return generateLoaderResults(derefAll(results), ids)
}

func GetMajorHead(ctx context.Context, id int) (*models.MajorHead, error) {
	loaders := For(ctx)
	return loaders.MajorHeadLoader.Load(ctx, id)()
}

func GetMajorHeads(ctx context.Context, ids []int) ([]*models.MajorHead, []error) {
	loaders := For(ctx)
	return loaders.MajorHeadLoader.LoadMany(ctx, ids)()
}
