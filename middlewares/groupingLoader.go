package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/schedule3_backend/models"
)

type groupingReader struct{}

func (r *groupingReader) getGroupings(ctx context.Context, ids []int) []*dataloader.Result[*models.Grouping] {
	results, err := models.GetGroupingsByIds(ctx, ids)
	if err != nil {
		return handleError[*models.Grouping](len(ids), err)
	}
	return generateLoaderResults(derefAll(results), ids)
}

func GetGrouping(ctx context.Context, id int) (*models.Grouping, error) {
	loaders := For(ctx)
	return loaders.GroupingLoader.Load(ctx, id)()
}

func GetGroupings(ctx context.Context, ids []int) ([]*models.Grouping, []error) {
	loaders := For(ctx)
	return loaders.GroupingLoader.LoadMany(ctx, ids)()
}
