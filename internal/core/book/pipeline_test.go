package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stageNames extracts the operator of each pipeline stage in order.
func stageNames(pipeline []bson.D) []string {
	names := make([]string, 0, len(pipeline))
	for _, stage := range pipeline {
		names = append(names, stage[0].Key)
	}
	return names
}

// findStage returns the value of the first stage with the given operator.
func findStage(t *testing.T, pipeline []bson.D, operator string) interface{} {
	t.Helper()
	for _, stage := range pipeline {
		if stage[0].Key == operator {
			return stage[0].Value
		}
	}
	t.Fatalf("pipeline has no %s stage", operator)
	return nil
}

/*
TestListPipeline_StageOrder verifies the paginated list is sorted by
identifier before the window is cut, and joined/projected after.
*/
func TestListPipeline_StageOrder(t *testing.T) {
	pipeline := listPipeline(30, 15)

	assert.Equal(t,
		[]string{"$sort", "$skip", "$limit", "$lookup", "$set", "$unset", "$project"},
		stageNames(pipeline),
	)

	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, findStage(t, pipeline, "$sort"))
	assert.Equal(t, 30, findStage(t, pipeline, "$skip"))
	assert.Equal(t, 15, findStage(t, pipeline, "$limit"))
}

/*
TestGetPipeline_MatchesID verifies the single-book fetch filters on the exact
identifier and applies the same join/derive stages as the list.
*/
func TestGetPipeline_MatchesID(t *testing.T) {
	id := primitive.NewObjectID()

	pipeline := getPipeline(id)

	assert.Equal(t, []string{"$match", "$lookup", "$set", "$unset"}, stageNames(pipeline))
	assert.Equal(t, bson.D{{Key: "_id", Value: id}}, findStage(t, pipeline, "$match"))
}

/*
TestReviewJoinStages verifies the derived-aggregate expressions: the join on
book_id, the review count via $size, and the average rating defaulting to
numeric 0 via $ifNull before being rounded to 2 decimal places.
*/
func TestReviewJoinStages(t *testing.T) {
	stages := reviewJoinStages()
	require.Len(t, stages, 3)

	lookup, ok := findStage(t, stages, "$lookup").(bson.D)
	require.True(t, ok)
	assert.Equal(t, bson.D{
		{Key: "from", Value: "reviews"},
		{Key: "localField", Value: "_id"},
		{Key: "foreignField", Value: "book_id"},
		{Key: "as", Value: "reviews"},
	}, lookup)

	set, ok := findStage(t, stages, "$set").(bson.D)
	require.True(t, ok)
	assert.Equal(t, bson.D{
		{Key: "number_of_reviews", Value: bson.D{{Key: "$size", Value: "$reviews"}}},
		{Key: "average_rating", Value: bson.D{{Key: "$round", Value: bson.A{
			bson.D{{Key: "$ifNull", Value: bson.A{
				bson.D{{Key: "$avg", Value: "$reviews.rating"}},
				0,
			}}},
			2,
		}}}},
	}, set)

	// The joined array is dropped before projection.
	assert.Equal(t, "reviews", findStage(t, stages, "$unset"))
}

/*
TestSearchPipeline_NoTitleMatch documents the stubbed search behavior: the
pipeline ends with the summary projection and contains no $match on title.
*/
func TestSearchPipeline_NoTitleMatch(t *testing.T) {
	pipeline := searchPipeline()

	assert.NotContains(t, stageNames(pipeline), "$match")
	assert.Equal(t, "$project", pipeline[len(pipeline)-1][0].Key)
}
