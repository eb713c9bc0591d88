package store

import (
	"context"
	"time"

	"planora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PlanStore persists plans against a MongoDB collection.
type PlanStore struct {
	coll *mongo.Collection
}

func NewPlanStore(coll *mongo.Collection) *PlanStore {
	return &PlanStore{coll: coll}
}

func (s *PlanStore) Insert(ctx context.Context, plan models.Plan) error {
	_, err := s.coll.InsertOne(ctx, plan)
	return err
}

func (s *PlanStore) FindByID(ctx context.Context, planID string) (*models.Plan, error) {
	var plan models.Plan
	err := s.coll.FindOne(ctx, bson.M{"planid": planID}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *PlanStore) FindByShareLink(ctx context.Context, shareLink string) (*models.Plan, error) {
	var plan models.Plan
	err := s.coll.FindOne(ctx, bson.M{"sharing.shareLink": shareLink}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListOptions narrow and page a plan listing.
type ListOptions struct {
	Page      int
	Limit     int
	Status    string
	CreatedBy string
}

// List returns plans most recently updated first.
func (s *PlanStore) List(ctx context.Context, opts ListOptions) ([]models.Plan, error) {
	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}
	if opts.CreatedBy != "" {
		filter["createdBy"] = opts.CreatedBy
	}

	findOpts := options.Find().
		SetSort(bson.M{"updatedAt": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := s.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []models.Plan{}
	for cursor.Next(ctx) {
		var plan models.Plan
		if err := cursor.Decode(&plan); err == nil {
			plans = append(plans, plan)
		}
	}
	return plans, cursor.Err()
}

// Update applies a partial plan update. The patch-to-field-path mapping is
// explicit; there is no free-form key iteration over client input.
func (s *PlanStore) Update(ctx context.Context, planID string, patch models.PlanPatch) error {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Destination != nil {
		set["destination"] = *patch.Destination
	}
	if patch.CoverImage != nil {
		set["coverImage"] = *patch.CoverImage
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.StartDate != nil {
		set["startDate"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		set["endDate"] = *patch.EndDate
	}
	if patch.Preferences != nil {
		set["preferences"] = *patch.Preferences
	}
	if patch.Sharing != nil {
		set["sharing"] = *patch.Sharing
	}
	if patch.Days != nil {
		set["days"] = patch.Days
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"planid": planID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the whole plan document; embedded days and activities go
// with it.
func (s *PlanStore) Delete(ctx context.Context, planID string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"planid": planID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendActivity pushes one activity onto the matched day's array.
func (s *PlanStore) AppendActivity(ctx context.Context, planID, dayID string, activity models.Activity) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"planid": planID, "days.id": dayID},
		bson.M{
			"$push": bson.M{"days.$.activities": activity},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PatchActivity updates individual fields of one activity, addressed by a
// two-level array-filter match on day id and activity id. Only supplied
// fields are written; there are no removal semantics.
func (s *PlanStore) PatchActivity(ctx context.Context, planID, dayID, activityID string, patch models.ActivityPatch) error {
	prefix := "days.$[day].activities.$[activity]."

	set := bson.M{"updatedAt": time.Now()}
	if patch.Title != nil {
		set[prefix+"title"] = *patch.Title
	}
	if patch.Description != nil {
		set[prefix+"description"] = *patch.Description
	}
	if patch.Type != nil {
		set[prefix+"type"] = *patch.Type
	}
	if patch.StartTime != nil {
		set[prefix+"startTime"] = *patch.StartTime
	}
	if patch.Duration != nil {
		set[prefix+"duration"] = *patch.Duration
	}
	if patch.Location != nil {
		set[prefix+"location"] = *patch.Location
	}
	if patch.Status != nil {
		set[prefix+"status"] = *patch.Status
	}
	if patch.Cost != nil {
		set[prefix+"cost"] = *patch.Cost
	}
	if patch.Order != nil {
		set[prefix+"order"] = *patch.Order
	}

	arrayFilters := options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"day.id": dayID},
			bson.M{"activity.id": activityID},
		},
	}

	result, err := s.coll.UpdateOne(ctx,
		bson.M{"planid": planID},
		bson.M{"$set": set},
		options.Update().SetArrayFilters(arrayFilters),
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceDayActivities swaps the matched day's entire activity array.
func (s *PlanStore) ReplaceDayActivities(ctx context.Context, planID, dayID string, activities []models.Activity) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"planid": planID, "days.id": dayID},
		bson.M{"$set": bson.M{
			"days.$.activities": activities,
			"updatedAt":         time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveActivity pulls the matching activity out of the day's array.
func (s *PlanStore) RemoveActivity(ctx context.Context, planID, dayID, activityID string) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"planid": planID, "days.id": dayID},
		bson.M{
			"$pull": bson.M{"days.$.activities": bson.M{"id": activityID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
