package store

import (
	"context"
	"time"

	"planora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskStore persists flat todo items.
type TaskStore struct {
	coll *mongo.Collection
}

func NewTaskStore(coll *mongo.Collection) *TaskStore {
	return &TaskStore{coll: coll}
}

func (s *TaskStore) Insert(ctx context.Context, task models.Task) error {
	_, err := s.coll.InsertOne(ctx, task)
	return err
}

// List returns tasks newest first.
func (s *TaskStore) List(ctx context.Context) ([]models.Task, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	for cursor.Next(ctx) {
		var task models.Task
		if err := cursor.Decode(&task); err == nil {
			tasks = append(tasks, task)
		}
	}
	return tasks, cursor.Err()
}

func (s *TaskStore) Update(ctx context.Context, taskID string, patch models.TaskPatch) error {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Time != nil {
		set["time"] = *patch.Time
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"taskid": taskID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, taskID string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"taskid": taskID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
