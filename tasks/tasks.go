// Package tasks is the flat todo list. Tasks have no scheduling semantics
// and live in their own collection, independent of plans.
package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"planora/models"
	"planora/store"
	"planora/utils"

	"github.com/julienschmidt/httprouter"
)

type TaskGateway interface {
	Insert(ctx context.Context, task models.Task) error
	List(ctx context.Context) ([]models.Task, error)
	Update(ctx context.Context, taskID string, patch models.TaskPatch) error
	Delete(ctx context.Context, taskID string) error
}

type Handlers struct {
	store TaskGateway
}

func NewHandlers(s TaskGateway) *Handlers {
	return &Handlers{store: s}
}

// GET /api/tasks
func (h *Handlers) GetTasks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tasks, err := h.store.List(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching tasks")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"tasks": tasks})
}

// POST /api/tasks
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if task.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	task.TaskID = utils.GetUUID()
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Insert(ctx, task); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating task")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"task": task})
}

// PUT /api/tasks/:id
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	taskID := ps.ByName("id")

	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.store.Update(ctx, taskID, patch)
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating task")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// DELETE /api/tasks/:id
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	taskID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.store.Delete(ctx, taskID)
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting task")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
