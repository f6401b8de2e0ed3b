package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblereader/internal/tasks"
)

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue       TaskQueue
	maintenance MaintenanceRunner
}

func NewTasksController(queue TaskQueue, maintenance MaintenanceRunner) *TasksController {
	return &TasksController{queue: queue, maintenance: maintenance}
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": tasks.StatusString(status),
	})
}

// RunTask handles POST /api/tasks/:type/run
// Only maintenance can be triggered by hand; imports go through
// POST /api/annotations/import?async=true.
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var (
		taskID string
		err    error
	)
	switch taskType {
	case tasks.PruneOrphanAnnotationsQueue:
		if tc.maintenance != nil {
			taskID, err = tc.maintenance.RunNow(ctx)
		} else {
			taskID, err = tc.queue.Enqueue(ctx, tasks.PruneOrphanAnnotationsTask{Optimize: true})
		}
	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}
	if err != nil {
		respondInternalError(c, err, "run task")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task_id": taskID,
		"type":    taskType,
		"message": "task enqueued",
	})
}
