package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stayops/housekeeping-app/events"
	"github.com/stayops/housekeeping-app/models"
	"github.com/stayops/housekeeping-app/services"
	"github.com/stayops/housekeeping-app/utils"
)

type CleaningTaskController struct {
	DB        *gorm.DB
	lifecycle *services.TaskLifecycle
}

func NewCleaningTaskController(db *gorm.DB, lifecycle *services.TaskLifecycle) *CleaningTaskController {
	return &CleaningTaskController{DB: db, lifecycle: lifecycle}
}

// GetAllTasks -> tenant-wide task list for managers
func (tc *CleaningTaskController) GetAllTasks(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	var tasks []models.CleaningTask
	query := tc.DB.Preload("Property").Where("tenant_id = ?", tenantID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("scheduled_date").Find(&tasks).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All cleaning tasks", tasks)
}

// GetAvailableTasks -> pending, unassigned tasks a cleaner can take.
// Priority tasks (reported checkouts) come first.
func (tc *CleaningTaskController) GetAvailableTasks(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	var tasks []models.CleaningTask
	if err := tc.DB.Preload("Property").
		Where("tenant_id = ? AND status = ? AND assigned_to IS NULL",
			tenantID, services.TaskStatusPending).
		Order("is_priority DESC, scheduled_date").
		Find(&tasks).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Available tasks", tasks)
}

// GetMyTasks -> the caller's assigned tasks
func (tc *CleaningTaskController) GetMyTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var tasks []models.CleaningTask
	if err := tc.DB.Preload("Property").
		Where("assigned_to = ?", userID).
		Order("scheduled_date").Find(&tasks).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My tasks", tasks)
}

// CreateTask -> manual task without a reservation
func (tc *CleaningTaskController) CreateTask(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	type reqBody struct {
		PropertyID    uint   `json:"property_id" binding:"required"`
		TaskType      string `json:"task_type" binding:"required,oneof=check_out stay_over deep_cleaning"`
		ScheduledDate string `json:"scheduled_date" binding:"required"`
		IsPriority    bool   `json:"is_priority"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	scheduled, err := time.Parse(dateLayout, body.ScheduledDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("scheduled_date must be YYYY-MM-DD"))
		return
	}

	var property models.Property
	if err := tc.DB.Where("id = ? AND tenant_id = ?", body.PropertyID, tenantID).
		First(&property).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown property"))
		return
	}

	task := models.CleaningTask{
		TenantID:      tenantID,
		PropertyID:    body.PropertyID,
		TaskType:      body.TaskType,
		ScheduledDate: scheduled,
		Status:        services.TaskStatusPending,
		IsPriority:    body.IsPriority,
	}
	if err := tc.DB.Create(&task).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTaskUpdate(task)
	utils.RespondJSON(c, http.StatusCreated, "Cleaning task created", task)
}

// TakeTask -> assign a pending task to the caller
func (tc *CleaningTaskController) TakeTask(c *gin.Context) {
	taskID, userID, ok := tc.taskAndUser(c)
	if !ok {
		return
	}

	task, err := tc.lifecycle.Take(taskID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastTaskUpdate(*task)
	utils.RespondJSON(c, http.StatusOK, "Task taken", task)
}

// StartTask
func (tc *CleaningTaskController) StartTask(c *gin.Context) {
	taskID, userID, ok := tc.taskAndUser(c)
	if !ok {
		return
	}

	task, err := tc.lifecycle.Start(taskID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastTaskUpdate(*task)
	utils.RespondJSON(c, http.StatusOK, "Task started", task)
}

// CompleteTask
func (tc *CleaningTaskController) CompleteTask(c *gin.Context) {
	taskID, userID, ok := tc.taskAndUser(c)
	if !ok {
		return
	}

	task, err := tc.lifecycle.Complete(taskID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastTaskUpdate(*task)
	utils.RespondJSON(c, http.StatusOK, "Task completed", task)
}

// CancelTask -> admin only (router-enforced), pending tasks only
func (tc *CleaningTaskController) CancelTask(c *gin.Context) {
	idStr := c.Param("task_id")
	id, _ := strconv.Atoi(idStr)

	task, err := tc.lifecycle.Cancel(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastTaskUpdate(*task)
	utils.RespondJSON(c, http.StatusOK, "Task cancelled", task)
}

func (tc *CleaningTaskController) taskAndUser(c *gin.Context) (uint, uint, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return 0, 0, false
	}

	idStr := c.Param("task_id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid task id"))
		return 0, 0, false
	}

	return uint(id), userID, true
}
