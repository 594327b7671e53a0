// Package authz holds the pure authorization predicates for the task
// marketplace. Every function is a side-effect-free computation over a
// (task, user) pair; the lifecycle engine evaluates these before any
// mutation, so view-layer conditionals are presentation only.
package authz

import "github.com/taskbridge/task-marketplace-api/internal/models"

// CanView reports whether the user may open the task detail and read its
// collaboration thread: the poster and the assigned team only.
func CanView(task *models.Task, user *models.User) bool {
	return task.CreatedBy == user.ID || task.IsAssignedTo(user.ID)
}

// CanAccept reports whether the user may join the task's team. Capacity is
// not re-checked here: the accept transition flips status away from Open the
// moment the team fills, so an Open task always has a free slot.
func CanAccept(task *models.Task, user *models.User) bool {
	return user.Role == models.RoleAssociate &&
		task.Status == models.TaskStatusOpen &&
		!task.IsAssignedTo(user.ID)
}

// CanComplete reports whether the user may mark the task completed.
func CanComplete(task *models.Task, user *models.User) bool {
	return user.Role == models.RoleAssociate &&
		task.Status == models.TaskStatusInProgress &&
		task.IsAssignedTo(user.ID)
}

// CanMessage reports whether the user may post to the collaboration thread.
// The thread becomes read-only once the task is completed.
func CanMessage(task *models.Task, user *models.User) bool {
	return CanView(task, user) && task.Status != models.TaskStatusCompleted
}

// CanCreateTask reports whether the user may post new tasks.
func CanCreateTask(user *models.User) bool {
	return user.Role == models.RoleJPT
}
