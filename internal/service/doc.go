// Package service holds the task business rules: request validation,
// mapping between wire views and domain tasks, persistence through a
// store.TaskStore and change notification through a TaskNotifier.
package service
