// Package api exposes the task service over HTTP. Handlers decode requests,
// call service.TaskService and write JSON responses; every failure goes
// through HandleAPIError so clients always receive the same error body.
package api
