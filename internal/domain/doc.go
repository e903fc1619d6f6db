// Package domain contains the core business entities of the task API and the
// errors they raise when they fail validation. It has no knowledge of
// persistence, transport or notification concerns.
package domain
