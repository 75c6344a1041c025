// Package repositories provides the local persistence layer.
//
// ExerciseRepository caches the backend's analyzable-exercise catalog
// in sqlite so the analyze command can offer choices while offline.
package repositories
