// Package models defines the data shared between the backend, the state
// store and the view surfaces of CleanOS.
package models
