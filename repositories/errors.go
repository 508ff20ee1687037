package repositories

import "fmt"

// NotFoundError is returned by repositories when no row matches a lookup.
type NotFoundError struct {
	entityName string
}

func NewNotFoundError(entityName string) *NotFoundError {
	return &NotFoundError{entityName: entityName}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.entityName)
}

// Is matches any NotFoundError regardless of entity.
func (e *NotFoundError) Is(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}
