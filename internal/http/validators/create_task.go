package validators

import (
	dto "task-marketplace.com/task-marketplace/internal/data_models"
)

// ValidateCreateTaskRequest narrows the flat request to its task-type variant
// and checks the fields that variant requires.
func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) (dto.CreateTaskInput, error) {
	in, err := r.ToInput()
	if err != nil {
		return in, err
	}
	if err := in.Validate(); err != nil {
		return in, err
	}
	return in, nil
}
