package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/hylin-tw/worksite/internal/domain"
)

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectPriority(pr int) ProjectOption {
	return func(p *domain.Project) {
		p.Priority = pr
	}
}

func WithProjectDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &start
		p.EndDate = &end
	}
}

func WithCreator(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Creator = c
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Priority:  5,
		Status:    domain.ProjectActive,
		Creator:   "tester",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Engineering options
type EngineeringOption func(*domain.Engineering)

func WithEngineeringTemplateID(id string) EngineeringOption {
	return func(e *domain.Engineering) {
		e.TemplateID = &id
	}
}

func WithEngineeringDescription(d string) EngineeringOption {
	return func(e *domain.Engineering) {
		e.Description = d
	}
}

func NewTestEngineering(projectID, name string, opts ...EngineeringOption) *domain.Engineering {
	now := time.Now().UTC()
	e := &domain.Engineering{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Task options
type TaskOption func(*domain.Task)

func WithEquipmentCount(c int) TaskOption {
	return func(t *domain.Task) {
		t.EquipmentCount = &c
	}
}

func WithActualCount(c int) TaskOption {
	return func(t *domain.Task) {
		t.ActualEquipmentCount = c
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithTaskPriority(p int) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithCompletionRate(r int) TaskOption {
	return func(t *domain.Task) {
		t.CompletionRate = r
	}
}

func WithTaskTemplateID(id string) TaskOption {
	return func(t *domain.Task) {
		t.TemplateID = &id
	}
}

func NewTestTask(engineeringID, projectID, name string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:            uuid.New().String(),
		EngineeringID: engineeringID,
		ProjectID:     projectID,
		Name:          name,
		Priority:      5,
		Status:        domain.TaskTodo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SubTask options
type SubTaskOption func(*domain.SubTask)

func WithSubTaskEquipment(planned, actual int) SubTaskOption {
	return func(s *domain.SubTask) {
		s.EquipmentCount = &planned
		s.ActualEquipmentCount = &actual
	}
}

func WithSubTaskStatus(st domain.TaskStatus) SubTaskOption {
	return func(s *domain.SubTask) {
		s.Status = st
	}
}

func WithSubTaskParent(taskID string) SubTaskOption {
	return func(s *domain.SubTask) {
		s.ParentTaskID = &taskID
	}
}

func WithPlannedWindow(start, end time.Time) SubTaskOption {
	return func(s *domain.SubTask) {
		s.PlannedStart = &start
		s.PlannedEnd = &end
	}
}

func NewTestSubTask(taskID, name string, opts ...SubTaskOption) *domain.SubTask {
	now := time.Now().UTC()
	s := &domain.SubTask{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Name:      name,
		Priority:  5,
		Status:    domain.TaskTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Template fixtures

func NewTestProjectTemplate(name string) *domain.ProjectTemplate {
	now := time.Now().UTC()
	return &domain.ProjectTemplate{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestEngineeringTemplate(name string) *domain.EngineeringTemplate {
	now := time.Now().UTC()
	return &domain.EngineeringTemplate{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type TaskTemplateOption func(*domain.TaskTemplate)

func WithTemplatePriority(p int) TaskTemplateOption {
	return func(t *domain.TaskTemplate) {
		t.Priority = p
	}
}

func NewTestTaskTemplate(engineeringTemplateID, name string, opts ...TaskTemplateOption) *domain.TaskTemplate {
	now := time.Now().UTC()
	t := &domain.TaskTemplate{
		ID:                    uuid.New().String(),
		EngineeringTemplateID: engineeringTemplateID,
		Name:                  name,
		Priority:              1,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestSubTaskTemplate(taskTemplateID, name string) *domain.SubTaskTemplate {
	now := time.Now().UTC()
	return &domain.SubTaskTemplate{
		ID:             uuid.New().String(),
		TaskTemplateID: taskTemplateID,
		Name:           name,
		Priority:       1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
