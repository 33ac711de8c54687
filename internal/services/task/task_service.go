package task

import (
	"context"

	"github.com/boardlyhq/boardly/internal/services/board"
)

// TaskService contains business logic for tasks. Authorization is
// delegated to the board service: every operation resolves the owning
// board and checks the caller's access on it.
type TaskService struct {
	repo   *TaskRepo
	boards *board.BoardService
}

// NewTaskService constructs a new TaskService
func NewTaskService(repo *TaskRepo, boards *board.BoardService) *TaskService {
	return &TaskService{repo: repo, boards: boards}
}

// BoardID resolves the board a task belongs to.
func (s *TaskService) BoardID(ctx context.Context, taskID int64) (int64, error) {
	return s.repo.BoardID(ctx, taskID)
}

// authorize checks the caller's access on a task's board.
func (s *TaskService) authorize(ctx context.Context, taskID, userID int64) error {
	boardID, err := s.repo.BoardID(ctx, taskID)
	if err != nil {
		return err
	}

	level, err := s.boards.Authorize(ctx, boardID, userID)
	if err != nil {
		return err
	}
	if level == board.AccessNone {
		return board.ErrNotMember
	}

	return nil
}

// Create adds a task to a board the caller owns or is a member of.
func (s *TaskService) Create(ctx context.Context, userID int64, req *CreateTaskRequest) (*WithBoard, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	level, err := s.boards.Authorize(ctx, req.Board, userID)
	if err != nil {
		return nil, err
	}
	if level == board.AccessNone {
		return nil, board.ErrNotMember
	}

	return s.repo.Create(ctx, req, userID)
}

// Get returns a task for an owner or member of its board.
func (s *TaskService) Get(ctx context.Context, userID, taskID int64) (*Detail, error) {
	if err := s.authorize(ctx, taskID, userID); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, taskID)
}

// Update applies a partial update for an owner or member of the board.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, req *UpdateTaskRequest) (*Detail, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, taskID, userID); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, taskID, req)
}

// Delete removes a task for an owner or member of the board.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	if err := s.authorize(ctx, taskID, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, taskID)
}

// Reviewing lists tasks where the caller is the reviewer.
func (s *TaskService) Reviewing(ctx context.Context, userID int64) ([]*WithBoard, error) {
	return s.repo.ListByReviewer(ctx, userID)
}

// AssignedToMe lists tasks where the caller is the assignee.
func (s *TaskService) AssignedToMe(ctx context.Context, userID int64) ([]*WithBoard, error) {
	return s.repo.ListByAssignee(ctx, userID)
}
