package comment

import (
	"context"
	"strings"

	"github.com/boardlyhq/boardly/internal/services/board"
	"github.com/boardlyhq/boardly/internal/services/task"
)

// CommentService contains business logic for comments. Access follows
// the owning task: the caller must be the owner or a member of the
// task's board for every operation, reads included.
type CommentService struct {
	repo   *CommentRepo
	boards *board.BoardService
	tasks  *task.TaskService
}

// NewCommentService constructs a new CommentService
func NewCommentService(repo *CommentRepo, boards *board.BoardService, tasks *task.TaskService) *CommentService {
	return &CommentService{repo: repo, boards: boards, tasks: tasks}
}

func (s *CommentService) authorize(ctx context.Context, taskID, userID int64) error {
	boardID, err := s.tasks.BoardID(ctx, taskID)
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

// List returns a task's comments, oldest first.
func (s *CommentService) List(ctx context.Context, userID, taskID int64) ([]*Response, error) {
	if err := s.authorize(ctx, taskID, userID); err != nil {
		return nil, err
	}

	return s.repo.ListByTask(ctx, taskID)
}

// Create adds a comment to a task, authored by the caller.
func (s *CommentService) Create(ctx context.Context, userID, taskID int64, req *CreateCommentRequest) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, taskID, userID); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, taskID, userID, strings.TrimSpace(req.Content))
}

// Get returns a single comment under a task.
func (s *CommentService) Get(ctx context.Context, userID, taskID, commentID int64) (*Response, error) {
	if err := s.authorize(ctx, taskID, userID); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, taskID, commentID)
}

// Delete removes a comment under a task.
func (s *CommentService) Delete(ctx context.Context, userID, taskID, commentID int64) error {
	if err := s.authorize(ctx, taskID, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, taskID, commentID)
}
