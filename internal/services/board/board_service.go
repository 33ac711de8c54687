package board

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotMember is returned when an authenticated user is neither the
	// board owner nor in its member set.
	ErrNotMember = errors.New("you do not have access to this board")

	// ErrNotOwner is returned when an operation is reserved for the owner.
	ErrNotOwner = errors.New("only the board owner may perform this action")
)

// BoardService contains business logic and authorization for boards
type BoardService struct {
	repo *BoardRepo
}

// NewBoardService constructs a new BoardService
func NewBoardService(repo *BoardRepo) *BoardService {
	return &BoardService{repo: repo}
}

// Authorize resolves the caller's access level on a board. Existence is
// checked first, so a missing board surfaces as ErrBoardNotFound rather
// than a denial.
func (s *BoardService) Authorize(ctx context.Context, boardID, userID int64) (AccessLevel, error) {
	ownerID, isMember, err := s.repo.Access(ctx, boardID, userID)
	if err != nil {
		return AccessNone, err
	}

	return ResolveAccess(ownerID, isMember, userID), nil
}

// List returns all boards the user owns or is a member of.
func (s *BoardService) List(ctx context.Context, userID int64) ([]*Summary, error) {
	return s.repo.ListForUser(ctx, userID)
}

// Create makes the caller the owner of a new board. Member ids must all
// resolve to existing users; the owner is not added to the member set.
func (s *BoardService) Create(ctx context.Context, userID int64, req *CreateBoardRequest) (*Summary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, userID, strings.TrimSpace(req.Title), dedupeIDs(req.Members))
}

// Get returns full board detail for an owner or member. Non-members get
// ErrNotMember, deliberately revealing that the board exists.
func (s *BoardService) Get(ctx context.Context, userID, boardID int64) (*Detail, error) {
	level, err := s.Authorize(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if level == AccessNone {
		return nil, ErrNotMember
	}

	return s.repo.Detail(ctx, boardID)
}

// Update applies a partial update; owner and members may update. A
// provided member list replaces the previous membership wholesale.
func (s *BoardService) Update(ctx context.Context, userID, boardID int64, req *UpdateBoardRequest) (*Updated, error) {
	level, err := s.Authorize(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if level == AccessNone {
		return nil, ErrNotMember
	}

	return s.repo.Update(ctx, boardID, req)
}

// Delete removes a board and everything on it. Owner only.
func (s *BoardService) Delete(ctx context.Context, userID, boardID int64) error {
	level, err := s.Authorize(ctx, boardID, userID)
	if err != nil {
		return err
	}
	if level != AccessOwner {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, boardID)
}
