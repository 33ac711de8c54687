package services

import (
	"github.com/boardlyhq/boardly/internal/config"
	"github.com/boardlyhq/boardly/internal/db"
	"github.com/boardlyhq/boardly/internal/services/board"
	"github.com/boardlyhq/boardly/internal/services/comment"
	"github.com/boardlyhq/boardly/internal/services/task"
	"github.com/boardlyhq/boardly/internal/services/user"
)

type Services struct {
	User    *user.UserService
	Board   *board.BoardService
	Task    *task.TaskService
	Comment *comment.CommentService
}

func NewServices(conf *config.Config) *Services {
	dbconn := db.NewConn(conf)

	userSvc := user.NewUserService(user.NewUserRepo(dbconn))
	boardSvc := board.NewBoardService(board.NewBoardRepo(dbconn))
	taskSvc := task.NewTaskService(task.NewTaskRepo(dbconn), boardSvc)
	commentSvc := comment.NewCommentService(comment.NewCommentRepo(dbconn), boardSvc, taskSvc)

	return &Services{
		User:    userSvc,
		Board:   boardSvc,
		Task:    taskSvc,
		Comment: commentSvc,
	}
}
