package service

import (
	"github.com/deppfellow/crm/internal/repository"
	"github.com/deppfellow/crm/internal/server"
)

type Services struct {
	Users *UserService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Users: NewUserService(s, repos.Users),
	}
}
