package repo

import "github.com/rogerio-castellano/retail-manager/internal/models"

type UserRepository interface {
	CreateUser(user models.User) (models.User, error)
	GetByUsername(username string) (models.User, error)
}
