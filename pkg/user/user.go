package user

import "errors"

var ErrUserNotFound = errors.New("user not found")

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
}
