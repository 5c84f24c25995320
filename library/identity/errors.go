package identity

import "errors"

var ErrUserNotFound = errors.New("user does not exist")
var ErrWrongPassword = errors.New("wrong password")
var ErrUsernameTaken = errors.New("username already exists")
var ErrNotLoggedIn = errors.New("no user is logged in")
var ErrAdminUndeletable = errors.New("admin accounts cannot be deleted")
