package reconciler

import "errors"

var ErrAlreadyActivated = errors.New("reconciler already activated")
