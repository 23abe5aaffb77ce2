package cli

import (
	"errors"

	"github.com/llehouerou/rpgmplay/internal/errmsg"
)

type opError struct {
	msg   string
	cause error
}

func (e *opError) Error() string { return e.msg }
func (e *opError) Unwrap() error { return e.cause }

// errorf wraps err with the user-facing message of op.
func errorf(op errmsg.Op, err error) error {
	if err == nil {
		return nil
	}
	return &opError{msg: errmsg.Format(op, err), cause: err}
}

var errNoAssets = errors.New("no eligible files were found")
