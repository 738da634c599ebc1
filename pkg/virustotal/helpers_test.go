package virustotal

import (
	"context"
	"errors"
)

func asStatusError(err error, target **StatusError) bool {
	return errors.As(err, target)
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
