package notifier

import "errors"

var ErrUnknownEvent = errors.New("unknown reservation event type")
