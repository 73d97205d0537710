package commands

import (
	"errors"
	"strconv"
)

// ErrTaskIDRequired is returned when no task id argument was given.
var ErrTaskIDRequired = errors.New("task id required")

// parseTaskID parses the leading argument as a server-assigned task id and
// returns the remaining arguments.
func parseTaskID(args []string) (int64, []string, error) {
	if len(args) == 0 {
		return 0, nil, ErrTaskIDRequired
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, nil, errors.New("invalid task id: " + args[0])
	}
	return id, args[1:], nil
}
