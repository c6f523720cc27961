package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// userIDHeader carries the identity of the caller on every request that
// acts on behalf of a user.
const userIDHeader = "X-Sharer-User-Id"

// callerID extracts the caller's user id from the request header.
func callerID(c *gin.Context) (int64, error) {
	raw := c.GetHeader(userIDHeader)
	if raw == "" {
		return 0, fmt.Errorf("missing %s header", userIDHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s header", userIDHeader)
	}
	return id, nil
}

// pathID parses a positive int64 path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// parseFromSize extracts the optional from/size pagination query
// parameters. Either may be absent; present values must be a
// non-negative offset and a positive page size.
func parseFromSize(c *gin.Context) (from, size *int64, err error) {
	if raw, ok := c.GetQuery("from"); ok {
		v, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || v < 0 {
			return nil, nil, errors.New("from must be a non-negative integer")
		}
		from = &v
	}
	if raw, ok := c.GetQuery("size"); ok {
		v, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || v < 1 {
			return nil, nil, errors.New("size must be a positive integer")
		}
		size = &v
	}
	return from, size, nil
}
