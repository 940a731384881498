package dispatch_test

import (
	"io"

	"github.com/bjaus/dispatch"
)

// bodyString drains a response body into a string.
func bodyString(res *dispatch.Response) (string, error) {
	if res.Body == nil {
		return "", nil
	}
	b, err := io.ReadAll(res.Body)
	return string(b), err
}
