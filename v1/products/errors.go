package products

import (
	"net/http"
	"regexp"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Aleph-Alpha/search-store/v1/vectordb"
)

//
// ──────────────────────────────────────────────────────────────
//   ERROR TRANSLATOR
// ──────────────────────────────────────────────────────────────
//
// Wraps every backend call. A bad-request rejection whose message matches
// the dimension-mismatch pattern becomes a structured
// DimensionMismatchError; transport-class failures become TransportError;
// everything else propagates unchanged. This layer never masks unrelated
// failures.
//

// dimensionPattern matches Qdrant's wrong-vector-size rejection, e.g.
// "Wrong input: Vector inserting error: expected dim: 512, got 256".
// The second colon is optional across backend versions.
var dimensionPattern = regexp.MustCompile(`expected dim: (\d+), got:?\s*(\d+)`)

var alreadyExistsPattern = regexp.MustCompile(`already exists`)

// translate maps a backend error into the typed taxonomy. Errors already
// in the taxonomy pass through untouched.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if vectordb.IsDimensionMismatch(err) || vectordb.IsValidation(err) ||
		vectordb.IsConfiguration(err) || vectordb.IsNotFound(err) || vectordb.IsTransport(err) {
		return err
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.InvalidArgument:
		if m := dimensionPattern.FindStringSubmatch(st.Message()); m != nil {
			expected, _ := strconv.ParseUint(m[1], 10, 64)
			actual, _ := strconv.ParseUint(m[2], 10, 64)
			return &vectordb.DimensionMismatchError{Expected: expected, Actual: actual}
		}
		return err

	case codes.Unavailable, codes.DeadlineExceeded, codes.Aborted, codes.ResourceExhausted:
		return &vectordb.TransportError{Op: op, Err: err}

	default:
		return err
	}
}

// isAlreadyExists reports whether a create was rejected because the
// collection already exists. Qdrant signals the create race as
// AlreadyExists or as an InvalidArgument naming the collection.
func isAlreadyExists(err error) bool {
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	if st.Code() == codes.AlreadyExists {
		return true
	}
	return st.Code() == codes.InvalidArgument &&
		alreadyExistsPattern.MatchString(st.Message())
}

// HTTPStatus maps the error taxonomy to the status code the HTTP layer
// responds with. Unknown errors default to 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case vectordb.IsNotFound(err):
		return http.StatusNotFound
	case vectordb.IsDimensionMismatch(err), vectordb.IsValidation(err):
		return http.StatusUnprocessableEntity
	case vectordb.IsTransport(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
