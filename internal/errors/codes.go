package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code classifies an error for callers and transports
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeAborted            Code = "ABORTED"
	CodeOutOfRange         Code = "OUT_OF_RANGE"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

type transportCodes struct {
	http int
	grpc codes.Code
}

// Aborted maps to 409 alongside AlreadyExists; both mean the stored story
// moved under the caller.
var codeTable = map[Code]transportCodes{
	CodeOK:                 {http.StatusOK, codes.OK},
	CodeCanceled:           {http.StatusRequestTimeout, codes.Canceled},
	CodeInvalidArgument:    {http.StatusBadRequest, codes.InvalidArgument},
	CodeDeadlineExceeded:   {http.StatusGatewayTimeout, codes.DeadlineExceeded},
	CodeNotFound:           {http.StatusNotFound, codes.NotFound},
	CodeAlreadyExists:      {http.StatusConflict, codes.AlreadyExists},
	CodeFailedPrecondition: {http.StatusPreconditionFailed, codes.FailedPrecondition},
	CodeAborted:            {http.StatusConflict, codes.Aborted},
	CodeOutOfRange:         {http.StatusBadRequest, codes.OutOfRange},
	CodeUnimplemented:      {http.StatusNotImplemented, codes.Unimplemented},
	CodeInternal:           {http.StatusInternalServerError, codes.Internal},
	CodeUnavailable:        {http.StatusServiceUnavailable, codes.Unavailable},
}

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the HTTP status used by the REST surface
func (c Code) HTTPStatus() int {
	if t, ok := codeTable[c]; ok {
		return t.http
	}
	return http.StatusInternalServerError
}

// GRPCCode returns the corresponding gRPC code
func (c Code) GRPCCode() codes.Code {
	if t, ok := codeTable[c]; ok {
		return t.grpc
	}
	return codes.Unknown
}

// codeFromGRPC is the inverse of GRPCCode; unmapped codes become Internal
func codeFromGRPC(grpcCode codes.Code) Code {
	for code, t := range codeTable {
		if t.grpc == grpcCode {
			return code
		}
	}
	return CodeInternal
}
